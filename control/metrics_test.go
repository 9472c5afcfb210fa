// File: control/metrics_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package control_test

import (
	"testing"

	"github.com/momentics/hioload-signals/control"
)

func TestCountersAccumulate(t *testing.T) {
	mr := control.NewMetricsRegistry()
	mr.Inc(control.MetricEventsDrained, 1)
	mr.Inc(control.MetricEventsDrained, 2)
	if n := mr.Counter(control.MetricEventsDrained); n != 3 {
		t.Errorf("counter = %d, want 3", n)
	}
	if n := mr.Counter(control.MetricDrainErrors); n != 0 {
		t.Errorf("missing counter = %d, want 0", n)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	mr := control.NewMetricsRegistry()
	mr.Set("k", "v")
	snap := mr.GetSnapshot()
	snap["k"] = "mutated"
	if got := mr.GetSnapshot()["k"]; got != "v" {
		t.Errorf("snapshot mutation leaked into registry: %v", got)
	}
}

func TestDebugProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	dp.RegisterProbe("answer", func() any { return 42 })
	state := dp.DumpState()
	if state["answer"] != 42 {
		t.Errorf("DumpState = %v, want answer=42", state)
	}
}
