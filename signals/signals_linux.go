//go:build linux
// +build linux

// File: signals/signals_linux.go
// Author: momentics <momentics@gmail.com>
//
// Signal event source: bridges a sigfd notification handle to a readiness
// poller and drains queued signal records into callback invocations.

package signals

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-signals/api"
	"github.com/momentics/hioload-signals/control"
	"github.com/momentics/hioload-signals/sigfd"
)

// Callback consumes one drained signal event. It is invoked strictly
// sequentially, never concurrently with itself.
type Callback func(Event)

// Source implements api.Source over a sigfd notification handle.
//
// All mask mutation and draining must run on the thread the source was
// constructed on; the source performs no internal locking because the
// registration path and the drain path both execute on that thread during
// the same readiness notification. Calling mutation methods from inside
// the callback is the one caller-introduced hazard to avoid.
type Source struct {
	fd      *sigfd.FD
	cb      Callback
	diag    api.DiagnosticFunc
	metrics *control.MetricsRegistry
}

var _ api.Source = (*Source)(nil)

// New blocks sigs on the calling thread, opens the notification handle and
// wires cb as the per-registration callback. On partial failure the thread
// mask may already have been altered; see sigfd.New.
func New(cb Callback, sigs []unix.Signal, opts ...Option) (*Source, error) {
	if cb == nil {
		return nil, api.ErrInvalidArgument
	}
	s := &Source{
		cb: cb,
		diag: func(op string, err error) {
			fmt.Fprintf(os.Stderr, "[hioload-signals] %s: %v\n", op, err)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	fd, err := sigfd.New(sigfd.NewSigSet(sigs...))
	if err != nil {
		return nil, err
	}
	s.fd = fd
	fd.SetDiagnostics(func(op string, err error) {
		if s.metrics != nil && op == "sigmask restore" {
			s.metrics.Inc(control.MetricMaskRestoreErrors, 1)
		}
		s.diag(op, err)
	})
	return s, nil
}

// AddSignals adds sigs to the tracked set. On error the thread mask may
// already have been changed.
func (s *Source) AddSignals(sigs ...unix.Signal) error {
	return s.fd.AddSignals(sigs...)
}

// RemoveSignals removes sigs from the tracked set, unblocking exactly the
// removed subset. On error the thread mask may already have been changed.
func (s *Source) RemoveSignals(sigs ...unix.Signal) error {
	return s.fd.RemoveSignals(sigs...)
}

// SetSignals replaces the tracked set wholesale. On error the thread mask
// may already have been changed.
func (s *Source) SetSignals(sigs ...unix.Signal) error {
	return s.fd.ReplaceSignals(sigs...)
}

// Tracked returns a copy of the currently tracked signal set.
func (s *Source) Tracked() *sigfd.SigSet {
	return s.fd.Tracked()
}

// Descriptor lends the signalfd descriptor for poller registration.
// Ownership stays with the source regardless of how many times it is
// registered or reregistered.
func (s *Source) Descriptor() uintptr {
	return s.fd.Fd()
}

// Interest is always readable: signal records only ever arrive.
func (s *Source) Interest() api.Interest {
	return api.InterestReadable
}

// Trigger is always edge: OnReady fully drains the descriptor, so a level
// registration would only produce redundant wake-ups.
func (s *Source) Trigger() api.Trigger {
	return api.TriggerEdge
}

// OnReady drains every pending record, dispatching each to the callback in
// arrival order before attempting the next read. A read error stops the
// current pass and goes to the diagnostic sink; undrained records are
// picked up on the next readiness notification. No events are fabricated
// or dropped to compensate.
func (s *Source) OnReady(_ api.Readiness) {
	for {
		info, err := s.fd.TryReadOne()
		if err != nil {
			if s.metrics != nil {
				s.metrics.Inc(control.MetricDrainErrors, 1)
			}
			s.diag("signal drain", err)
			return
		}
		if info == nil {
			return
		}
		if s.metrics != nil {
			s.metrics.Inc(control.MetricEventsDrained, 1)
		}
		s.cb(Event{info: *info})
	}
}

// RegisterProbes exposes the tracked set through a debug-probe registry.
func (s *Source) RegisterProbes(dp *control.DebugProbes) {
	dp.RegisterProbe("signals.tracked", func() any {
		sigs := s.Tracked().Signals()
		out := make([]int, len(sigs))
		for i, sig := range sigs {
			out[i] = int(sig)
		}
		return out
	})
}

// Close restores the thread mask for every tracked signal and releases the
// notification handle. Mask-restore failures are reported to the
// diagnostic sink, not returned. Safe to call more than once; later calls
// do not touch the mask again.
func (s *Source) Close() error {
	return s.fd.Close()
}
