//go:build linux
// +build linux

// File: signals/options_linux.go
// Package signals defines functional options for the Source.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package signals

import (
	"github.com/momentics/hioload-signals/api"
	"github.com/momentics/hioload-signals/control"
)

// Option customizes source initialization.
type Option func(*Source)

// WithDiagnostics routes drain and teardown errors to fn instead of the
// default stderr sink. Such errors have no caller to return to: a read
// failure mid-drain truncates only that pass, and a failed mask restore
// during Close would otherwise go unnoticed.
func WithDiagnostics(fn api.DiagnosticFunc) Option {
	return func(s *Source) {
		if fn != nil {
			s.diag = fn
		}
	}
}

// WithMetrics attaches a registry that counts drained events, drain errors
// and mask-restore failures.
func WithMetrics(mr *control.MetricsRegistry) Option {
	return func(s *Source) {
		s.metrics = mr
	}
}
