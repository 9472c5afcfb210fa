// Package api
// Author: momentics
//
// Live debug and introspection support for production workloads.

package api

// Debug exposes runtime introspection and health API.
type Debug interface {
	// DumpState emits a snapshot of system state for diagnostics.
	DumpState() map[string]any

	// RegisterProbe dynamically registers new debug probes.
	RegisterProbe(name string, fn func() any)
}

// DiagnosticFunc receives errors that have no remaining caller to return to,
// such as mask-restore failures during teardown or read errors mid-drain.
type DiagnosticFunc func(op string, err error)
