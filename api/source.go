// File: api/source.go
// Package api defines the pollable event-source contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Source is a pollable origin of events. It lends its descriptor to a Poller
// for the registration lifecycle without transferring ownership: the source
// stays the sole owner responsible for eventual disposal, however many times
// it is registered or reregistered.
//
// OnReady is invoked by the dispatching loop on the thread that called Wait,
// strictly sequentially, never concurrently with itself.
type Source interface {
	// Descriptor exposes the underlying descriptor for registration.
	Descriptor() uintptr

	// Interest reports the readiness kinds this source wants.
	Interest() Interest

	// Trigger reports the trigger mode this source requires.
	Trigger() Trigger

	// OnReady handles one readiness notification for the descriptor.
	OnReady(r Readiness)
}
