// File: api/poll.go
// Package api defines the descriptor-registration contract for pollers.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Interest describes which readiness kinds a source wants to be woken for.
type Interest uint8

const (
	// InterestReadable requests wake-ups when the descriptor becomes readable.
	InterestReadable Interest = 1 << iota
	// InterestWritable requests wake-ups when the descriptor becomes writable.
	InterestWritable
)

// Trigger selects the readiness reporting mode of a registration.
type Trigger uint8

const (
	// TriggerLevel reports readiness continuously while data remains.
	TriggerLevel Trigger = iota
	// TriggerEdge reports only transitions to ready. The consumer must fully
	// drain the descriptor on every wake-up or risk missing later arrivals.
	TriggerEdge
)

// Readiness is the set of conditions reported for a woken descriptor.
type Readiness uint8

const (
	ReadyRead Readiness = 1 << iota
	ReadyWrite
	ReadyError
)

// PollEvent is one readiness report produced by a Poller.Wait call.
type PollEvent struct {
	Fd        uintptr
	Readiness Readiness
}

// Poller is the registration and wait contract of a readiness engine.
// Implementations do not own the registered descriptors; the registering
// source remains responsible for closing them.
type Poller interface {
	// Register adds a descriptor with the given interest and trigger mode.
	Register(fd uintptr, interest Interest, trigger Trigger) error

	// Reregister replaces the interest and trigger mode of a registered descriptor.
	Reregister(fd uintptr, interest Interest, trigger Trigger) error

	// Deregister removes a descriptor from the watch set.
	Deregister(fd uintptr) error

	// Wait blocks up to timeoutMs (negative means indefinitely) and fills
	// events with readiness reports. Returns the number of events written.
	Wait(events []PollEvent, timeoutMs int) (int, error)

	// Close releases the poller resources.
	Close() error
}
