//go:build linux
// +build linux

// File: signals/event_linux.go
// Package signals defines the per-occurrence event record.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package signals

import "golang.org/x/sys/unix"

// Event is one drained signal occurrence: the signal identifier plus the
// full raw metadata block the kernel delivered for it. Events are created
// fresh per drained record and consumed by exactly one callback invocation.
type Event struct {
	info unix.SignalfdSiginfo
}

// Signal returns the delivered signal identifier.
func (e Event) Signal() unix.Signal {
	return unix.Signal(e.info.Signo)
}

// SenderPID returns the PID of the sending process, when the originating
// mechanism carries one (kill, sigqueue).
func (e Event) SenderPID() int32 {
	return int32(e.info.Pid)
}

// SenderUID returns the real UID of the sending process.
func (e Event) SenderUID() uint32 {
	return e.info.Uid
}

// Code returns the si_code value describing the originating mechanism.
func (e Event) Code() int32 {
	return e.info.Code
}

// Value returns the accompanying integer payload for queued signals.
func (e Event) Value() int32 {
	return int32(e.info.Int)
}

// FullInfo returns the complete raw record delivered by the kernel.
func (e Event) FullInfo() unix.SignalfdSiginfo {
	return e.info
}
