// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package sigfd owns the kernel signal-notification object: a signalfd(2)
// descriptor kept synchronized with the set of signals this handle has
// blocked on the calling thread.
//
// The blocked mask and the descriptor mask must never disagree. A signal
// blocked on the thread but absent from the descriptor mask is silently
// dropped by the kernel; a signal in the descriptor mask but unblocked on
// the thread falls back to default disposition. Every mutation therefore
// changes the thread mask first and commits the descriptor mask second (or
// the symmetric reverse for removal), shrinking but not eliminating the
// window where the two can diverge under partial failure. Callers are told
// about that hazard in each mutation's contract; it is not rolled back.
//
// Signal masks are per-thread kernel state. The handle manages the mask of
// the thread it is called on; any thread spawned afterwards inherits the
// mask at spawn time, and keeping later threads consistently masked is the
// caller's responsibility.
package sigfd
