//go:build linux
// +build linux

// File: sigfd/sigset_linux.go
// Author: momentics <momentics@gmail.com>
//
// Signal set abstraction over the kernel sigset_t representation.

package sigfd

import (
	"sort"

	"golang.org/x/sys/unix"
)

// SigSet is an unordered set of signal identifiers. It is the source of
// truth for which signals a handle currently intends to have blocked, and
// is reconciled against the kernel mask on every mutation.
type SigSet struct {
	members map[unix.Signal]struct{}
}

// NewSigSet builds a set from the given signals.
func NewSigSet(sigs ...unix.Signal) *SigSet {
	s := &SigSet{members: make(map[unix.Signal]struct{}, len(sigs))}
	for _, sig := range sigs {
		s.Add(sig)
	}
	return s
}

// Add inserts a signal. Non-positive identifiers are ignored.
func (s *SigSet) Add(sig unix.Signal) {
	if sig <= 0 {
		return
	}
	s.members[sig] = struct{}{}
}

// Remove deletes a signal from the set.
func (s *SigSet) Remove(sig unix.Signal) {
	delete(s.members, sig)
}

// Has reports membership.
func (s *SigSet) Has(sig unix.Signal) bool {
	_, ok := s.members[sig]
	return ok
}

// Len returns the number of signals in the set.
func (s *SigSet) Len() int {
	return len(s.members)
}

// Signals returns the members in ascending numeric order.
func (s *SigSet) Signals() []unix.Signal {
	out := make([]unix.Signal, 0, len(s.members))
	for sig := range s.members {
		out = append(out, sig)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy of the set.
func (s *SigSet) Clone() *SigSet {
	c := &SigSet{members: make(map[unix.Signal]struct{}, len(s.members))}
	for sig := range s.members {
		c.members[sig] = struct{}{}
	}
	return c
}

// Native converts the set to the kernel sigset_t layout. Signal numbers are
// 1-indexed: bit 0 of Val[0] corresponds to signal 1.
func (s *SigSet) Native() *unix.Sigset_t {
	native := &unix.Sigset_t{}
	for sig := range s.members {
		n := uint(sig) - 1
		idx := n / 64
		if idx >= uint(len(native.Val)) {
			continue
		}
		native.Val[idx] |= 1 << (n % 64)
	}
	return native
}
