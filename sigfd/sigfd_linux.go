//go:build linux
// +build linux

// File: sigfd/sigfd_linux.go
// Author: momentics <momentics@gmail.com>
//
// signalfd(2) notification handle with thread-mask lifecycle management.

package sigfd

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-signals/api"
)

const sfdFlags = unix.SFD_NONBLOCK | unix.SFD_CLOEXEC

// siginfoSize is the fixed record size signalfd delivers per read.
var siginfoSize = int(unsafe.Sizeof(unix.SignalfdSiginfo{}))

// FD wraps one signalfd descriptor together with the set of signals this
// handle has blocked on the calling thread on its behalf. The descriptor
// mask is always the last successfully committed tracked set.
type FD struct {
	fd       int
	tracked  *SigSet
	disposed bool
	diag     api.DiagnosticFunc
	buf      []byte
}

// New blocks the given signals on the calling thread, then opens a
// non-blocking close-on-exec signalfd scoped to exactly that set.
//
// If the mask block succeeds but descriptor creation fails, the thread
// mask stays altered: unblocking could itself fail, so the partial state
// is reported rather than rolled back.
func New(set *SigSet) (*FD, error) {
	if set == nil {
		return nil, api.ErrInvalidArgument
	}
	// An empty set is legal: the handle captures nothing until AddSignals.
	tracked := set.Clone()
	if err := unix.PthreadSigmask(unix.SIG_BLOCK, tracked.Native(), nil); err != nil {
		return nil, api.NewOSError("sigmask block", err)
	}
	fd, err := unix.Signalfd(-1, tracked.Native(), sfdFlags)
	if err != nil {
		return nil, api.NewOSError("signalfd create", err)
	}
	return &FD{
		fd:      fd,
		tracked: tracked,
		diag:    stderrDiag,
		buf:     make([]byte, siginfoSize),
	}, nil
}

// stderrDiag is the default sink for errors with no caller left to receive them.
func stderrDiag(op string, err error) {
	fmt.Fprintf(os.Stderr, "[hioload-signals] %s: %v\n", op, err)
}

// SetDiagnostics replaces the teardown/drain diagnostic sink. A nil fn
// restores the default stderr sink.
func (f *FD) SetDiagnostics(fn api.DiagnosticFunc) {
	if fn == nil {
		fn = stderrDiag
	}
	f.diag = fn
}

// Fd exposes the underlying descriptor for poller registration. The caller
// borrows it; ownership and eventual disposal stay with the handle.
func (f *FD) Fd() uintptr {
	return uintptr(f.fd)
}

// Tracked returns a copy of the currently tracked signal set.
func (f *FD) Tracked() *SigSet {
	return f.tracked.Clone()
}

// commit synchronizes the descriptor mask with the given set.
func (f *FD) commit(set *SigSet) error {
	if _, err := unix.Signalfd(f.fd, set.Native(), sfdFlags); err != nil {
		return api.NewOSError("signalfd set mask", err)
	}
	return nil
}

// AddSignals unions sigs into the tracked set, blocks the updated set on
// the thread, then commits it to the descriptor.
//
// On error the thread mask may already have been changed.
func (f *FD) AddSignals(sigs ...unix.Signal) error {
	if f.disposed {
		return api.ErrSourceClosed
	}
	for _, sig := range sigs {
		f.tracked.Add(sig)
	}
	if err := unix.PthreadSigmask(unix.SIG_BLOCK, f.tracked.Native(), nil); err != nil {
		return api.NewOSError("sigmask block", err)
	}
	return f.commit(f.tracked)
}

// RemoveSignals removes sigs from the tracked set, unblocks exactly the
// removed subset on the thread (the block-state of the remaining signals is
// not disturbed), then commits the shrunk set to the descriptor.
//
// On error the thread mask may already have been changed.
func (f *FD) RemoveSignals(sigs ...unix.Signal) error {
	if f.disposed {
		return api.ErrSourceClosed
	}
	removed := NewSigSet()
	for _, sig := range sigs {
		if f.tracked.Has(sig) {
			f.tracked.Remove(sig)
			removed.Add(sig)
		}
	}
	if removed.Len() == 0 {
		return f.commit(f.tracked)
	}
	if err := unix.PthreadSigmask(unix.SIG_UNBLOCK, removed.Native(), nil); err != nil {
		return api.NewOSError("sigmask unblock", err)
	}
	return f.commit(f.tracked)
}

// ReplaceSignals unblocks the entire previous set, blocks the entire new
// set, commits the new set to the descriptor, and only then swaps the
// tracked set, so that on failure the tracked value still names the last
// state the descriptor was synchronized to.
//
// On error the thread mask may already have been changed.
func (f *FD) ReplaceSignals(sigs ...unix.Signal) error {
	if f.disposed {
		return api.ErrSourceClosed
	}
	next := NewSigSet(sigs...)
	if err := unix.PthreadSigmask(unix.SIG_UNBLOCK, f.tracked.Native(), nil); err != nil {
		return api.NewOSError("sigmask unblock", err)
	}
	if err := unix.PthreadSigmask(unix.SIG_BLOCK, next.Native(), nil); err != nil {
		return api.NewOSError("sigmask block", err)
	}
	if err := f.commit(next); err != nil {
		return err
	}
	f.tracked = next
	return nil
}

// TryReadOne pulls one pending decoded record from the descriptor without
// blocking. It returns (nil, nil) when nothing is queued: that is the
// normal drain-termination condition, not an error. Any other failure is
// reported as an OSError; the handle stays usable.
func (f *FD) TryReadOne() (*unix.SignalfdSiginfo, error) {
	if f.disposed {
		return nil, api.ErrSourceClosed
	}
	n, err := unix.Read(f.fd, f.buf)
	if err != nil {
		if err == unix.EAGAIN {
			return nil, nil
		}
		return nil, api.NewOSError("signalfd read", err)
	}
	if n != siginfoSize {
		return nil, api.NewOSError("signalfd read", fmt.Errorf("short record: %d of %d bytes", n, siginfoSize))
	}
	info := *(*unix.SignalfdSiginfo)(unsafe.Pointer(&f.buf[0]))
	return &info, nil
}

// Close unblocks every signal in the tracked set on the calling thread,
// restoring the mask this handle owns, then releases the descriptor. A
// failed unblock leaves signals blocked beyond the handle's lifetime;
// there is no recovery action at teardown time, so such failures go to the
// diagnostic sink instead of being returned. Safe to call more than once;
// later calls do not touch the mask again.
func (f *FD) Close() error {
	if f.disposed {
		return nil
	}
	f.disposed = true
	if err := unix.PthreadSigmask(unix.SIG_UNBLOCK, f.tracked.Native(), nil); err != nil {
		f.diag("sigmask restore", api.NewOSError("sigmask unblock", err))
	}
	if err := unix.Close(f.fd); err != nil {
		f.diag("signalfd close", api.NewOSError("close", err))
	}
	return nil
}
