// File: loop/loop.go
// Author: momentics <momentics@gmail.com>
//
// Readiness dispatch loop over the api.Poller registration contract.

package loop

import (
	"github.com/eapache/queue"

	"github.com/momentics/hioload-signals/api"
	"github.com/momentics/hioload-signals/control"
	"github.com/momentics/hioload-signals/reactor"
)

// defaultBatch bounds how many readiness reports one Wait call can return.
const defaultBatch = 128

// Loop routes readiness notifications from a poller to registered sources.
// It borrows each source's descriptor for registration; disposal of the
// descriptor remains the source's responsibility.
type Loop struct {
	poller  api.Poller
	sources map[uintptr]api.Source
	pending *queue.Queue
	events  []api.PollEvent
	closed  bool
}

// New builds a loop over the platform poller.
func New() (*Loop, error) {
	p, err := reactor.NewPoller()
	if err != nil {
		return nil, err
	}
	return NewWithPoller(p), nil
}

// NewWithPoller builds a loop over a caller-supplied poller, such as a fake
// in tests.
func NewWithPoller(p api.Poller) *Loop {
	return &Loop{
		poller:  p,
		sources: make(map[uintptr]api.Source),
		pending: queue.New(),
		events:  make([]api.PollEvent, defaultBatch),
	}
}

// Register adds a source with the interest and trigger mode it advertises.
func (l *Loop) Register(src api.Source) error {
	if l.closed {
		return api.ErrPollerClosed
	}
	fd := src.Descriptor()
	if _, ok := l.sources[fd]; ok {
		return api.ErrAlreadyRegistered
	}
	if err := l.poller.Register(fd, src.Interest(), src.Trigger()); err != nil {
		return err
	}
	l.sources[fd] = src
	return nil
}

// Reregister refreshes a source's registration with the poller.
func (l *Loop) Reregister(src api.Source) error {
	if l.closed {
		return api.ErrPollerClosed
	}
	fd := src.Descriptor()
	if _, ok := l.sources[fd]; !ok {
		return api.ErrNotRegistered
	}
	return l.poller.Reregister(fd, src.Interest(), src.Trigger())
}

// Deregister removes a source from the poller watch set. The source itself
// stays usable and can be registered again.
func (l *Loop) Deregister(src api.Source) error {
	if l.closed {
		return api.ErrPollerClosed
	}
	fd := src.Descriptor()
	if _, ok := l.sources[fd]; !ok {
		return api.ErrNotRegistered
	}
	if err := l.poller.Deregister(fd); err != nil {
		return err
	}
	delete(l.sources, fd)
	return nil
}

// Dispatch waits up to timeoutMs (negative blocks indefinitely) for
// readiness, then invokes OnReady for each woken source strictly
// sequentially, in wake-up order. Returns the number of notifications
// dispatched.
func (l *Loop) Dispatch(timeoutMs int) (int, error) {
	if l.closed {
		return 0, api.ErrPollerClosed
	}
	n, err := l.poller.Wait(l.events, timeoutMs)
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		l.pending.Add(l.events[i])
	}
	dispatched := 0
	for l.pending.Length() > 0 {
		ev := l.pending.Remove().(api.PollEvent)
		src, ok := l.sources[ev.Fd]
		if !ok {
			// Deregistered after wake-up; drop the stale notification.
			continue
		}
		src.OnReady(ev.Readiness)
		dispatched++
	}
	return dispatched, nil
}

// RegisterProbes exposes loop state through a debug-probe registry.
func (l *Loop) RegisterProbes(dp *control.DebugProbes) {
	dp.RegisterProbe("loop.sources", func() any {
		fds := make([]uintptr, 0, len(l.sources))
		for fd := range l.sources {
			fds = append(fds, fd)
		}
		return fds
	})
	dp.RegisterProbe("loop.pending", func() any {
		return l.pending.Length()
	})
}

// Close releases the poller. Registered sources are not closed; their
// descriptors belong to them.
func (l *Loop) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	l.sources = make(map[uintptr]api.Source)
	return l.poller.Close()
}
