// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"github.com/eapache/queue"

	"github.com/momentics/hioload-signals/api"
)

// Registration records the interest and trigger mode a descriptor was
// registered with.
type Registration struct {
	Interest api.Interest
	Trigger  api.Trigger
}

// Poller is a test double for api.Poller. It records registrations and
// replays readiness events injected with Push, in injection order.
type Poller struct {
	regs     map[uintptr]Registration
	injected *queue.Queue
	closed   bool
}

var _ api.Poller = (*Poller)(nil)

// NewPoller creates an empty fake poller.
func NewPoller() *Poller {
	return &Poller{
		regs:     make(map[uintptr]Registration),
		injected: queue.New(),
	}
}

// Push queues a readiness event for the next Wait call.
func (p *Poller) Push(ev api.PollEvent) {
	p.injected.Add(ev)
}

// Registered reports how fd is currently registered.
func (p *Poller) Registered(fd uintptr) (Registration, bool) {
	reg, ok := p.regs[fd]
	return reg, ok
}

func (p *Poller) Register(fd uintptr, interest api.Interest, trigger api.Trigger) error {
	if p.closed {
		return api.ErrPollerClosed
	}
	if _, ok := p.regs[fd]; ok {
		return api.ErrAlreadyRegistered
	}
	p.regs[fd] = Registration{Interest: interest, Trigger: trigger}
	return nil
}

func (p *Poller) Reregister(fd uintptr, interest api.Interest, trigger api.Trigger) error {
	if p.closed {
		return api.ErrPollerClosed
	}
	if _, ok := p.regs[fd]; !ok {
		return api.ErrNotRegistered
	}
	p.regs[fd] = Registration{Interest: interest, Trigger: trigger}
	return nil
}

func (p *Poller) Deregister(fd uintptr) error {
	if p.closed {
		return api.ErrPollerClosed
	}
	if _, ok := p.regs[fd]; !ok {
		return api.ErrNotRegistered
	}
	delete(p.regs, fd)
	return nil
}

// Wait drains up to len(events) injected readiness events without blocking.
func (p *Poller) Wait(events []api.PollEvent, _ int) (int, error) {
	if p.closed {
		return 0, api.ErrPollerClosed
	}
	n := 0
	for n < len(events) && p.injected.Length() > 0 {
		events[n] = p.injected.Remove().(api.PollEvent)
		n++
	}
	return n, nil
}

func (p *Poller) Close() error {
	p.closed = true
	return nil
}
