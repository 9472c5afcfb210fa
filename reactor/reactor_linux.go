//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7)-based poller implementation and factory.

package reactor

import (
	"sync"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-signals/api"
)

// epollPoller is an epoll-based readiness engine implementing api.Poller.
type epollPoller struct {
	mu     sync.Mutex
	epfd   int
	closed bool
	fds    map[uintptr]struct{}
}

// NewPoller constructs the platform poller for Linux.
func NewPoller() (api.Poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, api.NewOSError("epoll create", err)
	}
	return &epollPoller{
		epfd: epfd,
		fds:  make(map[uintptr]struct{}),
	}, nil
}

// epollEvents translates interest and trigger mode into epoll event bits.
func epollEvents(interest api.Interest, trigger api.Trigger) uint32 {
	var ev uint32
	if interest&api.InterestReadable != 0 {
		ev |= unix.EPOLLIN
	}
	if interest&api.InterestWritable != 0 {
		ev |= unix.EPOLLOUT
	}
	if trigger == api.TriggerEdge {
		ev |= unix.EPOLLET
	}
	return ev
}

// Register adds a descriptor to the epoll watch set.
func (p *epollPoller) Register(fd uintptr, interest api.Interest, trigger api.Trigger) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return api.ErrPollerClosed
	}
	if _, ok := p.fds[fd]; ok {
		return api.ErrAlreadyRegistered
	}
	ev := unix.EpollEvent{Events: epollEvents(interest, trigger), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, int(fd), &ev); err != nil {
		return api.NewOSError("epoll ctl add", err)
	}
	p.fds[fd] = struct{}{}
	return nil
}

// Reregister replaces the interest and trigger mode of a registered descriptor.
func (p *epollPoller) Reregister(fd uintptr, interest api.Interest, trigger api.Trigger) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return api.ErrPollerClosed
	}
	if _, ok := p.fds[fd]; !ok {
		return api.ErrNotRegistered
	}
	ev := unix.EpollEvent{Events: epollEvents(interest, trigger), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, int(fd), &ev); err != nil {
		return api.NewOSError("epoll ctl mod", err)
	}
	return nil
}

// Deregister removes a descriptor from the epoll watch set.
func (p *epollPoller) Deregister(fd uintptr) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return api.ErrPollerClosed
	}
	if _, ok := p.fds[fd]; !ok {
		return api.ErrNotRegistered
	}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, int(fd), nil); err != nil {
		return api.NewOSError("epoll ctl del", err)
	}
	delete(p.fds, fd)
	return nil
}

// Wait blocks up to timeoutMs and fills events with readiness reports.
// An interrupted wait is reported as zero events, not as an error.
func (p *epollPoller) Wait(events []api.PollEvent, timeoutMs int) (int, error) {
	if len(events) == 0 {
		return 0, api.ErrInvalidArgument
	}
	raw := make([]unix.EpollEvent, len(events))
	n, err := unix.EpollWait(p.epfd, raw, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, api.NewOSError("epoll wait", err)
	}
	for i := 0; i < n; i++ {
		var r api.Readiness
		if raw[i].Events&unix.EPOLLIN != 0 {
			r |= api.ReadyRead
		}
		if raw[i].Events&unix.EPOLLOUT != 0 {
			r |= api.ReadyWrite
		}
		if raw[i].Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
			r |= api.ReadyError
		}
		events[i] = api.PollEvent{Fd: uintptr(raw[i].Fd), Readiness: r}
	}
	return n, nil
}

// Close releases the epoll descriptor.
func (p *epollPoller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return unix.Close(p.epfd)
}
