// File: loop/loop_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package loop_test

import (
	"errors"
	"testing"

	"github.com/momentics/hioload-signals/api"
	"github.com/momentics/hioload-signals/control"
	"github.com/momentics/hioload-signals/fake"
	"github.com/momentics/hioload-signals/loop"
)

// stubSource records readiness notifications routed to it.
type stubSource struct {
	fd  uintptr
	got []api.Readiness
}

func (s *stubSource) Descriptor() uintptr    { return s.fd }
func (s *stubSource) Interest() api.Interest { return api.InterestReadable }
func (s *stubSource) Trigger() api.Trigger   { return api.TriggerEdge }
func (s *stubSource) OnReady(r api.Readiness) {
	s.got = append(s.got, r)
}

func TestRegisterPassesInterestAndTrigger(t *testing.T) {
	p := fake.NewPoller()
	l := loop.NewWithPoller(p)
	defer l.Close()

	src := &stubSource{fd: 7}
	if err := l.Register(src); err != nil {
		t.Fatalf("Register: %v", err)
	}
	reg, ok := p.Registered(7)
	if !ok {
		t.Fatal("descriptor not registered with poller")
	}
	if reg.Interest != api.InterestReadable || reg.Trigger != api.TriggerEdge {
		t.Errorf("registration %+v, want readable/edge", reg)
	}

	if err := l.Register(src); !errors.Is(err, api.ErrAlreadyRegistered) {
		t.Errorf("duplicate Register = %v, want ErrAlreadyRegistered", err)
	}
}

func TestDispatchRoutesInWakeOrder(t *testing.T) {
	p := fake.NewPoller()
	l := loop.NewWithPoller(p)
	defer l.Close()

	a := &stubSource{fd: 3}
	b := &stubSource{fd: 4}
	if err := l.Register(a); err != nil {
		t.Fatalf("Register a: %v", err)
	}
	if err := l.Register(b); err != nil {
		t.Fatalf("Register b: %v", err)
	}

	p.Push(api.PollEvent{Fd: 4, Readiness: api.ReadyRead})
	p.Push(api.PollEvent{Fd: 3, Readiness: api.ReadyRead | api.ReadyError})

	n, err := l.Dispatch(0)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if n != 2 {
		t.Errorf("dispatched %d, want 2", n)
	}
	if len(b.got) != 1 || len(a.got) != 1 {
		t.Fatalf("a got %v, b got %v; want one notification each", a.got, b.got)
	}
	if a.got[0] != api.ReadyRead|api.ReadyError {
		t.Errorf("a readiness = %v, want read|error", a.got[0])
	}
}

func TestDispatchDropsStaleNotifications(t *testing.T) {
	p := fake.NewPoller()
	l := loop.NewWithPoller(p)
	defer l.Close()

	src := &stubSource{fd: 9}
	if err := l.Register(src); err != nil {
		t.Fatalf("Register: %v", err)
	}
	p.Push(api.PollEvent{Fd: 9, Readiness: api.ReadyRead})
	if err := l.Deregister(src); err != nil {
		t.Fatalf("Deregister: %v", err)
	}

	n, err := l.Dispatch(0)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if n != 0 || len(src.got) != 0 {
		t.Errorf("stale notification dispatched: n=%d got=%v", n, src.got)
	}
}

func TestReregisterAndDeregisterUnknown(t *testing.T) {
	p := fake.NewPoller()
	l := loop.NewWithPoller(p)
	defer l.Close()

	src := &stubSource{fd: 11}
	if err := l.Reregister(src); !errors.Is(err, api.ErrNotRegistered) {
		t.Errorf("Reregister unknown = %v, want ErrNotRegistered", err)
	}
	if err := l.Deregister(src); !errors.Is(err, api.ErrNotRegistered) {
		t.Errorf("Deregister unknown = %v, want ErrNotRegistered", err)
	}
}

func TestCloseIsTerminal(t *testing.T) {
	p := fake.NewPoller()
	l := loop.NewWithPoller(p)

	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := l.Register(&stubSource{fd: 2}); !errors.Is(err, api.ErrPollerClosed) {
		t.Errorf("Register after Close = %v, want ErrPollerClosed", err)
	}
	if _, err := l.Dispatch(0); !errors.Is(err, api.ErrPollerClosed) {
		t.Errorf("Dispatch after Close = %v, want ErrPollerClosed", err)
	}
}

func TestProbes(t *testing.T) {
	p := fake.NewPoller()
	l := loop.NewWithPoller(p)
	defer l.Close()

	if err := l.Register(&stubSource{fd: 5}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	dp := control.NewDebugProbes()
	l.RegisterProbes(dp)
	state := dp.DumpState()
	fds, ok := state["loop.sources"].([]uintptr)
	if !ok || len(fds) != 1 || fds[0] != 5 {
		t.Errorf("loop.sources probe = %v, want [5]", state["loop.sources"])
	}
	if pending, ok := state["loop.pending"].(int); !ok || pending != 0 {
		t.Errorf("loop.pending probe = %v, want 0", state["loop.pending"])
	}
}
