//go:build !linux
// +build !linux

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package reactor

import "github.com/momentics/hioload-signals/api"

// NewPoller returns an error on platforms without signalfd/epoll support.
func NewPoller() (api.Poller, error) {
	return nil, api.ErrNotSupported
}
