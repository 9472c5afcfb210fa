// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the readiness-polling engine behind hioload-signals:
// an epoll(7)-based implementation of the api.Poller registration contract on
// Linux, with a stub for unsupported platforms.
package reactor
