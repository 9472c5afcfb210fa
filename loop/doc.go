// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package loop dispatches poller readiness to registered event sources.
//
// A Loop is single-threaded-cooperative: Wait, the pending-event queue and
// every OnReady invocation run on the thread that calls Dispatch. Sources
// whose state is thread-scoped (such as the signals source, which owns part
// of the thread's signal mask) must be constructed and dispatched on that
// same thread.
package loop
