// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package control provides runtime observability for hioload-signals:
// a counter/metrics registry and a debug-probe reflector. Teardown-time
// failures that have no caller left to return to (for example a mask that
// could not be restored) are surfaced here so operators can detect them.
package control
