// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package signals exposes Unix signals as a pollable event source.
//
// Instead of registering asynchronous handlers, a Source blocks the chosen
// signals on the calling thread and presents a signalfd descriptor to a
// readiness poller. Each readiness wake-up drains every queued signal record
// and hands it, in arrival order, to the user callback.
//
// The source manages the signal mask of the thread it is built on. Threads
// spawned afterwards inherit that mask; the simplest way to keep additional
// threads from receiving the tracked signals directly is to construct the
// source before spawning them.
package signals
