// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package traversal

import "context"

// loads tracks the in-flight fetch. The owner's mutex must be held.
type loads struct {
	gen    uint64
	cancel context.CancelFunc
}

// begin cancels any previous fetch and starts a new generation.
func (l *loads) begin(parent context.Context) (context.Context, uint64) {
	l.abort()
	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	return ctx, l.gen
}

// finish reports whether gen is still the latest fetch.
func (l *loads) finish(gen uint64) bool {
	if gen != l.gen {
		return false
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	return true
}

// abort cancels the in-flight fetch, if any, and invalidates its result.
func (l *loads) abort() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}
