// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ratelimit throttles outbound requests to a rolling-window rate.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Gate admits at most limit requests in any rolling window. Admissions
// are best-effort, not FIFO: concurrent waiters race for the next free
// slot. The expected calling pattern is sequential within one client.
type Gate struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	stamps []time.Time
}

// New returns a Gate that admits at most limit requests in any rolling
// one-second window.
func New(limit int) *Gate {
	return newGate(limit, time.Second)
}

func newGate(limit int, window time.Duration) *Gate {
	if limit < 1 {
		limit = 1
	}
	return &Gate{limit: limit, window: window}
}

// Wait blocks until one more admission fits within the rolling window,
// then records it. The gate itself never fails; the only error returned
// is ctx.Err() when the context is cancelled during the wait.
func (g *Gate) Wait(ctx context.Context) error {
	for {
		g.mu.Lock()
		now := time.Now()
		g.prune(now)
		if len(g.stamps) < g.limit {
			g.stamps = append(g.stamps, now)
			g.mu.Unlock()
			return nil
		}
		// The oldest stamp leaves the window first; sleep until then.
		wake := g.stamps[0].Add(g.window).Sub(now)
		g.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wake):
		}
	}
}

// prune drops stamps that have left the rolling window. Caller holds mu.
func (g *Gate) prune(now time.Time) {
	cutoff := now.Add(-g.window)
	i := 0
	for i < len(g.stamps) && !g.stamps[i].After(cutoff) {
		i++
	}
	g.stamps = g.stamps[i:]
}
