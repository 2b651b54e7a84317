// Package fakenet simulates the latency and request-coalescing behavior of a
// network backend for the local record store.
//
// The gate is a latency-elision cache, not a correctness cache: it remembers
// which keys it has already seen and skips the simulated delay for them, but
// the operation body always runs again so callers always observe a current
// result. Concurrent callers presenting the same key are collapsed into a
// single execution (single-flight), so only one of them pays the delay.
package fakenet

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Gate gates store operations behind simulated latency and per-key
// deduplication. The zero value is not usable; construct with NewGate.
type Gate struct {
	minDelay time.Duration
	maxDelay time.Duration

	mu    sync.Mutex
	seen  map[string]struct{}
	group singleflight.Group

	// sleepFn is a test seam; tests replace it to count or skip delays.
	sleepFn func(ctx context.Context, d time.Duration) error
}

// NewGate returns a gate drawing delays uniformly from [minDelay, maxDelay].
// Pass 0, 0 for a zero-latency gate (tests, production builds that only want
// the coalescing discipline).
func NewGate(minDelay, maxDelay time.Duration) *Gate {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Gate{
		minDelay: minDelay,
		maxDelay: maxDelay,
		seen:     make(map[string]struct{}),
		sleepFn:  sleepCtx,
	}
}

// Do runs fn behind the gate.
//
//   - key == "": all remembered keys are forgotten (the collection is about
//     to change), fn runs after one randomized delay. Used by mutations.
//   - unseen key: concurrent identical keys share one execution and one
//     delay; the key is then remembered.
//   - seen key: fn runs immediately, skipping the delay.
//
// fn's result is returned as-is. For shared (coalesced) executions every
// waiter receives the same result, mirroring one backend response fanned out
// to identical in-flight requests.
func (g *Gate) Do(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	if key == "" {
		g.mu.Lock()
		g.seen = make(map[string]struct{})
		g.mu.Unlock()
		if err := g.delay(ctx); err != nil {
			return nil, err
		}
		return fn(ctx)
	}

	g.mu.Lock()
	_, ok := g.seen[key]
	g.mu.Unlock()
	if ok {
		return fn(ctx)
	}

	v, err, _ := g.group.Do(key, func() (any, error) {
		if err := g.delay(ctx); err != nil {
			return nil, err
		}
		g.mu.Lock()
		g.seen[key] = struct{}{}
		g.mu.Unlock()
		return fn(ctx)
	})
	return v, err
}

// Seen reports whether key has already passed through the gate. Mainly
// useful in tests and diagnostics.
func (g *Gate) Seen(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.seen[key]
	return ok
}

func (g *Gate) delay(ctx context.Context) error {
	d := g.minDelay
	if span := g.maxDelay - g.minDelay; span > 0 {
		d += rand.N(span)
	}
	if d <= 0 {
		return nil
	}
	return g.sleepFn(ctx, d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do is the typed wrapper around (*Gate).Do.
func Do[T any](ctx context.Context, g *Gate, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := g.Do(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
