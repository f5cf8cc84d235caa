// Package ratelimit throttles write traffic per key (client IP or user id).
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Result contains the result of a rate limit check
type Result struct {
	Allowed   bool          // Whether the action is allowed
	Remaining int           // Remaining actions in the window
	ResetIn   time.Duration // Time until the window resets
	Limit     int           // The limit for this action
}

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Local is an in-process token bucket per key, used when no redis is
// configured. Buckets refill at perMinute/60 tokens per second.
type Local struct {
	mu        sync.Mutex
	perMinute int
	expiry    time.Duration
	clients   map[string]*entry
}

func NewLocal(perMinute int) *Local {
	return &Local{
		perMinute: perMinute,
		expiry:    10 * time.Minute,
		clients:   make(map[string]*entry),
	}
}

func (l *Local) Allow(_ context.Context, key string) (*Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.clients[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Limit(float64(l.perMinute)/60), l.perMinute)}
		l.clients[key] = e
	}
	e.lastSeen = time.Now()

	allowed := e.limiter.Allow()
	remaining := int(e.limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	return &Result{
		Allowed:   allowed,
		Remaining: remaining,
		ResetIn:   time.Minute,
		Limit:     l.perMinute,
	}, nil
}

// Run evicts idle buckets once a minute until ctx is cancelled.
func (l *Local) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.evict(now)
		}
	}
}

func (l *Local) evict(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.clients {
		if now.Sub(e.lastSeen) > l.expiry {
			delete(l.clients, key)
		}
	}
}

// Disabled lets every call through.
type Disabled struct{}

func (Disabled) Allow(context.Context, string) (*Result, error) {
	return &Result{Allowed: true}, nil
}
