package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter implements per-client rate limiting, keyed by an opaque
// client identifier (the HTTP layer uses the remote IP).
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the client may proceed or the context is done
func (l *Limiter) Wait(ctx context.Context, client string) error {
	return l.getLimiter(client).Wait(ctx)
}

// Allow checks if a request is allowed without waiting
func (l *Limiter) Allow(client string) bool {
	return l.getLimiter(client).Allow()
}

// getLimiter returns the rate limiter for a client
func (l *Limiter) getLimiter(client string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[client]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[client]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[client] = limiter

	return limiter
}

// SetClientRate sets a custom rate limit for a specific client
func (l *Limiter) SetClientRate(client string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[client] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
