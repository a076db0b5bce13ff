package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles outbound platform API calls per account.
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

// InMemoryLimiter is an implementation of Limiter stored in memory
type InMemoryLimiter struct {
	keys map[string]*rate.Limiter
	mu   sync.Mutex
	r    rate.Limit // Rate of adding tokens (e.g., 1 token every 5 seconds)
	b    int        // Bucket size (e.g., can perform 3 calls in a row)
}

// NewInMemoryLimiter creates a new rate limiter
// Example: NewInMemoryLimiter(1, 5*time.Second, 3) -> allows 1 call every 5 seconds, burst of 3 calls
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	return &InMemoryLimiter{
		keys: make(map[string]*rate.Limiter),
		r:    rate.Every(per / time.Duration(requests)),
		b:    burst,
	}
}

var _ Limiter = (*InMemoryLimiter)(nil)

// Wait blocks until the account identified by key may perform another call.
func (l *InMemoryLimiter) Wait(ctx context.Context, key string) error {
	return l.limiterFor(key).Wait(ctx)
}

func (l *InMemoryLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.keys[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.keys[key] = limiter
	}
	return limiter
}
