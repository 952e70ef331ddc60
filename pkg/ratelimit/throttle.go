package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttler runs fn at most once per limit. The first call runs
// immediately; calls inside the suppression window are dropped, not queued.
type Throttler[T any] struct {
	fn   func(T)
	opts options

	mu      sync.Mutex
	limiter *rate.Limiter
}

// NewThrottler wraps fn.
func NewThrottler[T any](fn func(T), limit time.Duration, opts ...Option) *Throttler[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Throttler[T]{
		fn:      fn,
		opts:    o,
		limiter: rate.NewLimiter(rate.Every(limit), 1),
	}
}

// Invoke runs fn(arg) if the window allows it and reports whether it ran.
func (t *Throttler[T]) Invoke(arg T) bool {
	t.mu.Lock()
	if t.opts.done() || !t.limiter.AllowN(t.opts.clock.Now(), 1) {
		t.mu.Unlock()
		return false
	}
	t.mu.Unlock()

	t.fn(arg)
	return true
}
