package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Debouncer delays calls to fn until delay has passed without another
// Invoke. Only the last call of a burst runs, with that call's argument.
type Debouncer[T any] struct {
	fn    func(T)
	delay time.Duration
	opts  options

	mu      sync.Mutex
	timer   *clock.Timer
	seq     uint64
	release func() bool
}

// NewDebouncer wraps fn.
func NewDebouncer[T any](fn func(T), delay time.Duration, opts ...Option) *Debouncer[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Debouncer[T]{fn: fn, delay: delay, opts: o}
}

// Invoke cancels any pending call and schedules fn(arg) after the delay.
func (d *Debouncer[T]) Invoke(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.opts.done() {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = d.opts.clock.AfterFunc(d.delay, func() {
		d.fire(seq, arg)
	})
	// The context only needs watching while a call is pending.
	if d.opts.ctx != nil && d.release == nil {
		d.release = context.AfterFunc(d.opts.ctx, d.Stop)
	}
}

// fire runs fn unless the call was superseded or cancelled after its timer
// was already committed to firing.
func (d *Debouncer[T]) fire(seq uint64, arg T) {
	d.mu.Lock()
	if seq != d.seq || d.opts.done() {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.unwatch()
	d.mu.Unlock()

	d.fn(arg)
}

// Stop cancels the pending call, if any.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	// Invalidate a timer that already fired but has not taken the lock.
	d.seq++
	d.unwatch()
}

// unwatch drops the context registration. d.mu must be held.
func (d *Debouncer[T]) unwatch() {
	if d.release != nil {
		d.release()
		d.release = nil
	}
}

// Pending reports whether a call is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
