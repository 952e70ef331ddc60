package ratelimit

import (
	"context"

	"github.com/benbjohnson/clock"
)

// Option configures an adapter.
type Option func(*options)

type options struct {
	clock clock.Clock
	ctx   context.Context
}

func defaultOptions() options {
	return options{clock: clock.New()}
}

// WithClock sets the time source. Tests pass clock.NewMock().
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithContext ties the adapter to ctx; see the package documentation.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

func (o options) done() bool {
	return o.ctx != nil && o.ctx.Err() != nil
}
