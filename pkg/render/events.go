package render

import (
	"context"
	"fmt"

	"github.com/vango-dev/domrender/pkg/dom"
	"github.com/vango-dev/domrender/pkg/ratelimit"
	"github.com/vango-dev/domrender/pkg/vnode"
)

// Listener binding modes, as reported in metrics.
const (
	modeDirect   = "direct"
	modeDebounce = "debounce"
	modeThrottle = "throttle"
)

// bindListeners registers e's listeners on el under the signal in scope.
func (r *Renderer) bindListeners(el dom.Element, e *vnode.Element) {
	if len(e.On) == 0 {
		return
	}
	signal := e.Signal
	if signal == nil {
		signal = r.Signal()
	}
	for _, l := range e.On {
		fn, opts, mode, ok := r.resolveHandler(l, signal)
		if !ok {
			continue
		}
		el.AddEventListener(l.Event, fn, opts)
		r.config.Metrics.listener(mode)
	}
}

// resolveHandler turns a listener entry into the function and options to
// register. Entries that are neither a handler nor a descriptor with a
// handler are reported and skipped.
func (r *Renderer) resolveHandler(l vnode.Listener, signal context.Context) (dom.Handler, dom.ListenerOptions, string, bool) {
	opts := dom.ListenerOptions{Signal: signal}

	if fn, ok := vnode.AsHandler(l.Handler); ok {
		return fn, opts, modeDirect, true
	}

	var desc vnode.Handler
	switch h := l.Handler.(type) {
	case vnode.Handler:
		desc = h
	case *vnode.Handler:
		if h != nil {
			desc = *h
		}
	}
	if desc.Func == nil {
		r.logger.Warn("invalid event handler",
			"event", l.Event,
			"type", fmt.Sprintf("%T", l.Handler))
		r.config.Metrics.warning("invalid_handler")
		return nil, opts, "", false
	}

	opts = mergeOptions(opts, desc.Options)

	adapterOpts := []ratelimit.Option{ratelimit.WithClock(r.config.Clock)}
	if opts.Signal != nil {
		adapterOpts = append(adapterOpts, ratelimit.WithContext(opts.Signal))
	}

	if desc.Debounce > 0 && desc.Throttle > 0 {
		r.logger.Warn("both debounce and throttle provided, applying debounce",
			"event", l.Event,
			"debounce", desc.Debounce,
			"throttle", desc.Throttle)
		r.config.Metrics.warning("rate_conflict")
	}

	switch {
	case desc.Debounce > 0:
		d := ratelimit.NewDebouncer[dom.Event](desc.Func, desc.Debounce, adapterOpts...)
		return d.Invoke, opts, modeDebounce, true
	case desc.Throttle > 0:
		t := ratelimit.NewThrottler[dom.Event](desc.Func, desc.Throttle, adapterOpts...)
		return func(ev dom.Event) { t.Invoke(ev) }, opts, modeThrottle, true
	}
	return desc.Func, opts, modeDirect, true
}

// mergeOptions lays descriptor options over the base options. The base
// signal is kept unless the descriptor brings its own.
func mergeOptions(base, o dom.ListenerOptions) dom.ListenerOptions {
	if o.Signal == nil {
		o.Signal = base.Signal
	}
	return o
}
