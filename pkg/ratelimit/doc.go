// Package ratelimit provides the debounce and throttle adapters applied to
// event handlers.
//
// Each adapter is a small stateful object wrapping one function:
//
//	d := ratelimit.NewDebouncer(search, 300*time.Millisecond)
//	input.AddEventListener("input", d.Invoke, opts)
//
//	t := ratelimit.NewThrottler(track, 100*time.Millisecond)
//	el.AddEventListener("mousemove", func(ev dom.Event) { t.Invoke(ev) }, opts)
//
// A Debouncer runs only the last call of a burst, delay after that call. A
// Throttler runs the first call immediately and drops further calls until
// limit has elapsed since the last run.
//
// # Ownership
//
// WithContext ties an adapter to a cancellation signal. Once the context is
// done, a pending debounced call is cancelled and further invocations are
// ignored, so aborting a render group also silences handlers whose timers
// were already scheduled. A Debouncer watches the context only while a call
// is pending, so idle adapters hold no registration on a long-lived signal.
//
// Timers fire on their own goroutine. Adapters are safe for concurrent use;
// the wrapped function may run on the timer goroutine.
package ratelimit
