// Package render materializes vnode trees into native nodes.
//
// A Renderer converts any vnode value into dom nodes in one synchronous,
// depth-first pass. There is no diffing: every call produces new nodes and
// the caller decides where to insert them.
//
// # Basic Usage
//
//	r := render.New(dom.Browser(), render.Config{})
//	for _, n := range r.Render(vnode.El("p", vnode.Content("Hello"))) {
//	    body.AppendChild(n)
//	}
//
// # Listeners and Cancellation
//
// Every listener is registered with a signal: the element's own Signal when
// set, otherwise the renderer's current one. Abort cancels the current
// signal, detaching every listener bound under it and cancelling any pending
// debounced call, then installs a fresh signal so the renderer keeps working:
//
//	r.Abort()               // old listeners are gone
//	nodes := r.Render(view) // new listeners are live
//
// SetSignal substitutes an externally owned context instead.
//
// # Hooks
//
// Config.Hooks receives (ref, element) after each element is fully built,
// which is the place to collect refs or track mounts.
//
// # Concurrency
//
// Render is meant to be driven from one goroutine. Abort and SetSignal are
// guarded, so they may be called from event handlers or timers.
package render
