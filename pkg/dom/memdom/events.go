package memdom

import (
	"github.com/vango-dev/domrender/pkg/dom"
)

// Event is a synthetic event passed to listeners by Dispatch.
type Event struct {
	Name   string
	Target *Element
	Detail any
}

// NewEvent creates an event of the given type.
func NewEvent(name string, detail any) *Event {
	return &Event{Name: name, Detail: detail}
}

// Type implements dom.Event.
func (e *Event) Type() string { return e.Name }

// AddEventListener implements dom.Element.
func (e *Element) AddEventListener(event string, handler dom.Handler, opts dom.ListenerOptions) {
	if handler == nil {
		return
	}
	e.mu.Lock()
	e.listeners = append(e.listeners, &listener{event: event, handler: handler, opts: opts})
	e.mu.Unlock()
}

// ListenerCount returns the number of live listeners for event. Listeners
// whose signal is done are not counted.
func (e *Element) ListenerCount(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prune()
	n := 0
	for _, l := range e.listeners {
		if l.event == event {
			n++
		}
	}
	return n
}

// Dispatch delivers ev to the live listeners of target registered for its
// type, in registration order, and returns how many handlers ran. Once
// listeners are removed before their handler runs; listeners whose signal is
// done are removed without running.
func (d *Document) Dispatch(target *Element, ev dom.Event) int {
	if me, ok := ev.(*Event); ok && me.Target == nil {
		me.Target = target
	}

	target.mu.Lock()
	target.prune()
	var run []*listener
	kept := target.listeners[:0]
	for _, l := range target.listeners {
		if l.event == ev.Type() {
			run = append(run, l)
			if l.opts.Once {
				continue
			}
		}
		kept = append(kept, l)
	}
	for i := len(kept); i < len(target.listeners); i++ {
		target.listeners[i] = nil
	}
	target.listeners = kept
	target.mu.Unlock()

	ran := 0
	for _, l := range run {
		// A handler earlier in this dispatch may have aborted the signal.
		if !l.opts.Live() {
			continue
		}
		l.handler(ev)
		ran++
	}
	return ran
}

// prune drops listeners whose signal is done. Callers hold e.mu.
func (e *Element) prune() {
	kept := e.listeners[:0]
	for _, l := range e.listeners {
		if l.opts.Live() {
			kept = append(kept, l)
		}
	}
	for i := len(kept); i < len(e.listeners); i++ {
		e.listeners[i] = nil
	}
	e.listeners = kept
}
