package vnode

import (
	"context"

	"github.com/vango-dev/domrender/pkg/dom"
)

// Option configures an Element built by El.
type Option func(*Element)

// El creates an element of the given kind. An empty tag selects the
// renderer's default kind.
func El(tag string, opts ...Option) *Element {
	e := &Element{Tag: tag}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Class sets the class list.
func Class(class string) Option {
	return func(e *Element) {
		e.Class = class
		e.set |= hasClass
	}
}

// Attr appends an attribute.
func Attr(key string, value any) Option {
	return func(e *Element) {
		e.Attrs = append(e.Attrs, Attribute{Key: key, Value: value})
	}
}

// Style appends an inline style property.
func Style(name, value string) Option {
	return func(e *Element) {
		e.Styles = append(e.Styles, StyleProperty{Name: name, Value: value})
	}
}

// Content sets the literal text child.
func Content(text string) Option {
	return func(e *Element) {
		e.Text = text
		e.set |= hasText
	}
}

// HTML sets raw markup, inserted after the text child and before Children.
func HTML(markup string) Option {
	return func(e *Element) {
		e.HTML = markup
		e.set |= hasHTML
	}
}

// Children appends children. Each argument is normalized with From, so a
// nil or false child still occupies a position and renders as "".
func Children(children ...any) Option {
	return func(e *Element) {
		for _, c := range children {
			e.Children = append(e.Children, From(c))
		}
	}
}

// On appends a listener; see Listener for the accepted handler shapes.
func On(event string, handler any) Option {
	return func(e *Element) {
		e.On = append(e.On, Listener{Event: event, Handler: handler})
	}
}

// Signal sets the element's cancellation signal.
func Signal(ctx context.Context) Option {
	return func(e *Element) {
		e.Signal = ctx
	}
}

// Ref sets the value handed to the render hook.
func Ref(ref any) Option {
	return func(e *Element) {
		e.Ref = ref
	}
}

// AsHandler converts the bare handler shapes into a dom.Handler.
func AsHandler(v any) (dom.Handler, bool) {
	switch h := v.(type) {
	case dom.Handler:
		return h, h != nil
	case func(dom.Event):
		return h, h != nil
	case func():
		if h == nil {
			return nil, false
		}
		return func(dom.Event) { h() }, true
	}
	return nil, false
}
