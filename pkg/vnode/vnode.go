package vnode

import (
	"context"
	"time"

	"github.com/vango-dev/domrender/pkg/dom"
)

// Kind is the node shape discriminator.
type Kind uint8

const (
	KindEmpty   Kind = iota // Renders as ""
	KindText                // Text node
	KindElement             // <div>, <button>, etc.
	KindList                // Sequence, flattened one level
	KindThunk               // Deferred subtree
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindList:
		return "List"
	case KindThunk:
		return "Thunk"
	default:
		return "Unknown"
	}
}

// Node is a normalized vnode. The set of implementations is closed.
type Node interface {
	Kind() Kind
	node()
}

// Empty renders as an empty text node.
type Empty struct{}

// Text renders as a text node.
type Text string

// List renders each item in order and concatenates the results.
type List []Node

// Thunk is invoked with no arguments at render time. Its result is
// normalized with From and rendered in place of the thunk.
type Thunk func() any

func (Empty) Kind() Kind    { return KindEmpty }
func (Text) Kind() Kind     { return KindText }
func (List) Kind() Kind     { return KindList }
func (Thunk) Kind() Kind    { return KindThunk }
func (*Element) Kind() Kind { return KindElement }

func (Empty) node()    {}
func (Text) node()     {}
func (List) node()     {}
func (Thunk) node()    {}
func (*Element) node() {}

// Element describes a native element. Fields apply in declaration order:
// Class, Attrs, Styles, Text, HTML, Children, On.
type Element struct {
	// Tag is the element kind; empty means the renderer's default kind.
	Tag string

	// Class is a space-separated class list, trimmed before assignment.
	Class string

	Attrs  []Attribute
	Styles []StyleProperty

	// Text is appended as a single text child before Children.
	Text string

	// HTML is raw markup inserted after Text and before Children. It is not
	// escaped.
	HTML string

	Children []Node
	On       []Listener

	// Signal overrides the renderer's current signal for this element's
	// listeners.
	Signal context.Context

	// Ref is passed to the render hook with the produced element.
	Ref any

	set fieldSet
}

type fieldSet uint8

const (
	hasClass fieldSet = 1 << iota
	hasText
	hasHTML
)

// HasClass reports whether a class list was given, even an empty one.
func (e *Element) HasClass() bool { return e.set&hasClass != 0 || e.Class != "" }

// HasText reports whether a text child was given, even an empty one.
func (e *Element) HasText() bool { return e.set&hasText != 0 || e.Text != "" }

// HasHTML reports whether raw markup was given.
func (e *Element) HasHTML() bool { return e.set&hasHTML != 0 || e.HTML != "" }

// Attribute is a single attribute. Value false or nil omits the attribute,
// true sets it with an empty value, anything else is stringified.
type Attribute struct {
	Key   string
	Value any
}

// StyleProperty is a single inline style entry. Names containing a hyphen
// (including custom properties) are set through the CSS property API, all
// others by direct assignment.
type StyleProperty struct {
	Name  string
	Value string
}

// Listener binds an event name to a handler. Handler is one of dom.Handler,
// func(dom.Event), func(), Handler or *Handler; any other value is reported
// and skipped by the renderer.
type Listener struct {
	Event   string
	Handler any
}

// Handler is a handler descriptor with rate limiting and registration
// options. Debounce and Throttle are exclusive; when both are set the
// renderer warns and applies Debounce.
type Handler struct {
	Func     dom.Handler
	Debounce time.Duration
	Throttle time.Duration

	// Options are merged onto the registration options. A nil Signal is
	// replaced by the signal in scope.
	Options dom.ListenerOptions
}
