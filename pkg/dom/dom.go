package dom

import "context"

// InsertBeforeEnd is the raw markup position used by the renderer: the new
// content goes after the element's last child.
const InsertBeforeEnd = "beforeend"

// Document creates native nodes.
type Document interface {
	// CreateElement creates an empty element of the given kind.
	CreateElement(tag string) Element

	// CreateTextNode creates a text node holding data verbatim.
	CreateTextNode(data string) Node
}

// Node is any native node produced by a Document.
type Node interface {
	// TextContent returns the concatenated text of the node and its descendants.
	TextContent() string
}

// Element is a native element node.
type Element interface {
	Node

	TagName() string
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	SetClassName(name string)
	Style() Style
	AppendChild(child Node)

	// InsertAdjacentHTML parses markup and inserts the resulting nodes at
	// position. The markup is not escaped.
	InsertAdjacentHTML(position, markup string)

	AddEventListener(event string, handler Handler, opts ListenerOptions)
}

// Style is an element's inline style declaration.
type Style interface {
	// Set assigns a property the way direct property assignment does
	// (camelCase names such as "backgroundColor" are accepted).
	Set(name, value string)

	// SetProperty assigns a CSS property by its declared name, including
	// custom properties ("--accent").
	SetProperty(name, value string)

	// GetPropertyValue returns the value for a CSS property name.
	GetPropertyValue(name string) string
}

// Event is a dispatched native event.
type Event interface {
	Type() string
}

// Handler receives dispatched events.
type Handler func(Event)

// ListenerOptions are the registration options of a listener.
type ListenerOptions struct {
	Capture bool
	Once    bool
	Passive bool

	// Signal detaches the listener when done. Nil means the listener lives as
	// long as its element.
	Signal context.Context
}

// Live reports whether a listener registered with these options may still
// be invoked.
func (o ListenerOptions) Live() bool {
	return o.Signal == nil || o.Signal.Err() == nil
}
