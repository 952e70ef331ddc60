package memdom

import (
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/vango-dev/domrender/pkg/dom"
)

// Element is an in-memory element.
type Element struct {
	doc *Document
	n   *html.Node

	mu        sync.Mutex
	style     *Style
	listeners []*listener
}

type listener struct {
	event   string
	handler dom.Handler
	opts    dom.ListenerOptions
}

// TagName returns the uppercased element kind, as the DOM reports it.
func (e *Element) TagName() string {
	return strings.ToUpper(e.n.Data)
}

// TextContent implements dom.Node.
func (e *Element) TextContent() string {
	return textContent(e.n)
}

// SetAttribute implements dom.Element.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	for i := range e.n.Attr {
		if e.n.Attr[i].Namespace == "" && e.n.Attr[i].Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttribute implements dom.Element.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	for i := range e.n.Attr {
		if e.n.Attr[i].Namespace == "" && e.n.Attr[i].Key == name {
			e.n.Attr = append(e.n.Attr[:i], e.n.Attr[i+1:]...)
			return
		}
	}
}

// GetAttribute returns the attribute value and whether it is present.
func (e *Element) GetAttribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.GetAttribute(name)
	return ok
}

// SetClassName implements dom.Element.
func (e *Element) SetClassName(name string) {
	e.SetAttribute("class", name)
}

// ClassName returns the class attribute.
func (e *Element) ClassName() string {
	v, _ := e.GetAttribute("class")
	return v
}

// Style implements dom.Element.
func (e *Element) Style() dom.Style {
	return e.inlineStyle()
}

// InlineStyle returns the concrete inline style of e.
func (e *Element) InlineStyle() *Style {
	return e.inlineStyle()
}

func (e *Element) inlineStyle() *Style {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.style == nil {
		e.style = &Style{owner: e}
	}
	return e.style
}

// AppendChild implements dom.Element. A child that already has a parent is
// moved, as in the DOM.
func (e *Element) AppendChild(child dom.Node) {
	c := htmlNode(child)
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	e.n.AppendChild(c)
}

// InsertAdjacentHTML implements dom.Element. Positions "beforebegin" and
// "afterend" are ignored when e has no parent.
func (e *Element) InsertAdjacentHTML(position, markup string) {
	switch strings.ToLower(position) {
	case dom.InsertBeforeEnd:
		for _, c := range e.parse(e.n, markup) {
			e.n.AppendChild(c)
		}
	case "afterbegin":
		first := e.n.FirstChild
		for _, c := range e.parse(e.n, markup) {
			e.n.InsertBefore(c, first)
		}
	case "beforebegin":
		if p := e.n.Parent; p != nil {
			for _, c := range e.parse(p, markup) {
				p.InsertBefore(c, e.n)
			}
		}
	case "afterend":
		if p := e.n.Parent; p != nil {
			next := e.n.NextSibling
			for _, c := range e.parse(p, markup) {
				p.InsertBefore(c, next)
			}
		}
	}
}

func (e *Element) parse(context *html.Node, markup string) []*html.Node {
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		// strings.Reader never fails, so this is a parser invariant breach.
		panic("memdom: parse fragment: " + err.Error())
	}
	return nodes
}

// Children returns the child nodes of e in order.
func (e *Element) Children() []dom.Node {
	var out []dom.Node
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, e.doc.wrap(c))
	}
	return out
}

// ChildElements returns only the element children of e.
func (e *Element) ChildElements() []*Element {
	var out []*Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c).(*Element))
		}
	}
	return out
}

// OuterHTML serializes e.
func (e *Element) OuterHTML() string {
	return OuterHTML(e)
}

// InnerHTML serializes the children of e.
func (e *Element) InnerHTML() string {
	return RenderHTML(e.Children()...)
}
