// Package memdom is an in-memory implementation of dom.Document.
//
// Nodes are golang.org/x/net/html nodes, so raw markup is parsed with the
// HTML5 fragment algorithm and trees serialize back to markup with
// OuterHTML. Listeners are kept per element and run through Dispatch.
package memdom

import (
	"bytes"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/domrender/pkg/dom"
)

// Document is an in-memory dom.Document. Node creation and Dispatch may be
// called from any goroutine; mutating one subtree is a single-owner affair,
// like the DOM it stands in for.
type Document struct {
	mu    sync.Mutex
	nodes map[*html.Node]dom.Node
}

// New creates an empty Document.
func New() *Document {
	return &Document{nodes: make(map[*html.Node]dom.Node)}
}

// CreateElement implements dom.Document. Tag names are lowercased like an
// HTML document does.
func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
	}
	return d.wrap(n).(*Element)
}

// CreateTextNode implements dom.Document.
func (d *Document) CreateTextNode(data string) dom.Node {
	return d.wrap(&html.Node{Type: html.TextNode, Data: data})
}

// wrap returns the wrapper for n, creating one on first sight. Nodes that
// enter the tree through raw markup get their wrappers here.
func (d *Document) wrap(n *html.Node) dom.Node {
	d.mu.Lock()
	defer d.mu.Unlock()

	if w, ok := d.nodes[n]; ok {
		return w
	}
	var w dom.Node
	switch n.Type {
	case html.ElementNode:
		w = &Element{doc: d, n: n}
	default:
		w = &Text{n: n}
	}
	d.nodes[n] = w
	return w
}

// Text is a non-element node: text, comment or doctype.
type Text struct {
	n *html.Node
}

// TextContent implements dom.Node.
func (t *Text) TextContent() string {
	if t.n.Type == html.TextNode {
		return t.n.Data
	}
	return ""
}

// IsComment reports whether the node is a comment.
func (t *Text) IsComment() bool {
	return t.n.Type == html.CommentNode
}

func htmlNode(n dom.Node) *html.Node {
	switch v := n.(type) {
	case *Element:
		return v.n
	case *Text:
		return v.n
	}
	panic("memdom: node was not created by a memdom.Document")
}

// OuterHTML serializes n, including the node itself.
func OuterHTML(n dom.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, htmlNode(n)); err != nil {
		return ""
	}
	return buf.String()
}

// RenderHTML serializes nodes in order, as they would appear when appended
// to a common parent.
func RenderHTML(nodes ...dom.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(OuterHTML(n))
	}
	return sb.String()
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
