package render

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/vango-dev/domrender/pkg/dom"
	"github.com/vango-dev/domrender/pkg/vnode"
)

// Renderer turns vnodes into native nodes of one Document.
type Renderer struct {
	doc    dom.Document
	config Config
	logger *slog.Logger

	mu         sync.Mutex
	signal     context.Context
	cancel     context.CancelFunc
	generation uint64
}

// New creates a Renderer for doc with the given configuration.
func New(doc dom.Document, config Config) *Renderer {
	config = config.withDefaults()
	r := &Renderer{
		doc:    doc,
		config: config,
		logger: config.Logger.With("component", "render"),
	}
	r.signal, r.cancel = context.WithCancel(config.Context)
	return r
}

// Render materializes v. A list, or a thunk resolving to one, yields one
// node per item; any other value yields exactly one node.
func (r *Renderer) Render(v any) []dom.Node {
	start := time.Now()
	out := r.render(vnode.From(v))
	r.config.Metrics.observeRender(time.Since(start))
	return out
}

// RenderNode materializes a single vnode. Unlike Render, a list given here
// is rendered as one container element holding its items.
func (r *Renderer) RenderNode(v any) []dom.Node {
	return r.renderNode(vnode.From(v))
}

// Abort cancels the current signal, detaching every listener registered
// under it, and installs a fresh one.
func (r *Renderer) Abort() {
	r.mu.Lock()
	r.cancel()
	r.signal, r.cancel = context.WithCancel(r.config.Context)
	r.generation++
	gen := r.generation
	r.mu.Unlock()

	r.config.Metrics.abort()
	r.logger.Debug("render signal aborted", "generation", gen)
}

// SetSignal makes ctx the default signal for listeners bound by later
// renders. A nil ctx binds listeners without any signal. The next Abort
// restores a renderer-owned signal.
func (r *Renderer) SetSignal(ctx context.Context) *Renderer {
	r.mu.Lock()
	r.signal = ctx
	r.mu.Unlock()
	return r
}

// Signal returns the current default signal.
func (r *Renderer) Signal() context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.signal
}

// Generation returns how many times Abort has been called.
func (r *Renderer) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// render flattens a top-level list one level.
func (r *Renderer) render(n vnode.Node) []dom.Node {
	if list, ok := n.(vnode.List); ok {
		return r.renderList(list)
	}
	return r.renderNode(n)
}

func (r *Renderer) renderList(list vnode.List) []dom.Node {
	out := make([]dom.Node, 0, len(list))
	for _, item := range list {
		out = append(out, r.renderNode(item)...)
	}
	return out
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(n vnode.Node) []dom.Node {
	switch n := n.(type) {
	case vnode.Thunk:
		return r.render(vnode.From(n()))
	case vnode.Text:
		return []dom.Node{r.text(string(n))}
	case vnode.Empty:
		return []dom.Node{r.text("")}
	case vnode.List:
		return []dom.Node{r.renderContainer(n)}
	case *vnode.Element:
		return []dom.Node{r.renderElement(n)}
	}
	return []dom.Node{r.text("")}
}

func (r *Renderer) text(s string) dom.Node {
	r.config.Metrics.node("text")
	return r.doc.CreateTextNode(s)
}

// renderContainer wraps a list nested directly in another list, so the
// nested position still maps to a single node. The hook sees it with a nil
// ref like any other element.
func (r *Renderer) renderContainer(list vnode.List) dom.Element {
	el := r.doc.CreateElement(r.config.DefaultTag)
	for _, child := range r.renderList(list) {
		el.AppendChild(child)
	}
	if r.config.Hooks != nil {
		r.config.Hooks.OnRender(nil, el)
	}
	r.config.Metrics.node("element")
	return el
}

// renderElement builds an element. Each field applies only when present,
// in order: class, attributes, styles, text, raw markup, children,
// listeners. The hook runs last.
func (r *Renderer) renderElement(e *vnode.Element) dom.Element {
	tag := e.Tag
	if tag == "" {
		tag = r.config.DefaultTag
	}
	el := r.doc.CreateElement(tag)

	if e.HasClass() {
		el.SetClassName(strings.TrimSpace(e.Class))
	}

	for _, a := range e.Attrs {
		value, ok := attrValue(a.Value)
		if !ok {
			continue
		}
		el.SetAttribute(a.Key, value)
	}

	if len(e.Styles) > 0 {
		style := el.Style()
		for _, s := range e.Styles {
			if strings.Contains(s.Name, "-") {
				style.SetProperty(s.Name, s.Value)
			} else {
				style.Set(s.Name, s.Value)
			}
		}
	}

	if e.HasText() {
		el.AppendChild(r.text(e.Text))
	}

	if e.HasHTML() {
		el.InsertAdjacentHTML(dom.InsertBeforeEnd, e.HTML)
	}

	for _, child := range r.renderList(e.Children) {
		el.AppendChild(child)
	}

	r.bindListeners(el, e)

	if r.config.Hooks != nil {
		r.config.Hooks.OnRender(e.Ref, el)
	}

	r.config.Metrics.node("element")
	return el
}

// attrValue converts an attribute value. false and nil omit the attribute,
// true sets it empty.
func attrValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case bool:
		return "", x
	}
	return vnode.Stringify(v), true
}
