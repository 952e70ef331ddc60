//go:build js && wasm

package dom

import (
	"context"
	"syscall/js"
)

// Browser returns the Document of the current page.
func Browser() Document {
	return browserDocument{doc: js.Global().Get("document")}
}

// Value returns the underlying js.Value of a node created by Browser.
// It returns js.Undefined for nodes of other documents.
func Value(n Node) js.Value {
	if v, ok := n.(interface{ jsValue() js.Value }); ok {
		return v.jsValue()
	}
	return js.Undefined()
}

type browserDocument struct {
	doc js.Value
}

func (d browserDocument) CreateElement(tag string) Element {
	return jsElement{jsNode{v: d.doc.Call("createElement", tag)}}
}

func (d browserDocument) CreateTextNode(data string) Node {
	return jsNode{v: d.doc.Call("createTextNode", data)}
}

type jsNode struct {
	v js.Value
}

func (n jsNode) jsValue() js.Value { return n.v }

func (n jsNode) TextContent() string {
	return n.v.Get("textContent").String()
}

type jsElement struct {
	jsNode
}

func (e jsElement) TagName() string {
	return e.v.Get("tagName").String()
}

func (e jsElement) SetAttribute(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e jsElement) RemoveAttribute(name string) {
	e.v.Call("removeAttribute", name)
}

func (e jsElement) SetClassName(name string) {
	e.v.Set("className", name)
}

func (e jsElement) Style() Style {
	return jsStyle{v: e.v.Get("style")}
}

func (e jsElement) AppendChild(child Node) {
	e.v.Call("appendChild", Value(child))
}

func (e jsElement) InsertAdjacentHTML(position, markup string) {
	e.v.Call("insertAdjacentHTML", position, markup)
}

func (e jsElement) AddEventListener(event string, handler Handler, opts ListenerOptions) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if !opts.Live() {
			return nil
		}
		ev := jsEvent{}
		if len(args) > 0 {
			ev.v = args[0]
		}
		handler(ev)
		return nil
	})

	o := js.Global().Get("Object").New()
	o.Set("capture", opts.Capture)
	o.Set("once", opts.Once)
	o.Set("passive", opts.Passive)
	if opts.Signal != nil {
		ctrl := js.Global().Get("AbortController").New()
		o.Set("signal", ctrl.Get("signal"))
		context.AfterFunc(opts.Signal, func() {
			ctrl.Call("abort")
			fn.Release()
		})
	}
	e.v.Call("addEventListener", event, fn, o)
}

type jsStyle struct {
	v js.Value
}

func (s jsStyle) Set(name, value string) {
	s.v.Set(name, value)
}

func (s jsStyle) SetProperty(name, value string) {
	s.v.Call("setProperty", name, value)
}

func (s jsStyle) GetPropertyValue(name string) string {
	return s.v.Call("getPropertyValue", name).String()
}

type jsEvent struct {
	v js.Value
}

func (e jsEvent) Type() string {
	if e.v.IsUndefined() || e.v.IsNull() {
		return ""
	}
	return e.v.Get("type").String()
}

// Value returns the underlying browser event object.
func (e jsEvent) Value() js.Value { return e.v }
