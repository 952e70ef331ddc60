// Package vnode describes the declarative trees the renderer materializes.
//
// A vnode is one of five shapes, all implementing Node:
//
//	Empty          renders as an empty text node
//	Text           renders as a text node
//	List           renders as a flat sequence of nodes
//	Thunk          called at render time; its result is rendered in its place
//	*Element       renders as a native element
//
// From normalizes arbitrary Go values into a Node: nil and false become
// Empty, strings and numbers become Text, slices become List, zero-argument
// functions become Thunk, and map[string]any descriptors (as produced by
// JSON, YAML or MessagePack decoders) become *Element.
//
// # Element API
//
// Elements are built with El and options:
//
//	vnode.El("button",
//	    vnode.Class("btn primary"),
//	    vnode.Attr("disabled", false),
//	    vnode.Style("margin-top", "4px"),
//	    vnode.Content("Save"),
//	    vnode.On("click", vnode.Handler{Func: save, Debounce: 300 * time.Millisecond}),
//	)
//
// Every field is optional and independent; a field that was never set has
// no effect when rendered.
package vnode
