package vnode

import (
	"context"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/vango-dev/domrender/pkg/dom"
)

// Decode builds an Element from a generic descriptor map using the keys
// tag, class, attr, style, text, html, children, on, signal and ref.
// Unknown keys are ignored. Entries of attr, style and on are applied in
// sorted key order because a Go map has no declaration order.
func Decode(m map[string]any) *Element {
	e := &Element{}

	if v, ok := m["tag"]; ok && v != nil {
		e.Tag = Stringify(v)
	}
	if v, ok := m["class"]; ok {
		e.Class = Stringify(v)
		e.set |= hasClass
	}
	if attrs, ok := asMap(m["attr"]); ok {
		for _, k := range sortedKeys(attrs) {
			e.Attrs = append(e.Attrs, Attribute{Key: k, Value: attrs[k]})
		}
	}
	if styles, ok := asMap(m["style"]); ok {
		for _, k := range sortedKeys(styles) {
			e.Styles = append(e.Styles, StyleProperty{Name: k, Value: Stringify(styles[k])})
		}
	}
	if v, ok := m["text"]; ok {
		e.Text = Stringify(v)
		e.set |= hasText
	}
	if v, ok := m["html"]; ok {
		e.HTML = Stringify(v)
		e.set |= hasHTML
	}
	e.Children = decodeChildren(m["children"])
	if on, ok := asMap(m["on"]); ok {
		for _, k := range sortedKeys(on) {
			e.On = append(e.On, Listener{Event: k, Handler: decodeHandler(on[k])})
		}
	}
	if ctx, ok := m["signal"].(context.Context); ok {
		e.Signal = ctx
	}
	e.Ref = m["ref"]

	return e
}

// decodeChildren returns nil for an absent, nil or false children value, so
// the element gets no children at all.
func decodeChildren(v any) []Node {
	switch x := v.(type) {
	case nil:
		return nil
	case bool:
		if !x {
			return nil
		}
	}
	if list, ok := From(v).(List); ok {
		return list
	}
	return []Node{From(v)}
}

// decodeHandler turns a descriptor map {handler, debounce, throttle,
// options} into a Handler. Other values are passed through for the renderer
// to classify.
func decodeHandler(v any) any {
	m, ok := asMap(v)
	if !ok {
		return v
	}
	fn, _ := AsHandler(m["handler"])
	h := Handler{
		Func:     fn,
		Debounce: millis(m["debounce"]),
		Throttle: millis(m["throttle"]),
	}
	if opts, ok := asMap(m["options"]); ok {
		h.Options = decodeOptions(opts)
	}
	return h
}

func decodeOptions(m map[string]any) dom.ListenerOptions {
	var o dom.ListenerOptions
	o.Capture, _ = m["capture"].(bool)
	o.Once, _ = m["once"].(bool)
	o.Passive, _ = m["passive"].(bool)
	if ctx, ok := m["signal"].(context.Context); ok {
		o.Signal = ctx
	}
	return o
}

// millis reads a duration given as milliseconds, a time.Duration, or a
// duration string such as "250ms".
func millis(v any) time.Duration {
	switch x := v.(type) {
	case nil:
		return 0
	case time.Duration:
		return x
	case string:
		if d, err := time.ParseDuration(x); err == nil {
			return d
		}
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return time.Duration(f * float64(time.Millisecond))
		}
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.Duration(rv.Int()) * time.Millisecond
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return time.Duration(rv.Uint()) * time.Millisecond
	case reflect.Float32, reflect.Float64:
		return time.Duration(rv.Float() * float64(time.Millisecond))
	}
	return 0
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		return stringKeys(m), true
	}
	return nil, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
