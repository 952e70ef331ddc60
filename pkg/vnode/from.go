package vnode

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// From normalizes v into a Node. It never fails: values with no vnode
// meaning render as Empty.
//
//	nil, bool                  Empty
//	string, numeric kinds      Text
//	Node                       itself (a nil *Element is Empty)
//	slices and arrays          List of normalized items
//	func() T                   Thunk
//	map[string]any             *Element via Decode
func From(v any) Node {
	switch x := v.(type) {
	case nil:
		return Empty{}
	case *Element:
		if x == nil {
			return Empty{}
		}
		return x
	case Thunk:
		if x == nil {
			return Empty{}
		}
		return x
	case Node:
		return x
	case string:
		return Text(x)
	case bool:
		// true has no textual meaning either; it keeps its position as "".
		return Empty{}
	case int:
		return Text(strconv.Itoa(x))
	case int64:
		return Text(strconv.FormatInt(x, 10))
	case float64:
		return Text(FormatNumber(x))
	case []any:
		return listOf(len(x), func(i int) any { return x[i] })
	case []Node:
		return List(x)
	case []string:
		return listOf(len(x), func(i int) any { return x[i] })
	case func() any:
		if x == nil {
			return Empty{}
		}
		return Thunk(x)
	case func() Node:
		if x == nil {
			return Empty{}
		}
		return Thunk(func() any { return x() })
	case map[string]any:
		return Decode(x)
	case map[any]any:
		return Decode(stringKeys(x))
	}
	return fromReflect(reflect.ValueOf(v))
}

func listOf(n int, at func(int) any) List {
	out := make(List, n)
	for i := range out {
		out[i] = From(at(i))
	}
	return out
}

func fromReflect(rv reflect.Value) Node {
	switch rv.Kind() {
	case reflect.String:
		return Text(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Text(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Text(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32:
		return Text(FormatNumber(float64(float32(rv.Float()))))
	case reflect.Float64:
		return Text(FormatNumber(rv.Float()))
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return List{}
		}
		return listOf(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Func:
		if rv.IsNil() || rv.Type().NumIn() != 0 || rv.Type().NumOut() != 1 {
			return Empty{}
		}
		return Thunk(func() any { return rv.Call(nil)[0].Interface() })
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Empty{}
		}
		return From(rv.Elem().Interface())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Empty{}
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return Decode(m)
	}
	return Empty{}
}

// FormatNumber formats f the way JavaScript's String(number) does:
// integral values print without a fraction, magnitudes outside
// [1e-6, 1e21) use exponent notation, and non-finite values print as
// NaN, Infinity or -Infinity.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go pads the exponent to two digits; JavaScript does not.
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Stringify converts a value to the string the renderer assigns for it:
// strings verbatim, numbers as FormatNumber does, nil as "", everything
// else through fmt.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	}
	if t, ok := fromReflect(reflect.ValueOf(v)).(Text); ok {
		return string(t)
	}
	return fmt.Sprint(v)
}

func stringKeys(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[fmt.Sprint(k)] = v
	}
	return out
}
