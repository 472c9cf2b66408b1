// File: strata/value.go
package strata

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind discriminates the closed set of loose value shapes every layer
// produces before coercion.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Value is the loosely-typed intermediate representation shared by all
// layers. It is a closed tagged variant: exactly one of the payload fields
// is meaningful, selected by kind. Values are immutable once constructed.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list []Value
	m    map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps a 64-bit integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a 64-bit float.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List wraps an ordered sequence of values.
func List(elems ...Value) Value { return Value{kind: KindList, list: elems} }

// Map wraps a string-keyed mapping of values.
func Map(m map[string]Value) Value { return Value{kind: KindMap, m: m} }

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null placeholder.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Interface converts the value back to plain Go data: nil, bool, int64,
// float64, string, []any, or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, e := range v.m {
			out[k] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// Equal reports deep equality of two values, including kind.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, e := range v.m {
			oe, ok := o.m[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value for diagnostics. Lists and maps render in a
// stable order.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return v.s
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + v.m[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "invalid"
	}
}

// Infer converts a textual token from a string-only source (CLI, env,
// properties) into a best-guess scalar. Checks run in order: boolean
// (case-insensitive "true"/"false"), 64-bit integer, 64-bit float, else
// the original string. No locale-specific numeric formats.
func Infer(text string) Value {
	if strings.EqualFold(text, "true") {
		return Bool(true)
	}
	if strings.EqualFold(text, "false") {
		return Bool(false)
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return Float(f)
	}
	return String(text)
}

// FromDecoded converts a generic JSON/TOML/YAML-decoded tree into a Value,
// recursively and structure-preserving. Nested maps stay nested; no dotted
// flattening happens here. json.Number tokens are inferred as integer
// before float so JSON and TOML numerics behave symmetrically.
func FromDecoded(tree any) (Value, error) {
	switch t := tree.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint64:
		if t > uint64(^uint64(0)>>1) {
			return Value{}, fmt.Errorf("integer %d overflows int64", t)
		}
		return Int(int64(t)), nil
	case float64:
		return Float(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return Float(f), nil
	case time.Time:
		// TOML datetimes carry no dedicated loose kind; keep the text form.
		return String(t.Format(time.RFC3339)), nil
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			v, err := FromDecoded(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return List(elems...), nil
	case []map[string]any:
		// BurntSushi/toml decodes arrays of tables this way.
		elems := make([]Value, len(t))
		for i, e := range t {
			v, err := FromDecoded(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return List(elems...), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			v, err := FromDecoded(e)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			m[k] = v
		}
		return Map(m), nil
	default:
		return Value{}, fmt.Errorf("unsupported decoded type %T", tree)
	}
}
