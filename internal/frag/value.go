package frag

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is a guest-language value. The set of variants is closed: only this
// package implements the marker method, and every consumer switches over all
// of them.
type Value interface {
	value()
}

type Null struct{}

type String struct {
	Value string
}

type Integer struct {
	Value int64
}

type Float struct {
	Value float64
}

type Bool struct {
	Value bool
}

// NumberedArray is an index-ordered list.
type NumberedArray struct {
	Elements []Value
}

// AssociativeArray maps unique string keys to values; key order is not kept.
type AssociativeArray struct {
	Elements map[string]Value
}

// Object is a property bag.
type Object struct {
	Elements map[string]Value
}

func (Null) value()             {}
func (String) value()           {}
func (Integer) value()          {}
func (Float) value()            {}
func (Bool) value()             {}
func (NumberedArray) value()    {}
func (AssociativeArray) value() {}
func (Object) value()           {}

func NewString(s string) Value { return String{Value: s} }

func NewStrings(ss ...string) NumberedArray {
	elems := make([]Value, len(ss))
	for i, s := range ss {
		elems[i] = String{Value: s}
	}
	return NumberedArray{Elements: elems}
}

func NewObject(props map[string]Value) Object {
	if props == nil {
		props = map[string]Value{}
	}
	return Object{Elements: props}
}

// ToString yields the text of a String and "true"/"false" for a Bool. Every
// other variant gets a debug rendering for diagnostics.
func ToString(v Value) string {
	switch v := v.(type) {
	case String:
		return v.Value
	case Bool:
		return strconv.FormatBool(v.Value)
	default:
		return Debug(v)
	}
}

// Debug renders any value unambiguously.
func Debug(v Value) string {
	switch v := v.(type) {
	case nil, Null:
		return "NULL"
	case String:
		return strconv.Quote(v.Value)
	case Integer:
		return fmt.Sprintf("int(%d)", v.Value)
	case Float:
		return fmt.Sprintf("float(%s)", formatFloat(v.Value))
	case Bool:
		return fmt.Sprintf("bool(%t)", v.Value)
	case NumberedArray:
		parts := make([]string, len(v.Elements))
		for i, e := range v.Elements {
			parts[i] = fmt.Sprintf("%d => %s", i, Debug(e))
		}
		return fmt.Sprintf("array(%d){%s}", len(v.Elements), strings.Join(parts, ", "))
	case AssociativeArray:
		return fmt.Sprintf("array(%d){%s}", len(v.Elements), debugMap(v.Elements))
	case Object:
		return fmt.Sprintf("object{%s}", debugMap(v.Elements))
	default:
		panic(fmt.Sprintf("unknown value %T", v))
	}
}

func debugMap(m map[string]Value) string {
	keys := sortedKeys(m)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Quote(k) + " => " + Debug(m[k])
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToInteger is total: values with no integer reading yield 0.
func ToInteger(v Value) int64 {
	switch v := v.(type) {
	case Integer:
		return v.Value
	case Float:
		return int64(v.Value)
	case Bool:
		if v.Value {
			return 1
		}
		return 0
	case String:
		i, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64)
		if err != nil {
			return 0
		}
		return i
	case nil, Null, NumberedArray, AssociativeArray, Object:
		return 0
	default:
		panic(fmt.Sprintf("unknown value %T", v))
	}
}

// Truthy maps any value to a boolean for conditional guards. Empty strings and
// "0" are false, as in PHP.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Bool:
		return v.Value
	case Integer:
		return v.Value != 0
	case Float:
		return v.Value != 0.0
	case String:
		return v.Value != "" && v.Value != "0"
	case NumberedArray:
		return len(v.Elements) != 0
	case AssociativeArray:
		return len(v.Elements) != 0
	case Object:
		return len(v.Elements) != 0
	case nil, Null:
		return false
	default:
		panic(fmt.Sprintf("unknown value %T", v))
	}
}

// Clone deep-copies v so the copy shares no arrays or maps with it.
func Clone(v Value) Value {
	switch v := v.(type) {
	case NumberedArray:
		elems := make([]Value, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = Clone(e)
		}
		return NumberedArray{Elements: elems}
	case AssociativeArray:
		return AssociativeArray{Elements: cloneMap(v.Elements)}
	case Object:
		return Object{Elements: cloneMap(v.Elements)}
	case nil:
		return Null{}
	case Null, String, Integer, Float, Bool:
		return v
	default:
		panic(fmt.Sprintf("unknown value %T", v))
	}
}

func cloneMap(m map[string]Value) map[string]Value {
	out := make(map[string]Value, len(m))
	for k, e := range m {
		out[k] = Clone(e)
	}
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
