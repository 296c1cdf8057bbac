package frag

import (
	"fmt"
	"math"
)

// FromAny converts decoded YAML/JSON data into a Value. Maps become
// associative arrays; NewEnvironmentFrom turns top-level maps into objects.
func FromAny(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case string:
		return String{Value: x}, nil
	case bool:
		return Bool{Value: x}, nil
	case int:
		return Integer{Value: int64(x)}, nil
	case int8:
		return Integer{Value: int64(x)}, nil
	case int16:
		return Integer{Value: int64(x)}, nil
	case int32:
		return Integer{Value: int64(x)}, nil
	case int64:
		return Integer{Value: x}, nil
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return Integer{Value: int64(x)}, nil
	case uint16:
		return Integer{Value: int64(x)}, nil
	case uint32:
		return Integer{Value: int64(x)}, nil
	case uint64:
		return fromUint(x)
	case float32:
		return Float{Value: float64(x)}, nil
	case float64:
		return Float{Value: x}, nil
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			v, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			elems[i] = v
		}
		return NumberedArray{Elements: elems}, nil
	case map[string]any:
		m, err := fromMap(x)
		if err != nil {
			return nil, err
		}
		return AssociativeArray{Elements: m}, nil
	case map[any]any:
		sm := make(map[string]any, len(x))
		for k, e := range x {
			sm[fmt.Sprint(k)] = e
		}
		return FromAny(sm)
	default:
		return nil, fmt.Errorf("cannot convert %T to a value", x)
	}
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return nil, fmt.Errorf("integer %d overflows int64", u)
	}
	return Integer{Value: int64(u)}, nil
}

func fromMap(x map[string]any) (map[string]Value, error) {
	m := make(map[string]Value, len(x))
	for k, e := range x {
		v, err := FromAny(e)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		m[k] = v
	}
	return m, nil
}

// ToAny converts a Value into plain Go data suitable for encoding.
func ToAny(v Value) any {
	switch v := v.(type) {
	case nil, Null:
		return nil
	case String:
		return v.Value
	case Integer:
		return v.Value
	case Float:
		return v.Value
	case Bool:
		return v.Value
	case NumberedArray:
		out := make([]any, len(v.Elements))
		for i, e := range v.Elements {
			out[i] = ToAny(e)
		}
		return out
	case AssociativeArray:
		return toAnyMap(v.Elements)
	case Object:
		return toAnyMap(v.Elements)
	default:
		panic(fmt.Sprintf("unknown value %T", v))
	}
}

func toAnyMap(m map[string]Value) map[string]any {
	out := make(map[string]any, len(m))
	for k, e := range m {
		out[k] = ToAny(e)
	}
	return out
}
