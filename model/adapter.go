package model

import "fmt"

// FromAny converts a Go value into a typed Value.
//
// This exists as an adapter layer for decoded JSON and loosely typed input.
// Every integer and float type becomes a number.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int8:
		return Number(float64(x)), nil
	case int16:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint8:
		return Number(float64(x)), nil
	case uint16:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case []Value:
		return Array(x...), nil
	case []any:
		arr := make([]Value, len(x))
		for i := range x {
			vv, err := FromAny(x[i])
			if err != nil {
				return Value{}, err
			}
			arr[i] = vv
		}
		return Array(arr...), nil
	case []string:
		return Strings(x...), nil
	case []float64:
		return Numbers(x...), nil
	case []int:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = Number(float64(x[i]))
		}
		return Array(arr...), nil
	case []bool:
		return Bools(x...), nil
	default:
		return Value{}, fmt.Errorf("model: unsupported value type %T", v)
	}
}

// ValuesFromAny converts a map[string]any document body to typed Values.
func ValuesFromAny(m map[string]any) (Values, error) {
	vals := make(Values, len(m))
	for k, v := range m {
		vv, err := FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		vals[k] = vv
	}
	return vals, nil
}
