package model

import (
	"cmp"
	"fmt"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents the zero Value.
	KindInvalid Kind = iota
	// KindString represents a string value.
	KindString
	// KindNumber represents a numeric value.
	KindNumber
	// KindBool represents a boolean value.
	KindBool
	// KindArray represents an array value.
	KindArray
)

// String returns the name used in validation errors.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindArray:
		return "array"
	default:
		return "invalid"
	}
}

// Value is a small typed value used for document fields and queries.
//
// Arrays are expected to be homogeneous. The JSON form of a Value is the plain
// JSON value it holds, which keeps exported documents readable.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	B    bool
	A    []Value
}

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, Str: v} }

// Number returns a numeric Value.
func Number(v float64) Value { return Value{Kind: KindNumber, Num: v} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Array returns an array Value.
func Array(v ...Value) Value {
	if v == nil {
		v = []Value{}
	}
	return Value{Kind: KindArray, A: v}
}

// Strings returns an array Value of strings.
func Strings(v ...string) Value {
	arr := make([]Value, len(v))
	for i := range v {
		arr[i] = String(v[i])
	}
	return Value{Kind: KindArray, A: arr}
}

// Numbers returns an array Value of numbers.
func Numbers(v ...float64) Value {
	arr := make([]Value, len(v))
	for i := range v {
		arr[i] = Number(v[i])
	}
	return Value{Kind: KindArray, A: arr}
}

// Bools returns an array Value of booleans.
func Bools(v ...bool) Value {
	arr := make([]Value, len(v))
	for i := range v {
		arr[i] = Bool(v[i])
	}
	return Value{Kind: KindArray, A: arr}
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// AsNumber returns the numeric value if Kind is KindNumber.
func (v Value) AsNumber() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// AsArray returns the elements if Kind is KindArray.
func (v Value) AsArray() ([]Value, bool) {
	if v.Kind != KindArray {
		return nil, false
	}
	return v.A, true
}

// IsArray reports whether v holds an array.
func (v Value) IsArray() bool { return v.Kind == KindArray }

// List returns the elements of an array Value, or v itself wrapped in a
// one-element slice for scalars.
func (v Value) List() []Value {
	if v.Kind == KindArray {
		return v.A
	}
	return []Value{v}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return strconv.Quote(v.Str)
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.B)
	case KindArray:
		s := "["
		for i := range v.A {
			if i > 0 {
				s += ","
			}
			s += v.A[i].String()
		}
		return s + "]"
	default:
		return "<invalid>"
	}
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	if v.Kind != KindArray || v.A == nil {
		return v
	}
	arr := make([]Value, len(v.A))
	for i := range v.A {
		arr[i] = v.A[i].Clone()
	}
	return Value{Kind: KindArray, A: arr}
}

// Compare orders two values. Values of different kinds are ordered by kind;
// numbers compare numerically, strings lexically and false sorts before true.
func Compare(a, b Value) int {
	if a.Kind != b.Kind {
		return cmp.Compare(a.Kind, b.Kind)
	}
	switch a.Kind {
	case KindString:
		return cmp.Compare(a.Str, b.Str)
	case KindNumber:
		return cmp.Compare(a.Num, b.Num)
	case KindBool:
		switch {
		case a.B == b.B:
			return 0
		case !a.B:
			return -1
		default:
			return 1
		}
	case KindArray:
		for i := 0; i < len(a.A) && i < len(b.A); i++ {
			if c := Compare(a.A[i], b.A[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(a.A), len(b.A))
	default:
		return 0
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return gojson.Marshal(v.Str)
	case KindNumber:
		return gojson.Marshal(v.Num)
	case KindBool:
		return gojson.Marshal(v.B)
	case KindArray:
		if v.A == nil {
			return []byte("[]"), nil
		}
		return gojson.Marshal(v.A)
	default:
		return nil, fmt.Errorf("model: cannot marshal %s value", v.Kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return err
	}
	val, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}
