package model

import (
	"fmt"
	"strings"
)

// FieldType defines the declared type of a document field.
type FieldType uint8

const (
	FieldTypeString FieldType = iota + 1
	FieldTypeNumber
	FieldTypeBool
	FieldTypeStringArray
	FieldTypeNumberArray
	FieldTypeTag
	FieldTypeTags
)

// String returns the schema spelling of the FieldType.
func (t FieldType) String() string {
	switch t {
	case FieldTypeString:
		return "string"
	case FieldTypeNumber:
		return "number"
	case FieldTypeBool:
		return "boolean"
	case FieldTypeStringArray:
		return "string[]"
	case FieldTypeNumberArray:
		return "number[]"
	case FieldTypeTag:
		return "tag"
	case FieldTypeTags:
		return "tags"
	default:
		return "unknown"
	}
}

// ParseFieldType is the inverse of FieldType.String.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.TrimSpace(s) {
	case "string":
		return FieldTypeString, nil
	case "number":
		return FieldTypeNumber, nil
	case "boolean":
		return FieldTypeBool, nil
	case "string[]":
		return FieldTypeStringArray, nil
	case "number[]":
		return FieldTypeNumberArray, nil
	case "tag":
		return FieldTypeTag, nil
	case "tags":
		return FieldTypeTags, nil
	default:
		return 0, fmt.Errorf("model: unknown field type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t FieldType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("model: unknown field type %d", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *FieldType) UnmarshalText(text []byte) error {
	ft, err := ParseFieldType(string(text))
	if err != nil {
		return err
	}
	*t = ft
	return nil
}

// Valid reports whether t is one of the declared field types.
func (t FieldType) Valid() bool {
	return t >= FieldTypeString && t <= FieldTypeTags
}

// IsArray reports whether the field holds an array of values.
func (t FieldType) IsArray() bool {
	return t == FieldTypeStringArray || t == FieldTypeNumberArray || t == FieldTypeTags
}

// ElemKind returns the primitive kind of a value (or of each array element)
// stored in a field of this type.
func (t FieldType) ElemKind() Kind {
	switch t {
	case FieldTypeString, FieldTypeStringArray, FieldTypeTag, FieldTypeTags:
		return KindString
	case FieldTypeNumber, FieldTypeNumberArray:
		return KindNumber
	case FieldTypeBool:
		return KindBool
	default:
		return KindInvalid
	}
}

// preferredOrder ranks field types by how selective a probe on them tends to
// be; lower ranks are probed first.
var preferredOrder = map[FieldType]int{
	FieldTypeStringArray: 0,
	FieldTypeString:      1,
	FieldTypeTags:        2,
	FieldTypeTag:         3,
	FieldTypeNumberArray: 4,
	FieldTypeNumber:      5,
	FieldTypeBool:        6,
}

// PreferredRank returns the planner rank of the field type.
func (t FieldType) PreferredRank() int {
	if r, ok := preferredOrder[t]; ok {
		return r
	}
	return len(preferredOrder)
}

// Field is a named, typed, optionally indexed attribute of documents.
type Field struct {
	Name    string    `json:"name"`
	Type    FieldType `json:"type"`
	Indexed bool      `json:"indexed"`
}
