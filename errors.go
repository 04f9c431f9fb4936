package docidx

import (
	"errors"
	"fmt"

	"github.com/hupe1980/docidx/index"
	"github.com/hupe1980/docidx/model"
)

var (
	// ErrUnknownField is returned when a field name is not part of the schema.
	ErrUnknownField = errors.New("unknown field")
	// ErrNoIndex is returned when a query names a field that is not indexed.
	ErrNoIndex = errors.New("no index")
	// ErrTypeMismatch is returned when a value disagrees with its field type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNotNewDocument is returned when adding a document that already has an id.
	ErrNotNewDocument = errors.New("not new document")
	// ErrMissingID is returned when updating a document without an id.
	ErrMissingID = errors.New("document has no id")
	// ErrUnknownID is returned when no document has the requested id.
	ErrUnknownID = errors.New("unknown id")
	// ErrNilDocument is returned when a nil document is passed in.
	ErrNilDocument = errors.New("nil document")
	// ErrInvalidField is returned by New for a malformed schema entry.
	ErrInvalidField = errors.New("invalid field")

	// ErrUnsupportedOperation is returned when an index cannot serve a request.
	ErrUnsupportedOperation = index.ErrUnsupportedOperation
	// ErrCorruptSnapshot is returned when a snapshot cannot be imported or decoded.
	ErrCorruptSnapshot = index.ErrCorruptSnapshot
)

// TypeMismatchError describes a value whose kind disagrees with the declared
// field type. It matches ErrTypeMismatch via errors.Is.
type TypeMismatchError struct {
	Field    string
	Declared model.FieldType
	// Actual is the observed kind; array elements are reported as "kind[]".
	Actual string
	// NotArray is set when an array field received a scalar.
	NotArray bool
}

func (e *TypeMismatchError) Error() string {
	if e.NotArray {
		return fmt.Sprintf("type mismatch: %s != array", e.Actual)
	}
	return fmt.Sprintf("type mismatch: %s -> %s", e.Declared, e.Actual)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }
