package docidx

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/hupe1980/docidx/model"
)

// validateValues checks every value against its field declaration. Fields are
// visited in name order so the reported error is deterministic.
func (c *Collection) validateValues(values model.Values) error {
	for _, name := range slices.Sorted(maps.Keys(values)) {
		f, ok := c.fields[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		if err := checkValue(f, values[name]); err != nil {
			return err
		}
	}
	return nil
}

// checkValue matches a value against one field. Arrays are assumed to be
// homogeneous, so only their first element is inspected.
func checkValue(f model.Field, v model.Value) error {
	want := f.Type.ElemKind()

	if !f.Type.IsArray() {
		if v.Kind != want {
			return &TypeMismatchError{Field: f.Name, Declared: f.Type, Actual: v.Kind.String()}
		}
		return checkFinite(f, v)
	}

	elems, ok := v.AsArray()
	if !ok {
		return &TypeMismatchError{Field: f.Name, Declared: f.Type, Actual: v.Kind.String(), NotArray: true}
	}
	if len(elems) == 0 {
		return nil
	}
	if k := elems[0].Kind; k != want {
		return &TypeMismatchError{Field: f.Name, Declared: f.Type, Actual: k.String() + "[]"}
	}
	for _, e := range elems {
		if err := checkFinite(f, e); err != nil {
			return err
		}
	}
	return nil
}

// checkFinite rejects NaN and infinities, which cannot be matched or exported.
func checkFinite(f model.Field, v model.Value) error {
	if n, ok := v.AsNumber(); ok && (math.IsNaN(n) || math.IsInf(n, 0)) {
		return fmt.Errorf("%w: %s: non-finite number %v", ErrTypeMismatch, f.Name, n)
	}
	return nil
}
