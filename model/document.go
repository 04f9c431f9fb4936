package model

// Values maps field names to field values.
type Values map[string]Value

// Clone creates a deep copy of the values.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	clone := make(Values, len(v))
	for k, val := range v {
		clone[k] = val.Clone()
	}
	return clone
}

// Document is a stored record. An ID of zero marks a document that has not
// been added to a collection yet; once assigned the ID never changes.
type Document struct {
	ID     uint32
	Values Values
}

// NewDocument returns a new document holding values.
func NewDocument(values Values) *Document {
	return &Document{Values: values}
}

// IsNew reports whether the document has no id assigned.
func (d *Document) IsNew() bool { return d.ID == 0 }

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{ID: d.ID, Values: d.Values.Clone()}
}

// Query maps field names to a value or an array of values. A scalar means
// "equals", an array means "equals each of": every listed value must be
// present. Fields are combined with AND.
type Query map[string]Value
