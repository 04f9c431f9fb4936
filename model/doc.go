// Package model defines the document, schema and query types shared by the
// collection and its indexes.
//
// # Values
//
// Field values are small typed values:
//
//   - String: model.String("tech")
//   - Number: model.Number(2024)
//   - Bool: model.Bool(true)
//   - Array: model.Strings("a", "b"), model.Numbers(1, 2)
//
// # Schema
//
// A collection schema is an ordered list of fields:
//
//	fields := []model.Field{
//	    {Name: "title", Type: model.FieldTypeString, Indexed: true},
//	    {Name: "year", Type: model.FieldTypeNumber, Indexed: true},
//	    {Name: "labels", Type: model.FieldTypeTags, Indexed: true},
//	}
//
// # Queries
//
// A Query maps field names to a value (equals) or an array of values (equals
// each of). Distinct fields are combined with AND:
//
//	q := model.Query{
//	    "title":  model.String("intro"),
//	    "labels": model.Strings("go", "search"),
//	}
package model
