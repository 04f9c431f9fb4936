// Package docidx provides an in-memory structured document store with
// per-field indexes.
//
// A Collection is created from a schema of typed fields. Indexed fields get
// one index each: string and string[] fields are searchable by substring,
// every other type by exact value.
//
// # Quick Start
//
//	c, _ := docidx.New([]model.Field{
//	    {Name: "title", Type: model.FieldTypeString, Indexed: true},
//	    {Name: "year", Type: model.FieldTypeNumber, Indexed: true},
//	    {Name: "tags", Type: model.FieldTypeTags, Indexed: true},
//	})
//
//	doc, _ := c.Add(model.NewDocument(model.Values{
//	    "title": model.String("The Go Programming Language"),
//	    "year":  model.Number(2015),
//	    "tags":  model.Strings("go", "book"),
//	}))
//
//	docs, _ := c.Find(model.Query{
//	    "title": model.String("Program"),
//	    "tags":  model.Strings("go", "book"),
//	})
//
// # Queries
//
// A query maps field names to a value or to an array of values. Every listed
// value must match, across all fields. Substring fields match when the value
// occurs anywhere in one of the document's strings; all other fields match
// by equality after normalization. Strings are compared in Unicode NFC.
//
// # Snapshots
//
// Export and Import move the whole state, indexes included, as a plain
// value tree that encodes to JSON. MarshalBinary wraps the encoded tree in a
// checksummed, optionally compressed envelope:
//
//	c, _ := docidx.New(fields, docidx.WithCompression(docidx.CompressionZSTD))
//	data, _ := c.MarshalBinary()
//	_ = other.UnmarshalBinary(data)
//
// # Observability
//
// Operations report to a MetricsCollector and a slog based Logger, both
// no-ops by default. See WithMetricsCollector and WithLogger.
package docidx
