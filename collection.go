package docidx

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/hupe1980/docidx/codec"
	"github.com/hupe1980/docidx/index"
	"github.com/hupe1980/docidx/index/exact"
	"github.com/hupe1980/docidx/index/ngram"
	"github.com/hupe1980/docidx/model"
)

// Collection is an in-memory document store with one index per indexed field.
//
// A Collection is not safe for concurrent use.
type Collection struct {
	schema  []string // field names in declaration order
	fields  map[string]model.Field
	indexes map[string]index.Index
	docs    map[uint32]*model.Document
	counter uint32

	codec       codec.Codec
	compression Compression
	metrics     MetricsCollector
	logger      *Logger
}

// New creates a collection for the given schema.
//
// Fields with an empty name or an unknown type are rejected with
// ErrInvalidField. When a name appears twice the later entry wins.
func New(fields []model.Field, optFns ...Option) (*Collection, error) {
	opts := applyOptions(optFns)

	c := &Collection{
		fields:      make(map[string]model.Field, len(fields)),
		codec:       opts.codec,
		compression: opts.compression,
		metrics:     opts.metricsCollector,
		logger:      opts.logger,
	}

	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: empty name", ErrInvalidField)
		}
		if !f.Type.Valid() {
			return nil, fmt.Errorf("%w: %s has unknown type %d", ErrInvalidField, f.Name, f.Type)
		}
		if _, ok := c.fields[f.Name]; !ok {
			c.schema = append(c.schema, f.Name)
		}
		c.fields[f.Name] = f
	}

	c.reset()
	return c, nil
}

func (c *Collection) reset() {
	c.counter = 0
	c.docs = make(map[uint32]*model.Document)
	c.indexes = c.newIndexes()
}

// newIndexes allocates one empty index per indexed field.
func (c *Collection) newIndexes() map[string]index.Index {
	indexes := make(map[string]index.Index)
	for name, f := range c.fields {
		if f.Indexed {
			indexes[name] = newIndex(f.Type)
		}
	}
	return indexes
}

func newIndex(t model.FieldType) index.Index {
	switch t {
	case model.FieldTypeString, model.FieldTypeStringArray:
		return ngram.New()
	case model.FieldTypeNumber, model.FieldTypeNumberArray:
		return exact.NewNumber()
	case model.FieldTypeBool:
		return exact.NewBool()
	default:
		return exact.NewTag()
	}
}

// IsField reports whether name is part of the schema.
func (c *Collection) IsField(name string) bool {
	_, ok := c.fields[name]
	return ok
}

// Field returns the schema entry for name.
func (c *Collection) Field(name string) (model.Field, error) {
	f, ok := c.fields[name]
	if !ok {
		return model.Field{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return f, nil
}

// Fields returns the schema in declaration order.
func (c *Collection) Fields() []model.Field {
	fields := make([]model.Field, len(c.schema))
	for i, name := range c.schema {
		fields[i] = c.fields[name]
	}
	return fields
}

// Add stores a new document and indexes its values. The document must not
// have an id yet; on success doc.ID is assigned and doc itself is stored.
func (c *Collection) Add(doc *model.Document) (*model.Document, error) {
	start := time.Now()
	err := c.add(doc)
	c.metrics.RecordAdd(time.Since(start), err)

	var id uint32
	if err == nil {
		id = doc.ID
	}
	c.logger.LogAdd(id, err)

	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Collection) add(doc *model.Document) error {
	if doc == nil {
		return ErrNilDocument
	}
	if !doc.IsNew() {
		return fmt.Errorf("%w: %d", ErrNotNewDocument, doc.ID)
	}
	if err := c.validateValues(doc.Values); err != nil {
		return err
	}

	c.counter++
	doc.ID = c.counter
	c.docs[doc.ID] = doc
	c.indexDocument(doc)
	return nil
}

// Get returns the stored document.
func (c *Collection) Get(id uint32) (*model.Document, error) {
	doc, ok := c.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	return doc, nil
}

// Has reports whether a document with id is stored.
func (c *Collection) Has(id uint32) bool {
	_, ok := c.docs[id]
	return ok
}

// Update replaces the stored document with the same id and re-indexes it.
// It returns the document that was stored before.
func (c *Collection) Update(doc *model.Document) (*model.Document, error) {
	start := time.Now()
	old, err := c.update(doc)
	c.metrics.RecordUpdate(time.Since(start), err)

	var id uint32
	if doc != nil {
		id = doc.ID
	}
	c.logger.LogUpdate(id, err)

	return old, err
}

func (c *Collection) update(doc *model.Document) (*model.Document, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if doc.IsNew() {
		return nil, ErrMissingID
	}
	old, err := c.Get(doc.ID)
	if err != nil {
		return nil, err
	}
	if err := c.validateValues(doc.Values); err != nil {
		return nil, err
	}

	c.docs[doc.ID] = doc
	c.unindexDocument(doc.ID)
	c.indexDocument(doc)
	return old, nil
}

// Remove deletes the document with id and strips it from every index.
func (c *Collection) Remove(id uint32) (*model.Document, error) {
	start := time.Now()
	doc, err := c.remove(id)
	c.metrics.RecordRemove(time.Since(start), err)
	c.logger.LogRemove(id, err)
	return doc, err
}

func (c *Collection) remove(id uint32) (*model.Document, error) {
	doc, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	delete(c.docs, id)
	c.unindexDocument(id)
	return doc, nil
}

// RemoveMatched removes every document matching q and returns how many were
// removed.
func (c *Collection) RemoveMatched(q model.Query) (int, error) {
	start := time.Now()
	removed, err := c.removeMatched(q)
	c.metrics.RecordRemoveMatched(removed, time.Since(start), err)
	c.logger.LogRemoveMatched(len(q), removed, err)
	return removed, err
}

func (c *Collection) removeMatched(q model.Query) (int, error) {
	ids, err := c.findIDs(q)
	if err != nil {
		return 0, err
	}
	it := ids.Iterator()
	for it.HasNext() {
		if _, err := c.remove(it.Next()); err != nil {
			return 0, err
		}
	}
	return int(ids.GetCardinality()), nil
}

// Len returns the number of stored documents.
func (c *Collection) Len() int { return len(c.docs) }

// All returns every stored document in ascending id order.
func (c *Collection) All() []*model.Document {
	docs := make([]*model.Document, 0, len(c.docs))
	for _, id := range slices.Sorted(maps.Keys(c.docs)) {
		docs = append(docs, c.docs[id])
	}
	return docs
}

// Keys returns the distinct values of an exact-match field with the number
// of documents carrying each. Substring-indexed fields report
// ErrUnsupportedOperation.
func (c *Collection) Keys(field string) ([]index.KeyCount, error) {
	ix, err := c.indexFor(field)
	if err != nil {
		return nil, err
	}
	keys, err := ix.Keys()
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", field, err)
	}
	return keys, nil
}

func (c *Collection) indexFor(field string) (index.Index, error) {
	f, ok := c.fields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if !f.Indexed {
		return nil, fmt.Errorf("%w: %s", ErrNoIndex, field)
	}
	return c.indexes[field], nil
}

// Clear drops every document and rebuilds empty indexes. The id counter
// starts over.
func (c *Collection) Clear() {
	c.reset()
	c.logger.Debug("collection cleared")
}

// indexDocument inserts doc into the index of every indexed field it has a
// value for. Scalars are indexed as one-element lists.
func (c *Collection) indexDocument(doc *model.Document) {
	for name, v := range doc.Values {
		ix, ok := c.indexes[name]
		if !ok {
			continue
		}
		ix.Add(doc.ID, v.List())
	}
}

func (c *Collection) unindexDocument(id uint32) {
	for _, ix := range c.indexes {
		ix.Remove(id)
	}
}

// FieldStats describes one schema field and its index.
type FieldStats struct {
	Name    string
	Type    model.FieldType
	Indexed bool

	// Kind and Size are zero for fields without an index.
	Kind index.Kind
	Size int
	// Nodes is the number of allocated trie nodes of an ngram index.
	Nodes int
}

// Stats is a point-in-time summary of a collection.
type Stats struct {
	Documents int
	Counter   uint32 // last id handed out
	Fields    []FieldStats
}

// Stats returns document and per-field index statistics.
func (c *Collection) Stats() Stats {
	s := Stats{
		Documents: len(c.docs),
		Counter:   c.counter,
		Fields:    make([]FieldStats, 0, len(c.schema)),
	}
	for _, name := range c.schema {
		f := c.fields[name]
		fs := FieldStats{Name: name, Type: f.Type, Indexed: f.Indexed}
		if ix, ok := c.indexes[name]; ok {
			fs.Kind = ix.Kind()
			fs.Size = ix.Size()
			if n, ok := ix.(interface{ Nodes() int }); ok {
				fs.Nodes = n.Nodes()
			}
		}
		s.Fields = append(s.Fields, fs)
	}
	return s
}
