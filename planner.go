package docidx

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/docidx/index"
	"github.com/hupe1980/docidx/model"
)

// probe is one query clause bound to its index.
type probe struct {
	field  model.Field
	index  index.Index
	size   int
	values []model.Value
}

// plan resolves the clauses of q and orders them for evaluation: larger
// indexes first, then by preferred field type, then by field name.
func (c *Collection) plan(q model.Query) ([]probe, error) {
	probes := make([]probe, 0, len(q))
	for _, name := range slices.Sorted(maps.Keys(q)) {
		ix, err := c.indexFor(name)
		if err != nil {
			return nil, err
		}
		probes = append(probes, probe{
			field:  c.fields[name],
			index:  ix,
			size:   ix.Size(),
			values: q[name].List(),
		})
	}

	slices.SortFunc(probes, func(a, b probe) int {
		if a.size != b.size {
			return cmp.Compare(b.size, a.size)
		}
		if a.field.Type != b.field.Type {
			return cmp.Compare(a.field.Type.PreferredRank(), b.field.Type.PreferredRank())
		}
		return strings.Compare(a.field.Name, b.field.Name)
	})
	return probes, nil
}

// Explain returns the field names of q in the order FindIDs probes them.
func (c *Collection) Explain(q model.Query) ([]string, error) {
	probes, err := c.plan(q)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(probes))
	for i, p := range probes {
		names[i] = p.field.Name
	}
	return names, nil
}

// FindIDs returns the ids of the documents matching every clause of q.
//
// A scalar clause must match, an array clause must match each of its values.
// The empty query matches nothing.
func (c *Collection) FindIDs(q model.Query) (*roaring.Bitmap, error) {
	start := time.Now()
	ids, err := c.findIDs(q)

	matched := 0
	if err == nil {
		matched = int(ids.GetCardinality())
	}
	c.metrics.RecordFind(len(q), matched, time.Since(start), err)
	c.logger.LogFind(len(q), matched, err)

	return ids, err
}

func (c *Collection) findIDs(q model.Query) (*roaring.Bitmap, error) {
	probes, err := c.plan(q)
	if err != nil {
		return nil, err
	}

	var result *roaring.Bitmap
	for _, p := range probes {
		for _, v := range p.values {
			ids := p.index.Find(v)
			if result == nil {
				result = ids
			} else {
				result.And(ids)
			}
			if result.IsEmpty() {
				return roaring.New(), nil
			}
		}
	}

	if result == nil {
		return roaring.New(), nil
	}
	return result, nil
}

// Find returns the documents matching q in ascending id order.
func (c *Collection) Find(q model.Query) ([]*model.Document, error) {
	ids, err := c.FindIDs(q)
	if err != nil {
		return nil, err
	}

	docs := make([]*model.Document, 0, ids.GetCardinality())
	it := ids.Iterator()
	for it.HasNext() {
		if doc, ok := c.docs[it.Next()]; ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}
