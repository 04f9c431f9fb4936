package docidx

import (
	"fmt"

	"github.com/hupe1980/docidx/index"
	"github.com/hupe1980/docidx/model"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the exported state of a collection.
//
// Its JSON form is {"c": counter, "i": {field: index}, "d": {id: document}}.
type Snapshot struct {
	Counter   uint32                       `json:"c"`
	Indexes   map[string]*index.Snapshot   `json:"i"`
	Documents map[uint32]*DocumentSnapshot `json:"d"`
}

// DocumentSnapshot is the exported form of one document.
type DocumentSnapshot struct {
	ID     uint32       `json:"i"`
	Values model.Values `json:"v"`
}

// Export returns a snapshot of the collection. Values are deep-copied, so the
// snapshot stays valid while the collection keeps changing.
func (c *Collection) Export() *Snapshot {
	s := &Snapshot{
		Counter:   c.counter,
		Indexes:   make(map[string]*index.Snapshot, len(c.indexes)),
		Documents: make(map[uint32]*DocumentSnapshot, len(c.docs)),
	}
	for name, ix := range c.indexes {
		s.Indexes[name] = ix.Snapshot()
	}
	for id, doc := range c.docs {
		values := doc.Values.Clone()
		if values == nil {
			values = model.Values{}
		}
		s.Documents[id] = &DocumentSnapshot{ID: doc.ID, Values: values}
	}
	return s
}

// Import replaces the collection state with s.
//
// Fresh indexes are built for every indexed field of the current schema and
// restored concurrently. Index blobs of fields that are not indexed now are
// skipped. The collection is only modified when every blob was restored.
func (c *Collection) Import(s *Snapshot) error {
	err := c.importSnapshot(s)

	docs := 0
	if err == nil {
		docs = len(c.docs)
	}
	c.logger.LogImport(docs, len(c.indexes), err)

	return err
}

func (c *Collection) importSnapshot(s *Snapshot) error {
	if s == nil {
		return fmt.Errorf("%w: nil snapshot", ErrCorruptSnapshot)
	}

	indexes := c.newIndexes()

	var g errgroup.Group
	for name, blob := range s.Indexes {
		ix, ok := indexes[name]
		if !ok {
			c.logger.WithField(name).Warn("skipping index blob of field without index")
			continue
		}
		if blob == nil {
			continue
		}
		g.Go(func() error {
			if err := ix.Restore(blob); err != nil {
				return fmt.Errorf("field %s: %w", name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	counter := s.Counter
	docs := make(map[uint32]*model.Document, len(s.Documents))
	for key, ds := range s.Documents {
		if ds == nil {
			return fmt.Errorf("%w: document %d is null", ErrCorruptSnapshot, key)
		}
		id := ds.ID
		if id == 0 {
			id = key
		}
		docs[key] = &model.Document{ID: id, Values: ds.Values.Clone()}
		counter = max(counter, key, id)
	}

	c.counter = counter
	c.docs = docs
	c.indexes = indexes
	return nil
}
