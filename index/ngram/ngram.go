// Package ngram implements the partial-match index used for string and
// string[] fields.
//
// Every value is normalized and encoded to bytes, then every byte position
// is inserted into three fixed-depth tries: single bytes, byte pairs and
// byte triples. Triple leaves additionally remember the offsets at which the
// triple starts, which lets queries of any length be answered by chaining
// overlapping trigram windows.
package ngram

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/docidx/index"
	"github.com/hupe1980/docidx/internal/textnorm"
	"github.com/hupe1980/docidx/model"
)

const (
	monoDepth = 1
	biDepth   = 2
	triDepth  = 3
)

// Index answers substring queries over byte n-grams.
type Index struct {
	mono *trie
	bi   *trie
	tri  *trie

	// size counts leaves holding at least one id, summed over all tries.
	size int
}

// Ensure Index implements index.Index.
var _ index.Index = (*Index)(nil)

// New creates an empty ngram index.
func New() *Index {
	return &Index{
		mono: newTrie(monoDepth),
		bi:   newTrie(biDepth),
		tri:  newTrie(triDepth),
	}
}

// Kind implements index.Index.
func (ix *Index) Kind() index.Kind { return index.KindNGram }

// AddStrings indexes values for id.
//
// The values are laid out back to back: offsets of a value are shifted by the
// byte length of the values before it. No trigram crosses a value boundary
// and consecutive query windows overlap by two bytes, so a chained match
// always lies inside one value.
func (ix *Index) AddStrings(id uint32, values []string) {
	base := uint32(0)
	for _, v := range values {
		b := textnorm.Bytes(v)
		ix.insert(id, b, base)
		base += uint32(len(b))
	}
}

func (ix *Index) insert(id uint32, b []byte, base uint32) {
	for i := range b {
		ix.put(ix.mono, id, b[i:i+1])
		if i+1 < len(b) {
			ix.put(ix.bi, id, b[i:i+2])
		}
		if i+2 < len(b) {
			n := ix.put(ix.tri, id, b[i:i+3])
			ix.tri.addPosition(n, id, base+uint32(i))
		}
	}
}

func (ix *Index) put(t *trie, id uint32, path []byte) uint32 {
	n := t.ensure(path)
	if t.add(n, id) {
		ix.size++
	}
	return n
}

// FindString returns the ids whose values contain query as a substring after
// normalization. The empty query matches nothing.
func (ix *Index) FindString(query string) *roaring.Bitmap {
	q := textnorm.Bytes(query)
	switch len(q) {
	case 0:
		return roaring.New()
	case monoDepth:
		return ix.mono.ids(q)
	case biDepth:
		return ix.bi.ids(q)
	default:
		return ix.findChain(q)
	}
}

// findChain matches queries of three bytes or more. Window k is the trigram
// q[k:k+3]. For every candidate the start offsets that matched all windows so
// far are kept; offset o survives window k only if that window was recorded
// at o+k for the same id.
func (ix *Index) findChain(q []byte) *roaring.Bitmap {
	head, ok := ix.tri.lookup(q[:triDepth])
	if !ok {
		return roaring.New()
	}
	hn := &ix.tri.nodes[head]
	if hn.ids == nil || hn.ids.IsEmpty() {
		return roaring.New()
	}
	if len(q) == triDepth {
		return hn.ids.Clone()
	}

	starts := make(map[uint32]*roaring.Bitmap, hn.ids.GetCardinality())
	it := hn.ids.Iterator()
	for it.HasNext() {
		id := it.Next()
		if p, ok := hn.positions[id]; ok && !p.IsEmpty() {
			starts[id] = p.Clone()
		}
	}

	for k := 1; k+triDepth <= len(q); k++ {
		n, ok := ix.tri.lookup(q[k : k+triDepth])
		if !ok {
			return roaring.New()
		}
		window := &ix.tri.nodes[n]

		for id, offsets := range starts {
			recorded, ok := window.positions[id]
			if !ok {
				delete(starts, id)
				continue
			}
			kept := roaring.New()
			oi := offsets.Iterator()
			for oi.HasNext() {
				o := oi.Next()
				if recorded.Contains(o + uint32(k)) {
					kept.Add(o)
				}
			}
			if kept.IsEmpty() {
				delete(starts, id)
				continue
			}
			starts[id] = kept
		}

		if len(starts) == 0 {
			return roaring.New()
		}
	}

	result := roaring.New()
	for id := range starts {
		result.Add(id)
	}
	return result
}

// Add implements index.Index. Non-string values are ignored.
func (ix *Index) Add(id uint32, values []model.Value) {
	strs := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.AsString(); ok {
			strs = append(strs, s)
		}
	}
	ix.AddStrings(id, strs)
}

// Find implements index.Index. A non-string value matches nothing.
func (ix *Index) Find(value model.Value) *roaring.Bitmap {
	s, ok := value.AsString()
	if !ok {
		return roaring.New()
	}
	return ix.FindString(s)
}

// Remove implements index.Index.
//
// The single-byte trie is one level deep, so only the root's children are
// visited. The deeper tries are scanned node by node and lose the id's
// offsets as well.
func (ix *Index) Remove(id uint32) {
	ix.mono.children(0, func(_ uint8, child uint32) {
		if ix.mono.remove(child, id) {
			ix.size--
		}
	})
	for _, t := range []*trie{ix.bi, ix.tri} {
		for n := 1; n < len(t.nodes); n++ {
			if t.remove(uint32(n), id) {
				ix.size--
			}
		}
	}
}

// Size implements index.Index.
func (ix *Index) Size() int { return ix.size }

// Nodes returns the number of allocated trie nodes, roots included.
func (ix *Index) Nodes() int {
	return len(ix.mono.nodes) + len(ix.bi.nodes) + len(ix.tri.nodes)
}

// Keys implements index.Index. N-gram keys are fragments of values, so there
// is nothing meaningful to enumerate.
func (ix *Index) Keys() ([]index.KeyCount, error) {
	return nil, fmt.Errorf("%w: ngram index keys", index.ErrUnsupportedOperation)
}

// Snapshot implements index.Index.
func (ix *Index) Snapshot() *index.Snapshot {
	return &index.Snapshot{
		Kind: index.KindNGram,
		Size: ix.size,
		Mono: ix.mono.snapshot(0),
		Bi:   ix.bi.snapshot(0),
		Tri:  ix.tri.snapshot(0),
	}
}

// Restore implements index.Index. The size is recomputed from the restored
// nodes; the recorded size is ignored.
func (ix *Index) Restore(s *index.Snapshot) error {
	if s == nil || s.Kind != index.KindNGram {
		return fmt.Errorf("%w: expected ngram snapshot", index.ErrCorruptSnapshot)
	}

	mono, m, err := restoreTrie(monoDepth, s.Mono)
	if err != nil {
		return fmt.Errorf("mono: %w", err)
	}
	bi, b, err := restoreTrie(biDepth, s.Bi)
	if err != nil {
		return fmt.Errorf("bi: %w", err)
	}
	tri, t, err := restoreTrie(triDepth, s.Tri)
	if err != nil {
		return fmt.Errorf("tri: %w", err)
	}

	ix.mono, ix.bi, ix.tri = mono, bi, tri
	ix.size = m + b + t
	return nil
}
