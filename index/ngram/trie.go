package ngram

import (
	"fmt"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/docidx/index"
)

// node is one entry of a trie arena. Children hold arena indexes; 0 means
// absent because the root (index 0) is never anybody's child.
type node struct {
	children [256]uint32
	mask     bitset.BitSet // set bits mirror the non-zero children

	ids *roaring.Bitmap

	// positions maps an id to the byte offsets where this node's byte
	// sequence starts. Only trigram leaves record positions.
	positions map[uint32]*roaring.Bitmap
}

// trie is a fixed-depth byte trie stored as an arena of nodes.
type trie struct {
	depth int
	nodes []node
}

func newTrie(depth int) *trie {
	return &trie{depth: depth, nodes: make([]node, 1)}
}

// lookup walks path from the root.
func (t *trie) lookup(path []byte) (uint32, bool) {
	n := uint32(0)
	for _, b := range path {
		c := t.nodes[n].children[b]
		if c == 0 {
			return 0, false
		}
		n = c
	}
	return n, true
}

// ensure walks path from the root, allocating missing nodes.
func (t *trie) ensure(path []byte) uint32 {
	n := uint32(0)
	for _, b := range path {
		c := t.nodes[n].children[b]
		if c == 0 {
			c = t.alloc()
			t.nodes[n].children[b] = c
			t.nodes[n].mask.Set(uint(b))
		}
		n = c
	}
	return n
}

func (t *trie) alloc() uint32 {
	t.nodes = append(t.nodes, node{})
	return uint32(len(t.nodes) - 1)
}

// add records id at node n and reports whether the node gained its first id.
func (t *trie) add(n, id uint32) bool {
	nd := &t.nodes[n]
	if nd.ids == nil {
		nd.ids = roaring.New()
	}
	first := nd.ids.IsEmpty()
	nd.ids.Add(id)
	return first
}

func (t *trie) addPosition(n, id, offset uint32) {
	nd := &t.nodes[n]
	if nd.positions == nil {
		nd.positions = make(map[uint32]*roaring.Bitmap)
	}
	p, ok := nd.positions[id]
	if !ok {
		p = roaring.New()
		nd.positions[id] = p
	}
	p.Add(offset)
}

// remove strips id from node n and reports whether the node lost its last id.
func (t *trie) remove(n, id uint32) bool {
	nd := &t.nodes[n]
	delete(nd.positions, id)
	return nd.ids != nil && nd.ids.CheckedRemove(id) && nd.ids.IsEmpty()
}

// ids returns a copy of the id set stored at path.
func (t *trie) ids(path []byte) *roaring.Bitmap {
	n, ok := t.lookup(path)
	if !ok || t.nodes[n].ids == nil {
		return roaring.New()
	}
	return t.nodes[n].ids.Clone()
}

// children iterates the allocated children of n in byte order.
func (t *trie) children(n uint32, fn func(b uint8, child uint32)) {
	nd := &t.nodes[n]
	for b, ok := nd.mask.NextSet(0); ok; b, ok = nd.mask.NextSet(b + 1) {
		fn(uint8(b), nd.children[b])
	}
}

func (t *trie) snapshot(n uint32) *index.TrieSnapshot {
	s := index.NewTrieSnapshot()
	nd := &t.nodes[n]
	if nd.ids != nil && !nd.ids.IsEmpty() {
		s.IDs = nd.ids.ToArray()
	}
	for id, p := range nd.positions {
		s.Positions[id] = p.ToArray()
	}
	t.children(n, func(b uint8, child uint32) {
		s.Children[b] = t.snapshot(child)
	})
	return s
}

// restore rebuilds the subtree below n from s and returns the number of
// nodes holding at least one id.
func (t *trie) restore(n uint32, level int, s *index.TrieSnapshot) (int, error) {
	count := 0
	if len(s.IDs) > 0 {
		if level == 0 {
			return 0, fmt.Errorf("%w: ids at trie root", index.ErrCorruptSnapshot)
		}
		t.nodes[n].ids = roaring.BitmapOf(s.IDs...)
		count++
	}
	for id, offsets := range s.Positions {
		if len(offsets) == 0 {
			continue
		}
		if t.nodes[n].positions == nil {
			t.nodes[n].positions = make(map[uint32]*roaring.Bitmap, len(s.Positions))
		}
		t.nodes[n].positions[id] = roaring.BitmapOf(offsets...)
	}

	for _, b := range slices.Sorted(maps.Keys(s.Children)) {
		sub := s.Children[b]
		if sub == nil {
			continue
		}
		if level+1 > t.depth {
			return 0, fmt.Errorf("%w: path deeper than %d bytes", index.ErrCorruptSnapshot, t.depth)
		}
		c := t.alloc()
		t.nodes[n].children[b] = c
		t.nodes[n].mask.Set(uint(b))

		k, err := t.restore(c, level+1, sub)
		if err != nil {
			return 0, err
		}
		count += k
	}
	return count, nil
}

func restoreTrie(depth int, s *index.TrieSnapshot) (*trie, int, error) {
	t := newTrie(depth)
	if s == nil {
		return t, 0, nil
	}
	count, err := t.restore(0, 0, s)
	if err != nil {
		return nil, 0, err
	}
	return t, count, nil
}
