package index

import (
	"errors"

	gojson "github.com/goccy/go-json"
)

// Snapshot is the exported form of an index.
//
// Exact indexes encode as {"s": size, "d": {key: [ids]}}; ngram indexes as
// {"s": size, "m": trie, "b": trie, "t": trie}. Kind selects the shape.
type Snapshot struct {
	Kind Kind
	Size int

	// Data holds the exact-match entries keyed by encoded key.
	Data map[string][]uint32

	// Mono, Bi and Tri hold the ngram tries.
	Mono *TrieSnapshot
	Bi   *TrieSnapshot
	Tri  *TrieSnapshot
}

// TrieSnapshot is the exported form of one trie node and its subtree.
type TrieSnapshot struct {
	IDs       []uint32                `json:"i"`
	Children  map[uint8]*TrieSnapshot `json:"c"`
	Positions map[uint32][]uint32     `json:"p"`
}

// NewTrieSnapshot returns an empty node with non-nil members, so that it
// encodes as {"i":[],"c":{},"p":{}}.
func NewTrieSnapshot() *TrieSnapshot {
	return &TrieSnapshot{
		IDs:       []uint32{},
		Children:  make(map[uint8]*TrieSnapshot),
		Positions: make(map[uint32][]uint32),
	}
}

type exactWire struct {
	Size int                 `json:"s"`
	Data map[string][]uint32 `json:"d"`
}

type ngramWire struct {
	Size int           `json:"s"`
	Mono *TrieSnapshot `json:"m"`
	Bi   *TrieSnapshot `json:"b"`
	Tri  *TrieSnapshot `json:"t"`
}

type anyWire struct {
	Size int                 `json:"s"`
	Data map[string][]uint32 `json:"d"`
	Mono *TrieSnapshot       `json:"m"`
	Bi   *TrieSnapshot       `json:"b"`
	Tri  *TrieSnapshot       `json:"t"`
}

// MarshalJSON implements json.Marshaler.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case KindExact:
		data := s.Data
		if data == nil {
			data = map[string][]uint32{}
		}
		return gojson.Marshal(exactWire{Size: s.Size, Data: data})
	case KindNGram:
		return gojson.Marshal(ngramWire{
			Size: s.Size,
			Mono: orEmpty(s.Mono),
			Bi:   orEmpty(s.Bi),
			Tri:  orEmpty(s.Tri),
		})
	default:
		return nil, errors.New("index: snapshot without kind")
	}
}

// UnmarshalJSON implements json.Unmarshaler. The variant is detected from the
// members present.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var w anyWire
	if err := gojson.Unmarshal(data, &w); err != nil {
		return err
	}

	*s = Snapshot{Size: w.Size}
	if w.Mono != nil || w.Bi != nil || w.Tri != nil {
		s.Kind = KindNGram
		s.Mono, s.Bi, s.Tri = w.Mono, w.Bi, w.Tri
		return nil
	}

	s.Kind = KindExact
	s.Data = w.Data
	if s.Data == nil {
		s.Data = map[string][]uint32{}
	}
	return nil
}

func orEmpty(t *TrieSnapshot) *TrieSnapshot {
	if t == nil {
		return NewTrieSnapshot()
	}
	return t
}
