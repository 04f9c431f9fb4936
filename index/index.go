package index

import (
	"errors"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/docidx/model"
)

var (
	// ErrUnsupportedOperation is returned when an index cannot serve a request,
	// such as enumerating the keys of an ngram index.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrCorruptSnapshot is returned when a snapshot cannot be restored.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// Kind identifies the index variant.
type Kind uint8

const (
	// KindExact is the exact-match hash index.
	KindExact Kind = iota + 1
	// KindNGram is the byte n-gram trie index.
	KindNGram
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindNGram:
		return "ngram"
	default:
		return "unknown"
	}
}

// KeyCount is the number of documents carrying one distinct key.
type KeyCount struct {
	Value model.Value
	Count int
}

// Index is the capability shared by every per-field index.
//
// Find returns a bitmap owned by the caller; it never aliases index state.
type Index interface {
	// Kind returns the variant tag.
	Kind() Kind

	// Add indexes values for id.
	Add(id uint32, values []model.Value)

	// Find returns the ids matching value.
	Find(value model.Value) *roaring.Bitmap

	// Remove strips id from every entry.
	Remove(id uint32)

	// Size returns the number of distinct keys with at least one id.
	Size() int

	// Keys returns the cardinality of every distinct key.
	Keys() ([]KeyCount, error)

	// Snapshot exports the index.
	Snapshot() *Snapshot

	// Restore replaces the index content with a snapshot.
	Restore(s *Snapshot) error
}
