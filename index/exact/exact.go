// Package exact implements the exact-match index: a hash from a normalized
// primitive value to the roaring bitmap of document ids carrying it.
//
// It backs number, number[], boolean, tag and tags fields.
package exact

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/docidx/index"
	"github.com/hupe1980/docidx/internal/textnorm"
	"github.com/hupe1980/docidx/model"
)

// keyCodec describes how one primitive kind is extracted from values,
// normalized and encoded in snapshots.
type keyCodec[T comparable] struct {
	from      func(model.Value) (T, bool)
	to        func(T) model.Value
	normalize func(T) T
	encode    func(T) string
	decode    func(string) (T, error)
}

// Index maps normalized values of one primitive kind to id sets.
//
// Size counts the keys whose id set is non-empty; it is maintained
// incrementally on add and remove.
type Index[T comparable] struct {
	codec   keyCodec[T]
	entries map[T]*roaring.Bitmap
	size    int
}

// Ensure the exact indexes implement index.Index.
var (
	_ index.Index = (*Index[float64])(nil)
	_ index.Index = (*Index[bool])(nil)
	_ index.Index = (*Index[string])(nil)
)

// NewNumber creates an index over numbers. Keys encode as shortest decimal text.
// Non-finite numbers are never indexed and -0 is stored as 0.
func NewNumber() *Index[float64] {
	return newIndex(keyCodec[float64]{
		from:      finiteNumber,
		to:        model.Number,
		normalize: normalizeZero,
		encode: func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
		decode: func(s string) (float64, error) {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, err
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("non-finite number key %q", s)
			}
			return v, nil
		},
	})
}

func finiteNumber(v model.Value) (float64, bool) {
	n, ok := v.AsNumber()
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func normalizeZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

// NewBool creates an index over booleans. Keys encode as "t" and "f".
func NewBool() *Index[bool] {
	return newIndex(keyCodec[bool]{
		from:      model.Value.AsBool,
		to:        model.Bool,
		normalize: identity[bool],
		encode: func(v bool) string {
			if v {
				return "t"
			}
			return "f"
		},
		decode: func(s string) (bool, error) {
			switch s {
			case "t":
				return true, nil
			case "f":
				return false, nil
			default:
				return false, fmt.Errorf("invalid boolean key %q", s)
			}
		},
	})
}

// NewTag creates an index over tag strings. Tags are NFC-normalized before
// being used as keys, on insert and lookup alike.
func NewTag() *Index[string] {
	return newIndex(keyCodec[string]{
		from:      model.Value.AsString,
		to:        model.String,
		normalize: textnorm.String,
		encode:    identity[string],
		decode: func(s string) (string, error) {
			return s, nil
		},
	})
}

func newIndex[T comparable](codec keyCodec[T]) *Index[T] {
	return &Index[T]{
		codec:   codec,
		entries: make(map[T]*roaring.Bitmap),
	}
}

func identity[T any](v T) T { return v }

// Kind implements index.Index.
func (ix *Index[T]) Kind() index.Kind { return index.KindExact }

// AddValues adds id under every value.
func (ix *Index[T]) AddValues(id uint32, values []T) {
	for _, v := range values {
		key := ix.codec.normalize(v)
		if key != key {
			// NaN: could never be found or removed again
			continue
		}
		ids, ok := ix.entries[key]
		if !ok {
			ids = roaring.New()
			ix.entries[key] = ids
		}
		if ids.IsEmpty() {
			ix.size++
		}
		ids.Add(id)
	}
}

// FindValue returns the ids stored under value. The result is owned by the
// caller and empty when the key is absent.
func (ix *Index[T]) FindValue(value T) *roaring.Bitmap {
	ids, ok := ix.entries[ix.codec.normalize(value)]
	if !ok {
		return roaring.New()
	}
	return ids.Clone()
}

// Add implements index.Index. Values of another kind are ignored.
func (ix *Index[T]) Add(id uint32, values []model.Value) {
	typed := make([]T, 0, len(values))
	for _, v := range values {
		if tv, ok := ix.codec.from(v); ok {
			typed = append(typed, tv)
		}
	}
	ix.AddValues(id, typed)
}

// Find implements index.Index. A value of another kind matches nothing.
func (ix *Index[T]) Find(value model.Value) *roaring.Bitmap {
	tv, ok := ix.codec.from(value)
	if !ok {
		return roaring.New()
	}
	return ix.FindValue(tv)
}

// Remove implements index.Index. Every key is scanned; keys left without ids
// are dropped.
func (ix *Index[T]) Remove(id uint32) {
	for key, ids := range ix.entries {
		if ids.CheckedRemove(id) && ids.IsEmpty() {
			ix.size--
			delete(ix.entries, key)
		}
	}
}

// Size implements index.Index.
func (ix *Index[T]) Size() int { return ix.size }

// Counts returns the cardinality of every distinct key.
func (ix *Index[T]) Counts() map[T]int {
	counts := make(map[T]int, len(ix.entries))
	for key, ids := range ix.entries {
		if !ids.IsEmpty() {
			counts[key] = int(ids.GetCardinality())
		}
	}
	return counts
}

// Keys implements index.Index. The result is ordered by key.
func (ix *Index[T]) Keys() ([]index.KeyCount, error) {
	keys := make([]index.KeyCount, 0, len(ix.entries))
	for key, count := range ix.Counts() {
		keys = append(keys, index.KeyCount{Value: ix.codec.to(key), Count: count})
	}
	slices.SortFunc(keys, func(a, b index.KeyCount) int {
		return model.Compare(a.Value, b.Value)
	})
	return keys, nil
}

// Snapshot implements index.Index.
func (ix *Index[T]) Snapshot() *index.Snapshot {
	data := make(map[string][]uint32, len(ix.entries))
	for key, ids := range ix.entries {
		data[ix.codec.encode(key)] = ids.ToArray()
	}
	return &index.Snapshot{
		Kind: index.KindExact,
		Size: ix.size,
		Data: data,
	}
}

// Restore implements index.Index. Keys are decoded with the index's own type;
// the size is recomputed from the non-empty id lists.
func (ix *Index[T]) Restore(s *index.Snapshot) error {
	if s == nil || s.Kind != index.KindExact {
		return fmt.Errorf("%w: expected exact snapshot", index.ErrCorruptSnapshot)
	}

	entries := make(map[T]*roaring.Bitmap, len(s.Data))
	for encoded, idList := range s.Data {
		key, err := ix.codec.decode(encoded)
		if err != nil {
			return fmt.Errorf("%w: %w", index.ErrCorruptSnapshot, err)
		}
		if len(idList) == 0 {
			continue
		}
		key = ix.codec.normalize(key)
		if ids, ok := entries[key]; ok {
			ids.AddMany(idList)
			continue
		}
		entries[key] = roaring.BitmapOf(idList...)
	}

	ix.entries = entries
	ix.size = len(entries)
	return nil
}
