package ngram

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/docidx/index"
	"github.com/hupe1980/docidx/internal/textnorm"
	"github.com/hupe1980/docidx/model"
	"github.com/hupe1980/docidx/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func count(b *roaring.Bitmap) int { return int(b.GetCardinality()) }

func TestIndex_SingleByte(t *testing.T) {
	ix := New()
	ix.AddStrings(1, []string{"abc", "def"})
	ix.AddStrings(2, []string{"ab", "de"})
	ix.AddStrings(3, []string{"a", "d"})

	want := map[string]int{"a": 3, "b": 2, "c": 1, "d": 3, "e": 2, "f": 1}
	for q, n := range want {
		assert.Equal(t, n, count(ix.FindString(q)), q)
	}

	ix.Remove(1)

	want = map[string]int{"a": 2, "b": 1, "c": 0, "d": 2, "e": 1, "f": 0}
	for q, n := range want {
		assert.Equal(t, n, count(ix.FindString(q)), q)
	}
}

func TestIndex_LongQueries(t *testing.T) {
	ix := New()
	ix.AddStrings(1, []string{"aaaa"})
	ix.AddStrings(5, []string{"aaacc"})
	ix.AddStrings(6, []string{"aaccc"})

	assert.Equal(t, []uint32{5, 6}, ix.FindString("aacc").ToArray())
	assert.Equal(t, []uint32{6}, ix.FindString("aaccc").ToArray())
	assert.Equal(t, 0, count(ix.FindString("aaaccc")))
	assert.Equal(t, []uint32{1, 5, 6}, ix.FindString("aa").ToArray())
	assert.Equal(t, []uint32{1}, ix.FindString("aaaa").ToArray())

	ix.Remove(6)

	assert.Equal(t, 0, count(ix.FindString("ccc")))
	assert.Equal(t, []uint32{5}, ix.FindString("aacc").ToArray())
}

func TestIndex_EmptyQuery(t *testing.T) {
	ix := New()
	ix.AddStrings(1, []string{"abc"})

	assert.True(t, ix.FindString("").IsEmpty())
}

func TestIndex_OffsetsBelongToOneOccurrence(t *testing.T) {
	ix := New()
	// "abc" and "bcd" both occur, but never as "abcd".
	ix.AddStrings(1, []string{"abcxbcd"})
	ix.AddStrings(2, []string{"zabcdz"})

	assert.Equal(t, []uint32{2}, ix.FindString("abcd").ToArray())
	assert.Equal(t, []uint32{1, 2}, ix.FindString("bcd").ToArray())
}

func TestIndex_ValuesDoNotChain(t *testing.T) {
	ix := New()
	ix.AddStrings(1, []string{"ab", "cd"})
	ix.AddStrings(2, []string{"xyz", "xyz"})

	assert.True(t, ix.FindString("bc").IsEmpty())
	assert.True(t, ix.FindString("abc").IsEmpty())
	assert.True(t, ix.FindString("abcd").IsEmpty())
	assert.True(t, ix.FindString("xyzx").IsEmpty())
	assert.Equal(t, []uint32{2}, ix.FindString("xyz").ToArray())
	assert.Equal(t, []uint32{1}, ix.FindString("cd").ToArray())
}

func TestIndex_MultiByte(t *testing.T) {
	ix := New()
	ix.AddStrings(1, []string{"\u3042\u3044\u3046"})
	ix.AddStrings(2, []string{"\u3046\u3042"})

	assert.Equal(t, []uint32{1}, ix.FindString("\u3044").ToArray())
	assert.Equal(t, []uint32{1}, ix.FindString("\u3044\u3046").ToArray())
	assert.Equal(t, []uint32{2}, ix.FindString("\u3046\u3042").ToArray())
	assert.Equal(t, []uint32{1, 2}, ix.FindString("\u3046").ToArray())
}

func TestIndex_UnicodeEquivalence(t *testing.T) {
	ix := New()
	ix.AddStrings(1, []string{"caf\u00e9"})
	ix.AddStrings(2, []string{"\u3071\u3093"})

	assert.Equal(t, []uint32{1}, ix.FindString("caf\u00e9").ToArray())
	assert.Equal(t, []uint32{1}, ix.FindString("cafe\u0301").ToArray())
	assert.Equal(t, []uint32{2}, ix.FindString("\u306f\u309a").ToArray())
}

func TestIndex_Size(t *testing.T) {
	ix := New()
	assert.Equal(t, 0, ix.Size())

	// a b c | ab bc | abc
	ix.AddStrings(1, []string{"abc"})
	assert.Equal(t, 6, ix.Size())

	// d | bd | abd
	ix.AddStrings(2, []string{"abd"})
	assert.Equal(t, 9, ix.Size())

	// re-adding known n-grams changes nothing
	ix.AddStrings(3, []string{"abc"})
	assert.Equal(t, 9, ix.Size())

	ix.Remove(1)
	assert.Equal(t, 9, ix.Size())

	ix.Remove(3)
	assert.Equal(t, 6, ix.Size())

	ix.Remove(2)
	assert.Equal(t, 0, ix.Size())
	assert.True(t, ix.FindString("ab").IsEmpty())

	// removing an unknown id is a no-op
	ix.Remove(42)
	assert.Equal(t, 0, ix.Size())
}

func TestIndex_FindDoesNotAlias(t *testing.T) {
	ix := New()
	ix.AddStrings(1, []string{"abcd"})

	for _, q := range []string{"a", "ab", "abc", "abcd"} {
		got := ix.FindString(q)
		got.Add(99)
		assert.Equal(t, []uint32{1}, ix.FindString(q).ToArray(), q)
	}
}

func TestIndex_ValueAdapters(t *testing.T) {
	ix := New()
	ix.Add(1, []model.Value{model.String("hello"), model.Number(3)})

	assert.Equal(t, index.KindNGram, ix.Kind())
	assert.Equal(t, []uint32{1}, ix.Find(model.String("ell")).ToArray())
	assert.True(t, ix.Find(model.Number(3)).IsEmpty())
	assert.True(t, ix.Find(model.Bool(true)).IsEmpty())
}

func TestIndex_Keys(t *testing.T) {
	ix := New()
	ix.AddStrings(1, []string{"abc"})

	keys, err := ix.Keys()
	assert.Nil(t, keys)
	assert.ErrorIs(t, err, index.ErrUnsupportedOperation)
}

func TestIndex_Snapshot(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		ix := New()
		ix.AddStrings(1, []string{"ab"})

		data, err := json.Marshal(ix.Snapshot())
		require.NoError(t, err)

		leaf := `{"i":[1],"c":{},"p":{}}`
		want := `{
			"s": 3,
			"m": {"i":[],"c":{"97":` + leaf + `,"98":` + leaf + `},"p":{}},
			"b": {"i":[],"c":{"97":{"i":[],"c":{"98":` + leaf + `},"p":{}}},"p":{}},
			"t": {"i":[],"c":{},"p":{}}
		}`
		assert.JSONEq(t, want, string(data))
	})

	t.Run("Positions", func(t *testing.T) {
		ix := New()
		ix.AddStrings(7, []string{"aaaa"})

		s := ix.Snapshot()
		leaf := s.Tri.Children['a'].Children['a'].Children['a']
		require.NotNil(t, leaf)
		assert.Equal(t, []uint32{7}, leaf.IDs)
		assert.Equal(t, []uint32{0, 1}, leaf.Positions[7])
	})

	t.Run("RoundTrip", func(t *testing.T) {
		rng := testutil.NewRNG(4711)
		ix := New()
		docs := make(map[uint32][]string)
		for id := uint32(1); id <= 40; id++ {
			docs[id] = rng.Strings(testutil.AlphabetSmall, 1+rng.Intn(3), 1, 12)
			ix.AddStrings(id, docs[id])
		}
		ix.Remove(3)
		ix.Remove(17)

		data, err := json.Marshal(ix.Snapshot())
		require.NoError(t, err)

		var s index.Snapshot
		require.NoError(t, json.Unmarshal(data, &s))
		assert.Equal(t, index.KindNGram, s.Kind)

		restored := New()
		require.NoError(t, restored.Restore(&s))
		assert.Equal(t, ix.Size(), restored.Size())

		for range 200 {
			q := rng.String(testutil.AlphabetSmall, 1+rng.Intn(6))
			assert.Equal(t, ix.FindString(q).ToArray(), restored.FindString(q).ToArray(), q)
		}
	})

	t.Run("RecomputesSize", func(t *testing.T) {
		ix := New()
		ix.AddStrings(1, []string{"abc"})
		s := ix.Snapshot()
		s.Size = 1000

		restored := New()
		require.NoError(t, restored.Restore(s))
		assert.Equal(t, 6, restored.Size())
	})

	t.Run("TooDeep", func(t *testing.T) {
		deep := index.NewTrieSnapshot()
		deep.Children['a'] = index.NewTrieSnapshot()
		deep.Children['a'].Children['b'] = index.NewTrieSnapshot()

		err := New().Restore(&index.Snapshot{Kind: index.KindNGram, Mono: deep})
		assert.ErrorIs(t, err, index.ErrCorruptSnapshot)
	})

	t.Run("IDsAtRoot", func(t *testing.T) {
		root := index.NewTrieSnapshot()
		root.IDs = []uint32{1}

		err := New().Restore(&index.Snapshot{Kind: index.KindNGram, Bi: root})
		assert.ErrorIs(t, err, index.ErrCorruptSnapshot)
	})

	t.Run("WrongKind", func(t *testing.T) {
		err := New().Restore(&index.Snapshot{Kind: index.KindExact})
		assert.True(t, errors.Is(err, index.ErrCorruptSnapshot))
	})

	t.Run("FailedRestoreKeepsState", func(t *testing.T) {
		ix := New()
		ix.AddStrings(1, []string{"abc"})

		deep := index.NewTrieSnapshot()
		deep.Children['a'] = index.NewTrieSnapshot()
		deep.Children['a'].Children['b'] = index.NewTrieSnapshot()
		require.Error(t, ix.Restore(&index.Snapshot{Kind: index.KindNGram, Mono: deep}))

		assert.Equal(t, []uint32{1}, ix.FindString("abc").ToArray())
		assert.Equal(t, 6, ix.Size())
	})
}

// normalized returns the values the index actually stores.
func normalized(values ...string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = textnorm.String(v)
	}
	return out
}

func TestIndex_MatchesNaiveSubstring(t *testing.T) {
	alphabets := map[string]string{
		"Binary":    testutil.AlphabetBinary,
		"Small":     testutil.AlphabetSmall,
		"Lower":     testutil.AlphabetLower,
		"MultiByte": testutil.AlphabetMultiByte,
		"Combining": testutil.AlphabetCombining,
	}
	for name, alphabet := range alphabets {
		t.Run(name, func(t *testing.T) {
			rng := testutil.NewRNG(int64(len(alphabet)))
			ix := New()
			docs := make(map[uint32][]string)
			for id := uint32(1); id <= 100; id++ {
				values := rng.Strings(alphabet, 1+rng.Intn(3), 0, 16)
				ix.AddStrings(id, values)
				docs[id] = normalized(values...)
			}
			for id := uint32(1); id <= 100; id += 7 {
				ix.Remove(id)
				delete(docs, id)
			}

			for range 500 {
				var q string
				if rng.Bool() {
					q = rng.String(alphabet, 1+rng.Intn(8))
				} else if values := docs[uint32(1+rng.Intn(100))]; len(values) > 0 {
					q = rng.Substring(values[rng.Intn(len(values))])
				}
				assert.Equal(t, testutil.SubstringMatches(docs, textnorm.String(q)), ix.FindString(q).ToArray(), "query %q", q)
			}
		})
	}
}

func FuzzIndex_Find(f *testing.F) {
	f.Add("aaacc", "aaccc", "aacc")
	f.Add("abcxbcd", "ab", "abcd")
	f.Add("caf\u00e9", "", "\u00e9")
	f.Add("\u20ac\U0001d11e", "\u306f\u309a", "\U0001d11e\u3071")
	f.Add("cafe\u0301", "x", "\u00e9")

	f.Fuzz(func(t *testing.T, a, b, q string) {
		ix := New()
		ix.AddStrings(1, []string{a})
		ix.AddStrings(2, []string{a, b})
		docs := map[uint32][]string{1: normalized(a), 2: normalized(a, b)}

		assert.Equal(t, testutil.SubstringMatches(docs, textnorm.String(q)), ix.FindString(q).ToArray(), "query %q", q)
	})
}
