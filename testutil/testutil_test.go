package testutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	rng := NewRNG(4711)

	s := rng.String(AlphabetSmall, 32)

	assert.Len(t, s, 32)
	for i := range len(s) {
		assert.True(t, strings.IndexByte(AlphabetSmall, s[i]) >= 0)
	}
}

func TestStrings(t *testing.T) {
	rng := NewRNG(4711)

	out := rng.Strings(AlphabetBinary, 50, 2, 5)

	require.Len(t, out, 50)
	for _, s := range out {
		assert.GreaterOrEqual(t, len(s), 2)
		assert.LessOrEqual(t, len(s), 5)
	}
}

func TestSubstring(t *testing.T) {
	rng := NewRNG(4711)

	for range 100 {
		sub := rng.Substring("abcdef")
		assert.NotEmpty(t, sub)
		assert.Contains(t, "abcdef", sub)
	}
	assert.Equal(t, "", rng.Substring(""))
}

func TestString_MultiByte(t *testing.T) {
	rng := NewRNG(4711)

	s := rng.String(AlphabetMultiByte, 40)

	require.True(t, utf8.ValidString(s))
	assert.Equal(t, 40, utf8.RuneCountInString(s))
	for _, r := range s {
		assert.True(t, strings.ContainsRune(AlphabetMultiByte, r))
	}

	for range 100 {
		sub := rng.Substring(s)
		assert.True(t, utf8.ValidString(sub))
		assert.Contains(t, s, sub)
	}
}

func TestTags(t *testing.T) {
	rng := NewRNG(4711)
	vocab := []string{"go", "rust", "zig", "c"}

	for range 50 {
		tags := rng.Tags(vocab, 3)
		assert.NotEmpty(t, tags)
		assert.LessOrEqual(t, len(tags), 3)
		assert.IsNonDecreasing(t, tags)
	}
}

func TestZipf(t *testing.T) {
	rng := NewRNG(4711)

	counts := make([]int, 10)
	for range 2000 {
		counts[rng.Zipf(10, 1.5)]++
	}
	assert.Greater(t, counts[0], counts[9])
	assert.Equal(t, 0, rng.Zipf(1, 1.5))
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	s1 := rng.String(AlphabetLower, 16)

	rng.Reset()
	s2 := rng.String(AlphabetLower, 16)

	assert.Equal(t, s1, s2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestSubstringMatches(t *testing.T) {
	docs := map[uint32][]string{
		1: {"aaaa"},
		5: {"aaacc"},
		6: {"aaccc", "x"},
	}

	assert.Equal(t, []uint32{5, 6}, SubstringMatches(docs, "aacc"))
	assert.Equal(t, []uint32{6}, SubstringMatches(docs, "x"))
	assert.Equal(t, []uint32{}, SubstringMatches(docs, ""))
}

func TestEqualMatches(t *testing.T) {
	docs := map[uint32][]float64{
		1: {100},
		2: {100, 200},
		3: {300},
	}

	assert.Equal(t, []uint32{1, 2}, EqualMatches(docs, 100))
	assert.Equal(t, []uint32{}, EqualMatches(docs, 400))
}
