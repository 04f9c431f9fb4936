package testutil

import (
	"math"
	"math/rand"
	"slices"
	"strings"
	"sync"
)

// Alphabets used by the random text generators. Small alphabets produce many
// repeated n-grams, which is what substring tests need.
const (
	AlphabetBinary    = "ab"
	AlphabetSmall     = "abc"
	AlphabetLower     = "abcdefghijklmnopqrstuvwxyz"
	// AlphabetMultiByte mixes 1, 2, 3 and 4 byte code points, all in NFC.
	AlphabetMultiByte = "a\u00e9\u20ac\U0001d11e\u3071b"
	// AlphabetCombining holds bases and combining marks that compose under NFC.
	AlphabetCombining = "e\u0301\u306f\u309a"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Bool returns a pseudo-random boolean.
func (r *RNG) Bool() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(2) == 1
}

// String returns n runes drawn uniformly from alphabet.
func (r *RNG) String(alphabet string, n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stringLocked(alphabet, n)
}

func (r *RNG) stringLocked(alphabet string, n int) string {
	runes := []rune(alphabet)
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		sb.WriteRune(runes[r.rand.Intn(len(runes))])
	}
	return sb.String()
}

// Strings returns num strings whose lengths are uniform in [minLen, maxLen].
func (r *RNG) Strings(alphabet string, num, minLen, maxLen int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, num)
	for i := range out {
		n := minLen + r.rand.Intn(maxLen-minLen+1)
		out[i] = r.stringLocked(alphabet, n)
	}
	return out
}

// Substring returns a random non-empty substring of s cut at rune
// boundaries, or s itself when it is empty.
func (r *RNG) Substring(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	r.mu.Lock()
	defer r.mu.Unlock()
	start := r.rand.Intn(len(runes))
	end := start + 1 + r.rand.Intn(len(runes)-start)
	return string(runes[start:end])
}

// Zipf returns a Zipfian-distributed value in [0, n).
// s=1.0 gives standard Zipf, s=1.5 gives a heavy tail.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// Tags picks up to maxTags distinct entries of vocab with a Zipfian skew, so
// that a few tags are common and most are rare. The result is sorted.
func (r *RNG) Tags(vocab []string, maxTags int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 1 + r.rand.Intn(maxTags)
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for range n {
		t := vocab[r.zipfLocked(len(vocab), 1.2)]
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// SparseFields reports for each of n fields whether it is present.
// missingRate is the probability that a field is missing (0.3 = 30% missing).
func (r *RNG) SparseFields(n int, missingRate float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	present := make([]bool, n)
	for i := range n {
		present[i] = r.rand.Float64() >= missingRate
	}
	return present
}

// SubstringMatches returns, in ascending order, the ids of docs having at
// least one value that contains query. It is the brute force reference for
// the ngram index; callers normalize inputs themselves.
func SubstringMatches(docs map[uint32][]string, query string) []uint32 {
	if query == "" {
		return []uint32{}
	}
	ids := make([]uint32, 0)
	for id, values := range docs {
		for _, v := range values {
			if strings.Contains(v, query) {
				ids = append(ids, id)
				break
			}
		}
	}
	slices.Sort(ids)
	return ids
}

// EqualMatches returns, in ascending order, the ids of docs having value
// among their values.
func EqualMatches[T comparable](docs map[uint32][]T, value T) []uint32 {
	ids := make([]uint32, 0)
	for id, values := range docs {
		if slices.Contains(values, value) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
