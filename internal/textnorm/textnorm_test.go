package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes(t *testing.T) {
	assert.Equal(t, []byte{97}, Bytes("a"))

	aiu := Bytes("あいう")
	assert.Len(t, aiu, 9)
	assert.Equal(t, []byte{227, 129, 130}, aiu[:3])

	smile := Bytes("😄")
	assert.Equal(t, []byte{240, 159, 152, 132}, smile)
}

func TestCanonicalEquivalence(t *testing.T) {
	separate := "\u306f\u309a" // ha + combining handakuten
	single := "\u3071"         // pa

	assert.Len(t, []byte(separate), 6)
	assert.Len(t, []byte(single), 3)
	assert.Equal(t, Bytes(single), Bytes(separate))
	assert.Equal(t, String(single), String(separate))

	assert.Equal(t, Bytes("\u00e9"), Bytes("e\u0301"))
}
