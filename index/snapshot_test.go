package index

import (
	"encoding/json"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_MarshalJSON(t *testing.T) {
	t.Run("Exact", func(t *testing.T) {
		data, err := json.Marshal(&Snapshot{Kind: KindExact, Size: 1, Data: map[string][]uint32{"t": {1, 2}}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"s":1,"d":{"t":[1,2]}}`, string(data))
	})

	t.Run("ExactNilData", func(t *testing.T) {
		data, err := json.Marshal(&Snapshot{Kind: KindExact})
		require.NoError(t, err)
		assert.JSONEq(t, `{"s":0,"d":{}}`, string(data))
	})

	t.Run("NGramNilTries", func(t *testing.T) {
		empty := `{"i":[],"c":{},"p":{}}`
		data, err := json.Marshal(&Snapshot{Kind: KindNGram})
		require.NoError(t, err)
		assert.JSONEq(t, `{"s":0,"m":`+empty+`,"b":`+empty+`,"t":`+empty+`}`, string(data))
	})

	t.Run("NoKind", func(t *testing.T) {
		_, err := json.Marshal(&Snapshot{})
		assert.Error(t, err)
	})
}

func TestSnapshot_UnmarshalJSON(t *testing.T) {
	for name, unmarshal := range map[string]func([]byte, any) error{
		"json":    json.Unmarshal,
		"go-json": gojson.Unmarshal,
	} {
		t.Run(name, func(t *testing.T) {
			var exact Snapshot
			require.NoError(t, unmarshal([]byte(`{"s":2,"d":{"10":[1],"20":[2,3]}}`), &exact))
			assert.Equal(t, KindExact, exact.Kind)
			assert.Equal(t, 2, exact.Size)
			assert.Equal(t, map[string][]uint32{"10": {1}, "20": {2, 3}}, exact.Data)

			var empty Snapshot
			require.NoError(t, unmarshal([]byte(`{"s":0}`), &empty))
			assert.Equal(t, KindExact, empty.Kind)
			assert.NotNil(t, empty.Data)

			var ngram Snapshot
			require.NoError(t, unmarshal([]byte(`{"s":1,"m":{"i":[],"c":{"97":{"i":[4],"c":{},"p":{}}},"p":{}},"b":{},"t":{}}`), &ngram))
			assert.Equal(t, KindNGram, ngram.Kind)
			require.NotNil(t, ngram.Mono)
			require.Contains(t, ngram.Mono.Children, uint8('a'))
			assert.Equal(t, []uint32{4}, ngram.Mono.Children['a'].IDs)

			var bad Snapshot
			assert.Error(t, unmarshal([]byte(`{"s":"x"}`), &bad))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "exact", KindExact.String())
	assert.Equal(t, "ngram", KindNGram.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
