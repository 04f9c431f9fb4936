package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTypeRoundTrip(t *testing.T) {
	for ft := FieldTypeString; ft <= FieldTypeTags; ft++ {
		got, err := ParseFieldType(ft.String())
		require.NoError(t, err)
		assert.Equal(t, ft, got)
	}

	_, err := ParseFieldType("boolean[]")
	assert.Error(t, err)
	assert.False(t, FieldType(0).Valid())
}

func TestFieldTypeElemKind(t *testing.T) {
	assert.Equal(t, KindString, FieldTypeTags.ElemKind())
	assert.Equal(t, KindString, FieldTypeTag.ElemKind())
	assert.Equal(t, KindNumber, FieldTypeNumberArray.ElemKind())
	assert.Equal(t, KindBool, FieldTypeBool.ElemKind())
	assert.True(t, FieldTypeTags.IsArray())
	assert.False(t, FieldTypeTag.IsArray())
}

func TestPreferredRank(t *testing.T) {
	order := []FieldType{
		FieldTypeStringArray, FieldTypeString, FieldTypeTags, FieldTypeTag,
		FieldTypeNumberArray, FieldTypeNumber, FieldTypeBool,
	}
	for i := 1; i < len(order); i++ {
		assert.Less(t, order[i-1].PreferredRank(), order[i].PreferredRank())
	}
}

func TestFieldTypeText(t *testing.T) {
	b, err := FieldTypeNumberArray.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "number[]", string(b))

	var ft FieldType
	require.NoError(t, ft.UnmarshalText([]byte("tags")))
	assert.Equal(t, FieldTypeTags, ft)
}
