package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"songsearch/internal/services"
)

func TestRawItem_Accessors(t *testing.T) {
	item := decodeItem(t, `{
		"id": 42,
		"big": 1440857781,
		"float": 12.5,
		"title": "x",
		"null": null,
		"nested": {"name": "inner"},
		"list": [{"name": "a"}, "skip", {"name": "b"}],
		"tags": ["pop", 3, "rock"]
	}`)

	assert.Equal(t, "42", item.String("id"))
	assert.Equal(t, "1440857781", item.String("big"))
	assert.Equal(t, "12.5", item.String("float"))
	assert.Equal(t, "x", item.String("title"))
	assert.Equal(t, "", item.String("null"))
	assert.Equal(t, "", item.String("nested"))
	assert.Equal(t, "", item.String("absent"))

	n, ok := item.Int("id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	n, ok = item.Int("float")
	assert.True(t, ok)
	assert.Equal(t, int64(12), n)

	_, ok = item.Int("title")
	assert.False(t, ok)

	assert.Equal(t, "inner", item.Object("nested").String("name"))
	assert.Nil(t, item.Object("title"))
	assert.Equal(t, "", item.Object("absent").String("name"))

	list := item.Objects("list")
	assert.Len(t, list, 2)
	assert.Equal(t, "b", list[1].String("name"))

	assert.Equal(t, []string{"pop", "rock"}, item.Strings("tags"))
	assert.Nil(t, item.Strings("title"))

	assert.True(t, item.Has("title"))
	assert.False(t, item.Has("null"))
	assert.False(t, item.Has("absent"))
}

func TestRawItem_PlainFloats(t *testing.T) {
	item := services.RawItem{"id": float64(7), "ms": float64(1000)}

	assert.Equal(t, "7", item.String("id"))
	n, ok := item.Int("ms")
	assert.True(t, ok)
	assert.Equal(t, int64(1000), n)
}
