package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestCacheKey_Deterministic(t *testing.T) {
	a := CacheKey("love", ptr("Fearless"), ptr("pop"))
	b := CacheKey("love", ptr("Fearless"), ptr("pop"))

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, CacheKeyPrefix))
	assert.Len(t, strings.TrimPrefix(a, CacheKeyPrefix), 64)
}

func TestCacheKey_Distinct(t *testing.T) {
	keys := map[string]string{
		"term only":          CacheKey("love", nil, nil),
		"other term":         CacheKey("hate", nil, nil),
		"empty album":        CacheKey("love", ptr(""), nil),
		"album":              CacheKey("love", ptr("pop"), nil),
		"empty genre":        CacheKey("love", nil, ptr("")),
		"genre":              CacheKey("love", nil, ptr("pop")),
		"both":               CacheKey("love", ptr("pop"), ptr("pop")),
		"both empty":         CacheKey("love", ptr(""), ptr("")),
		"album is the genre": CacheKey("love", ptr("x"), ptr("y")),
		"swapped":            CacheKey("love", ptr("y"), ptr("x")),
	}

	seen := make(map[string]string)
	for name, key := range keys {
		if other, dup := seen[key]; dup {
			t.Errorf("%q and %q share key %s", name, other, key)
		}
		seen[key] = name
	}
}
