package search

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// CacheKeyPrefix namespaces search payloads in shared cache backends
const CacheKeyPrefix = "songsearch:search:"

// CacheKey derives the response cache key from the term and whichever
// filters are present. An absent filter is left out of the signature, so
// it keys differently from a present but empty one.
func CacheKey(term string, album, genre *string) string {
	var sig strings.Builder
	sig.WriteString("term=")
	sig.WriteString(term)
	if album != nil {
		sig.WriteString("|album=")
		sig.WriteString(*album)
	}
	if genre != nil {
		sig.WriteString("|genre=")
		sig.WriteString(*genre)
	}

	sum := sha256.Sum256([]byte(sig.String()))
	return CacheKeyPrefix + hex.EncodeToString(sum[:])
}
