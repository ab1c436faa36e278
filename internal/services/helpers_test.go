package services_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"songsearch/internal/services"
)

// decodeItem decodes a raw catalog object the way the HTTP client does
func decodeItem(t *testing.T, raw string) services.RawItem {
	t.Helper()

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var item services.RawItem
	require.NoError(t, dec.Decode(&item))
	return item
}
