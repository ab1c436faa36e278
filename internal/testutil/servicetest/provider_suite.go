package servicetest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songsearch/internal/models"
	"songsearch/internal/services"
)

// songFields are the keys every serialized song must carry
var songFields = []string{
	"name", "provider_song_id", "album", "artist", "album_cover",
	"year_release_date", "genres", "duration", "origin",
}

// ProviderTestSuite checks the behavior every provider shares
type ProviderTestSuite struct {
	Provider     services.Provider
	PlatformName string
	Origin       models.Origin
	Term         string
	WantSongs    int // songs the mock catalog returns for Term

	// Failing is the same provider pointed at a catalog that errors
	Failing     services.Provider
	FailingKind error
}

// RunContractSuite runs all contract tests for a provider
func (suite *ProviderTestSuite) RunContractSuite(t *testing.T) {
	t.Run("Name", suite.TestName)
	t.Run("NormalizeEmpty", suite.TestNormalizeEmpty)
	t.Run("FetchAndNormalize", suite.TestFetchAndNormalize)

	if suite.Failing != nil {
		t.Run("Failure", suite.TestFailure)
	}
}

// TestName checks the platform name and origin tag
func (suite *ProviderTestSuite) TestName(t *testing.T) {
	assert.Equal(t, suite.PlatformName, suite.Provider.Name())
	assert.Equal(t, suite.Origin, suite.Provider.Origin())
	assert.True(t, suite.Provider.Origin().Valid())
}

// TestNormalizeEmpty checks that no items yield an empty, non-nil slice
func (suite *ProviderTestSuite) TestNormalizeEmpty(t *testing.T) {
	songs := suite.Provider.Normalize(nil)
	assert.NotNil(t, songs)
	assert.Empty(t, songs)
}

// TestFetchAndNormalize runs the provider against its mock catalog
func (suite *ProviderTestSuite) TestFetchAndNormalize(t *testing.T) {
	ctx := context.Background()

	items, err := suite.Provider.FetchRaw(ctx, suite.Term)
	require.NoError(t, err)
	require.Len(t, items, suite.WantSongs)

	songs := suite.Provider.Normalize(items)
	require.Len(t, songs, suite.WantSongs)

	// Normalize has no side effects
	assert.Equal(t, songs, suite.Provider.Normalize(items))

	for _, song := range songs {
		assert.Equal(t, suite.Origin, song.Origin())

		data, err := json.Marshal(song)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		for _, field := range songFields {
			value, ok := fields[field]
			assert.True(t, ok, "missing field %s", field)
			assert.NotNil(t, value, "null field %s", field)
		}
	}
}

// TestFailure checks that a failing catalog yields a typed error
func (suite *ProviderTestSuite) TestFailure(t *testing.T) {
	items, err := suite.Failing.FetchRaw(context.Background(), suite.Term)
	require.Error(t, err)
	assert.Nil(t, items)

	if suite.FailingKind != nil {
		assert.True(t, errors.Is(err, suite.FailingKind), "want %v, got %v", suite.FailingKind, err)
	}

	var platformErr *services.PlatformError
	require.ErrorAs(t, err, &platformErr)
	assert.Equal(t, suite.PlatformName, platformErr.Platform)
}
