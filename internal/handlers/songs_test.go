package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"songsearch/internal/cache"
	"songsearch/internal/config"
	"songsearch/internal/models"
	"songsearch/internal/search"
	"songsearch/internal/services"
	"songsearch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSearcher is a mock for testing handlers
type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, req search.SearchRequest) ([]byte, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSearcher) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func setupRouter(t *testing.T, searcher Searcher, cfg *config.Config) *testutil.HTTPTestHelper {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	helper := testutil.NewHTTPTestHelper(t)
	helper.SetRouter(NewRouter(searcher, cfg))
	return helper
}

func TestSearchSongs_QueryParameters(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want search.SearchRequest
	}{
		{
			name: "term only",
			url:  "/api/song/?search_term=love",
			want: search.SearchRequest{Term: "love"},
		},
		{
			name: "with album and genre",
			url:  "/api/song/?search_term=love&album=Lemonade&genre=pop",
			want: search.SearchRequest{Term: "love", Album: strPtr("Lemonade"), Genre: strPtr("pop")},
		},
		{
			name: "empty filter is present",
			url:  "/api/song/?search_term=love&genre=",
			want: search.SearchRequest{Term: "love", Genre: strPtr("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := new(MockSearcher)
			searcher.On("Search", mock.Anything, tt.want).Return([]byte(`[]`), nil)

			helper := setupRouter(t, searcher, nil)
			recorder := helper.GetJSON(tt.url)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
			assert.JSONEq(t, `[]`, recorder.Body.String())
			searcher.AssertExpectations(t)
		})
	}
}

func TestSearchSongs_PayloadVerbatim(t *testing.T) {
	payload := []byte(`[{"name":"Love","origin":"iTunes"}]`)
	searcher := new(MockSearcher)
	searcher.On("Search", mock.Anything, mock.Anything).Return(payload, nil)

	helper := setupRouter(t, searcher, nil)
	recorder := helper.GetJSON("/api/song/?search_term=love")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, payload, recorder.Body.Bytes())
}

func TestSearchSongs_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing term",
			err:        search.ErrSearchTermRequired,
			wantStatus: http.StatusBadRequest,
			wantError:  "Search term is required",
		},
		{
			name:       "engine failure",
			err:        errors.New("encode failed"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to search songs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := new(MockSearcher)
			searcher.On("Search", mock.Anything, mock.Anything).Return(nil, tt.err)

			helper := setupRouter(t, searcher, nil)
			recorder := helper.GetJSON("/api/song/?search_term=x")

			helper.AssertErrorResponse(recorder, tt.wantStatus, tt.wantError)
		})
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"healthy", nil, http.StatusOK, "ok"},
		{"cache down", errors.New("connection refused"), http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := new(MockSearcher)
			searcher.On("Health", mock.Anything).Return(tt.err)

			helper := setupRouter(t, searcher, nil)
			recorder := helper.GetJSON("/healthz")

			var body map[string]interface{}
			helper.AssertJSONResponse(recorder, tt.wantStatus, &body)
			assert.Equal(t, tt.wantBody, body["status"])
		})
	}
}

func TestSearchSongs_ThroughEngine(t *testing.T) {
	itunes := testutil.NewMockProvider(config.PlatformITunes, models.OriginITunes)
	spotify := testutil.NewMockProvider(config.PlatformSpotify, models.OriginSpotify)

	testutil.ExpectProviderSongs(itunes, "love", []models.Song{
		testutil.NewSongBuilder(models.OriginITunes).WithName("Love Story").WithArtist("Taylor Swift").WithGenres("Country").Build(),
	})
	testutil.ExpectProviderSongs(spotify, "love", []models.Song{
		testutil.NewSongBuilder(models.OriginSpotify).WithName("Love").WithArtist("Kendrick Lamar").WithGenres("hip hop, rap").Build(),
	})

	engine := search.NewEngine(
		services.NewAggregator([]services.Provider{itunes, spotify}),
		cache.NewMemoryCache(10),
		0,
	)

	helper := setupRouter(t, engine, nil)

	var songs []map[string]interface{}
	helper.AssertJSONResponse(helper.GetJSON("/api/song/?search_term=love&genre=rap"), http.StatusOK, &songs)
	require.Len(t, songs, 1)
	assert.Equal(t, "Love", songs[0]["name"])
	assert.Equal(t, "Spotify", songs[0]["origin"])

	// served from cache the second time
	recorder := helper.GetJSON("/api/song/?search_term=love&genre=rap")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &songs))
	assert.Len(t, songs, 1)
	itunes.AssertNumberOfCalls(t, "FetchRaw", 1)
	spotify.AssertNumberOfCalls(t, "FetchRaw", 1)

	helper.AssertErrorResponse(helper.GetJSON("/api/song/?search_term=%20%21%21"), http.StatusBadRequest, "Search term is required")
}
