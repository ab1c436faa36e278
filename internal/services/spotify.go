package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"songsearch/internal/config"
	"songsearch/internal/models"
)

// spotifyProvider searches the Spotify catalog with a client-credentials
// token and attaches each track's first-artist genres as artist_genres.
type spotifyProvider struct {
	name   string
	client *HTTPClient
	tokens *TokenCache
}

// NewSpotifyProvider creates the Spotify provider
func NewSpotifyProvider(cfg *config.PlatformConfig, opts Options) Provider {
	client := NewHTTPClient(cfg)
	fetcher := ClientCredentialsFetcher(cfg, client.StandardClient(), opts.Now)

	return &spotifyProvider{
		name:   cfg.Name,
		client: client,
		tokens: NewTokenCache(cfg.Name, fetcher, opts.Now),
	}
}

func (s *spotifyProvider) Name() string {
	return s.name
}

func (s *spotifyProvider) Origin() models.Origin {
	return models.OriginSpotify
}

func (s *spotifyProvider) AcquireToken(ctx context.Context) (string, error) {
	return s.tokens.Get(ctx)
}

func (s *spotifyProvider) FetchRaw(ctx context.Context, term string) ([]RawItem, error) {
	token, err := s.AcquireToken(ctx)
	if err != nil {
		return nil, err
	}

	var result struct {
		Tracks struct {
			Items []RawItem `json:"items"`
		} `json:"tracks"`
	}

	err = s.client.GetJSON(ctx, "/search", map[string]string{
		"q":     term,
		"type":  "track",
		"limit": strconv.Itoa(searchLimit),
	}, token, &result)
	if err != nil {
		return nil, fetchError(s.name, "search", "", err)
	}

	tracks := result.Tracks.Items
	if tracks == nil {
		return []RawItem{}, nil
	}

	// Each goroutine writes only its own index
	enriched := make([]RawItem, len(tracks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichmentWorkers)

	for i, track := range tracks {
		g.Go(func() error {
			out := make(RawItem, len(track)+1)
			for k, v := range track {
				out[k] = v
			}

			artistID := firstArtistID(track)
			if artistID == "" {
				enriched[i] = out
				return nil
			}

			var artist RawItem
			if err := s.client.GetJSON(gctx, "/artists/"+url.PathEscape(artistID), nil, token, &artist); err != nil {
				return fetchError(s.name, "get_artist", fmt.Sprintf("artist %s", artistID), err)
			}

			out["artist_genres"] = artist.Strings("genres")
			enriched[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return enriched, nil
}

func firstArtistID(track RawItem) string {
	artists := track.Objects("artists")
	if len(artists) == 0 {
		return ""
	}
	return artists[0].String("id")
}

func (s *spotifyProvider) Normalize(items []RawItem) []models.Song {
	songs := make([]models.Song, 0, len(items))
	for _, item := range items {
		album := item.Object("album")

		var artists []string
		for _, artist := range item.Objects("artists") {
			artists = append(artists, artist.String("name"))
		}

		cover := ""
		if images := album.Objects("images"); len(images) > 0 {
			cover = images[0].String("url")
		}

		song := models.NewSong(models.OriginSpotify)
		song.Name = item.String("name")
		song.ProviderSongID = item.String("id")
		song.Album = album.String("name")
		song.Artist = strings.Join(artists, ", ")
		song.AlbumCover = cover
		song.YearReleaseDate = yearPrefix(album.String("release_date"))
		song.Genres = strings.Join(item.Strings("artist_genres"), ", ")
		if ms, ok := item.Int("duration_ms"); ok {
			song.Duration = models.DurationMillis(ms)
		} else {
			song.Duration = models.DurationUnavailable
		}
		songs = append(songs, song)
	}
	return songs
}
