package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"songsearch/internal/config"
	"songsearch/internal/models"
)

// geniusProvider searches Genius and fetches each hit's song detail for
// the album name. Genius has no genre or duration data.
type geniusProvider struct {
	name   string
	client *HTTPClient
	tokens *TokenCache
}

// NewGeniusProvider creates the Genius provider
func NewGeniusProvider(cfg *config.PlatformConfig, opts Options) Provider {
	client := NewHTTPClient(cfg)
	fetcher := ClientCredentialsFetcher(cfg, client.StandardClient(), opts.Now)

	return &geniusProvider{
		name:   cfg.Name,
		client: client,
		tokens: NewTokenCache(cfg.Name, fetcher, opts.Now),
	}
}

func (g *geniusProvider) Name() string {
	return g.name
}

func (g *geniusProvider) Origin() models.Origin {
	return models.OriginGenius
}

func (g *geniusProvider) AcquireToken(ctx context.Context) (string, error) {
	return g.tokens.Get(ctx)
}

// FetchRaw returns the hit results, each with album and
// year_release_date attached
func (g *geniusProvider) FetchRaw(ctx context.Context, term string) ([]RawItem, error) {
	token, err := g.AcquireToken(ctx)
	if err != nil {
		return nil, err
	}

	var result struct {
		Response struct {
			Hits []struct {
				Result RawItem `json:"result"`
			} `json:"hits"`
		} `json:"response"`
	}

	err = g.client.GetJSON(ctx, "/search", map[string]string{
		"q":        term,
		"per_page": strconv.Itoa(searchLimit),
	}, token, &result)
	if err != nil {
		return nil, fetchError(g.name, "search", "", err)
	}

	hits := result.Response.Hits
	enriched := make([]RawItem, len(hits))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(enrichmentWorkers)

	for i, hit := range hits {
		eg.Go(func() error {
			song := make(RawItem, len(hit.Result)+2)
			for k, v := range hit.Result {
				song[k] = v
			}

			id := song.String("id")
			var detail struct {
				Response struct {
					Song RawItem `json:"song"`
				} `json:"response"`
			}
			if err := g.client.GetJSON(egctx, "/songs/"+url.PathEscape(id), nil, token, &detail); err != nil {
				return fetchError(g.name, "get_song", fmt.Sprintf("song %s", id), err)
			}

			song["album"] = albumName(detail.Response.Song)
			song["year_release_date"] = song.Object("release_date_components").String("year")
			enriched[i] = song
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return enriched, nil
}

// albumName is "N/A" when the detail has no album (missing, null or an
// empty object) and "" when the album has no name
func albumName(detail RawItem) string {
	album := detail.Object("album")
	if len(album) == 0 {
		return models.NotAvailable
	}
	return album.String("name")
}

func (g *geniusProvider) Normalize(items []RawItem) []models.Song {
	songs := make([]models.Song, 0, len(items))
	for _, item := range items {
		song := models.NewSong(models.OriginGenius)
		song.Name = item.String("title")
		song.ProviderSongID = item.String("id")
		song.Album = item.String("album")
		song.Artist = item.Object("primary_artist").String("name")
		song.AlbumCover = item.String("song_art_image_url")
		song.YearReleaseDate = item.String("year_release_date")
		song.Genres = models.NotAvailable
		song.Duration = models.DurationUnavailable
		songs = append(songs, song)
	}
	return songs
}
