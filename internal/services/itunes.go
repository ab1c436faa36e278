package services

import (
	"context"
	"strconv"

	"songsearch/internal/config"
	"songsearch/internal/models"
)

// itunesProvider searches the public iTunes catalog. No credentials needed.
type itunesProvider struct {
	name   string
	client *HTTPClient
}

// NewITunesProvider creates the iTunes provider
func NewITunesProvider(cfg *config.PlatformConfig) Provider {
	return &itunesProvider{
		name:   cfg.Name,
		client: NewHTTPClient(cfg),
	}
}

func (p *itunesProvider) Name() string {
	return p.name
}

func (p *itunesProvider) Origin() models.Origin {
	return models.OriginITunes
}

// AcquireToken is a no-op; the catalog is public
func (p *itunesProvider) AcquireToken(ctx context.Context) (string, error) {
	return "", nil
}

func (p *itunesProvider) FetchRaw(ctx context.Context, term string) ([]RawItem, error) {
	var result struct {
		Results []RawItem `json:"results"`
	}

	err := p.client.GetJSON(ctx, "/search", map[string]string{
		"term":   term,
		"media":  "music",
		"entity": "song",
		"limit":  strconv.Itoa(searchLimit),
	}, "", &result)
	if err != nil {
		return nil, fetchError(p.name, "search", "", err)
	}

	if result.Results == nil {
		return []RawItem{}, nil
	}
	return result.Results, nil
}

func (p *itunesProvider) Normalize(items []RawItem) []models.Song {
	songs := make([]models.Song, 0, len(items))
	for _, item := range items {
		song := models.NewSong(models.OriginITunes)
		song.Name = item.String("trackName")
		song.ProviderSongID = item.String("trackId")
		song.Album = item.String("collectionName")
		song.Artist = item.String("artistName")
		song.AlbumCover = item.String("artworkUrl100")
		song.YearReleaseDate = yearPrefix(item.String("releaseDate"))
		song.Genres = item.String("primaryGenreName")
		if ms, ok := item.Int("trackTimeMillis"); ok {
			song.Duration = models.DurationMillis(ms)
		} else {
			song.Duration = models.DurationUnavailable
		}
		songs = append(songs, song)
	}
	return songs
}
