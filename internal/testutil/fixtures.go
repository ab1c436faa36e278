package testutil

import (
	"songsearch/internal/config"
	"songsearch/internal/models"
)

// SongBuilder provides a fluent interface for creating test songs
type SongBuilder struct {
	song models.Song
}

// NewSongBuilder creates a new song builder with default values
func NewSongBuilder(origin models.Origin) *SongBuilder {
	song := models.NewSong(origin)
	song.Name = "Test Song"
	song.Artist = "Test Artist"
	song.Duration = models.DurationUnavailable
	return &SongBuilder{song: song}
}

// WithName sets the song name
func (b *SongBuilder) WithName(name string) *SongBuilder {
	b.song.Name = name
	return b
}

// WithID sets the provider song id
func (b *SongBuilder) WithID(id string) *SongBuilder {
	b.song.ProviderSongID = id
	return b
}

// WithArtist sets the song artist
func (b *SongBuilder) WithArtist(artist string) *SongBuilder {
	b.song.Artist = artist
	return b
}

// WithAlbum sets the song album
func (b *SongBuilder) WithAlbum(album string) *SongBuilder {
	b.song.Album = album
	return b
}

// WithGenres sets the genres string
func (b *SongBuilder) WithGenres(genres string) *SongBuilder {
	b.song.Genres = genres
	return b
}

// WithYear sets the release year
func (b *SongBuilder) WithYear(year string) *SongBuilder {
	b.song.YearReleaseDate = year
	return b
}

// WithDuration sets the song duration in milliseconds
func (b *SongBuilder) WithDuration(durationMs int64) *SongBuilder {
	b.song.Duration = models.DurationMillis(durationMs)
	return b
}

// Build returns the constructed song
func (b *SongBuilder) Build() models.Song {
	return b.song
}

// PlatformConfig returns a configuration for a built-in platform pointed
// at a mock server, with rate limiting disabled
func PlatformConfig(name, baseURL string) *config.PlatformConfig {
	cfg := &config.PlatformConfig{
		Name:       name,
		Enabled:    true,
		AuthMethod: config.AuthMethodNone,
		BaseURL:    baseURL,
		Timeout:    5,
	}

	if name != config.PlatformITunes {
		cfg.AuthMethod = config.AuthMethodOAuth2
		cfg.ClientID = "test-client-id"
		cfg.ClientSecret = "test-client-secret"
		cfg.TokenURL = baseURL + TokenPath
	}

	return cfg
}

// TokenPath is where mock catalogs serve the token exchange
const TokenPath = "/oauth/token"

// TokenResponse creates a client-credentials token response
func TokenResponse(token string, expiresIn int) map[string]interface{} {
	return map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   expiresIn,
	}
}

// ITunesTrack creates an iTunes search result
func ITunesTrack(trackID int64, name, artist, album, genre string, durationMs int64) map[string]interface{} {
	return map[string]interface{}{
		"wrapperType":      "track",
		"kind":             "song",
		"trackId":          trackID,
		"trackName":        name,
		"artistName":       artist,
		"collectionName":   album,
		"artworkUrl100":    "https://is1-ssl.mzstatic.com/image/100x100bb.jpg",
		"releaseDate":      "2016-05-20T07:00:00Z",
		"primaryGenreName": genre,
		"trackTimeMillis":  durationMs,
	}
}

// ITunesSearchResponse creates an iTunes search response
func ITunesSearchResponse(tracks ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"resultCount": len(tracks),
		"results":     tracks,
	}
}

// SpotifyTrack creates a Spotify track item with one artist
func SpotifyTrack(trackID, name, artistID, artist, album string, durationMs int64) map[string]interface{} {
	return map[string]interface{}{
		"id":   trackID,
		"name": name,
		"artists": []map[string]interface{}{
			{"id": artistID, "name": artist},
		},
		"album": map[string]interface{}{
			"name":         album,
			"release_date": "2017-03-03",
			"images": []map[string]interface{}{
				{"url": "https://i.scdn.co/image/640.jpg", "height": 640, "width": 640},
				{"url": "https://i.scdn.co/image/300.jpg", "height": 300, "width": 300},
			},
		},
		"duration_ms": durationMs,
		"popularity":  75,
	}
}

// SpotifySearchResponse creates a Spotify search response
func SpotifySearchResponse(tracks ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"tracks": map[string]interface{}{
			"items": tracks,
			"total": len(tracks),
		},
	}
}

// SpotifyArtistResponse creates a Spotify artist response
func SpotifyArtistResponse(artistID string, genres ...string) map[string]interface{} {
	if genres == nil {
		genres = []string{}
	}
	return map[string]interface{}{
		"id":     artistID,
		"genres": genres,
	}
}

// GeniusHit creates a Genius search hit. A zero year omits the release date.
func GeniusHit(songID int64, title, artist string, year int) map[string]interface{} {
	result := map[string]interface{}{
		"id":                 songID,
		"title":              title,
		"song_art_image_url": "https://images.genius.com/art.jpg",
		"primary_artist":     map[string]interface{}{"id": 1, "name": artist},
	}
	if year != 0 {
		result["release_date_components"] = map[string]interface{}{
			"year": year, "month": 1, "day": 1,
		}
	}
	return map[string]interface{}{
		"type":   "song",
		"result": result,
	}
}

// GeniusSearchResponse creates a Genius search response
func GeniusSearchResponse(hits ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"meta":     map[string]interface{}{"status": 200},
		"response": map[string]interface{}{"hits": hits},
	}
}

// GeniusSongResponse creates a Genius song detail response. A nil album
// serializes as "album": null.
func GeniusSongResponse(songID int64, album map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"meta": map[string]interface{}{"status": 200},
		"response": map[string]interface{}{
			"song": map[string]interface{}{
				"id":    songID,
				"album": album,
			},
		},
	}
}
