package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// NotAvailable is the placeholder a provider reports for fields it does not expose
const NotAvailable = "N/A"

// Origin identifies the catalog that produced a song
type Origin string

const (
	OriginITunes  Origin = "iTunes"
	OriginSpotify Origin = "Spotify"
	OriginGenius  Origin = "Genius"
)

// Valid reports whether o is one of the known catalogs
func (o Origin) Valid() bool {
	switch o {
	case OriginITunes, OriginSpotify, OriginGenius:
		return true
	}
	return false
}

// Song is the provider-agnostic record returned by a search.
// The origin is fixed when the song is built and can only be read afterwards.
type Song struct {
	Name            string
	ProviderSongID  string
	Album           string
	Artist          string
	AlbumCover      string
	YearReleaseDate string
	Genres          string
	Duration        Duration

	origin Origin
}

// NewSong creates an empty song tagged with its origin
func NewSong(origin Origin) Song {
	return Song{origin: origin}
}

// Origin returns the catalog that produced the song
func (s Song) Origin() Origin {
	return s.origin
}

// songJSON is the wire shape of a Song
type songJSON struct {
	Name            string   `json:"name"`
	ProviderSongID  string   `json:"provider_song_id"`
	Album           string   `json:"album"`
	Artist          string   `json:"artist"`
	AlbumCover      string   `json:"album_cover"`
	YearReleaseDate string   `json:"year_release_date"`
	Genres          string   `json:"genres"`
	Duration        Duration `json:"duration"`
	Origin          Origin   `json:"origin"`
}

// MarshalJSON writes every field, including the origin
func (s Song) MarshalJSON() ([]byte, error) {
	return json.Marshal(songJSON{
		Name:            s.Name,
		ProviderSongID:  s.ProviderSongID,
		Album:           s.Album,
		Artist:          s.Artist,
		AlbumCover:      s.AlbumCover,
		YearReleaseDate: s.YearReleaseDate,
		Genres:          s.Genres,
		Duration:        s.Duration,
		Origin:          s.origin,
	})
}

// UnmarshalJSON reads a song previously written by MarshalJSON
func (s *Song) UnmarshalJSON(data []byte) error {
	var raw songJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.Origin.Valid() {
		return fmt.Errorf("unknown song origin %q", raw.Origin)
	}

	*s = Song{
		Name:            raw.Name,
		ProviderSongID:  raw.ProviderSongID,
		Album:           raw.Album,
		Artist:          raw.Artist,
		AlbumCover:      raw.AlbumCover,
		YearReleaseDate: raw.YearReleaseDate,
		Genres:          raw.Genres,
		Duration:        raw.Duration,
		origin:          raw.Origin,
	}
	return nil
}

// Duration is a track length in milliseconds, or unknown when the catalog
// does not report one. Unknown durations serialize as "N/A".
type Duration struct {
	ms    int64
	known bool
}

// DurationMillis returns a known duration
func DurationMillis(ms int64) Duration {
	return Duration{ms: ms, known: true}
}

// DurationUnavailable is the duration of a song whose catalog has none
var DurationUnavailable = Duration{}

// Millis returns the duration and whether it is known
func (d Duration) Millis() (int64, bool) {
	return d.ms, d.known
}

func (d Duration) String() string {
	if !d.known {
		return NotAvailable
	}
	return strconv.FormatInt(d.ms, 10)
}

// MarshalJSON emits a number for known durations and "N/A" otherwise
func (d Duration) MarshalJSON() ([]byte, error) {
	if !d.known {
		return []byte(`"` + NotAvailable + `"`), nil
	}
	return []byte(strconv.FormatInt(d.ms, 10)), nil
}

// UnmarshalJSON accepts a number, a numeric string, "N/A" or an empty string
func (d *Duration) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = DurationUnavailable
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" || s == NotAvailable {
			*d = DurationUnavailable
			return nil
		}
		data = []byte(s)
	}

	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", data, err)
	}
	*d = DurationMillis(ms)
	return nil
}
