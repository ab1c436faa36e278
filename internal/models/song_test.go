package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSong(t *testing.T) {
	song := NewSong(OriginSpotify)

	assert.Equal(t, OriginSpotify, song.Origin())
	assert.Empty(t, song.Name)
	_, known := song.Duration.Millis()
	assert.False(t, known)
}

func TestSong_MarshalJSON(t *testing.T) {
	song := NewSong(OriginITunes)
	song.Name = "Love Story"
	song.ProviderSongID = "1440806053"
	song.Artist = "Taylor Swift"
	song.Genres = "Country"
	song.Duration = DurationMillis(235280)

	data, err := json.Marshal(song)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	expected := []string{
		"name", "provider_song_id", "album", "artist", "album_cover",
		"year_release_date", "genres", "duration", "origin",
	}
	assert.Len(t, fields, len(expected))
	for _, key := range expected {
		assert.Contains(t, fields, key)
		assert.NotNil(t, fields[key], "field %s should never be null", key)
	}

	assert.Equal(t, "iTunes", fields["origin"])
	assert.Equal(t, float64(235280), fields["duration"])
	assert.Equal(t, "", fields["album"])
}

func TestSong_UnavailableDuration(t *testing.T) {
	song := NewSong(OriginGenius)
	song.Genres = NotAvailable
	song.Duration = DurationUnavailable

	data, err := json.Marshal(song)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"duration":"N/A"`)
	assert.Contains(t, string(data), `"genres":"N/A"`)
}

func TestSong_UnmarshalJSON(t *testing.T) {
	original := NewSong(OriginGenius)
	original.Name = "Bohemian Rhapsody"
	original.Album = "A Night at the Opera"
	original.Duration = DurationUnavailable

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Song
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
	assert.Equal(t, OriginGenius, decoded.Origin())
}

func TestSong_UnmarshalJSON_UnknownOrigin(t *testing.T) {
	var song Song
	err := json.Unmarshal([]byte(`{"name":"x","origin":"Napster"}`), &song)
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantMs    int64
		wantKnown bool
		wantErr   bool
	}{
		{name: "number", input: `200040`, wantMs: 200040, wantKnown: true},
		{name: "numeric string", input: `"355000"`, wantMs: 355000, wantKnown: true},
		{name: "not available", input: `"N/A"`},
		{name: "empty string", input: `""`},
		{name: "null", input: `null`},
		{name: "garbage", input: `"three minutes"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			ms, known := d.Millis()
			assert.Equal(t, tt.wantKnown, known)
			assert.Equal(t, tt.wantMs, ms)
		})
	}
}

func TestDuration_String(t *testing.T) {
	assert.Equal(t, "N/A", DurationUnavailable.String())
	assert.Equal(t, "1000", DurationMillis(1000).String())
}

func TestOrigin_Valid(t *testing.T) {
	assert.True(t, OriginITunes.Valid())
	assert.True(t, OriginSpotify.Valid())
	assert.True(t, OriginGenius.Valid())
	assert.False(t, Origin("Deezer").Valid())
}
