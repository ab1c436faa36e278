package search

import (
	"sort"
	"strings"

	"songsearch/internal/models"
)

// Assemble filters and orders aggregated songs. The album filter is an
// exact, case-sensitive match; the genre filter is a case-insensitive
// substring match. Songs are stably sorted by name, then artist. The
// input slice is never modified.
func Assemble(songs []models.Song, album, genre *string) []models.Song {
	var lowerGenre string
	if genre != nil {
		lowerGenre = strings.ToLower(*genre)
	}

	out := make([]models.Song, 0, len(songs))
	for _, song := range songs {
		if album != nil && song.Album != *album {
			continue
		}
		if genre != nil && !strings.Contains(strings.ToLower(song.Genres), lowerGenre) {
			continue
		}
		out = append(out, song)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Artist < out[j].Artist
	})

	return out
}
