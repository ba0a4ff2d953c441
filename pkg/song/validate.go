package song

import (
	"fmt"
	"strings"
	"unicode"
)

var genreTypes = []string{
	"alternative",
	"blues",
	"classical",
	"country",
	"electronic",
	"folkmusic",
	"hiphop",
	"holiday",
	"instrumental",
	"jazz",
	"karaoke",
	"metal",
	"newage",
	"pop",
	"reggae",
	"rock",
	"soul",
	"soundtrack",
	"world",
}

// Validate checks the mandatory song fields before any write. Spaces in the
// title are ignored for the alphanumeric check, so "Bohemian Rhapsody" passes.
func Validate(title, artist, genre string) error {
	compact := strings.ReplaceAll(title, " ", "")
	if compact == "" || !isAlphanumeric(compact) {
		return fmt.Errorf("%w: the title can only contain letters and/or numbers", ErrInvalidInput)
	}

	if strings.TrimSpace(artist) == "" {
		return fmt.Errorf("%w: the artist cannot be empty", ErrInvalidInput)
	}

	if !validGenre(genre) {
		return fmt.Errorf("%w: unknown genre %q", ErrInvalidInput, genre)
	}
	return nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func validGenre(genre string) bool {
	genre = strings.ToLower(genre)
	for _, g := range genreTypes {
		if g == genre {
			return true
		}
	}
	return false
}
