// Package tags reads the descriptive tags of local audio files. The player
// uses them to caption a source when no caption is given.
package tags

import (
	"path/filepath"
	"strings"

	"github.com/llehouerou/wavenote/internal/ui/render"
)

// File extensions with a tag fallback reader.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
)

// Tag holds the fields a caption is built from.
type Tag struct {
	Path   string
	Title  string
	Artist string
	Album  string
}

// Caption returns "Artist - Title", the title alone, or the file name when
// the file carries no title.
func (t *Tag) Caption() string {
	switch {
	case t.Title != "" && t.Artist != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return filepath.Base(t.Path)
	}
}

// Sanitize strips control characters and surrounding whitespace.
func (t *Tag) Sanitize() {
	t.Title = clean(t.Title)
	t.Artist = clean(t.Artist)
	t.Album = clean(t.Album)
}

func clean(s string) string {
	return strings.TrimSpace(render.Sanitize(s))
}
