package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavenote/internal/errmsg"
)

// Read reads the tags of the file at path.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3WithID3v2(path)
		case ExtFLAC:
			return readFLACComments(path)
		}
		return nil, errors.Wrapf(err, "read tags of %s", filepath.Base(path))
	}

	t := &Tag{
		Path:   path,
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
	}
	if t.Artist == "" {
		t.Artist = m.AlbumArtist()
	}
	t.Sanitize()
	return t, nil
}

// Caption returns the caption for the file at path, falling back to the file
// name when it has no readable tags.
func Caption(path string) string {
	t, err := Read(path)
	if err != nil {
		log.Debug().Msg(errmsg.FormatWith(errmsg.OpTagsRead, filepath.Base(path), err))
		return filepath.Base(path)
	}
	return t.Caption()
}
