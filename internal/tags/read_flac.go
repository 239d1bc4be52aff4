package tags

import (
	"github.com/cockroachdb/errors"
	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

// readFLACComments reads the Vorbis comment block of a FLAC file.
func readFLACComments(path string) (*Tag, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "parse flac")
	}

	t := &Tag{Path: path}
	for _, meta := range f.Meta {
		if meta.Type != goflac.VorbisComment {
			continue
		}
		cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return nil, errors.Wrap(err, "parse vorbis comments")
		}
		t.Title = first(cmts, flacvorbis.FIELD_TITLE)
		t.Artist = first(cmts, flacvorbis.FIELD_ARTIST)
		t.Album = first(cmts, flacvorbis.FIELD_ALBUM)
		if t.Artist == "" {
			t.Artist = first(cmts, "ALBUMARTIST")
		}
		break
	}
	t.Sanitize()
	return t, nil
}

func first(cmts *flacvorbis.MetaDataBlockVorbisComment, key string) string {
	values, err := cmts.Get(key)
	if err != nil || len(values) == 0 {
		return ""
	}
	return values[0]
}
