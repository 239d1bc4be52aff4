package tags

import (
	"github.com/bogem/id3v2/v2"
	"github.com/cockroachdb/errors"
)

// readMP3WithID3v2 reads ID3v2 frames directly.
func readMP3WithID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, errors.Wrap(err, "read id3v2")
	}
	defer id3tag.Close()

	t := &Tag{
		Path:   path,
		Title:  id3tag.Title(),
		Artist: id3tag.Artist(),
		Album:  id3tag.Album(),
	}
	if t.Artist == "" {
		t.Artist = getID3TextFrame(id3tag, "TPE2")
	}
	t.Sanitize()
	return t, nil
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}
