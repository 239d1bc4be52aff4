package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createMinimalMP3 writes one MPEG1 Layer3 frame header plus padding.
func createMinimalMP3(t *testing.T, path string) {
	t.Helper()
	frame := make([]byte, 417)
	frame[0] = 0xff
	frame[1] = 0xfb
	frame[2] = 0x90
	require.NoError(t, os.WriteFile(path, frame, 0o600))
}

func createTaggedMP3(t *testing.T, dir, title, artist string) string {
	t.Helper()
	path := filepath.Join(dir, "note.mp3")
	createMinimalMP3(t, path)

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	tag.SetTitle(title)
	tag.SetArtist(artist)
	tag.SetAlbum("Voice Memos")
	require.NoError(t, tag.Save())
	require.NoError(t, tag.Close())
	return path
}

// createTestFLAC writes a FLAC header with a zeroed STREAMINFO block and a
// Vorbis comment block. It carries no audio frames.
func createTestFLAC(t *testing.T, dir string, fields map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, "note.flac")

	cmts := flacvorbis.New()
	for k, v := range fields {
		require.NoError(t, cmts.Add(k, v))
	}
	block := cmts.Marshal()

	f := &goflac.File{Meta: []*goflac.MetaDataBlock{
		{Type: goflac.StreamInfo, Data: make([]byte, 34)},
		&block,
	}}
	require.NoError(t, f.Save(path))
	return path
}

func TestTag_Caption(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		want string
	}{
		{"artist and title", Tag{Path: "/a/b.mp3", Title: "Standup", Artist: "Ana"}, "Ana - Standup"},
		{"title only", Tag{Path: "/a/b.mp3", Title: "Standup"}, "Standup"},
		{"artist only falls back to file", Tag{Path: "/a/b.mp3", Artist: "Ana"}, "b.mp3"},
		{"nothing", Tag{Path: "/a/b.mp3"}, "b.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tag.Caption())
		})
	}
}

func TestTag_Sanitize(t *testing.T) {
	tag := Tag{Title: "  Stand\x07up ", Artist: "Ana\n", Album: "\tMemos"}
	tag.Sanitize()
	assert.Equal(t, "Standup", tag.Title)
	assert.Equal(t, "Ana", tag.Artist)
	assert.Equal(t, "Memos", tag.Album)
}

func TestRead_MP3(t *testing.T) {
	path := createTaggedMP3(t, t.TempDir(), "Standup", "Ana")

	tag, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Standup", tag.Title)
	assert.Equal(t, "Ana", tag.Artist)
	assert.Equal(t, "Voice Memos", tag.Album)
}

func TestReadMP3WithID3v2(t *testing.T) {
	path := createTaggedMP3(t, t.TempDir(), "Retro", "Bo")

	tag, err := readMP3WithID3v2(path)
	require.NoError(t, err)
	assert.Equal(t, "Bo - Retro", tag.Caption())
}

func TestReadFLACComments(t *testing.T) {
	path := createTestFLAC(t, t.TempDir(), map[string]string{
		flacvorbis.FIELD_TITLE: "Planning",
		"ALBUMARTIST":          "Team",
	})

	tag, err := readFLACComments(path)
	require.NoError(t, err)
	assert.Equal(t, "Planning", tag.Title)
	assert.Equal(t, "Team", tag.Artist, "album artist stands in for a missing artist")
}

func TestReadFLACComments_NotFLAC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.flac")
	require.NoError(t, os.WriteFile(path, []byte("not a flac file"), 0o600))

	_, err := readFLACComments(path)
	assert.Error(t, err)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.Error(t, err)
}

func TestCaption(t *testing.T) {
	dir := t.TempDir()

	tagged := createTaggedMP3(t, dir, "Standup", "Ana")
	assert.Equal(t, "Ana - Standup", Caption(tagged))

	raw := filepath.Join(dir, "memo.wav")
	require.NoError(t, os.WriteFile(raw, []byte("plain bytes"), 0o600))
	assert.Equal(t, "memo.wav", Caption(raw))

	assert.Equal(t, "gone.mp3", Caption(filepath.Join(dir, "gone.mp3")))
}
