package player

import (
	"bytes"
	"io"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want Format
	}{
		{"default mime no ext", Source{URL: "https://x.test/stream"}, FormatMP3},
		{"default mime flac ext", Source{URL: "/a/b.flac"}, FormatFLAC},
		{"explicit wav mime wins", Source{URL: "/a/b.mp3", MIMEType: "audio/wav"}, FormatWAV},
		{"mime with params", Source{URL: "/a/b", MIMEType: "audio/x-flac; rate=44100"}, FormatFLAC},
		{"ext in url path", Source{URL: "https://x.test/v/clip.WAV?token=1"}, FormatWAV},
		{"unknown mime falls back to ext", Source{URL: "/a/b.mp3", MIMEType: "audio/aac"}, FormatMP3},
		{"opus mime", Source{URL: "https://cdn.example/v/123", MIMEType: "audio/ogg; codecs=opus"}, FormatOgg},
		{"opus ext", Source{URL: "/voice/note.opus"}, FormatOgg},
		{"voice memo ext", Source{URL: "/memos/New Recording.m4a"}, FormatM4A},
		{"m4a mime", Source{URL: "https://x.test/v/9", MIMEType: "audio/x-m4a"}, FormatM4A},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_Unsupported(t *testing.T) {
	_, err := DetectFormat(Source{URL: "/a/b.aac", MIMEType: "audio/aac"})
	require.Error(t, err)
	assert.True(t, IsLoadError(err))
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "MP3", FormatMP3.String())
	assert.Equal(t, "FLAC", FormatFLAC.String())
	assert.Equal(t, "WAV", FormatWAV.String())
	assert.Equal(t, "M4A", FormatM4A.String())
	assert.Equal(t, "Unknown", FormatUnknown.String())
}

func TestSkipID3v2(t *testing.T) {
	t.Run("with tag", func(t *testing.T) {
		// 10-byte header declaring a 5-byte body (syncsafe).
		data := append([]byte("ID3\x04\x00\x00\x00\x00\x00\x05"), []byte("XXXXXfLaC")...)
		r := bytes.NewReader(data)
		require.NoError(t, skipID3v2(r))
		rest, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "fLaC", string(rest))
	})

	t.Run("without tag", func(t *testing.T) {
		r := bytes.NewReader([]byte("fLaC and more bytes"))
		require.NoError(t, skipID3v2(r))
		rest, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "fLaC and more bytes", string(rest))
	})

	t.Run("short input", func(t *testing.T) {
		r := bytes.NewReader([]byte("ID3"))
		require.NoError(t, skipID3v2(r))
		pos, _ := r.Seek(0, io.SeekCurrent)
		assert.Equal(t, int64(0), pos)
	})
}

func TestDecode_UnknownFormat(t *testing.T) {
	_, _, err := decode(memFile{bytes.NewReader(nil)}, FormatUnknown)
	assert.Error(t, err)
}

func TestSupportedMIMETypes(t *testing.T) {
	types := SupportedMIMETypes()
	assert.True(t, slices.IsSorted(types))
	assert.Contains(t, types, "audio/mpeg")
	assert.Contains(t, types, "audio/ogg")
	assert.Len(t, types, len(mimeFormats))
}
