package player

import (
	"io"
	"maps"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
)

// Format is a decodable audio container.
type Format int

const (
	FormatUnknown Format = iota
	FormatMP3
	FormatFLAC
	FormatWAV
	FormatOgg
	FormatM4A
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "MP3"
	case FormatFLAC:
		return "FLAC"
	case FormatWAV:
		return "WAV"
	case FormatOgg:
		return "Ogg"
	case FormatM4A:
		return "M4A"
	default:
		return "Unknown"
	}
}

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
	extOGA  = ".oga"
	extOPUS = ".opus"
	extM4A  = ".m4a"
)

var mimeFormats = map[string]Format{
	"audio/mpeg":      FormatMP3,
	"audio/mp3":       FormatMP3,
	"audio/mpeg3":     FormatMP3,
	"audio/flac":      FormatFLAC,
	"audio/x-flac":    FormatFLAC,
	"audio/wav":       FormatWAV,
	"audio/wave":      FormatWAV,
	"audio/x-wav":     FormatWAV,
	"audio/ogg":       FormatOgg,
	"audio/opus":      FormatOgg,
	"audio/vorbis":    FormatOgg,
	"application/ogg": FormatOgg,
	"audio/mp4":       FormatM4A,
	"audio/m4a":       FormatM4A,
	"audio/x-m4a":     FormatM4A,
}

var extFormats = map[string]Format{
	extMP3:  FormatMP3,
	extFLAC: FormatFLAC,
	extWAV:  FormatWAV,
	extOGG:  FormatOgg,
	extOGA:  FormatOgg,
	extOPUS: FormatOgg,
	extM4A:  FormatM4A,
}

// SupportedMIMETypes lists the MIME types DetectFormat recognizes, sorted.
func SupportedMIMETypes() []string {
	return slices.Sorted(maps.Keys(mimeFormats))
}

// DetectFormat picks a decoder for src. An explicit, non-default MIME hint
// wins; otherwise the file extension decides, then the default hint.
func DetectFormat(src Source) (Format, error) {
	src = src.Normalize()
	mimeType, _, _ := strings.Cut(src.MIMEType, ";")
	mimeType = strings.TrimSpace(mimeType)

	if f, ok := mimeFormats[mimeType]; ok && mimeType != DefaultMIMEType {
		return f, nil
	}
	if f, ok := extFormats[sourceExt(src)]; ok {
		return f, nil
	}
	if f, ok := mimeFormats[mimeType]; ok {
		return f, nil
	}
	return FormatUnknown, loadError(errors.Newf("unsupported media type %q", src.MIMEType), "detect format")
}

func sourceExt(src Source) string {
	p := src.URL
	if u, err := url.Parse(src.URL); err == nil && u.Path != "" {
		p = u.Path
	}
	return strings.ToLower(filepath.Ext(p))
}

// decode opens a streamer over r. On error r is left open for the caller.
func decode(r io.ReadSeekCloser, f Format) (beep.StreamSeekCloser, beep.Format, error) {
	switch f {
	case FormatMP3:
		return decodeGoMP3(r)
	case FormatFLAC:
		// Some taggers prepend an ID3v2 tag the FLAC decoder does not expect.
		if err := skipID3v2(r); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(r)
	case FormatWAV:
		return wav.Decode(r)
	case FormatOgg:
		return decodeOgg(r)
	case FormatM4A:
		return decodeM4A(r)
	default:
		return nil, beep.Format{}, errors.Newf("no decoder for %s", f)
	}
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of r.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Syncsafe integer: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
