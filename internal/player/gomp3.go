package player

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// go-mp3 emits interleaved little-endian 16-bit stereo.
const mp3FrameBytes = 4

// mp3Stream adapts an mp3.Decoder to beep.StreamSeekCloser.
type mp3Stream struct {
	dec    *mp3.Decoder
	closer io.Closer
	pcm    []byte
	err    error
}

// decodeGoMP3 decodes MP3. go-mp3 needs the reader to be an io.Seeker to
// know the length and to seek.
func decodeGoMP3(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	dec, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, errors.Wrap(err, "mp3")
	}
	if dec.SampleRate() <= 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(dec.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Stream{dec: dec, closer: rc}, format, nil
}

func (s *mp3Stream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	if need := len(samples) * mp3FrameBytes; cap(s.pcm) < need {
		s.pcm = make([]byte, need)
	}
	buf := s.pcm[:len(samples)*mp3FrameBytes]

	read, err := io.ReadFull(s.dec, buf)
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
	default:
		s.err = errors.Wrap(err, "mp3: decode")
		return 0, false
	}

	n = read / mp3FrameBytes
	for i := range n {
		frame := buf[i*mp3FrameBytes:]
		samples[i] = [2]float64{pcm16(frame[0:2]), pcm16(frame[2:4])}
	}
	return n, n > 0
}

func pcm16(b []byte) float64 {
	return float64(int16(binary.LittleEndian.Uint16(b))) / 32768 //nolint:gosec // two's complement sample
}

func (s *mp3Stream) Err() error { return s.err }

// Len is 0 when the decoder could not count samples.
func (s *mp3Stream) Len() int {
	return int(max(s.dec.SampleCount(), 0))
}

func (s *mp3Stream) Position() int {
	return int(s.dec.SamplePosition())
}

// Seek clamps p to the stream. A successful seek clears a previous error.
func (s *mp3Stream) Seek(p int) error {
	p = min(max(p, 0), s.Len())
	if err := s.dec.SeekToSample(int64(p)); err != nil {
		return errors.Wrapf(err, "mp3: seek to %d", p)
	}
	s.err = nil
	return nil
}

func (s *mp3Stream) Close() error {
	return s.closer.Close()
}
