package player

import (
	"context"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// ALAC packets hold at most this many frames per channel.
const alacFrameSize = 4096

var errUnknownM4ACodec = errors.New("m4a: unsupported codec (not AAC or ALAC)")

// m4aSamples is the part of the MP4 sample table the stream walks.
type m4aSamples interface {
	SampleCount() int
	ReadSample(i int) ([]byte, error)
	SampleTime(i int) time.Duration
	SeekToTime(t time.Duration) int
}

// frameDecoder appends the stereo frames of one MP4 sample to dst.
type frameDecoder func(sample []byte, dst [][2]float64) ([][2]float64, error)

// m4aStream decodes an MP4 sample table one sample at a time.
type m4aStream struct {
	samples m4aSamples
	decode  frameDecoder
	release func()
	closer  io.Closer
	rate    int
	length  int

	next int
	buf  [][2]float64
	off  int
	err  error
}

// decodeM4A opens an M4A container holding AAC or ALAC. iOS voice memos
// are AAC in M4A.
func decodeM4A(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	container, err := m4a.Open(rc)
	if err != nil {
		return nil, beep.Format{}, errors.Wrap(err, "m4a")
	}

	rate := int(container.SampleRate())
	channels := int(container.Channels())
	bits := int(container.SampleSize())
	if rate <= 0 || channels <= 0 {
		return nil, beep.Format{}, errors.Newf("m4a: invalid stream (%d Hz, %d channels)", rate, channels)
	}

	s := &m4aStream{
		samples: container,
		release: func() {},
		closer:  rc,
		rate:    rate,
		length:  int(container.Duration().Seconds() * float64(rate)),
	}
	format := beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 2, Precision: 2}

	switch container.Codec() {
	case m4a.CodecAAC:
		ctx := context.Background()
		dec, err := faad2.NewDecoder(ctx)
		if err != nil {
			return nil, beep.Format{}, errors.Wrap(err, "aac: create decoder")
		}
		if err := dec.Init(ctx, container.CodecConfig()); err != nil {
			dec.Close(ctx)
			return nil, beep.Format{}, errors.Wrap(err, "aac: init decoder")
		}
		s.decode = func(sample []byte, dst [][2]float64) ([][2]float64, error) {
			pcm, err := dec.Decode(ctx, sample)
			if err != nil {
				return dst, errors.Wrap(err, "aac: decode")
			}
			return appendInt16Frames(dst, pcm, channels), nil
		}
		s.release = func() { dec.Close(ctx) }
	case m4a.CodecALAC:
		dec, err := alac.NewWithConfig(alac.Config{
			SampleRate:  rate,
			SampleSize:  bits,
			NumChannels: channels,
			FrameSize:   alacFrameSize,
		})
		if err != nil {
			return nil, beep.Format{}, errors.Wrap(err, "alac: create decoder")
		}
		if bits == 24 {
			format.Precision = 3
		}
		s.decode = func(sample []byte, dst [][2]float64) ([][2]float64, error) {
			return appendPCMFrames(dst, dec.Decode(sample), channels, bits/8), nil
		}
	default:
		return nil, beep.Format{}, errUnknownM4ACodec
	}
	return s, format, nil
}

func (s *m4aStream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	for n < len(samples) {
		if s.off < len(s.buf) {
			c := copy(samples[n:], s.buf[s.off:])
			s.off += c
			n += c
			continue
		}
		if s.next >= s.samples.SampleCount() {
			break
		}
		data, err := s.samples.ReadSample(s.next)
		if err != nil {
			s.err = errors.Wrapf(err, "m4a: read sample %d", s.next)
			break
		}
		s.next++
		s.buf, err = s.decode(data, s.buf[:0])
		s.off = 0
		if err != nil {
			s.err = err
			break
		}
	}
	return n, n > 0
}

func (s *m4aStream) Err() error { return s.err }

func (s *m4aStream) Len() int { return s.length }

// Position counts the frames handed out, not the frames decoded.
func (s *m4aStream) Position() int {
	decoded := int(s.samples.SampleTime(s.next).Seconds() * float64(s.rate))
	return max(decoded-(len(s.buf)-s.off), 0)
}

// Seek lands on the MP4 sample containing p.
func (s *m4aStream) Seek(p int) error {
	p = min(max(p, 0), s.length)
	at := time.Duration(float64(p) / float64(s.rate) * float64(time.Second))
	s.next = s.samples.SeekToTime(at)
	s.buf = s.buf[:0]
	s.off = 0
	s.err = nil
	return nil
}

func (s *m4aStream) Close() error {
	s.release()
	return s.closer.Close()
}

// appendInt16Frames converts interleaved 16-bit samples. Mono is duplicated
// and channels past the second are dropped.
func appendInt16Frames(dst [][2]float64, pcm []int16, channels int) [][2]float64 {
	for i := 0; i+channels <= len(pcm); i += channels {
		left := float64(pcm[i]) / 32768
		right := left
		if channels > 1 {
			right = float64(pcm[i+1]) / 32768
		}
		dst = append(dst, [2]float64{left, right})
	}
	return dst
}

// appendPCMFrames converts interleaved little-endian 16 or 24-bit samples.
func appendPCMFrames(dst [][2]float64, data []byte, channels, width int) [][2]float64 {
	sample := pcm16
	if width == 3 {
		sample = pcm24
	}
	step := channels * width
	for i := 0; i+step <= len(data); i += step {
		left := sample(data[i:])
		right := left
		if channels > 1 {
			right = sample(data[i+width:])
		}
		dst = append(dst, [2]float64{left, right})
	}
	return dst
}

func pcm24(b []byte) float64 {
	v := int32(b[0]) | int32(b[1])<<8 | int32(int8(b[2]))<<16 //nolint:gosec // sign extension
	return float64(v) / (1 << 23)
}
