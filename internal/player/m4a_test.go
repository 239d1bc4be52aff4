package player

import (
	"bytes"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSamples holds one-byte samples at 1 kHz. Each decodes to perSamp
// frames carrying the sample byte.
type fakeSamples struct {
	data    [][]byte
	failAt  int
	perSamp int
}

func (f *fakeSamples) SampleCount() int { return len(f.data) }

func (f *fakeSamples) ReadSample(i int) ([]byte, error) {
	if f.failAt > 0 && i == f.failAt {
		return nil, errors.New("short read")
	}
	return f.data[i], nil
}

func (f *fakeSamples) SampleTime(i int) time.Duration {
	return time.Duration(i*f.perSamp) * time.Millisecond
}

func (f *fakeSamples) SeekToTime(t time.Duration) int {
	return min(int(t/time.Millisecond)/f.perSamp, len(f.data))
}

func newFakeM4A(samples, perSample int) (*m4aStream, *fakeSamples) {
	fs := &fakeSamples{perSamp: perSample}
	for i := range samples {
		fs.data = append(fs.data, []byte{byte(i + 1)})
	}
	s := &m4aStream{
		samples: fs,
		decode: func(sample []byte, dst [][2]float64) ([][2]float64, error) {
			for range perSample {
				v := float64(sample[0])
				dst = append(dst, [2]float64{v, -v})
			}
			return dst, nil
		},
		release: func() {},
		closer:  nopSeekCloser{bytes.NewReader(nil)},
		rate:    1000,
		length:  samples * perSample,
	}
	return s, fs
}

func TestM4AStream_StreamAcrossSamples(t *testing.T) {
	s, _ := newFakeM4A(3, 4)

	buf := make([][2]float64, 5)
	n, ok := s.Stream(buf)
	require.True(t, ok)
	assert.Equal(t, 5, n)
	assert.Equal(t, [2]float64{1, -1}, buf[3])
	assert.Equal(t, [2]float64{2, -2}, buf[4])
	assert.Equal(t, 5, s.Position())

	n, ok = s.Stream(make([][2]float64, 10))
	assert.True(t, ok)
	assert.Equal(t, 7, n)
	assert.Equal(t, 12, s.Position())

	n, ok = s.Stream(buf)
	assert.False(t, ok)
	assert.Zero(t, n)
	assert.NoError(t, s.Err())
}

func TestM4AStream_ReadErrorStops(t *testing.T) {
	s, fs := newFakeM4A(3, 2)
	fs.failAt = 1

	n, ok := s.Stream(make([][2]float64, 6))
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	require.Error(t, s.Err())

	n, ok = s.Stream(make([][2]float64, 6))
	assert.False(t, ok)
	assert.Zero(t, n)
}

func TestM4AStream_Seek(t *testing.T) {
	tests := []struct {
		name      string
		to        int
		wantFirst float64
		wantPos   int
	}{
		{"start", 0, 1, 0},
		{"sample boundary", 8, 3, 8},
		{"inside sample lands on its start", 6, 2, 4},
		{"negative clamps", -5, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newFakeM4A(4, 4)
			s.Stream(make([][2]float64, 3))

			require.NoError(t, s.Seek(tt.to))
			assert.Equal(t, tt.wantPos, s.Position())

			buf := make([][2]float64, 1)
			n, ok := s.Stream(buf)
			require.True(t, ok)
			require.Equal(t, 1, n)
			assert.Equal(t, tt.wantFirst, buf[0][0])
		})
	}
}

func TestM4AStream_SeekPastEnd(t *testing.T) {
	s, _ := newFakeM4A(2, 4)
	require.NoError(t, s.Seek(100))
	n, ok := s.Stream(make([][2]float64, 4))
	assert.False(t, ok)
	assert.Zero(t, n)
}

func TestM4AStream_CloseReleasesDecoder(t *testing.T) {
	s, _ := newFakeM4A(1, 1)
	released := false
	s.release = func() { released = true }
	require.NoError(t, s.Close())
	assert.True(t, released)
}

func TestAppendInt16Frames(t *testing.T) {
	assert.Equal(t,
		[][2]float64{{0.5, -0.5}},
		appendInt16Frames(nil, []int16{16384, -16384}, 2))
	assert.Equal(t,
		[][2]float64{{0.25, 0.25}, {-1, -1}},
		appendInt16Frames(nil, []int16{8192, -32768}, 1))
	assert.Equal(t,
		[][2]float64{{0.5, 0}},
		appendInt16Frames(nil, []int16{16384, 0, 1234}, 3), "extra channels dropped")
}

func TestAppendPCMFrames(t *testing.T) {
	t.Run("16-bit stereo", func(t *testing.T) {
		data := []byte{0x00, 0x40, 0x00, 0xC0}
		assert.Equal(t, [][2]float64{{0.5, -0.5}}, appendPCMFrames(nil, data, 2, 2))
	})
	t.Run("24-bit mono", func(t *testing.T) {
		data := []byte{0x00, 0x00, 0x40, 0x00, 0x00, 0x80}
		assert.Equal(t, [][2]float64{{0.5, 0.5}, {-1, -1}}, appendPCMFrames(nil, data, 1, 3))
	})
	t.Run("partial frame ignored", func(t *testing.T) {
		assert.Empty(t, appendPCMFrames(nil, []byte{0x00, 0x40, 0x00}, 2, 2))
	})
}
