package player

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/jfreymuth/vorbis"
	"github.com/jj11hh/opus"
)

const (
	opusSampleRate = 48000
	// Opus needs 80 ms of decoded audio before a seek target to converge.
	opusPreroll = opusSampleRate * 80 / 1000
	// Largest frame either codec produces, per channel.
	maxOggFrame = 8192
)

var (
	errUnknownOggCodec      = errors.New("ogg: unknown codec (not Opus or Vorbis)")
	errInvalidOpusHead      = errors.New("opus: invalid identification header")
	errUnsupportedOpus      = errors.New("opus: unsupported version or channel count")
	errInvalidVorbisHeader  = errors.New("vorbis: invalid identification header")
	errVorbisNotReady       = errors.New("vorbis: decoder not initialized (headers incomplete)")
	errVorbisBufferTooSmall = errors.New("vorbis: output buffer too small")
)

// oggCodec decodes the packets of one Ogg logical stream.
type oggCodec interface {
	SampleRate() int
	Channels() int
	// PreSkip is the number of decoded samples to drop at stream start.
	PreSkip() int
	// Preroll is how many samples before a seek target decoding must resume.
	Preroll() int
	// AddHeaderPacket consumes the header packets that follow the
	// identification packet. It reports true once the codec can decode.
	AddHeaderPacket(packet []byte) (complete bool, err error)
	// Decode writes interleaved samples to pcm and returns the count per channel.
	Decode(packet []byte, pcm []float32) (samplesPerChannel int, err error)
	// Reset clears inter-packet state after a seek.
	Reset() error
}

// detectOggCodec picks a codec from the identification packet.
func detectOggCodec(first []byte) (oggCodec, error) {
	if len(first) >= 8 && string(first[:8]) == "OpusHead" {
		return newOpusCodec(first)
	}
	if len(first) >= 7 && first[0] == 0x01 && string(first[1:7]) == "vorbis" {
		return newVorbisCodec(first)
	}
	return nil, errUnknownOggCodec
}

type opusCodec struct {
	decoder  *opus.Decoder
	channels int
	preSkip  int
}

func newOpusCodec(packet []byte) (*opusCodec, error) {
	if len(packet) < 19 {
		return nil, errInvalidOpusHead
	}
	channels := int(packet[9])
	if packet[8] != 1 || channels < 1 || channels > 2 {
		return nil, errUnsupportedOpus
	}
	decoder, err := opus.NewDecoder(opusSampleRate, channels)
	if err != nil {
		return nil, errors.Wrap(err, "opus: create decoder")
	}
	return &opusCodec{
		decoder:  decoder,
		channels: channels,
		preSkip:  int(binary.LittleEndian.Uint16(packet[10:12])),
	}, nil
}

// SampleRate is always 48 kHz: Opus decodes at that rate whatever the
// input rate stored in the header.
func (c *opusCodec) SampleRate() int { return opusSampleRate }
func (c *opusCodec) Channels() int   { return c.channels }
func (c *opusCodec) PreSkip() int    { return c.preSkip }
func (c *opusCodec) Preroll() int    { return opusPreroll }

// AddHeaderPacket consumes the OpusTags packet; nothing in it is needed.
func (c *opusCodec) AddHeaderPacket(_ []byte) (bool, error) { return true, nil }

func (c *opusCodec) Decode(packet []byte, pcm []float32) (int, error) {
	return c.decoder.DecodeFloat32(packet, pcm)
}

// Reset is a no-op: the preroll lets the decoder converge.
func (c *opusCodec) Reset() error { return nil }

type vorbisCodec struct {
	decoder    *vorbis.Decoder
	channels   int
	sampleRate int
	headers    [][]byte
}

func newVorbisCodec(packet []byte) (*vorbisCodec, error) {
	// [0] type, [1:7] "vorbis", [7:11] version, [11] channels, [12:16] rate
	if len(packet) < 16 || binary.LittleEndian.Uint32(packet[7:11]) != 0 || packet[11] == 0 {
		return nil, errInvalidVorbisHeader
	}
	return &vorbisCodec{
		channels:   int(packet[11]),
		sampleRate: int(binary.LittleEndian.Uint32(packet[12:16])),
		headers:    [][]byte{packet},
	}, nil
}

func (c *vorbisCodec) SampleRate() int { return c.sampleRate }
func (c *vorbisCodec) Channels() int   { return c.channels }
func (c *vorbisCodec) PreSkip() int    { return 0 }
func (c *vorbisCodec) Preroll() int    { return 0 }

// AddHeaderPacket collects the comment and setup headers, then builds the
// decoder from all three.
func (c *vorbisCodec) AddHeaderPacket(packet []byte) (bool, error) {
	if c.decoder != nil {
		return true, nil
	}
	c.headers = append(c.headers, packet)
	if len(c.headers) < 3 {
		return false, nil
	}
	decoder := &vorbis.Decoder{}
	for _, hdr := range c.headers {
		if err := decoder.ReadHeader(hdr); err != nil {
			return false, errors.Wrap(err, "vorbis: read header")
		}
	}
	c.decoder = decoder
	c.headers = nil
	return true, nil
}

func (c *vorbisCodec) Decode(packet []byte, pcm []float32) (int, error) {
	if c.decoder == nil {
		return 0, errVorbisNotReady
	}
	samples, err := c.decoder.Decode(packet)
	if err != nil {
		return 0, err
	}
	if len(pcm) < len(samples) {
		return 0, errVorbisBufferTooSmall
	}
	n := copy(pcm, samples)
	return n / c.channels, nil
}

func (c *vorbisCodec) Reset() error {
	if c.decoder != nil {
		c.decoder.Clear()
	}
	return nil
}
