package player

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
)

// decodeOgg decodes an Ogg Opus or Ogg Vorbis stream. The stream is split
// into packets up front, which keeps seeking a search over granule positions.
func decodeOgg(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	packets, err := readOggPackets(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	codec, err := detectOggCodec(packets[0].data)
	if err != nil {
		return nil, beep.Format{}, err
	}

	i := 1
	for complete := false; !complete; i++ {
		if i >= len(packets) {
			return nil, beep.Format{}, errors.New("ogg: stream ends inside headers")
		}
		if complete, err = codec.AddHeaderPacket(packets[i].data); err != nil {
			return nil, beep.Format{}, err
		}
	}
	audio := packets[i:]

	var last int64
	for _, p := range audio {
		last = max(last, p.granule)
	}

	channels := codec.Channels()
	d := &oggDecoder{
		codec:   codec,
		packets: audio,
		closer:  rc,
		buf:     make([]float32, maxOggFrame*channels),
		length:  max(int(last)-codec.PreSkip(), 0),
		discard: codec.PreSkip(),
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(codec.SampleRate()),
		NumChannels: min(channels, 2),
		Precision:   2,
	}
	return d, format, nil
}

// oggDecoder implements beep.StreamSeekCloser over decoded Ogg packets.
// Mono is duplicated to both channels; channels past the second are dropped.
type oggDecoder struct {
	codec   oggCodec
	packets []oggPacket
	closer  io.Closer

	next    int       // next packet to decode
	buf     []float32 // decode target
	pcm     []float32 // undelivered part of the last decoded packet
	discard int       // decoded samples to drop before delivering
	pos     int
	length  int
}

func (d *oggDecoder) Stream(samples [][2]float64) (n int, ok bool) {
	channels := d.codec.Channels()

	for n < len(samples) && d.pos < d.length {
		if len(d.pcm) >= channels {
			l := float64(d.pcm[0])
			r := l
			if channels > 1 {
				r = float64(d.pcm[1])
			}
			d.pcm = d.pcm[channels:]
			if d.discard > 0 {
				d.discard--
				continue
			}
			samples[n] = [2]float64{l, r}
			n++
			d.pos++
			continue
		}

		if d.next >= len(d.packets) {
			break
		}
		packet := d.packets[d.next]
		d.next++
		k, err := d.codec.Decode(packet.data, d.buf)
		if err != nil {
			continue // corrupt packets are skipped
		}
		d.pcm = d.buf[:k*channels]
	}
	return n, n > 0
}

func (d *oggDecoder) Err() error { return nil }

func (d *oggDecoder) Len() int { return d.length }

func (d *oggDecoder) Position() int { return d.pos }

// Seek resumes decoding at the last page boundary at least one preroll
// before p and drops samples up to p.
func (d *oggDecoder) Seek(p int) error {
	p = min(max(p, 0), d.length)
	target := int64(p + d.codec.PreSkip())
	want := target - int64(d.codec.Preroll())

	start, startGranule := 0, int64(0)
	for i, pkt := range d.packets {
		if pkt.granule < 0 {
			continue
		}
		if pkt.granule > want {
			break
		}
		start, startGranule = i+1, pkt.granule
	}

	if err := d.codec.Reset(); err != nil {
		return err
	}
	d.next = start
	d.pcm = nil
	d.discard = int(target - startGranule)
	d.pos = p
	return nil
}

func (d *oggDecoder) Close() error {
	return d.closer.Close()
}
