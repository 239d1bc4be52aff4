package player

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
)

var (
	errInvalidOggMagic   = errors.New("ogg: invalid capture pattern")
	errInvalidOggVersion = errors.New("ogg: unsupported version")
	errEmptyOggStream    = errors.New("ogg: no packets")
)

// oggPageHeader is the fixed part of an Ogg page plus its segment table.
type oggPageHeader struct {
	HeaderType   uint8
	GranulePos   int64
	SerialNumber uint32
	SequenceNum  uint32
	SegmentTable []uint8
}

// bodySize is the byte length of the page payload.
func (h *oggPageHeader) bodySize() int {
	n := 0
	for _, s := range h.SegmentTable {
		n += int(s)
	}
	return n
}

// parseOggPageHeader reads and parses an Ogg page header.
func parseOggPageHeader(r io.Reader) (*oggPageHeader, error) {
	var buf [27]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	if string(buf[0:4]) != "OggS" {
		return nil, errInvalidOggMagic
	}
	if buf[4] != 0 {
		return nil, errInvalidOggVersion
	}

	hdr := &oggPageHeader{
		HeaderType:   buf[5],
		GranulePos:   int64(binary.LittleEndian.Uint64(buf[6:14])),
		SerialNumber: binary.LittleEndian.Uint32(buf[14:18]),
		SequenceNum:  binary.LittleEndian.Uint32(buf[18:22]),
		// checksum at buf[22:26] is not verified
	}
	if n := int(buf[26]); n > 0 {
		hdr.SegmentTable = make([]uint8, n)
		if _, err := io.ReadFull(r, hdr.SegmentTable); err != nil {
			return nil, err
		}
	}
	return hdr, nil
}

// oggPacket is one complete packet and the granule position of the page
// on which it ends. Only the last packet of a page carries that page's
// granule; the others carry -1.
type oggPacket struct {
	data    []byte
	granule int64
}

// readOggPackets splits the first logical stream of r into packets. Pages
// of other interleaved streams are skipped.
func readOggPackets(r io.Reader) ([]oggPacket, error) {
	var (
		packets []oggPacket
		partial []byte
		serial  uint32
		first   = true
	)
	for {
		hdr, err := parseOggPageHeader(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		body := make([]byte, hdr.bodySize())
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, errors.Wrap(err, "ogg: truncated page")
		}
		if first {
			serial, first = hdr.SerialNumber, false
		} else if hdr.SerialNumber != serial {
			continue
		}

		start := len(packets)
		off := 0
		for _, seg := range hdr.SegmentTable {
			partial = append(partial, body[off:off+int(seg)]...)
			off += int(seg)
			if seg < 255 {
				packets = append(packets, oggPacket{data: partial, granule: -1})
				partial = nil
			}
		}
		if len(packets) > start && hdr.GranulePos >= 0 {
			packets[len(packets)-1].granule = hdr.GranulePos
		}
	}
	if len(packets) == 0 {
		return nil, errEmptyOggStream
	}
	return packets, nil
}
