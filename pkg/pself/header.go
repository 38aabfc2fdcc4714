package pself

import (
	"encoding/binary"
	"fmt"
)

// Header is the fixed 12-byte container header. All integers are big-endian
// on disk. SectionCount is authoritative: the format itself performs no
// cross-check against the actual file length.
type Header struct {
	Version      uint32
	SectionCount uint32
}

// EncodeHeader encodes h into its fixed 12-byte layout. It is total: every
// header value has a valid encoding.
func EncodeHeader(h Header) [HeaderSize]byte {
	var buf [HeaderSize]byte
	binary.BigEndian.PutUint32(buf[0:4], Magic)
	binary.BigEndian.PutUint32(buf[4:8], h.Version)
	binary.BigEndian.PutUint32(buf[8:12], h.SectionCount)
	return buf
}

// DecodeHeader decodes the first 12 bytes of b. Trailing bytes are ignored.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, HeaderSize, len(b))
	}
	if binary.BigEndian.Uint32(b[0:4]) != Magic {
		return Header{}, ErrBadMagic
	}
	return Header{
		Version:      binary.BigEndian.Uint32(b[4:8]),
		SectionCount: binary.BigEndian.Uint32(b[8:12]),
	}, nil
}
