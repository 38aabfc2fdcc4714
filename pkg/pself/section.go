package pself

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// SectionEntry is the decoded form of one 73-byte section table record.
//
// Offset and Length locate the payload relative to the start of the whole
// container file, not the payload region.
type SectionEntry struct {
	Kind   SectionKind
	Name   string
	Offset uint32
	Length uint32
	Hash   [DigestSize]byte
}

// EncodeSectionEntry encodes e into its fixed 73-byte layout:
//
//	byte  0      kind
//	bytes 1..33  name, zero padded UTF-8
//	bytes 33..37 offset (big-endian u32)
//	bytes 37..41 length (big-endian u32)
//	bytes 41..73 SHA-256 digest, raw
func EncodeSectionEntry(e SectionEntry) ([SectionEntrySize]byte, error) {
	var buf [SectionEntrySize]byte
	if !e.Kind.Valid() {
		return buf, fmt.Errorf("%w: %d", ErrBadSectionType, e.Kind)
	}
	if len(e.Name) > NameSize {
		return buf, fmt.Errorf("%w: %q is %d bytes, max %d", ErrNameTooLong, e.Name, len(e.Name), NameSize)
	}
	buf[0] = byte(e.Kind)
	copy(buf[1:1+NameSize], e.Name)
	binary.BigEndian.PutUint32(buf[33:37], e.Offset)
	binary.BigEndian.PutUint32(buf[37:41], e.Length)
	copy(buf[41:], e.Hash[:])
	return buf, nil
}

// DecodeSectionEntry decodes the first 73 bytes of b. Trailing bytes are
// ignored. The discriminant byte and the name encoding are validated; the
// digest bytes are copied verbatim.
func DecodeSectionEntry(b []byte) (SectionEntry, error) {
	if len(b) < SectionEntrySize {
		return SectionEntry{}, fmt.Errorf("%w: section entry needs %d bytes, have %d", ErrTruncated, SectionEntrySize, len(b))
	}
	kind := SectionKind(b[0])
	if !kind.Valid() {
		return SectionEntry{}, fmt.Errorf("%w: %d", ErrBadSectionType, b[0])
	}
	nameRaw := bytes.TrimRight(b[1:1+NameSize], "\x00")
	if !utf8.Valid(nameRaw) {
		return SectionEntry{}, ErrInvalidName
	}
	e := SectionEntry{
		Kind:   kind,
		Name:   string(nameRaw),
		Offset: binary.BigEndian.Uint32(b[33:37]),
		Length: binary.BigEndian.Uint32(b[37:41]),
	}
	copy(e.Hash[:], b[41:SectionEntrySize])
	return e, nil
}

// ComputeDigest returns the SHA-256 digest of content.
func ComputeDigest(content []byte) [DigestSize]byte {
	return sha256.Sum256(content)
}

// VerifyContent recomputes the digest of content and compares it against the
// stored hash over its full length. The comparison is not constant-time;
// digests here detect drift, they are not secrets.
func (e *SectionEntry) VerifyContent(content []byte) bool {
	return ComputeDigest(content) == e.Hash
}
