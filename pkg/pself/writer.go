package pself

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
)

// Writer builds a PSELF container in memory and serialises it in one pass.
//
// Section payloads are laid out back to back after the section table, in the
// order they were added; each entry's digest is computed when the section is
// added. Offsets are assigned at write time, once the section count is known.
type Writer struct {
	version  uint32
	entries  []SectionEntry
	payloads [][]byte
}

// NewWriter creates a writer for a container with the given format version.
func NewWriter(version uint32) *Writer {
	return &Writer{version: version}
}

// AddSection records a section with the given kind, name and payload.
// The name must encode to at most 32 UTF-8 bytes.
func (w *Writer) AddSection(kind SectionKind, name string, content []byte) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", ErrBadSectionType, kind)
	}
	if len(name) > NameSize {
		return fmt.Errorf("%w: %q is %d bytes, max %d", ErrNameTooLong, name, len(name), NameSize)
	}
	if uint64(len(content)) > math.MaxUint32 {
		return fmt.Errorf("%w: payload %q does not fit a u32 length", ErrOutOfRange, name)
	}
	w.entries = append(w.entries, SectionEntry{
		Kind:   kind,
		Name:   name,
		Length: uint32(len(content)),
		Hash:   ComputeDigest(content),
	})
	w.payloads = append(w.payloads, content)
	return nil
}

// WriteTo serialises the container: header, packed section table, then the
// payload region. Entry offsets are absolute file positions.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	if uint64(len(w.entries)) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: too many sections", ErrOutOfRange)
	}

	payloadBase := uint64(HeaderSize) + uint64(len(w.entries))*SectionEntrySize
	if payloadBase > math.MaxUint32 {
		return 0, fmt.Errorf("%w: section table does not fit u32 offsets", ErrOutOfRange)
	}

	var written int64
	hdr := EncodeHeader(Header{Version: w.version, SectionCount: uint32(len(w.entries))})
	n, err := out.Write(hdr[:])
	written += int64(n)
	if err != nil {
		return written, err
	}

	offset := payloadBase
	for i := range w.entries {
		entry := w.entries[i]
		if offset > math.MaxUint32 {
			return written, fmt.Errorf("%w: payload %q past u32 offset range", ErrOutOfRange, entry.Name)
		}
		entry.Offset = uint32(offset)
		offset += uint64(entry.Length)

		buf, err := EncodeSectionEntry(entry)
		if err != nil {
			return written, fmt.Errorf("section %q: %w", entry.Name, err)
		}
		n, err := out.Write(buf[:])
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	for i, payload := range w.payloads {
		n, err := out.Write(payload)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("payload %q: %w", w.entries[i].Name, err)
		}
	}
	return written, nil
}

// Bytes serialises the container into a fresh byte slice.
func (w *Writer) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile serialises the container to a file, truncating any existing one.
func (w *Writer) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := w.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
