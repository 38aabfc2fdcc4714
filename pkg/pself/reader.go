package pself

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// File is a parsed PSELF container backed by its raw bytes.
type File struct {
	Data     []byte
	Header   Header
	Sections []SectionEntry
	mmapped  bool
}

// Open maps a PSELF file read-only and parses its header and section table.
// If mmap is unavailable, it falls back to ReadAt-based loading.
// The returned file must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size64 := stat.Size()
	if size64 < 0 {
		return nil, ErrTruncated
	}
	if size64 > int64(int(^uint(0)>>1)) {
		// cannot index this file safely as []byte on this architecture.
		return nil, fmt.Errorf("%w: file too large to map", ErrOutOfRange)
	}
	size := int(size64)
	if size < HeaderSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, HeaderSize, size)
	}

	// Prefer mmap where available for zero-copy payload slices.
	data, err := unix.Mmap(
		int(f.Fd()),
		0,
		size,
		unix.PROT_READ,
		unix.MAP_SHARED,
	)
	if err == nil {
		pf, parseErr := parseFileData(data, true)
		if parseErr != nil {
			_ = unix.Munmap(data)
			return nil, parseErr
		}
		return pf, nil
	}

	// Fallback path that does not require mmap support.
	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return parseFileData(data, false)
}

// OpenReaderAt parses a PSELF container from a random-access reader without mmap.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, ErrTruncated
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return parseFileData(data, false)
}

// Parse parses an already-resident container image. The returned File
// aliases data; it does not copy the payload region.
func Parse(data []byte) (*File, error) {
	return parseFileData(data, false)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrTruncated
	}
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

func parseFileData(data []byte, mmapped bool) (*File, error) {
	hdr, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}

	// The section table is packed immediately after the header, no padding.
	tableEnd := uint64(HeaderSize) + uint64(hdr.SectionCount)*SectionEntrySize
	if tableEnd > uint64(len(data)) {
		return nil, fmt.Errorf("%w: section table needs %d bytes, have %d", ErrTruncated, tableEnd, len(data))
	}

	sections := make([]SectionEntry, hdr.SectionCount)
	for i := range sections {
		start := HeaderSize + i*SectionEntrySize
		sec, err := DecodeSectionEntry(data[start : start+SectionEntrySize])
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		sections[i] = sec
	}

	return &File{
		Data:     data,
		Header:   hdr,
		Sections: sections,
		mmapped:  mmapped,
	}, nil
}

// Close releases file resources and any mmap backing.
func (f *File) Close() error {
	if f == nil {
		return nil
	}
	var err error
	if f.Data != nil && f.mmapped {
		err = unix.Munmap(f.Data)
	}
	f.Data = nil
	f.Sections = nil
	f.mmapped = false
	return err
}

// SectionData returns a zero-copy slice covering the payload of e.
// Descriptor bounds are not validated at parse time; callers get a typed
// ErrOutOfRange here instead of an out-of-bounds read.
// The caller must not retain the slice after File.Close().
func (f *File) SectionData(e *SectionEntry) ([]byte, error) {
	return sliceSection(f.Data, e)
}

func sliceSection(data []byte, e *SectionEntry) ([]byte, error) {
	start := uint64(e.Offset)
	end := start + uint64(e.Length)
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: section %q spans [%d,%d) in %d bytes", ErrOutOfRange, e.Name, start, end, len(data))
	}
	return data[start:end], nil
}
