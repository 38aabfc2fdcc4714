// Package pself implements the PSELF multi-platform executable container.
//
// A PSELF file carries several named, typed payload sections (ELF, PE or
// Mach-O), each protected by a stored SHA-256 digest. The format describes
// structure and data only; it never implies that a payload is executed.
package pself

import "crypto/sha256"

// PSELF global constants must never change.
const (
	// Magic is the file magic for all PSELF containers ("PSEL").
	Magic uint32 = 0x5053454C

	// HeaderSize is the fixed encoded size of a container header.
	HeaderSize = 12

	// SectionEntrySize is the fixed encoded size of one section table entry.
	SectionEntrySize = 73

	// NameSize is the fixed on-disk size of a section name, zero padded.
	NameSize = 32

	// DigestSize is the size of a section content digest.
	DigestSize = sha256.Size
)

// SectionKind identifies the executable format of a section payload.
// It is encoded as a single byte; only the values below are valid.
type SectionKind byte

const (
	KindELF   SectionKind = 0
	KindPE    SectionKind = 1
	KindMachO SectionKind = 2
)

// Valid reports whether k is a known discriminant.
func (k SectionKind) Valid() bool {
	return k <= KindMachO
}

func (k SectionKind) String() string {
	switch k {
	case KindELF:
		return "ELF"
	case KindPE:
		return "PE"
	case KindMachO:
		return "MACHO"
	default:
		return "UNKNOWN"
	}
}

// Ext returns the output file extension used when a payload of this kind
// is written out by the extractor.
func (k SectionKind) Ext() string {
	switch k {
	case KindPE:
		return ".exe.pself"
	case KindMachO:
		return ".mach.pself"
	default:
		return ".elf.pself"
	}
}
