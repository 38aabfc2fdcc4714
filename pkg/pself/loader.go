package pself

import (
	"fmt"
	"log/slog"
	"runtime"
)

// Logger is the minimal logging surface the loader reports through.
// *slog.Logger and the floatboat logger package both satisfy it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// State is the loader's position in its load state machine.
type State int

const (
	StateStart State = iota
	StateHeaderParsed
	StateTableParsed
	StateScanning
	StateLoaded    // terminal: a section was extracted
	StateExhausted // terminal: no verified, compatible section
	StateFailed    // terminal: malformed container or sink failure
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateHeaderParsed:
		return "header-parsed"
	case StateTableParsed:
		return "table-parsed"
	case StateScanning:
		return "scanning"
	case StateLoaded:
		return "loaded"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Sink receives the payload of the section selected by a load. Choosing a
// destination and persisting the bytes is entirely the sink's concern.
type Sink interface {
	Persist(content []byte, kind SectionKind) error
}

// Result describes the section handed to the sink by a successful load.
type Result struct {
	Kind    SectionKind
	Name    string
	Payload []byte
}

// Loader parses a container and extracts the first section that is both
// hash-verified and compatible with the target operating system.
//
// A Loader is single-use state: one Load call owns the decoded header and
// section table for its full duration, and the terminal state is left
// readable afterwards. It is not safe for concurrent use.
type Loader struct {
	// OS overrides the target operating system. Empty means runtime.GOOS.
	OS string

	// Sink receives the selected payload. A nil sink skips persistence;
	// the payload is still returned in the Result.
	Sink Sink

	// Log receives per-section integrity reports and scan progress.
	// Nil means slog's default logger.
	Log Logger

	state State
}

// State returns the loader's current (after Load, terminal) state.
func (l *Loader) State() State {
	return l.state
}

// Load runs the full load state machine over a container image.
//
// Format errors in the header or section table are fatal and leave the
// loader in StateFailed. During the scan, out-of-range descriptors and hash
// mismatches are reported and skipped; incompatible kinds are skipped
// silently. The first section that passes both checks is handed to the sink
// and ends the scan: later sections are never examined, even if they would
// also qualify. An exhausted table yields ErrNoCompatibleSection.
func (l *Loader) Load(data []byte) (*Result, error) {
	log := l.Log
	if log == nil {
		log = slog.Default()
	}
	goos := l.OS
	if goos == "" {
		goos = runtime.GOOS
	}

	l.state = StateStart
	hdr, err := DecodeHeader(data)
	if err != nil {
		l.state = StateFailed
		return nil, fmt.Errorf("parse header: %w", err)
	}
	l.state = StateHeaderParsed
	log.Debug("parsed container header", "version", hdr.Version, "sections", hdr.SectionCount)

	// The header's count is attacker-controlled; prove the packed table fits
	// in the data before sizing anything by it.
	tableEnd := uint64(HeaderSize) + uint64(hdr.SectionCount)*SectionEntrySize
	if tableEnd > uint64(len(data)) {
		l.state = StateFailed
		return nil, fmt.Errorf("section table: %w: needs %d bytes, have %d", ErrTruncated, tableEnd, len(data))
	}

	sections := make([]SectionEntry, hdr.SectionCount)
	for i := range sections {
		start := HeaderSize + i*SectionEntrySize
		sec, err := DecodeSectionEntry(data[start : start+SectionEntrySize])
		if err != nil {
			l.state = StateFailed
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		sections[i] = sec
	}
	l.state = StateTableParsed

	required, known := RequiredKind(goos)
	log.Debug("scanning sections", "os", goos, "known", known)

	l.state = StateScanning
	for i := range sections {
		sec := &sections[i]

		content, err := sliceSection(data, sec)
		if err != nil {
			// Recoverable at section granularity, like a hash mismatch.
			log.Error("section data out of range", "section", sec.Name, "offset", sec.Offset, "length", sec.Length)
			continue
		}

		if !sec.VerifyContent(content) {
			log.Error("hash mismatch for section", "section", sec.Name, "kind", sec.Kind.String())
			continue
		}

		if !known || sec.Kind != required {
			continue
		}

		log.Info("loading compatible section", "section", sec.Name, "os", goos)
		if l.Sink != nil {
			if err := l.Sink.Persist(content, sec.Kind); err != nil {
				l.state = StateFailed
				return nil, fmt.Errorf("persist section %q: %w", sec.Name, err)
			}
		}
		// First match wins: remaining sections are deliberately never
		// scanned, so a later corrupt section goes unreported.
		l.state = StateLoaded
		return &Result{Kind: sec.Kind, Name: sec.Name, Payload: content}, nil
	}

	l.state = StateExhausted
	return nil, ErrNoCompatibleSection
}
