package pself

import (
	"bytes"
	"errors"
	"testing"
)

type captureSink struct {
	calls []Result
	err   error
}

func (s *captureSink) Persist(content []byte, kind SectionKind) error {
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, Result{Kind: kind, Payload: bytes.Clone(content)})
	return nil
}

func buildContainer(t *testing.T, sections ...struct {
	kind    SectionKind
	name    string
	content []byte
}) []byte {
	t.Helper()
	w := NewWriter(1)
	for _, s := range sections {
		if err := w.AddSection(s.kind, s.name, s.content); err != nil {
			t.Fatalf("add section %q: %v", s.name, err)
		}
	}
	data, err := w.Bytes()
	if err != nil {
		t.Fatalf("serialise container: %v", err)
	}
	return data
}

type sec = struct {
	kind    SectionKind
	name    string
	content []byte
}

func TestLoaderFirstMatchWins(t *testing.T) {
	t.Parallel()

	data := buildContainer(t,
		sec{KindELF, "first", []byte("payload-one")},
		sec{KindELF, "second", []byte("payload-two")},
	)

	sink := &captureSink{}
	l := &Loader{OS: "linux", Sink: sink}
	res, err := l.Load(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Name != "first" || !bytes.Equal(res.Payload, []byte("payload-one")) {
		t.Fatalf("wrong section selected: %+v", res)
	}
	if len(sink.calls) != 1 {
		t.Fatalf("sink called %d times, want exactly 1", len(sink.calls))
	}
	if l.State() != StateLoaded {
		t.Fatalf("terminal state %v, want StateLoaded", l.State())
	}
}

func TestLoaderSkipsCorruptSection(t *testing.T) {
	t.Parallel()

	data := buildContainer(t,
		sec{KindELF, "corrupt", []byte("aaaa")},
		sec{KindELF, "good", []byte("bbbb")},
	)
	// Flip a payload byte of the first section so its stored digest no
	// longer matches.
	first, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	data[first.Sections[0].Offset] ^= 0xFF

	sink := &captureSink{}
	l := &Loader{OS: "linux", Sink: sink}
	res, err := l.Load(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Name != "good" {
		t.Fatalf("selected %q, want the second, intact section", res.Name)
	}
	if len(sink.calls) != 1 || !bytes.Equal(sink.calls[0].Payload, []byte("bbbb")) {
		t.Fatalf("sink received wrong payload: %+v", sink.calls)
	}
}

func TestLoaderSkipsIncompatibleKinds(t *testing.T) {
	t.Parallel()

	data := buildContainer(t,
		sec{KindPE, "win", []byte("pe-payload")},
		sec{KindMachO, "mac", []byte("macho-payload")},
		sec{KindELF, "lin", []byte("elf-payload")},
	)

	l := &Loader{OS: "linux"}
	res, err := l.Load(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Kind != KindELF || res.Name != "lin" {
		t.Fatalf("selected %v/%q, want ELF/lin", res.Kind, res.Name)
	}
}

func TestLoaderExhausted(t *testing.T) {
	t.Parallel()

	data := buildContainer(t, sec{KindPE, "win", []byte("pe-payload")})

	l := &Loader{OS: "linux"}
	if _, err := l.Load(data); !errors.Is(err, ErrNoCompatibleSection) {
		t.Fatalf("got %v, want ErrNoCompatibleSection", err)
	}
	if l.State() != StateExhausted {
		t.Fatalf("terminal state %v, want StateExhausted", l.State())
	}
}

func TestLoaderUnknownOS(t *testing.T) {
	t.Parallel()

	data := buildContainer(t,
		sec{KindELF, "lin", []byte("x")},
		sec{KindPE, "win", []byte("y")},
		sec{KindMachO, "mac", []byte("z")},
	)

	l := &Loader{OS: "plan9"}
	if _, err := l.Load(data); !errors.Is(err, ErrNoCompatibleSection) {
		t.Fatalf("got %v, want ErrNoCompatibleSection on unknown OS", err)
	}
}

func TestLoaderOutOfRangeIsPerSection(t *testing.T) {
	t.Parallel()

	w := NewWriter(1)
	if err := w.AddSection(KindELF, "good", []byte("fine")); err != nil {
		t.Fatalf("add: %v", err)
	}
	data, err := w.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}

	// Prepend an entry whose descriptor points far past the end of the file.
	bogus := SectionEntry{Kind: KindELF, Name: "bogus", Offset: 1 << 20, Length: 64}
	bogusRaw, err := EncodeSectionEntry(bogus)
	if err != nil {
		t.Fatalf("encode bogus entry: %v", err)
	}
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// Rebuild by hand: header with two sections, bogus entry first. The good
	// section's payload moves by one entry size.
	good := f.Sections[0]
	good.Offset += SectionEntrySize
	goodRaw, err := EncodeSectionEntry(good)
	if err != nil {
		t.Fatalf("re-encode shifted entry: %v", err)
	}
	hdr := EncodeHeader(Header{Version: 1, SectionCount: 2})
	rebuilt := append([]byte{}, hdr[:]...)
	rebuilt = append(rebuilt, bogusRaw[:]...)
	rebuilt = append(rebuilt, goodRaw[:]...)
	rebuilt = append(rebuilt, []byte("fine")...)

	l := &Loader{OS: "linux"}
	res, err := l.Load(rebuilt)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Name != "good" {
		t.Fatalf("selected %q, want the in-range section", res.Name)
	}
}

func TestLoaderFatalFormatErrors(t *testing.T) {
	t.Parallel()

	l := &Loader{OS: "linux"}
	if _, err := l.Load([]byte{1, 2, 3}); !errors.Is(err, ErrTruncated) {
		t.Fatalf("got %v, want ErrTruncated", err)
	}
	if l.State() != StateFailed {
		t.Fatalf("state %v, want StateFailed", l.State())
	}

	// Header claims more entries than the data holds.
	hdr := EncodeHeader(Header{Version: 1, SectionCount: 5})
	l = &Loader{OS: "linux"}
	if _, err := l.Load(hdr[:]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("got %v, want ErrTruncated for short table", err)
	}
	if l.State() != StateFailed {
		t.Fatalf("state %v, want StateFailed", l.State())
	}
}

func TestLoaderRejectsHugeSectionCount(t *testing.T) {
	t.Parallel()

	// A 12-byte container whose header claims the maximum count must fail
	// the table check up front, not size a table allocation by the claim.
	hdr := EncodeHeader(Header{Version: 1, SectionCount: 0xFFFFFFFF})
	l := &Loader{OS: "linux"}
	if _, err := l.Load(hdr[:]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("got %v, want ErrTruncated", err)
	}
	if l.State() != StateFailed {
		t.Fatalf("state %v, want StateFailed", l.State())
	}
}

func TestLoaderSinkFailureIsFatal(t *testing.T) {
	t.Parallel()

	data := buildContainer(t, sec{KindELF, "lin", []byte("x")})
	sinkErr := errors.New("disk full")
	l := &Loader{OS: "linux", Sink: &captureSink{err: sinkErr}}
	if _, err := l.Load(data); !errors.Is(err, sinkErr) {
		t.Fatalf("got %v, want sink error", err)
	}
	if l.State() != StateFailed {
		t.Fatalf("state %v, want StateFailed", l.State())
	}
}
