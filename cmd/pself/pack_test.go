package main

import (
	"testing"
	"time"

	"github.com/Azccriminal/floatboat/pkg/pself"
)

func TestParseSectionSpec(t *testing.T) {
	t.Parallel()

	cases := []struct {
		spec string
		kind pself.SectionKind
		name string
		path string
		ok   bool
	}{
		{"elf:text:/tmp/payload.bin", pself.KindELF, "text", "/tmp/payload.bin", true},
		{"pe:/tmp/app.exe", pself.KindPE, "app.exe", "/tmp/app.exe", true},
		{"macho::/tmp/tool", pself.KindMachO, "tool", "/tmp/tool", true},
		{"mach-o:x:/tmp/tool", pself.KindMachO, "x", "/tmp/tool", true},
		{"wasm:x:/tmp/tool", 0, "", "", false},
		{"elf", 0, "", "", false},
		{"elf:name:", 0, "", "", false},
	}
	for _, tc := range cases {
		kind, name, path, err := parseSectionSpec(tc.spec)
		if tc.ok != (err == nil) {
			t.Fatalf("spec %q: err=%v, want ok=%v", tc.spec, err, tc.ok)
		}
		if err != nil {
			continue
		}
		if kind != tc.kind || name != tc.name || path != tc.path {
			t.Fatalf("spec %q: got (%v,%q,%q), want (%v,%q,%q)", tc.spec, kind, name, path, tc.kind, tc.name, tc.path)
		}
	}
}

func TestHuntIntervalDefaults(t *testing.T) {
	t.Parallel()

	if got := (Config{}).huntInterval(); got != 5*time.Second {
		t.Fatalf("empty interval: got %v", got)
	}
	if got := (Config{HuntInterval: "250ms"}).huntInterval(); got != 250*time.Millisecond {
		t.Fatalf("parsed interval: got %v", got)
	}
	if got := (Config{HuntInterval: "-3s"}).huntInterval(); got != 5*time.Second {
		t.Fatalf("negative interval should fall back: got %v", got)
	}
	if got := (Config{HuntInterval: "soon"}).huntInterval(); got != 5*time.Second {
		t.Fatalf("junk interval should fall back: got %v", got)
	}
}
