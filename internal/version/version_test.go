package version

import (
	"strings"
	"testing"
)

func TestResolveFallsBack(t *testing.T) {
	info := Resolve()
	if info.Version == "" {
		t.Fatal("Resolve must always yield a non-empty version")
	}
}

func TestStringIncludesShortCommit(t *testing.T) {
	Version = "1.2.3"
	Commit = "abcdef0123456789abcdef0123456789"
	t.Cleanup(func() { Version, Commit = "", "" })

	got := String()
	if !strings.HasPrefix(got, "1.2.3 (") {
		t.Fatalf("got %q, want version prefix", got)
	}
	if !strings.Contains(got, "abcdef012345") || strings.Contains(got, Commit) {
		t.Fatalf("got %q, want 12-char commit", got)
	}
}
