// Package fingerprint records a baseline of named content digests and
// re-verifies content against it later, to detect tampering or drift.
package fingerprint

import (
	"sort"

	"github.com/Azccriminal/floatboat/pkg/pself"
)

// Result is the outcome of a single Verify call.
type Result int

const (
	// Ok means the recomputed digest matches the baseline.
	Ok Result = iota
	// Mismatch means a baseline exists but the content has drifted.
	Mismatch
	// UnknownName means no baseline was ever recorded for the name.
	UnknownName
)

func (r Result) String() string {
	switch r {
	case Ok:
		return "ok"
	case Mismatch:
		return "mismatch"
	case UnknownName:
		return "unknown_name"
	default:
		return "invalid"
	}
}

// Store owns a baseline mapping of names to content digests. It is populated
// by LoadInitial and queried by Verify; Verify never mutates the baseline.
//
// The store has no internal locking. A concurrent host must serialize
// LoadInitial against Verify itself.
type Store struct {
	baseline map[string][pself.DigestSize]byte
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{baseline: make(map[string][pself.DigestSize]byte)}
}

// LoadInitial digests each blob and records it under its name. An existing
// baseline entry for the same name is silently overwritten; there is no
// already-initialized guard, repeated snapshots simply replace each other.
func (s *Store) LoadInitial(blobs map[string][]byte) {
	for name, content := range blobs {
		s.baseline[name] = pself.ComputeDigest(content)
	}
}

// Verify recomputes the digest of content and compares it against the
// baseline recorded for name. It is a pure query.
func (s *Store) Verify(name string, content []byte) Result {
	expected, ok := s.baseline[name]
	if !ok {
		return UnknownName
	}
	if pself.ComputeDigest(content) != expected {
		return Mismatch
	}
	return Ok
}

// Digest returns the baseline digest recorded for name, if any.
func (s *Store) Digest(name string) ([pself.DigestSize]byte, bool) {
	d, ok := s.baseline[name]
	return d, ok
}

// Names returns the baselined names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.baseline))
	for name := range s.baseline {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of baseline entries.
func (s *Store) Len() int {
	return len(s.baseline)
}
