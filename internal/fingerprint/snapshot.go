package fingerprint

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/Azccriminal/floatboat/pkg/pself"
)

// snapshotFile is the on-disk baseline format: name to hex digest.
type snapshotFile struct {
	Entries map[string]string `json:"entries"`
}

// SaveSnapshot writes the baseline to path as JSON so a later invocation can
// re-verify against the same baseline.
func (s *Store) SaveSnapshot(path string) error {
	snap := snapshotFile{Entries: make(map[string]string, len(s.baseline))}
	for name, digest := range s.baseline {
		snap.Entries[name] = hex.EncodeToString(digest[:])
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadSnapshot replaces the baseline with the one stored at path. Like
// LoadInitial, it overwrites without any already-initialized guard.
func (s *Store) LoadSnapshot(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	baseline := make(map[string][pself.DigestSize]byte, len(snap.Entries))
	for name, hexDigest := range snap.Entries {
		raw, err := hex.DecodeString(hexDigest)
		if err != nil {
			return fmt.Errorf("snapshot entry %q: %w", name, err)
		}
		if len(raw) != pself.DigestSize {
			return fmt.Errorf("snapshot entry %q: digest is %d bytes, want %d", name, len(raw), pself.DigestSize)
		}
		var digest [pself.DigestSize]byte
		copy(digest[:], raw)
		baseline[name] = digest
	}
	s.baseline = baseline
	return nil
}
