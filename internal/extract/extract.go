// Package extract persists loaded section payloads to disk under generated
// filenames.
package extract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Azccriminal/floatboat/internal/logger"
	"github.com/Azccriminal/floatboat/pkg/pself"
)

// FileSink writes each payload it receives to a fresh file in Dir, named
// output_<uuid> with an extension chosen per section kind. It implements
// pself.Sink.
type FileSink struct {
	// Dir is the destination directory. Empty means the current directory.
	Dir string

	// Log, when set, receives one info line per written payload.
	Log logger.Logger

	lastPath string
}

// Persist writes content to a generated destination in a single
// open-write-close scope.
func (s *FileSink) Persist(content []byte, kind pself.SectionKind) error {
	name := "output_" + uuid.NewString() + kind.Ext()
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write extracted section: %w", err)
	}
	s.lastPath = path
	if s.Log != nil {
		s.Log.Info("section written", "path", path, "kind", kind.String())
	}
	return nil
}

// LastPath returns the destination of the most recent Persist call.
func (s *FileSink) LastPath() string {
	return s.lastPath
}
