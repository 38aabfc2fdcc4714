// Package procwatch polls the OS process list for forbidden program names
// and reports the first violation it finds.
package procwatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azccriminal/floatboat/internal/logger"
)

// Process is one entry of the OS process list.
type Process struct {
	PID     int
	Command string
}

// Hunter periodically lists running processes and invokes the violation
// callback with a formatted message on the first process whose command line
// contains a forbidden pattern (case-insensitive substring match). After the
// first violation the hunter stops scanning entirely.
type Hunter struct {
	patterns    []string
	interval    time.Duration
	onViolation func(string)
	log         logger.Logger

	// listProcesses is replaceable for tests; it defaults to the
	// platform process lister.
	listProcesses func(ctx context.Context) ([]Process, error)
}

// NewHunter creates a hunter over the given forbidden substring patterns.
// onViolation must not be nil.
func NewHunter(patterns []string, interval time.Duration, onViolation func(string), log logger.Logger) *Hunter {
	if log == nil {
		log = logger.Default()
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Hunter{
		patterns:      patterns,
		interval:      interval,
		onViolation:   onViolation,
		log:           log,
		listProcesses: listProcesses,
	}
}

// Run scans on the configured interval until a violation is reported or ctx
// is cancelled. It returns nil after a violation and ctx.Err() on
// cancellation.
func (h *Hunter) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			violated, err := h.scanOnce(ctx)
			if err != nil {
				h.log.Warn("process scan failed", "error", err)
				continue
			}
			if violated {
				return nil
			}
		}
	}
}

// scanOnce lists processes and reports at most one violation.
func (h *Hunter) scanOnce(ctx context.Context) (bool, error) {
	processes, err := h.listProcesses(ctx)
	if err != nil {
		return false, err
	}
	for _, proc := range processes {
		cmd := strings.ToLower(proc.Command)
		for _, pattern := range h.patterns {
			if strings.Contains(cmd, strings.ToLower(pattern)) {
				h.onViolation(fmt.Sprintf("unauthorized process detected: pid=%d cmd=%s", proc.PID, proc.Command))
				return true, nil
			}
		}
	}
	return false, nil
}
