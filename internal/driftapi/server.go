// Package driftapi exposes the fingerprint baseline over a small HTTP API,
// so a resident verifier process can be fed baselines and queried for drift
// verdicts. It never carries container files, only digests and verdicts.
package driftapi

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/Azccriminal/floatboat/internal/fingerprint"
	"github.com/Azccriminal/floatboat/internal/logger"
)

// maxVerifyBody caps the content accepted by a verify request.
const maxVerifyBody = 64 << 20

// Server serves baseline and verification endpoints over a fingerprint
// store. The store itself is lock-free, so the server serializes baseline
// writes against verification reads.
type Server struct {
	mu    sync.RWMutex
	store *fingerprint.Store
	log   logger.Logger
}

func NewServer(store *fingerprint.Store, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{store: store, log: log}
}

// Register mounts the drift endpoints on e.
func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/baseline", s.handleLoadBaseline)
	e.GET("/v1/baseline", s.handleListBaseline)
	e.POST("/v1/verify/:name", s.handleVerify)
}

// loadBaselineRequest carries named blobs, base64 encoded.
type loadBaselineRequest struct {
	Blobs map[string]string `json:"blobs"`
}

type baselineEntry struct {
	Name   string `json:"name"`
	Digest string `json:"digest"`
}

type verifyResponse struct {
	RequestID string `json:"request_id"`
	Name      string `json:"name"`
	Result    string `json:"result"`
}

func (s *Server) handleLoadBaseline(c *echo.Context) error {
	req, err := decodeJSON[loadBaselineRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, "invalid JSON body")
	}
	if len(req.Blobs) == 0 {
		return writeBadRequest(c, "no blobs supplied")
	}

	blobs := make(map[string][]byte, len(req.Blobs))
	for name, encoded := range req.Blobs {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return writeBadRequest(c, fmt.Sprintf("blob %q is not valid base64", name))
		}
		blobs[name] = raw
	}

	s.mu.Lock()
	s.store.LoadInitial(blobs)
	count := s.store.Len()
	s.mu.Unlock()

	s.log.Info("baseline loaded", "blobs", len(blobs), "total", count)
	return c.JSON(http.StatusOK, map[string]any{"loaded": len(blobs), "total": count})
}

func (s *Server) handleListBaseline(c *echo.Context) error {
	s.mu.RLock()
	names := s.store.Names()
	entries := make([]baselineEntry, 0, len(names))
	for _, name := range names {
		digest, ok := s.store.Digest(name)
		if !ok {
			continue
		}
		entries = append(entries, baselineEntry{Name: name, Digest: hex.EncodeToString(digest[:])})
	}
	s.mu.RUnlock()

	return c.JSON(http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleVerify(c *echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return writeBadRequest(c, "missing name")
	}
	content, err := io.ReadAll(io.LimitReader(c.Request().Body, maxVerifyBody))
	if err != nil {
		return writeBadRequest(c, "unreadable body")
	}

	s.mu.RLock()
	result := s.store.Verify(name, content)
	s.mu.RUnlock()

	status := http.StatusOK
	switch result {
	case fingerprint.Mismatch:
		status = http.StatusConflict
		s.log.Warn("integrity violation", "name", name)
	case fingerprint.UnknownName:
		status = http.StatusNotFound
	}
	return c.JSON(status, verifyResponse{
		RequestID: uuid.NewString(),
		Name:      name,
		Result:    result.String(),
	})
}

func writeBadRequest(c *echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"error": map[string]string{"message": msg},
	})
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
