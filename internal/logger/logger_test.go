package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/Azccriminal/floatboat/pkg/pself"
)

// Every Logger must be usable as the loader's reporting surface.
var _ pself.Logger = Default()

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := JSON(&buf, slog.LevelInfo)
	ctx := WithContext(context.Background(), l)
	if FromContext(ctx) != l {
		t.Fatal("logger not recovered from context")
	}
	if FromContext(context.Background()) == nil {
		t.Fatal("expected a default logger for a bare context")
	}
}

func TestJSONLoggerWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := JSON(&buf, slog.LevelInfo).With("component", "loader")
	l.Info("section loaded", "name", "text")

	out := buf.String()
	for _, want := range []string{`"component":"loader"`, `"name":"text"`, `"msg":"section loaded"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in output: %s", want, out)
		}
	}
}

func TestJSONLoggerLevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := JSON(&buf, slog.LevelWarn)
	l.Info("dropped")
	l.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info record should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn record missing: %s", out)
	}
}

func TestPrettyHandlerOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := Pretty(&buf, slog.LevelDebug)
	l.Info("hash mismatch", "section", "boot code")

	out := buf.String()
	if !strings.Contains(out, "hash mismatch") {
		t.Fatalf("message missing: %s", out)
	}
	if !strings.Contains(out, `section="boot code"`) {
		t.Fatalf("values with spaces should be quoted: %s", out)
	}
}

func TestPrettyHandlerEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestPrettyHandlerGroupPrefix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil).WithGroup("scan")
	slog.New(h).Info("step", "index", "3")

	if !strings.Contains(buf.String(), "scan.index=3") {
		t.Fatalf("group prefix missing: %s", buf.String())
	}
}

func TestNeedsQuoting(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"simple", false},
		{"has space", true},
		{"has\ttab", true},
		{`has"quote`, true},
		{"", false},
	}
	for _, tc := range cases {
		if got := needsQuoting(tc.in); got != tc.want {
			t.Errorf("needsQuoting(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
