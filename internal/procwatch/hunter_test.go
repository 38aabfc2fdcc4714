package procwatch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestHunter(patterns []string, procs []Process, onViolation func(string)) *Hunter {
	h := NewHunter(patterns, time.Millisecond, onViolation, nil)
	h.listProcesses = func(ctx context.Context) ([]Process, error) {
		return procs, nil
	}
	return h
}

func TestScanMatchesCaseInsensitive(t *testing.T) {
	t.Parallel()

	var got string
	h := newTestHunter([]string{"WIRESHARK"}, []Process{
		{PID: 10, Command: "bash"},
		{PID: 20, Command: "wireshark-gtk"},
	}, func(msg string) { got = msg })

	violated, err := h.scanOnce(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !violated {
		t.Fatalf("expected a violation")
	}
	if !strings.Contains(got, "pid=20") || !strings.Contains(got, "wireshark-gtk") {
		t.Fatalf("violation message missing process details: %q", got)
	}
}

func TestScanReportsOnlyFirstViolation(t *testing.T) {
	t.Parallel()

	var calls int
	h := newTestHunter([]string{"gdb"}, []Process{
		{PID: 1, Command: "gdb"},
		{PID: 2, Command: "gdbserver"},
	}, func(string) { calls++ })

	violated, err := h.scanOnce(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !violated || calls != 1 {
		t.Fatalf("violated=%v calls=%d, want one callback for the first hit", violated, calls)
	}
}

func TestScanNoMatch(t *testing.T) {
	t.Parallel()

	h := newTestHunter([]string{"strace"}, []Process{
		{PID: 1, Command: "init"},
	}, func(string) { t.Fatalf("unexpected violation") })

	violated, err := h.scanOnce(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if violated {
		t.Fatalf("no pattern should have matched")
	}
}

func TestRunStopsAfterViolation(t *testing.T) {
	t.Parallel()

	var calls int
	h := newTestHunter([]string{"ltrace"}, []Process{
		{PID: 3, Command: "ltrace"},
	}, func(string) { calls++ })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := h.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls != 1 {
		t.Fatalf("callback fired %d times, want exactly once", calls)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	t.Parallel()

	h := newTestHunter([]string{"nothing-matches"}, []Process{
		{PID: 1, Command: "init"},
	}, func(string) { t.Fatalf("unexpected violation") })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := h.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want context.DeadlineExceeded", err)
	}
}
