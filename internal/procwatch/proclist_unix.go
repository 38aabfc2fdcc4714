//go:build !windows

package procwatch

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
)

// listProcesses shells out to ps, which is portable across linux and darwin
// without cgo or per-kernel sysctl plumbing.
func listProcesses(ctx context.Context) ([]Process, error) {
	out, err := exec.CommandContext(ctx, "ps", "-eo", "pid,comm").Output()
	if err != nil {
		return nil, err
	}

	var processes []Process
	scanner := bufio.NewScanner(bytes.NewReader(out))
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false // header row
			continue
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		processes = append(processes, Process{
			PID:     pid,
			Command: strings.Join(fields[1:], " "),
		})
	}
	return processes, scanner.Err()
}
