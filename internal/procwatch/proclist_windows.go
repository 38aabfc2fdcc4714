//go:build windows

package procwatch

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
)

func listProcesses(ctx context.Context) ([]Process, error) {
	out, err := exec.CommandContext(ctx, "tasklist", "/fo", "csv", "/nh").Output()
	if err != nil {
		return nil, err
	}

	var processes []Process
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// "Image Name","PID","Session Name","Session#","Mem Usage"
		fields := strings.Split(line, "\",\"")
		if len(fields) < 2 {
			continue
		}
		name := strings.TrimPrefix(fields[0], "\"")
		pid, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		processes = append(processes, Process{PID: pid, Command: name})
	}
	return processes, scanner.Err()
}
