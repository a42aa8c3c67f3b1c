//go:build unix

package theme

import (
	"fmt"
	"syscall"

	"github.com/mitchellh/go-ps"
)

// Reload asks every running Ghostty instance to reload its configuration and returns how many
// were signalled.
func Reload() (int, error) {
	pids, err := findProcessByName("ghostty")
	if err != nil {
		return 0, fmt.Errorf("failed to find ghostty processes: %w", err)
	}
	if len(pids) == 0 {
		return 0, fmt.Errorf("no running ghostty instances found")
	}

	for i, pid := range pids {
		if err := syscall.Kill(pid, syscall.SIGUSR2); err != nil {
			return i, fmt.Errorf("failed to send reload signal to ghostty (PID %d): %w", pid, err)
		}
	}
	return len(pids), nil
}

func findProcessByName(name string) ([]int, error) {
	processes, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to get process list: %w", err)
	}

	var pids []int
	for _, p := range processes {
		if p.Executable() == name {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}
