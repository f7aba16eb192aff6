// Package daemon holds process-level plumbing for the long-running
// scoreboard: the PID lock that keeps two processes from driving the same
// panel at once.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// PIDLock guards a hardware panel. Two schedulers writing to one SPI device
// interleave garbage, so the daemon takes this lock before opening the
// render target.
type PIDLock struct {
	path string
}

// Acquire creates a PID file at path holding the current process PID. It
// fails if another live process already holds the lock; a PID file left by
// a dead process is removed and re-acquired. The write is atomic
// (temp-file-then-rename).
func Acquire(path string) (*PIDLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create PID directory: %w", err)
	}

	if pid, err := readPID(path); err == nil {
		if processAlive(pid) {
			return nil, fmt.Errorf("scoreboard already running (PID %d)", pid)
		}
		os.Remove(path)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return nil, fmt.Errorf("write temp PID file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("rename PID file: %w", err)
	}
	return &PIDLock{path: path}, nil
}

// Release removes the PID file.
func (l *PIDLock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove PID file: %w", err)
	}
	return nil
}

// readPID reads and parses the PID from path.
func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read PID file: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse PID file: %w", err)
	}
	return pid, nil
}

// processAlive checks whether a process with the given PID exists by
// sending signal 0.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
