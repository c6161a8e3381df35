package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrNotRunning is returned when no live daemon owns the PID file.
var ErrNotRunning = errors.New("daemon is not running")

// RuntimeState is written next to the PID file so `daemon status` can find
// the listen address of a running process.
type RuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	DBPath    string    `json:"db_path"`
}

// PIDFile manages the PID file and its JSON sidecar.
type PIDFile struct {
	Path string
}

func (p PIDFile) statePath() string { return p.Path + ".json" }

// Claim records the current process as the daemon. It fails if another live
// process already holds the file; a stale file is replaced.
func (p PIDFile) Claim(st RuntimeState) error {
	if pid, alive := p.Running(); alive {
		return fmt.Errorf("daemon already running (pid %d)", pid)
	}
	if err := os.MkdirAll(filepath.Dir(p.Path), 0o750); err != nil {
		return fmt.Errorf("create daemon directory: %w", err)
	}
	if st.PID == 0 {
		st.PID = os.Getpid()
	}
	if err := os.WriteFile(p.Path, []byte(strconv.Itoa(st.PID)+"\n"), 0o600); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.statePath(), append(data, '\n'), 0o600)
}

// Release removes both files.
func (p PIDFile) Release() {
	_ = os.Remove(p.Path)
	_ = os.Remove(p.statePath())
}

// PID reads the recorded process ID.
func (p PIDFile) PID() (int, error) {
	//nolint:gosec // daemon pid path is configured by the local user
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", p.Path)
	}
	return pid, nil
}

// Running reports the recorded PID and whether that process is alive.
func (p PIDFile) Running() (int, bool) {
	pid, err := p.PID()
	if err != nil {
		return 0, false
	}
	return pid, ProcessAlive(pid)
}

// State reads the JSON sidecar.
func (p PIDFile) State() (RuntimeState, error) {
	var st RuntimeState
	//nolint:gosec // daemon state path is configured by the local user
	data, err := os.ReadFile(p.statePath())
	if err != nil {
		return st, err
	}
	err = json.Unmarshal(data, &st)
	return st, err
}

// Stop sends SIGTERM to the recorded process and waits up to timeout for it
// to exit.
func (p PIDFile) Stop(timeout time.Duration) (int, error) {
	pid, err := p.PID()
	if err != nil {
		return 0, ErrNotRunning
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return pid, fmt.Errorf("find daemon process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return pid, fmt.Errorf("signal daemon process: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !ProcessAlive(pid) {
			p.Release()
			return pid, nil
		}
		time.Sleep(150 * time.Millisecond)
	}
	return pid, fmt.Errorf("daemon (pid %d) did not exit in time", pid)
}

// ProcessAlive probes pid with signal 0.
func ProcessAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
