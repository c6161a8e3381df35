package daemon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPIDFileClaimAndRelease(t *testing.T) {
	p := PIDFile{Path: filepath.Join(t.TempDir(), "run", "revtrackd.pid")}

	if _, alive := p.Running(); alive {
		t.Fatal("no pid file should not report a running daemon")
	}

	started := time.Date(2025, 1, 19, 9, 0, 0, 0, time.UTC)
	if err := p.Claim(RuntimeState{Addr: "127.0.0.1:9999", StartedAt: started, DBPath: "x.db"}); err != nil {
		t.Fatalf("Claim: %v", err)
	}

	pid, alive := p.Running()
	if pid != os.Getpid() || !alive {
		t.Fatalf("Running() = %d, %v; want own pid alive", pid, alive)
	}
	st, err := p.State()
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if st.Addr != "127.0.0.1:9999" || !st.StartedAt.Equal(started) || st.PID != pid {
		t.Errorf("State() = %+v", st)
	}

	if err := p.Claim(RuntimeState{}); err == nil {
		t.Error("second Claim by a live process should fail")
	}

	p.Release()
	if _, err := os.Stat(p.Path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("pid file still present: %v", err)
	}
	if _, err := p.State(); err == nil {
		t.Error("state sidecar still present")
	}
}

func TestPIDFileInvalidContents(t *testing.T) {
	p := PIDFile{Path: filepath.Join(t.TempDir(), "revtrackd.pid")}
	if err := os.WriteFile(p.Path, []byte("garbage\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := p.PID(); err == nil {
		t.Error("expected error for invalid pid")
	}
	if _, alive := p.Running(); alive {
		t.Error("invalid pid should not be running")
	}
	// A stale file does not block a new claim.
	if err := p.Claim(RuntimeState{}); err != nil {
		t.Errorf("Claim over invalid file: %v", err)
	}
}

func TestStopWithoutPIDFile(t *testing.T) {
	p := PIDFile{Path: filepath.Join(t.TempDir(), "missing.pid")}
	if _, err := p.Stop(time.Second); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Stop() err = %v, want ErrNotRunning", err)
	}
}
