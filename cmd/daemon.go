package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/config"
	"github.com/theirongolddev/revtrack/internal/daemon"
	"github.com/theirongolddev/revtrack/internal/log"
)

var daemonFlags struct {
	addr         string
	interval     time.Duration
	detach       bool
	pidFile      string
	logFile      string
	eventsBuffer int
	child        bool
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run a local status daemon with HTTP/SSE and metrics endpoints",
	RunE:  runDaemon,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon process and API status",
	RunE:  runDaemonStatus,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running daemon",
	RunE:  runDaemonStop,
}

func init() {
	pf := daemonCmd.PersistentFlags()
	pf.StringVar(&daemonFlags.addr, "addr", "", "HTTP listen address (default from config)")
	pf.DurationVar(&daemonFlags.interval, "interval", 0, "Polling interval (default from config)")
	pf.StringVar(&daemonFlags.pidFile, "pid-file", filepath.Join(config.DataDir(), "revtrackd.pid"), "PID file path")
	pf.StringVar(&daemonFlags.logFile, "log-file", filepath.Join(config.DataDir(), "revtrackd.log"), "Log file path for detached mode")
	pf.IntVar(&daemonFlags.eventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	daemonCmd.Flags().BoolVar(&daemonFlags.detach, "detach", false, "Run daemon as a background process")
	daemonCmd.Flags().BoolVar(&daemonFlags.child, "child", false, "Internal: mark detached child process")
	_ = daemonCmd.Flags().MarkHidden("child")

	daemonCmd.AddCommand(daemonStatusCmd, daemonStopCmd)
	rootCmd.AddCommand(daemonCmd)
}

func pidFile() daemon.PIDFile {
	return daemon.PIDFile{Path: daemonFlags.pidFile}
}

func runDaemon(_ *cobra.Command, _ []string) error {
	switch {
	case daemonFlags.detach && daemonFlags.child:
		return errors.New("invalid daemon launch mode")
	case daemonFlags.detach:
		return spawnDaemon()
	default:
		return serveDaemon()
	}
}

// spawnDaemon re-executes the binary in the background with --child,
// sending its output to the log file.
func spawnDaemon() error {
	if pid, alive := pidFile().Running(); alive {
		return fmt.Errorf("daemon already running (pid %d)", pid)
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	args := append(withoutDetach(os.Args[1:]), "--child")

	if err := os.MkdirAll(filepath.Dir(daemonFlags.logFile), 0o750); err != nil {
		return fmt.Errorf("create daemon log directory: %w", err)
	}
	//nolint:gosec // daemon log path is configured by the local user
	logf, err := os.OpenFile(daemonFlags.logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open daemon log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	child := exec.Command(exe, args...) //nolint:gosec // exe/args come from current process invocation
	child.Stdout = logf
	child.Stderr = logf
	child.Env = os.Environ()
	if err := child.Start(); err != nil {
		return fmt.Errorf("start detached daemon: %w", err)
	}

	fmt.Printf("  Started daemon (pid %d)\n", child.Process.Pid)
	fmt.Printf("  PID file: %s\n", daemonFlags.pidFile)
	fmt.Printf("  Log: %s\n", daemonFlags.logFile)
	return nil
}

func serveDaemon() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	addr := daemonFlags.addr
	if addr == "" {
		addr = sess.cfg.Daemon.Addr
	}
	interval := daemonFlags.interval
	if interval == 0 {
		interval = time.Duration(sess.cfg.Daemon.IntervalSec) * time.Second
	}

	pf := pidFile()
	if err := pf.Claim(daemon.RuntimeState{Addr: addr, StartedAt: time.Now(), DBPath: sess.store.Path()}); err != nil {
		return err
	}
	defer pf.Release()

	logger := sess.logger
	if !flagVerbose && !flagQuiet {
		logger = log.New(log.Config{Level: slog.LevelInfo, Output: os.Stderr})
	}

	cfg := daemon.Config{
		DBPath:       sess.store.Path(),
		Interval:     interval,
		Addr:         addr,
		EventsBuffer: daemonFlags.eventsBuffer,
		Week:         sess.cfg.WeekOptions(),
		BarWeeks:     sess.cfg.Chart.BarWeeks,
		GoalDefaults: sess.cfg.GoalDefaults(),
		Logger:       logger,
	}
	if flagToday != "" {
		today := sess.today
		cfg.Today = func() time.Time { return today }
	}
	svc := daemon.New(cfg, sess.store)

	fmt.Printf("  revtrack daemon listening on http://%s\n", addr)
	fmt.Printf("  Polling %s every %s\n", sess.store.Path(), interval)
	fmt.Printf("  Stop with: revtrack daemon stop --pid-file %s\n", daemonFlags.pidFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runDaemonStatus(_ *cobra.Command, _ []string) error {
	pf := pidFile()
	pid, err := pf.PID()
	if err != nil {
		fmt.Println("  Daemon: not running (pid file not found)")
		return nil
	}
	if !daemon.ProcessAlive(pid) {
		fmt.Printf("  Daemon: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr := daemonFlags.addr
	if st, err := pf.State(); err == nil && st.Addr != "" {
		addr = st.Addr
	}
	if addr == "" {
		cfg, _ := config.Load()
		addr = cfg.Daemon.Addr
	}
	fmt.Printf("  Daemon PID: %d\n", pid)
	fmt.Printf("  Address: http://%s\n", addr)

	st, err := fetchStatus(addr)
	if err != nil {
		fmt.Printf("  API status: %v\n", err)
		return nil
	}

	if st.LastPollAt.IsZero() {
		fmt.Println("  Last poll: pending")
	} else {
		fmt.Printf("  Last poll: %s (%d polls)\n", st.LastPollAt.Local().Format(time.RFC3339), st.PollCount)
	}
	sum := st.Summary
	fmt.Printf("  Entries: %d\n", sum.Entries)
	fmt.Printf("  Total: %s of %s (%s)\n",
		cli.FormatAmount(sum.TotalRevenue), cli.FormatAmount(sum.TargetAmount), cli.FormatPercent(sum.ProgressPercent))
	fmt.Printf("  Required daily: %s for %s\n", cli.FormatMoney(sum.RequiredDaily), cli.FormatDays(sum.DaysRemaining))
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}

func fetchStatus(addr string) (daemon.Status, error) {
	var st daemon.Status
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status probe
	if err != nil {
		return st, fmt.Errorf("unreachable (%w)", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return st, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return st, fmt.Errorf("malformed response (%w)", err)
	}
	return st, nil
}

func runDaemonStop(_ *cobra.Command, _ []string) error {
	pid, err := pidFile().Stop(8 * time.Second)
	if err != nil {
		return err
	}
	fmt.Printf("  Stopped daemon (pid %d)\n", pid)
	return nil
}

func withoutDetach(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}
