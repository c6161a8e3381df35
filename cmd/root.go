package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/revtrack/internal/config"
	"github.com/theirongolddev/revtrack/internal/log"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/store"
)

var (
	flagDB      string
	flagToday   string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "revtrack",
	Short: "Revenue goal tracker",
	Long:  "Log income and losses, and see how your pace compares to a revenue goal.",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage:      true,
	PersistentPreRunE: setupOutput,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "Treat this YYYY-MM-DD as today")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging to stderr")
}

// setupOutput drops colors when stdout is not a terminal, so piped reports
// stay plain text.
func setupOutput(_ *cobra.Command, _ []string) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return nil
}

// session bundles what most commands need: resolved config, an open
// store and the effective current day.
type session struct {
	cfg    config.Config
	store  *store.Store
	today  time.Time
	logger *log.Logger
}

func newLogger(cfg config.Config) *log.Logger {
	level := log.ParseLevel(cfg.General.LogLevel)
	switch {
	case flagVerbose:
		level = slog.LevelDebug
	case flagQuiet:
		level = slog.LevelError
	}
	l := log.New(log.Config{Level: level, Component: log.ComponentApp, Output: os.Stderr})
	log.SetDefault(l)
	return l
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func resolveToday() (time.Time, error) {
	if flagToday == "" {
		return model.Today(), nil
	}
	d, err := model.ParseDay(flagToday)
	if err != nil {
		return time.Time{}, fmt.Errorf("--today: %w", err)
	}
	return d, nil
}

func dbPath(cfg config.Config) string {
	if flagDB != "" {
		return flagDB
	}
	return cfg.DBPath()
}

// openSession loads config and opens the store. Callers must Close it.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	today, err := resolveToday()
	if err != nil {
		return nil, err
	}

	path := dbPath(cfg)
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	st.SetLogger(logger)
	logger.Debug("store opened", log.FieldPath, path, log.FieldDate, model.FormatDay(today))

	return &session{cfg: cfg, store: st, today: today, logger: logger}, nil
}

func (s *session) Close() {
	_ = s.store.Close()
}

func (s *session) load() (store.State, error) {
	return s.store.Load(s.cfg.GoalDefaults())
}

func printNoEntries() {
	fmt.Println("\n  No entries yet.")
	fmt.Println("  Add one with: revtrack add AMOUNT")
}
