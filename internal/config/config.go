package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/pipeline"
)

const appName = "revtrack"

// Config holds all revtrack configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Goal       GoalConfig       `toml:"goal"`
	Chart      ChartConfig      `toml:"chart"`
	Appearance AppearanceConfig `toml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath   string `toml:"db_path,omitempty"`
	LogLevel string `toml:"log_level"`
}

// GoalConfig seeds the goal when the store has none saved yet.
type GoalConfig struct {
	DefaultTargetAmount float64 `toml:"default_target_amount"`
	DefaultTargetDate   string  `toml:"default_target_date"`
}

// ChartConfig controls the weekly series and the entry date picker.
type ChartConfig struct {
	BoundaryWeekday string `toml:"boundary_weekday"`
	DisplayWeeks    int    `toml:"display_weeks"`
	BarWeeks        int    `toml:"bar_weeks"`
	PickerStart     string `toml:"picker_start"`
	PickerEnd       string `toml:"picker_end"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DaemonConfig holds defaults for `revtrack daemon`.
type DaemonConfig struct {
	Addr        string `toml:"addr"`
	IntervalSec int    `toml:"interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			LogLevel: "warn",
		},
		Goal: GoalConfig{
			DefaultTargetAmount: 100000,
			DefaultTargetDate:   "2026-12-30",
		},
		Chart: ChartConfig{
			BoundaryWeekday: "sunday",
			DisplayWeeks:    10,
			BarWeeks:        pipeline.DefaultBarWeeks,
			PickerStart:     model.FormatDay(pipeline.DefaultPickerStart),
			PickerEnd:       model.FormatDay(pipeline.DefaultPickerEnd),
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:        "127.0.0.1:8788",
			IntervalSec: 15,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// Load reads the config file, returning defaults if it doesn't exist.
// A .env file in the working directory is loaded first so REVTRACK_*
// variables can come from there.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("REVTRACK_DB"); v != "" {
		cfg.General.DBPath = v
	}
	if v := os.Getenv("REVTRACK_THEME"); v != "" {
		cfg.Appearance.Theme = v
	}
	if v := os.Getenv("REVTRACK_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// DBPath returns the configured database path, or the default under DataDir.
func (c Config) DBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return filepath.Join(DataDir(), appName+".db")
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if c.Goal.DefaultTargetAmount < 0 {
		problems = append(problems, fmt.Sprintf("goal.default_target_amount %v: must not be negative", c.Goal.DefaultTargetAmount))
	}
	if _, err := model.ParseDay(c.Goal.DefaultTargetDate); err != nil {
		problems = append(problems, "goal.default_target_date: "+err.Error())
	}
	if _, err := model.ParseWeekday(c.Chart.BoundaryWeekday); err != nil {
		problems = append(problems, "chart.boundary_weekday: "+err.Error())
	}
	if c.Chart.DisplayWeeks < 1 {
		problems = append(problems, fmt.Sprintf("chart.display_weeks %d: must be at least 1", c.Chart.DisplayWeeks))
	}
	if c.Chart.BarWeeks < 1 {
		problems = append(problems, fmt.Sprintf("chart.bar_weeks %d: must be at least 1", c.Chart.BarWeeks))
	}
	start, errStart := model.ParseDay(c.Chart.PickerStart)
	if errStart != nil {
		problems = append(problems, "chart.picker_start: "+errStart.Error())
	}
	end, errEnd := model.ParseDay(c.Chart.PickerEnd)
	if errEnd != nil {
		problems = append(problems, "chart.picker_end: "+errEnd.Error())
	}
	if errStart == nil && errEnd == nil && end.Before(start) {
		problems = append(problems, "chart.picker_end: before picker_start")
	}
	if c.Daemon.IntervalSec < 2 {
		problems = append(problems, fmt.Sprintf("daemon.interval_sec %d: must be at least 2", c.Daemon.IntervalSec))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

// Boundary returns the weekday cumulative points snap to, Sunday if unset
// or unparseable.
func (c Config) Boundary() time.Weekday {
	wd, err := model.ParseWeekday(c.Chart.BoundaryWeekday)
	if err != nil {
		return time.Sunday
	}
	return wd
}

// WeekOptions builds the aggregation options from the chart section.
func (c Config) WeekOptions() pipeline.WeekOptions {
	opts := pipeline.DefaultWeekOptions
	opts.Boundary = c.Boundary()
	if c.Chart.DisplayWeeks > 0 {
		opts.DisplayDays = c.Chart.DisplayWeeks * 7
	}
	return opts
}

// PickerRange returns the date picker bounds, falling back to the defaults.
func (c Config) PickerRange() (time.Time, time.Time) {
	start, err := model.ParseDay(c.Chart.PickerStart)
	if err != nil {
		start = pipeline.DefaultPickerStart
	}
	end, err := model.ParseDay(c.Chart.PickerEnd)
	if err != nil {
		end = pipeline.DefaultPickerEnd
	}
	return start, end
}

// GoalDefaults returns the goal used before one has been saved.
func (c Config) GoalDefaults() model.GoalParameters {
	date, err := model.ParseDay(c.Goal.DefaultTargetDate)
	if err != nil {
		date = model.Day(2026, time.December, 30)
	}
	return model.GoalParameters{
		TargetAmount: c.Goal.DefaultTargetAmount,
		TargetDate:   date,
	}
}

