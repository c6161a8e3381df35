package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/revtrack/internal/model"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("REVTRACK_DB", "")
	t.Setenv("REVTRACK_THEME", "")
	t.Setenv("REVTRACK_LOG_LEVEL", "")
	t.Chdir(dir)
	return dir
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
	require.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.Goal.DefaultTargetAmount = 250000
	cfg.Chart.BoundaryWeekday = "monday"
	cfg.Appearance.Theme = "tokyo-night"
	require.NoError(t, Save(cfg))
	assert.True(t, Exists())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	info, err := os.Stat(ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadRejectsBadTOML(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[goal\n"), 0o600))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("REVTRACK_DB", "/tmp/custom.db")
	t.Setenv("REVTRACK_THEME", "terminal")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath())
	assert.Equal(t, "terminal", cfg.Appearance.Theme)
}

func TestDotEnvOverrides(t *testing.T) {
	dir := isolate(t)
	// godotenv does not override variables that are already set.
	require.NoError(t, os.Unsetenv("REVTRACK_LOG_LEVEL"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REVTRACK_LOG_LEVEL=debug\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.General.LogLevel)
}

func TestDBPathDefault(t *testing.T) {
	dir := isolate(t)
	assert.Equal(t, filepath.Join(dir, "data", "revtrack", "revtrack.db"), DefaultConfig().DBPath())
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Goal.DefaultTargetDate = "soon"
	cfg.Chart.BoundaryWeekday = "funday"
	cfg.Chart.DisplayWeeks = 0
	cfg.Daemon.IntervalSec = 1

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "goal.default_target_date")
	assert.Contains(t, msg, "chart.boundary_weekday")
	assert.Contains(t, msg, "chart.display_weeks")
	assert.Contains(t, msg, "daemon.interval_sec")
}

func TestValidatePickerOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Chart.PickerStart = "2027-01-10"
	require.ErrorContains(t, cfg.Validate(), "before picker_start")
}

func TestDerivedSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Chart.BoundaryWeekday = "fri"
	cfg.Chart.DisplayWeeks = 4

	opts := cfg.WeekOptions()
	assert.Equal(t, time.Friday, opts.Boundary)
	assert.Equal(t, 28, opts.DisplayDays)

	goal := cfg.GoalDefaults()
	assert.Equal(t, 100000.0, goal.TargetAmount)
	assert.Equal(t, model.Day(2026, time.December, 30), goal.TargetDate)

	start, end := cfg.PickerRange()
	assert.Equal(t, model.Day(2025, time.November, 9), start)
	assert.Equal(t, model.Day(2027, time.January, 3), end)
}

func TestBoundaryFallsBackToSunday(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Chart.BoundaryWeekday = "nope"
	assert.Equal(t, time.Sunday, cfg.Boundary())
}
