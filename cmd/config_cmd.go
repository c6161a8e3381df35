// Package cmd implements the revtrack CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/config"
	"github.com/theirongolddev/revtrack/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

type configSection struct {
	name string
	rows [][2]string
}

func configSections(cfg config.Config) []configSection {
	return []configSection{
		{"general", [][2]string{
			{"db_path", dbPath(cfg)},
			{"schema", schemaStatus(dbPath(cfg))},
			{"log_level", cfg.General.LogLevel},
		}},
		{"goal", [][2]string{
			{"default_target_amount", cli.FormatAmount(cfg.Goal.DefaultTargetAmount)},
			{"default_target_date", cfg.Goal.DefaultTargetDate},
		}},
		{"chart", [][2]string{
			{"boundary_weekday", cfg.Boundary().String()},
			{"display_weeks", strconv.Itoa(cfg.Chart.DisplayWeeks)},
			{"bar_weeks", strconv.Itoa(cfg.Chart.BarWeeks)},
			{"picker", cfg.Chart.PickerStart + " .. " + cfg.Chart.PickerEnd},
		}},
		{"appearance", [][2]string{
			{"theme", cfg.Appearance.Theme},
		}},
		{"daemon", [][2]string{
			{"addr", cfg.Daemon.Addr},
			{"interval_sec", strconv.Itoa(cfg.Daemon.IntervalSec)},
		}},
	}
}

// schemaStatus reports the migration version without creating a database
// that does not exist yet.
func schemaStatus(path string) string {
	if _, err := os.Stat(path); err != nil {
		return "not created"
	}
	v, dirty, err := store.SchemaVersion(path)
	switch {
	case err != nil:
		return "unknown (" + err.Error() + ")"
	case dirty:
		return fmt.Sprintf("v%d (dirty)", v)
	default:
		return fmt.Sprintf("v%d", v)
	}
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	status := "using defaults (no config file)"
	if config.Exists() {
		status = "loaded"
	}
	fmt.Printf("  Config file: %s (%s)\n\n", config.ConfigPath(), status)

	for _, sec := range configSections(cfg) {
		t := cli.Table{Title: "[" + sec.name + "]", Headers: []string{"Key", "Value"}}
		for _, r := range sec.rows {
			t.Rows = append(t.Rows, []string{r[0], r[1]})
		}
		fmt.Println(cli.RenderTable(t))
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("  %v\n\n", err)
	}
	fmt.Println("  Run `revtrack setup` to reconfigure.")
	return nil
}
