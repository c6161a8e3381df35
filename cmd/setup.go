package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/config"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/store"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func prompt(reader *bufio.Reader) string {
	fmt.Print("     > ")
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	st, err := store.Open(dbPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	goal, err := st.Goal(cfg.GoalDefaults())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("  Welcome to revtrack!")
	fmt.Println()
	if n, _ := st.EntryCount(); n > 0 {
		fmt.Printf("  Found %s entries in %s\n\n", cli.FormatNumber(int64(n)), st.Path())
	}

	// 1. Target amount
	fmt.Println("  1. Revenue target")
	fmt.Printf("     Current: %s\n", cli.FormatAmount(goal.TargetAmount))
	for {
		in := prompt(reader)
		if in == "" {
			break
		}
		v, err := model.ParseAmount(in)
		if err == nil && v > 0 {
			goal.TargetAmount = v
			break
		}
		fmt.Println("     Enter a positive amount, e.g. 100,000")
	}
	fmt.Println()

	// 2. Target date
	fmt.Println("  2. Target date (YYYY-MM-DD)")
	fmt.Printf("     Current: %s\n", model.FormatDay(goal.TargetDate))
	for {
		in := prompt(reader)
		if in == "" {
			break
		}
		d, err := model.ParseDay(in)
		if err == nil {
			goal.TargetDate = d
			break
		}
		fmt.Println("     " + err.Error())
	}
	fmt.Println()

	// 3. Week boundary
	fmt.Println("  3. Cumulative chart weeks end on")
	fmt.Println("     (1) Sunday [default]")
	fmt.Println("     (2) Saturday")
	fmt.Println("     (3) Friday")
	switch prompt(reader) {
	case "2":
		cfg.Chart.BoundaryWeekday = "saturday"
	case "3":
		cfg.Chart.BoundaryWeekday = "friday"
	default:
		cfg.Chart.BoundaryWeekday = "sunday"
	}
	fmt.Println()

	// 4. Theme
	fmt.Println("  4. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	switch prompt(reader) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if err := st.SaveGoal(goal); err != nil {
		return fmt.Errorf("saving goal: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Printf("  Goal: %s by %s\n", cli.FormatAmount(goal.TargetAmount), model.FormatDay(goal.TargetDate))
	fmt.Println("  Run `revtrack setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
