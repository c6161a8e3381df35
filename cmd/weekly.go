package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/pipeline"
)

var flagWeeklyWeeks int

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Net revenue per week (Monday start)",
	RunE:  runWeekly,
}

func init() {
	weeklyCmd.Flags().IntVarP(&flagWeeklyWeeks, "weeks", "w", 0, "Number of weeks (default from config)")
	rootCmd.AddCommand(weeklyCmd)
}

func runWeekly(_ *cobra.Command, _ []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	state, err := sess.load()
	if err != nil {
		return err
	}
	if len(state.Entries) == 0 {
		printNoEntries()
		return nil
	}

	weeks := flagWeeklyWeeks
	if weeks <= 0 {
		weeks = sess.cfg.Chart.BarWeeks
	}
	bars := pipeline.WeeklyBars(state.Entries, sess.today, weeks)

	maxAbs := 0.0
	for _, b := range bars {
		maxAbs = math.Max(maxAbs, math.Abs(b.Amount))
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("WEEKLY  Last %d weeks", len(bars))))
	fmt.Println()
	for _, b := range bars {
		fmt.Println(cli.RenderHorizontalBar(fmt.Sprintf("%5s", b.Label), b.Amount, maxAbs, 36))
	}
	fmt.Println()
	return nil
}
