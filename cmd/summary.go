package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Goal progress and pacing",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
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

	stats := pipeline.PacingFor(state.Entries, state.Goal, sess.today)
	progress := pipeline.GoalProgress(stats.TotalRevenue, state.Goal.TargetAmount)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("REVENUE  %s", model.FormatDay(sess.today))))
	fmt.Println()
	fmt.Println("  " + cli.FormatAmount(progress.Current) + " of " + cli.FormatAmount(progress.Target))
	fmt.Println(indent(cli.RenderGoalBar(progress, 48), "  "))
	fmt.Println()

	rows := [][]string{
		{"Total Revenue", cli.FormatAmount(stats.TotalRevenue)},
		{"Target", cli.FormatAmount(state.Goal.TargetAmount)},
		{"Target Date", model.FormatDay(state.Goal.TargetDate)},
		{"Progress", cli.FormatPercent(progress.Percent)},
		{"---"},
		{"Days Tracked", cli.FormatDays(stats.DaysPassed)},
		{"Avg Daily", cli.FormatMoney(stats.AvgDailyIncome) + "/day"},
		{"---"},
		{"Remaining", cli.FormatAmount(stats.RemainingAmount)},
		{"Days Left", cli.FormatDays(stats.DaysRemaining)},
		{"Required Daily", cli.FormatMoney(stats.RequiredDaily) + "/day"},
		{"Pace", cli.RenderStatus(stats.OnTrack())},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Pacing",
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	return nil
}
