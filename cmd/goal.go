package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/pipeline"
)

var (
	flagGoalAmount string
	flagGoalDate   string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show the revenue goal",
	RunE:  runGoal,
}

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the target amount and/or date",
	RunE:  runGoalSet,
}

func init() {
	goalSetCmd.Flags().StringVar(&flagGoalAmount, "amount", "", "Target amount")
	goalSetCmd.Flags().StringVar(&flagGoalDate, "date", "", "Target date YYYY-MM-DD")
	goalCmd.AddCommand(goalSetCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoal(_ *cobra.Command, _ []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	state, err := sess.load()
	if err != nil {
		return err
	}

	total := pipeline.Total(state.Entries)
	progress := pipeline.GoalProgress(total, state.Goal.TargetAmount)

	fmt.Println()
	fmt.Printf("  Target: %s by %s\n", cli.FormatAmount(state.Goal.TargetAmount), model.FormatDay(state.Goal.TargetDate))
	fmt.Printf("  Current: %s\n", cli.FormatAmount(total))
	fmt.Println(indent(cli.RenderGoalBar(progress, 48), "  "))
	fmt.Println()
	return nil
}

func runGoalSet(_ *cobra.Command, _ []string) error {
	if flagGoalAmount == "" && flagGoalDate == "" {
		return errors.New("nothing to change: pass --amount and/or --date")
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	goal, err := sess.store.Goal(sess.cfg.GoalDefaults())
	if err != nil {
		return err
	}

	if flagGoalAmount != "" {
		v, err := model.ParseAmount(flagGoalAmount)
		if err != nil {
			return fmt.Errorf("--amount: %w", err)
		}
		if v < 0 {
			return fmt.Errorf("--amount: %w: target must be positive", model.ErrInvalidAmount)
		}
		goal.TargetAmount = v
	}
	if flagGoalDate != "" {
		d, err := model.ParseDay(flagGoalDate)
		if err != nil {
			return fmt.Errorf("--date: %w", err)
		}
		goal.TargetDate = d
	}

	if err := sess.store.SaveGoal(goal); err != nil {
		return fmt.Errorf("saving goal: %w", err)
	}
	fmt.Printf("  Goal: %s by %s\n", cli.FormatAmount(goal.TargetAmount), model.FormatDay(goal.TargetDate))
	return nil
}
