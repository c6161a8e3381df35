package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/pipeline"
)

var (
	flagAddDate string
	flagAddLoss bool
	flagAddNote string
)

var addCmd = &cobra.Command{
	Use:   "add AMOUNT",
	Short: "Record income or a loss",
	Long: "Record an entry. AMOUNT accepts grouping and a currency prefix (1,200.50, ¥300).\n" +
		"The date defaults to the chart boundary weekday on or after today.\n\n" +
		"Record a loss with --loss, or pass a negative amount after --:\n" +
		"  revtrack add --loss 500\n" +
		"  revtrack add -- -500",
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Entry date YYYY-MM-DD")
	addCmd.Flags().BoolVar(&flagAddLoss, "loss", false, "Record the amount as a loss")
	addCmd.Flags().StringVar(&flagAddNote, "note", "", "Free-form note")
	rootCmd.AddCommand(addCmd)
}

// entryAmount parses AMOUNT. A negative amount is a loss with or without
// --loss.
func entryAmount(arg string, loss bool) (float64, error) {
	raw, err := model.ParseAmount(arg)
	if err != nil {
		return 0, err
	}
	kind := model.KindIncome
	if loss || raw < 0 {
		kind = model.KindLoss
	}
	return model.SignedAmount(kind, raw), nil
}

func runAdd(_ *cobra.Command, args []string) error {
	amount, err := entryAmount(args[0], flagAddLoss)
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	day := pipeline.DefaultEntryDay(sess.today, sess.cfg.Boundary())
	if flagAddDate != "" {
		if day, err = model.ParseDay(flagAddDate); err != nil {
			return fmt.Errorf("--date: %w", err)
		}
	}

	e := model.NewEntry(day, amount, flagAddNote)
	if err := sess.store.AddEntry(e); err != nil {
		return err
	}

	fmt.Printf("  Added %s on %s (id %s)\n", cli.FormatSigned(e.Amount), model.FormatDay(e.Date), shortID(e.ID))
	return nil
}
