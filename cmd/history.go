package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/pipeline"
)

var (
	flagHistoryLimit int
	flagHistoryFrom  string
	flagHistoryTo    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Entries, newest first",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 0, "Show at most N entries (0 = all)")
	historyCmd.Flags().StringVar(&flagHistoryFrom, "from", "", "Only entries on or after YYYY-MM-DD")
	historyCmd.Flags().StringVar(&flagHistoryTo, "to", "", "Only entries on or before YYYY-MM-DD")
	rootCmd.AddCommand(historyCmd)
}

func parseBound(flag, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	d, err := model.ParseDay(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return d, nil
}

func runHistory(_ *cobra.Command, _ []string) error {
	from, err := parseBound("from", flagHistoryFrom)
	if err != nil {
		return err
	}
	to, err := parseBound("to", flagHistoryTo)
	if err != nil {
		return err
	}

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

	entries := state.Entries
	if !from.IsZero() || !to.IsZero() {
		entries = pipeline.FilterRange(entries, from, to)
		if len(entries) == 0 {
			fmt.Println("\n  No entries in that range.")
			return nil
		}
	}

	sorted := pipeline.SortNewestFirst(entries)
	shown := sorted
	if flagHistoryLimit > 0 && flagHistoryLimit < len(sorted) {
		shown = sorted[:flagHistoryLimit]
	}

	rows := make([][]string, 0, len(shown)+2)
	for _, e := range shown {
		rows = append(rows, []string{
			model.FormatDay(e.Date),
			cli.FormatSigned(e.Amount),
			string(e.Kind()),
			e.Note,
			shortID(e.ID),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", cli.FormatAmount(pipeline.Total(entries)), "", "", cli.FormatNumber(int64(len(entries)))})

	fmt.Println()
	title := "History"
	if len(shown) < len(sorted) {
		title = fmt.Sprintf("History (latest %d of %d)", len(shown), len(sorted))
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"Date", "Amount", "Type", "Note", "ID"},
		Rows:    rows,
	}))
	return nil
}
