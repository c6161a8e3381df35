package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/pipeline"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Cumulative revenue by week",
	RunE:  runTrend,
}

func init() {
	rootCmd.AddCommand(trendCmd)
}

func runTrend(_ *cobra.Command, _ []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	state, err := sess.load()
	if err != nil {
		return err
	}

	opts := sess.cfg.WeekOptions()
	points := pipeline.AggregateWith(state.Entries, sess.today, opts)
	if len(points) == 0 {
		printNoEntries()
		return nil
	}

	weekly := make(map[string]float64)
	for _, b := range pipeline.BucketWeeks(state.Entries, opts.Boundary) {
		weekly[model.FormatDay(b.WeekStart)] = b.Amount
	}

	values := make([]float64, len(points))
	rows := make([][]string, 0, len(points))
	for i, p := range points {
		values[i] = p.Value
		change := "-"
		if v, ok := weekly[model.FormatDay(p.Date)]; ok {
			change = cli.FormatSigned(v)
		}
		rows = append(rows, []string{model.FormatDay(p.Date), cli.FormatAmount(p.Value), change})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CUMULATIVE  weeks ending %s", cli.FormatDayOfWeek(int(opts.Boundary)))))
	fmt.Println()
	fmt.Printf("  %s  %s\n\n", cli.RenderSparkline(values), cli.FormatK(points[len(points)-1].Value))
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Week", "Cumulative", "Change"},
		Rows:    rows,
	}))
	return nil
}
