package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/model"
)

var rmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete"},
	Short:   "Delete an entry by ID or unique ID prefix",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(_ *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	id, err := sess.store.ResolveID(args[0])
	if err != nil {
		return err
	}
	e, err := sess.store.Entry(id)
	if err != nil {
		return err
	}
	if err := sess.store.DeleteEntry(id); err != nil {
		return err
	}

	fmt.Printf("  Deleted %s %s on %s\n", shortID(e.ID), cli.FormatSigned(e.Amount), model.FormatDay(e.Date))
	return nil
}
