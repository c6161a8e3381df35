package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/revtrack/internal/store"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save or restore the full state as JSON or YAML",
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export PATH",
	Short: "Write entries and goal to PATH (.json, .yaml or .yml)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotExport,
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import PATH",
	Short: "Replace all entries and the goal with the contents of PATH",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotImport,
}

func init() {
	snapshotCmd.AddCommand(snapshotExportCmd)
	snapshotCmd.AddCommand(snapshotImportCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshotExport(_ *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	snap, err := sess.store.Snapshot(sess.cfg.GoalDefaults())
	if err != nil {
		return err
	}
	if err := store.WriteSnapshotFile(args[0], snap); err != nil {
		return err
	}
	fmt.Printf("  Wrote %d entries to %s\n", len(snap.Entries), args[0])
	return nil
}

func runSnapshotImport(_ *cobra.Command, args []string) error {
	snap, err := store.ReadSnapshotFile(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.store.Replace(snap, sess.cfg.GoalDefaults()); err != nil {
		return err
	}
	fmt.Printf("  Imported %d entries from %s\n", len(snap.Entries), args[0])
	return nil
}
