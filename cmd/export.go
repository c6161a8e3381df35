package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/revtrack/internal/export"
	"github.com/theirongolddev/revtrack/internal/log"
)

var (
	flagExportFormat string
	flagExportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries to CSV, XLSX or PDF",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "csv, xlsx or pdf (default from -o extension, else csv)")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output path, - for stdout (default revenue_export_<today>.<ext>)")
	rootCmd.AddCommand(exportCmd)
}

func exportFormat() (export.Format, error) {
	if flagExportFormat != "" {
		return export.ParseFormat(flagExportFormat)
	}
	if ext := filepath.Ext(flagExportOutput); ext != "" {
		return export.ParseFormat(ext)
	}
	return export.FormatCSV, nil
}

func runExport(_ *cobra.Command, _ []string) error {
	format, err := exportFormat()
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
	report := export.NewReport(state.Entries, state.Goal, sess.today, sess.cfg.WeekOptions())

	if flagExportOutput == "-" {
		return export.Write(os.Stdout, format, report)
	}

	path := flagExportOutput
	if path == "" {
		path = export.Filename(sess.today, format)
	}

	//nolint:gosec // export path is chosen by the local user
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := export.Write(f, format, report); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", format, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	sess.logger.WithComponent(log.ComponentExport).Info("export written",
		log.FieldOperation, log.OpExport, log.FieldFormat, string(format), log.FieldPath, path)
	fmt.Printf("  Exported %d entries to %s\n", len(state.Entries), path)
	return nil
}
