package cmd

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/revtrack/internal/log"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/source"
)

var (
	flagImportDryRun bool
	flagImportStrict bool
	flagImportAll    bool
)

var importCmd = &cobra.Command{
	Use:   "import PATH...",
	Short: "Add entries from CSV exports (files or directories)",
	Long: "Reads Date,Type,Amount,Note CSV files such as those written by export.\n" +
		"Rows matching a stored entry on date, amount and note are skipped unless --all is set.",
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&flagImportDryRun, "dry-run", "n", false, "Parse and report without storing anything")
	importCmd.Flags().BoolVar(&flagImportStrict, "strict", false, "Abort if any row fails to parse")
	importCmd.Flags().BoolVar(&flagImportAll, "all", false, "Keep rows that duplicate stored entries")
	rootCmd.AddCommand(importCmd)
}

func discoverImports(paths []string) ([]source.DiscoveredFile, error) {
	var files []source.DiscoveredFile
	for _, p := range paths {
		found, err := source.ScanDir(p)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no CSV files at %s", p)
		}
		files = append(files, found...)
	}
	return files, nil
}

// parseImports parses files concurrently. Results keep the input order.
func parseImports(files []source.DiscoveredFile) []source.ParseResult {
	results := make([]source.ParseResult, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, f := range files {
		g.Go(func() error {
			results[i] = source.ParseFile(f)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func runImport(_ *cobra.Command, args []string) error {
	files, err := discoverImports(args)
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	logger := sess.logger.With(log.FieldOperation, log.OpImport)

	var (
		parsed  []model.Entry
		rows    int
		badRows int
	)
	for _, res := range parseImports(files) {
		if res.Err != nil {
			return fmt.Errorf("%s: %w", res.Path, res.Err)
		}
		rows += res.Rows
		badRows += res.ParseErrors
		for _, re := range res.RowErrors {
			fmt.Printf("  %s %v\n", res.Path, re)
		}
		logger.Debug("file parsed", log.FieldPath, res.Path, log.FieldCount, len(res.Entries))
		parsed = append(parsed, res.Entries...)
	}
	if flagImportStrict && badRows > 0 {
		return fmt.Errorf("%d of %d rows failed to parse", badRows, rows)
	}

	fresh, skipped := parsed, 0
	if !flagImportAll {
		existing, err := sess.store.Entries()
		if err != nil {
			return err
		}
		fresh, skipped = source.Dedupe(existing, parsed)
	}

	fmt.Printf("\n  %d files, %d rows: %d new, %d duplicate, %d invalid\n",
		len(files), rows, len(fresh), skipped, badRows)

	if flagImportDryRun {
		fmt.Println("  Dry run, nothing stored.")
		return nil
	}
	if len(fresh) == 0 {
		if rows == 0 {
			return errors.New("no rows to import")
		}
		return nil
	}
	if err := sess.store.AddEntries(fresh); err != nil {
		return err
	}
	fmt.Printf("  Imported %d entries\n", len(fresh))
	return nil
}
