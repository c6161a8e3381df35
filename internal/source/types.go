package source

import (
	"fmt"
	"time"

	"github.com/theirongolddev/revtrack/internal/model"
)

// DiscoveredFile is a CSV file found during directory scanning.
type DiscoveredFile struct {
	Path       string
	ExportedOn time.Time // from a revenue_export_YYYY-MM-DD.csv name, zero otherwise
}

// RowError describes one rejected CSV row.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// ParseResult holds the output of parsing a single CSV file.
type ParseResult struct {
	Path        string
	Entries     []model.Entry
	Rows        int // data rows seen, excluding the header
	ParseErrors int
	RowErrors   []RowError // the first maxRowErrors failures
	Err         error      // unreadable file or missing columns
}
