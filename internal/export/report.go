// Package export writes entries and goal state to CSV, XLSX and PDF files.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/pipeline"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatCSV, FormatXLSX, FormatPDF}

// ParseFormat accepts a format name or a file extension like ".pdf".
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want csv, xlsx or pdf)", s)
}

// Filename returns the default export name for today, e.g.
// revenue_export_2025-01-19.csv.
func Filename(today time.Time, f Format) string {
	return fmt.Sprintf("revenue_export_%s.%s", model.FormatDay(today), f)
}

// Report is the derived state every export format renders.
type Report struct {
	Entries  []model.Entry
	Goal     model.GoalParameters
	Today    time.Time
	Total    float64
	Pacing   model.PacingStats
	Progress model.GoalProgress
	Series   []model.CumulativePoint
}

// NewReport derives totals, pacing, progress and the cumulative series.
// Entries keep their storage order.
func NewReport(entries []model.Entry, goal model.GoalParameters, today time.Time, opts pipeline.WeekOptions) Report {
	total := pipeline.Total(entries)
	return Report{
		Entries:  entries,
		Goal:     goal,
		Today:    model.DayOf(today),
		Total:    total,
		Pacing:   pipeline.PacingFor(entries, goal, today),
		Progress: pipeline.GoalProgress(total, goal.TargetAmount),
		Series:   pipeline.AggregateWith(entries, today, opts),
	}
}

// Write renders r in format f to w.
func Write(w io.Writer, f Format, r Report) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, r.Entries)
	case FormatXLSX:
		data, err := BuildXLSX(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatPDF:
		data, err := BuildPDF(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// typeLabel is the CSV and spreadsheet label for an entry's sign.
func typeLabel(e model.Entry) string {
	if e.Kind() == model.KindLoss {
		return "Loss"
	}
	return "Income"
}

// cents rounds to two decimal places for money columns.
func cents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
