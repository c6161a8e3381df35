package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/revtrack/internal/model"
)

const (
	sheetSummary = "summary"
	sheetEntries = "entries"
	sheetWeekly  = "weekly"
)

// BuildXLSX renders a workbook with summary, entries and weekly sheets.
func BuildXLSX(r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	for _, name := range []string{sheetEntries, sheetWeekly} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	summary := [][2]any{
		{"Revenue Report", model.FormatDay(r.Today)},
		{"Target Amount", cents(r.Goal.TargetAmount)},
		{"Target Date", model.FormatDay(r.Goal.TargetDate)},
		{"Total Revenue", cents(r.Total)},
		{"Progress %", cents(r.Progress.Percent)},
		{"Avg Daily", cents(r.Pacing.AvgDailyIncome)},
		{"Required Daily", cents(r.Pacing.RequiredDaily)},
		{"Days Remaining", r.Pacing.DaysRemaining},
		{"Remaining Amount", cents(r.Pacing.RemainingAmount)},
	}
	for i, kv := range summary {
		row := i + 1
		if err := setRow(f, sheetSummary, row, kv[0], kv[1]); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, sheetEntries, 1, colDate, colType, colAmount, colNote); err != nil {
		return nil, err
	}
	for i, e := range r.Entries {
		if err := setRow(f, sheetEntries, i+2, model.FormatDay(e.Date), typeLabel(e), cents(e.Amount), e.Note); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, sheetWeekly, 1, "Week", "Cumulative"); err != nil {
		return nil, err
	}
	for i, p := range r.Series {
		if err := setRow(f, sheetWeekly, i+2, model.FormatDay(p.Date), cents(p.Value)); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
