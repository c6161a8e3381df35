package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/pipeline"
)

// BuildPDF renders a short report: goal, pacing, the cumulative weekly
// table and the entry history.
func BuildPDF(r Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Revenue Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	lines := []string{
		fmt.Sprintf("Generated for: %s", model.FormatDay(r.Today)),
		fmt.Sprintf("Goal: %s by %s", money(r.Goal.TargetAmount), model.FormatDay(r.Goal.TargetDate)),
		fmt.Sprintf("Total revenue: %s (%.1f%%)", money(r.Total), r.Progress.Percent),
		fmt.Sprintf("Avg daily: %s over %d days", money(r.Pacing.AvgDailyIncome), r.Pacing.DaysPassed),
		fmt.Sprintf("Required daily: %s for %d days", money(r.Pacing.RequiredDaily), r.Pacing.DaysRemaining),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	if len(r.Series) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 6, "Week", "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, "Cumulative", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, p := range r.Series {
			pdf.CellFormat(40, 6, model.FormatDay(p.Date), "1", 0, "C", false, 0, "")
			pdf.CellFormat(50, 6, money(p.Value), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(30, 6, colDate, "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, colType, "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, colAmount, "1", 0, "C", false, 0, "")
	pdf.CellFormat(0, 6, colNote, "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, e := range pipeline.SortNewestFirst(r.Entries) {
		pdf.CellFormat(30, 6, model.FormatDay(e.Date), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, typeLabel(e), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, money(e.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(0, 6, tr(e.Note), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}
