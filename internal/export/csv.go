package export

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/theirongolddev/revtrack/internal/model"
)

// CSV columns
const (
	colDate   = "Date"
	colType   = "Type"
	colAmount = "Amount"
	colNote   = "Note"
)

var csvHeader = []string{colDate, colType, colAmount, colNote}

// WriteCSV writes one row per entry, in the order given. The note column is
// always quoted, which encoding/csv cannot be told to do.
func WriteCSV(w io.Writer, entries []model.Entry) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(csvHeader, ",") + "\n"); err != nil {
		return err
	}
	for _, e := range entries {
		row := model.FormatDay(e.Date) + "," +
			typeLabel(e) + "," +
			strconv.FormatFloat(e.Amount, 'f', -1, 64) + "," +
			quote(e.Note) + "\n"
		if _, err := bw.WriteString(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
