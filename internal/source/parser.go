// Package source reads revenue entries back from CSV exports.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/revtrack/internal/model"
)

const maxRowErrors = 20

// ErrMissingColumn is returned when the header lacks Date or Amount.
var ErrMissingColumn = errors.New("missing column")

type columns struct {
	date, typ, amount, note int
}

// header maps column names to positions, case-insensitively. Type and Note
// are optional.
func header(rec []string) (columns, error) {
	c := columns{date: -1, typ: -1, amount: -1, note: -1}
	for i, name := range rec {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "date":
			c.date = i
		case "type":
			c.typ = i
		case "amount":
			c.amount = i
		case "note":
			c.note = i
		}
	}
	var missing []string
	if c.date < 0 {
		missing = append(missing, "Date")
	}
	if c.amount < 0 {
		missing = append(missing, "Amount")
	}
	if len(missing) > 0 {
		return c, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return c, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parseRow builds an entry from one record. A Type column of "Loss" makes
// the amount negative even when it was written unsigned.
func parseRow(rec []string, c columns) (model.Entry, error) {
	day, err := model.ParseDay(field(rec, c.date))
	if err != nil {
		return model.Entry{}, err
	}
	amount, err := model.ParseAmount(field(rec, c.amount))
	if err != nil {
		return model.Entry{}, err
	}
	if typ := field(rec, c.typ); typ != "" {
		kind, err := model.ParseKind(typ)
		if err != nil {
			return model.Entry{}, err
		}
		if kind == model.KindLoss || amount < 0 {
			amount = model.SignedAmount(model.KindLoss, amount)
		}
	}
	return model.NewEntry(day, amount, field(rec, c.note)), nil
}

// ParseCSV reads entries from r. Bad rows are counted and skipped; the
// result's Err is set only when the input cannot be read as CSV at all.
func ParseCSV(r io.Reader) ParseResult {
	var res ParseResult

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	rec, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			res.Err = fmt.Errorf("%w: empty file", ErrMissingColumn)
		} else {
			res.Err = fmt.Errorf("reading header: %w", err)
		}
		return res
	}
	cols, err := header(rec)
	if err != nil {
		res.Err = err
		return res
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				res.Err = err
				return res
			}
			res.reject(pe.Line, pe.Err)
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		line, _ := cr.FieldPos(0)

		res.Rows++
		e, err := parseRow(rec, cols)
		if err != nil {
			res.reject(line, err)
			continue
		}
		res.Entries = append(res.Entries, e)
	}
	return res
}

func (res *ParseResult) reject(line int, err error) {
	res.ParseErrors++
	if len(res.RowErrors) < maxRowErrors {
		res.RowErrors = append(res.RowErrors, RowError{Line: line, Err: err})
	}
}

// ParseFile reads a CSV file found by ScanDir.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Path: df.Path, Err: err}
	}
	defer func() { _ = f.Close() }()

	res := ParseCSV(f)
	res.Path = df.Path
	return res
}
