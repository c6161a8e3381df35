package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for empty, zero or unparseable amounts.
var ErrInvalidAmount = errors.New("invalid amount")

// Kind classifies an entry by the sign of its amount.
type Kind string

const (
	KindIncome Kind = "income"
	KindLoss   Kind = "loss"
)

// Entry is a single dated income or loss record.
type Entry struct {
	ID     string
	Date   time.Time // calendar day, see Day
	Amount float64   // negative = loss
	Note   string
}

// Kind reports income for zero and positive amounts.
func (e Entry) Kind() Kind {
	if e.Amount >= 0 {
		return KindIncome
	}
	return KindLoss
}

// NewEntry builds an entry with a fresh random ID.
func NewEntry(day time.Time, amount float64, note string) Entry {
	return Entry{
		ID:     uuid.NewString(),
		Date:   DayOf(day),
		Amount: amount,
		Note:   strings.TrimSpace(note),
	}
}

// ParseKind accepts "income" or "loss" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindIncome:
		return KindIncome, nil
	case KindLoss:
		return KindLoss, nil
	}
	return "", fmt.Errorf("unknown entry type %q (want income or loss)", s)
}

// SignedAmount applies the sign implied by kind to the magnitude of v.
func SignedAmount(kind Kind, v float64) float64 {
	v = math.Abs(v)
	if kind == KindLoss {
		return -v
	}
	return v
}

var amountReplacer = strings.NewReplacer(",", "", " ", "", "_", "", "$", "", "¥", "", "€", "", "£", "")

// ParseAmount parses user-entered money such as "1,200.50" or "¥300".
// Zero is rejected since it records nothing.
func ParseAmount(s string) (float64, error) {
	clean := amountReplacer.Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidAmount, s)
	}
	if d.IsZero() {
		return 0, fmt.Errorf("%w: zero", ErrInvalidAmount)
	}
	f, _ := d.Float64()
	return f, nil
}
