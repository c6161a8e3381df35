// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// CurrencySymbol prefixes every money value.
var CurrencySymbol = "¥"

// FormatMoney formats a whole-unit amount with grouping, e.g. ¥1,235.
func FormatMoney(v float64) string {
	r := int64(math.Round(v))
	if r < 0 {
		return "-" + CurrencySymbol + humanize.Comma(-r)
	}
	return CurrencySymbol + humanize.Comma(r)
}

// FormatAmount formats an amount with cents, e.g. ¥1,234.50.
func FormatAmount(v float64) string {
	if v < 0 {
		return "-" + CurrencySymbol + humanize.FormatFloat("#,###.##", -v)
	}
	return CurrencySymbol + humanize.FormatFloat("#,###.##", v)
}

// FormatSigned formats an entry amount with an explicit sign:
// +¥100.00 for income, -¥20.50 for a loss.
func FormatSigned(v float64) string {
	if v < 0 {
		return FormatAmount(v)
	}
	return "+" + FormatAmount(v)
}

// FormatWan formats goal marker labels. Values of 10,000 and up are shown
// in units of 10,000 with a "w" suffix (20000 -> "2w", 15000 -> "1.5w").
func FormatWan(v float64) string {
	if v >= 10000 {
		return strconv.FormatFloat(v/10000, 'f', -1, 64) + "w"
	}
	return FormatNumber(int64(math.Round(v)))
}

// FormatK formats chart axis labels: 1500 -> "1.5k", 800 -> "800".
func FormatK(v float64) string {
	if math.Abs(v) >= 1000 {
		return fmt.Sprintf("%.1fk", v/1000)
	}
	return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDays pluralizes a day count.
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
