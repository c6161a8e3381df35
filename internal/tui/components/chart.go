package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from non-negative values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := int(math.Round(v / peak * 8))
		buf.WriteRune(blocks[min(max(idx, 1), 8)])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

// BarChart is a vertical bar chart with a y axis, x labels and an
// optional horizontal reference line.
type BarChart struct {
	Values    []float64
	Labels    []string // one per value, or nil
	Color     lipgloss.Color
	Reference float64 // drawn when > 0 and within the axis range
	Width     int
	Height    int
}

// View renders the chart. Negative values render as empty columns.
func (c BarChart) View() string {
	if len(c.Values) == 0 {
		return ""
	}
	if c.Width < 15 || c.Height < 3 {
		return Sparkline(c.Values, c.Color)
	}

	t := theme.Active
	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	bar := lipgloss.NewStyle().Foreground(c.Color).Background(t.Surface)
	ref := lipgloss.NewStyle().Foreground(t.Goal).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	peak := 0.0
	for _, v := range c.Values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	step := TickStep(peak)
	for int(math.Ceil(peak/step)) > max(c.Height/2, 2) {
		step *= 2
	}
	intervals := max(int(math.Ceil(peak/step)), 1)
	ceiling := float64(intervals) * step
	rowsPerTick := max(c.Height/intervals, 1)
	chartH := rowsPerTick * intervals

	labelW := max(len(cli.FormatK(ceiling))+1, 4)
	chartW := max(c.Width-labelW-1, 5)

	values, labels := fitColumns(c.Values, c.Labels, chartW)
	n := len(values)
	barW := min(max((chartW-(n-1))/n, 1), 6)
	axisLen := n*barW + (n - 1)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		top := ceiling * float64(row) / float64(chartH)
		bottom := ceiling * float64(row-1) / float64(chartH)
		isRef := c.Reference > 0 && c.Reference > bottom && c.Reference <= top

		yl := ""
		if row%rowsPerTick == 0 {
			yl = cli.FormatK(step * float64(row/rowsPerTick))
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", labelW, yl)))

		for i, v := range values {
			if i > 0 {
				if isRef {
					b.WriteString(ref.Render("┄"))
				} else {
					b.WriteString(blank.Render(" "))
				}
			}
			switch {
			case v >= top:
				b.WriteString(bar.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * 8)
				idx = min(max(idx, 1), 8)
				b.WriteString(bar.Render(strings.Repeat(string(blocks[idx]), barW)))
			case isRef:
				b.WriteString(ref.Render(strings.Repeat("┄", barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axis.Render(fmt.Sprintf("%*s└", labelW, "0")))
	b.WriteString(axis.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", labelW+1)))
		b.WriteString(axis.Render(xLabels(labels, barW, axisLen)))
	}
	return b.String()
}

// fitColumns samples values down so each column gets at least one
// cell plus a gap.
func fitColumns(values []float64, labels []string, chartW int) ([]float64, []string) {
	n := len(values)
	maxN := max((chartW+1)/2, 2)
	if n <= maxN {
		return values, labels
	}
	sv := make([]float64, maxN)
	var sl []string
	if len(labels) == n {
		sl = make([]string, maxN)
	}
	for i := range sv {
		src := i * (n - 1) / (maxN - 1)
		sv[i] = values[src]
		if sl != nil {
			sl[i] = labels[src]
		}
	}
	return sv, sl
}

// xLabels places labels under their columns, skipping any that would
// collide with the previous one. The last label is always attempted.
func xLabels(labels []string, barW, axisLen int) string {
	buf := []byte(strings.Repeat(" ", axisLen))
	lastEnd := -1
	place := func(i int) {
		pos := i * (barW + 1)
		lbl := labels[i]
		if pos+len(lbl) > axisLen {
			pos = axisLen - len(lbl)
		}
		if pos <= lastEnd || pos < 0 {
			return
		}
		copy(buf[pos:], lbl)
		lastEnd = pos + len(lbl)
	}
	for i := 0; i < len(labels)-1; i++ {
		place(i)
	}
	place(len(labels) - 1)
	return strings.TrimRight(string(buf), " ")
}

// TickStep computes a round y-axis interval giving about five ticks.
func TickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// WeekBars renders one horizontal bar per week, scaled to the largest
// absolute amount; losses use the loss color.
func WeekBars(bars []model.WeeklyBar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	maxAbs := 0.0
	amounts := make([]string, len(bars))
	amountW := 0
	for i, wb := range bars {
		maxAbs = max(maxAbs, math.Abs(wb.Amount))
		amounts[i] = cli.FormatMoney(wb.Amount)
		amountW = max(amountW, lipgloss.Width(amounts[i]))
	}
	const labelW = 5
	barW := max(width-labelW-amountW-2, 4)

	lines := make([]string, len(bars))
	for i, wb := range bars {
		n := 0
		if maxAbs > 0 {
			n = int(math.Round(math.Abs(wb.Amount) / maxAbs * float64(barW)))
		}
		if n == 0 && wb.Amount != 0 {
			n = 1
		}
		color := t.AmountColor(wb.Amount)
		fill := "█"
		if wb.Amount < 0 {
			fill = "▒"
		}
		valStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
		lines[i] = labelStyle.Render(fmt.Sprintf("%*s", labelW, wb.Label)) + blank.Render(" ") +
			valStyle.Render(strings.Repeat(fill, n)) + blank.Render(strings.Repeat(" ", barW-n+1)) +
			valStyle.Render(fmt.Sprintf("%*s", amountW, amounts[i]))
	}
	return strings.Join(lines, "\n")
}
