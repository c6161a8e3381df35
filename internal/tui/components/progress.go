package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/pipeline"
	"github.com/theirongolddev/revtrack/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForProgress returns a color that warms up as the goal nears.
func ColorForProgress(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 100:
		return t.Income
	case pct >= 50:
		return t.AccentBright
	case pct >= 20:
		return t.Accent
	default:
		return t.Warn
	}
}

func solidBar(color lipgloss.Color, width int) progress.Model {
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(theme.Active.TextDim)
	return bar
}

// GoalBar renders the goal progress bar as three lines: the bar with its
// percentage, a tick under every marker, and labels for the markers far
// enough from either end.
func GoalBar(gp model.GoalProgress, width int) string {
	t := theme.Active

	barW := width - 8
	if barW < 10 {
		barW = 10
	}

	color := ColorForProgress(gp.Percent)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	tickStyle := lipgloss.NewStyle().Foreground(t.Goal).Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	line1 := solidBar(color, barW).ViewAs(gp.Percent/100) + space +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", gp.Percent))

	ticks := []rune(strings.Repeat(" ", barW))
	for _, m := range gp.Markers {
		ticks[markerCol(m, gp.Target, barW)] = '╵'
	}

	labels := []rune(strings.Repeat(" ", barW+6))
	lastEnd := -1
	for _, m := range pipeline.LabeledMarkers(gp) {
		lbl := []rune(cli.FormatWan(m))
		col := max(markerCol(m, gp.Target, barW)-len(lbl)/2, 0)
		if col <= lastEnd {
			continue
		}
		copy(labels[col:], lbl)
		lastEnd = col + len(lbl)
	}

	return line1 + "\n" +
		tickStyle.Render(string(ticks)) + "\n" +
		labelStyle.Render(strings.TrimRight(string(labels), " "))
}

func markerCol(marker, target float64, width int) int {
	if target <= 0 {
		return 0
	}
	col := int(marker / target * float64(width))
	return min(max(col, 0), width-1)
}

// PaceBar renders a labeled bar comparing the realized daily average to the
// daily amount still required. A full bar means the pace is sufficient.
func PaceBar(label string, p model.PacingStats, labelW, barWidth int) string {
	t := theme.Active

	ratio := 1.0
	if p.RequiredDaily > 0 {
		ratio = min(max(p.AvgDailyIncome/p.RequiredDaily, 0), 1)
	}

	color := t.Loss
	status := "behind"
	if p.OnTrack() {
		color = t.Income
		status = "on track"
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	statusStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + space +
		solidBar(color, barWidth).ViewAs(ratio) + space +
		statusStyle.Render(fmt.Sprintf("%3.0f%% %s", ratio*100, status))
}
