package tui

import (
	"fmt"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/tui/components"
	"github.com/theirongolddev/revtrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const chartHeight = 10

func (a App) dashboardMetrics() []components.Metric {
	p := a.pacing

	totalTone := components.ToneGood
	if p.TotalRevenue < 0 {
		totalTone = components.ToneBad
	}
	paceTone := components.ToneBad
	if p.OnTrack() {
		paceTone = components.ToneGood
	}

	return []components.Metric{
		{
			Label: "Total revenue",
			Value: cli.FormatMoney(p.TotalRevenue),
			Delta: "of " + cli.FormatMoney(a.goal.TargetAmount),
			Tone:  totalTone,
		},
		{
			Label: "Avg daily",
			Value: cli.FormatMoney(p.AvgDailyIncome),
			Delta: "over " + cli.FormatDays(p.DaysPassed),
		},
		{
			Label: "Required daily",
			Value: cli.FormatMoney(p.RequiredDaily),
			Delta: cli.FormatMoney(p.RemainingAmount) + " to go",
			Tone:  paceTone,
		},
		{
			Label: "Days left",
			Value: cli.FormatNumber(int64(p.DaysRemaining)),
			Delta: "until " + model.FormatDay(a.goal.TargetDate),
		},
	}
}

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active

	if a.loadErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(t.Loss).Background(t.Surface)
		return components.ContentCard("Error", errStyle.Render(a.loadErr.Error()), cw)
	}

	rows := []string{components.MetricCardRow(a.dashboardMetrics(), cw)}

	inner := components.CardInnerWidth(cw)
	goalBody := components.GoalBar(a.progress, inner) + "\n\n" +
		components.PaceBar("Pace", a.pacing, 5, max(inner-24, 10))
	rows = append(rows, components.ContentCard("Goal progress", goalBody, cw))

	if len(a.entries) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("No entries yet. Press a to add one.")
		rows = append(rows, components.ContentCard("", hint, cw))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	if a.isCompactLayout() {
		rows = append(rows,
			components.ContentCard(a.seriesTitle(), a.renderSeries(components.CardInnerWidth(cw)), cw),
			components.ContentCard("Recent weeks", components.WeekBars(a.bars, components.CardInnerWidth(cw)), cw),
		)
	} else {
		widths := components.LayoutRow(cw, 2)
		rows = append(rows, components.CardRow([]string{
			components.ContentCard(a.seriesTitle(), a.renderSeries(components.CardInnerWidth(widths[0])), widths[0]),
			components.ContentCard("Recent weeks", components.WeekBars(a.bars, components.CardInnerWidth(widths[1])), widths[1]),
		}))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a App) seriesTitle() string {
	return fmt.Sprintf("Cumulative revenue (weeks ending %s)", a.cfg.Boundary())
}

func (a App) renderSeries(width int) string {
	values := make([]float64, len(a.series))
	labels := make([]string, len(a.series))
	for i, p := range a.series {
		values[i] = p.Value
		labels[i] = fmt.Sprintf("%d/%d", int(p.Date.Month()), p.Date.Day())
	}
	return components.BarChart{
		Values:    values,
		Labels:    labels,
		Color:     theme.Active.Accent,
		Reference: a.goal.TargetAmount,
		Width:     width,
		Height:    chartHeight,
	}.View()
}
