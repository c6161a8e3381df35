package components

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/pipeline"
)

func TestTabVisualWidth(t *testing.T) {
	history := Tabs[TabHistory]
	assert.Equal(t, len("History")+2, TabVisualWidth(history, true))
	assert.Equal(t, len("History")+2, TabVisualWidth(history, false))

	dash := Tabs[TabDashboard]
	assert.Equal(t, len("Dashboard")+2, TabVisualWidth(dash, true))
	assert.Equal(t, len("Dashboard")+2+3, TabVisualWidth(dash, false), "inactive tab adds [o]")
}

func TestTabBarWidthMatchesTabs(t *testing.T) {
	for active := range Tabs {
		sum := len(Tabs) - 1 // separators
		for i, tab := range Tabs {
			sum += TabVisualWidth(tab, i == active)
		}
		bar := RenderTabBar(active, sum)
		assert.Equal(t, sum, lipgloss.Width(bar), "active=%d", active)
	}
}

func TestTabIdxByKey(t *testing.T) {
	assert.Equal(t, TabHistory, TabIdxByKey('h'))
	assert.Equal(t, TabAdd, TabIdxByKey('a'))
	assert.Equal(t, TabSettings, TabIdxByKey('s'))
	assert.Equal(t, TabDashboard, TabIdxByKey('o'))
	assert.Equal(t, -1, TabIdxByKey('z'))
}

func TestGoalBar(t *testing.T) {
	gp := pipeline.GoalProgress(50000, 100000)
	out := GoalBar(gp, 60)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "50.0%")
	assert.Equal(t, 4, strings.Count(lines[1], "╵"))
	for _, lbl := range []string{"2w", "4w", "6w", "8w"} {
		assert.Contains(t, lines[2], lbl)
	}
}

func TestGoalBarSkipsEdgeLabels(t *testing.T) {
	// 20000 sits at 4% of the bar, too close to the left edge for a label.
	gp := pipeline.GoalProgress(0, 500000)
	out := GoalBar(gp, 80)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	labels := strings.Fields(plain(lines[2]))
	require.NotEmpty(t, labels)
	assert.Equal(t, "4w", labels[0])
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string { return ansiRE.ReplaceAllString(s, "") }

func TestPaceBar(t *testing.T) {
	ahead := PaceBar("Pace", model.PacingStats{AvgDailyIncome: 120, RequiredDaily: 100}, 6, 20)
	assert.Contains(t, ahead, "100% on track")

	behind := PaceBar("Pace", model.PacingStats{AvgDailyIncome: 25, RequiredDaily: 100}, 6, 20)
	assert.Contains(t, behind, "25% behind")
}

func TestBarChartDrawsReferenceLine(t *testing.T) {
	c := BarChart{
		Values:    []float64{10, 20},
		Labels:    []string{"1/5", "1/12"},
		Color:     lipgloss.Color("#3AA99F"),
		Reference: 15,
		Width:     40,
		Height:    6,
	}
	out := c.View()
	assert.Contains(t, out, "┄")
	assert.Contains(t, out, "1/5")
	assert.Contains(t, out, "1/12")
	assert.Contains(t, out, "└")
}

func TestBarChartNarrowFallsBackToSparkline(t *testing.T) {
	out := BarChart{Values: []float64{1, 2, 3}, Width: 10, Height: 6}.View()
	assert.NotContains(t, out, "└")
	assert.Contains(t, out, "█")
}

func TestTickStep(t *testing.T) {
	assert.Equal(t, 20.0, TickStep(100))
	assert.Equal(t, 1.0, TickStep(7))
	assert.Equal(t, 50000.0, TickStep(230000))
	assert.Equal(t, 1.0, TickStep(0))
}

func TestWeekBars(t *testing.T) {
	bars := []model.WeeklyBar{
		{WeekStart: model.Day(2025, time.January, 6), Label: "1/6", Amount: 100},
		{WeekStart: model.Day(2025, time.January, 13), Label: "1/13", Amount: -30},
	}
	out := WeekBars(bars, 40)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "¥100")
	assert.Contains(t, lines[1], "-¥30")
	assert.Contains(t, lines[1], "▒")
	for _, l := range lines {
		assert.Equal(t, 40, lipgloss.Width(l))
	}
}

func TestStatusBar(t *testing.T) {
	out := RenderStatusBar(80, StatusInfo{Entries: 3, Reloaded: time.Now().Add(-2 * time.Minute)})
	assert.Contains(t, out, "3 entries")
	assert.Contains(t, out, "2 minutes ago")
	assert.Equal(t, 80, lipgloss.Width(out))

	loading := RenderStatusBar(80, StatusInfo{Loading: true})
	assert.Contains(t, loading, "loading")
}
