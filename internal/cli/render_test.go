package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/revtrack/internal/pipeline"
)

func TestRenderTableAlignsMultibyteCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Date", "Amount"},
		Rows: [][]string{
			{"2025-01-05", "+¥100.00"},
			{"---"},
			{"Total", "¥80"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	w := lipgloss.Width(lines[0])
	for _, l := range lines {
		assert.Equal(t, w, lipgloss.Width(l), l)
	}
	assert.Contains(t, lines[3], "+¥100.00")
	assert.Contains(t, lines[5], "     ¥80")
}

func TestRenderTableEmpty(t *testing.T) {
	assert.Empty(t, RenderTable(Table{}))
}

func TestRenderTableTitle(t *testing.T) {
	out := RenderTable(Table{Title: "Pacing", Headers: []string{"A"}})
	assert.True(t, strings.HasPrefix(out, "  Pacing\n"))
}

func TestRenderGoalBar(t *testing.T) {
	gp := pipeline.GoalProgress(50000, 100000)
	out := RenderGoalBar(gp, 50)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 25, strings.Count(lines[0], "█"))
	assert.Equal(t, 25, strings.Count(lines[0], "░"))
	assert.True(t, strings.HasSuffix(lines[0], "50.0%"))
	assert.Equal(t, 4, strings.Count(lines[1], "╵"))
	for _, label := range []string{"2w", "4w", "6w", "8w"} {
		assert.Contains(t, lines[2], label)
	}
}

func TestRenderGoalBarClamps(t *testing.T) {
	out := RenderGoalBar(pipeline.GoalProgress(500, 100), 20)
	first := strings.Split(out, "\n")[0]
	assert.Equal(t, 20, strings.Count(first, "█"))
	assert.Contains(t, first, "100.0%")
}

func TestRenderSparkline(t *testing.T) {
	assert.Empty(t, RenderSparkline(nil))
	assert.Equal(t, "▁▄█", RenderSparkline([]float64{0, 50, 100}))
	assert.Equal(t, "▁▁", RenderSparkline([]float64{0, 0}))
	assert.Equal(t, "▁█", RenderSparkline([]float64{-10, 10}))
}

func TestRenderHorizontalBar(t *testing.T) {
	out := RenderHorizontalBar("1/13", 50, 100, 10)
	assert.Equal(t, 5, strings.Count(out, "█"))
	assert.Contains(t, out, "¥50")

	out = RenderHorizontalBar("1/20", -100, 100, 10)
	assert.Equal(t, 10, strings.Count(out, "▒"))
	assert.Contains(t, out, "-¥100")

	assert.Contains(t, RenderHorizontalBar("1/27", 0, 0, 10), "¥0")
}
