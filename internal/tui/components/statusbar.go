package components

import (
	"fmt"
	"time"

	"github.com/theirongolddev/revtrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// StatusInfo is what the bottom bar reports.
type StatusInfo struct {
	Entries  int
	Reloaded time.Time // zero while the first load is pending
	Loading  bool
	Message  string // transient notice, e.g. "entry added"
	IsError  bool
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	msgStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	if info.IsError {
		msgStyle = msgStyle.Foreground(t.Loss)
	}

	left := base.Render(" [?]help  [r]eload  [q]uit")
	if info.Message != "" {
		left += base.Render("  ") + msgStyle.Render(info.Message)
	}

	right := fmt.Sprintf("%d entries", info.Entries)
	switch {
	case info.Loading:
		right += " · loading…"
	case !info.Reloaded.IsZero():
		right += " · loaded " + humanize.Time(info.Reloaded)
	}
	right = base.Render(right + " ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	bar := left + base.Render(fmt.Sprintf("%*s", padding, "")) + right

	return lipgloss.NewStyle().Background(t.Surface).Width(width).MaxWidth(width).Render(bar)
}
