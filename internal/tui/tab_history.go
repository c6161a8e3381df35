package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/tui/components"
	"github.com/theirongolddev/revtrack/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// historyState tracks the history tab cursor and delete confirmation.
type historyState struct {
	cursor     int
	offset     int
	confirming bool
}

func (h *historyState) move(delta, n int) {
	h.cursor = min(max(h.cursor+delta, 0), max(n-1, 0))
}

func (a App) selectedEntry() (model.Entry, bool) {
	if a.history.cursor < 0 || a.history.cursor >= len(a.newest) {
		return model.Entry{}, false
	}
	return a.newest[a.history.cursor], true
}

// updateHistoryKey handles list keys; ok is false for keys it ignores.
func (a App) updateHistoryKey(key string) (App, tea.Cmd, bool) {
	n := len(a.newest)
	switch key {
	case "j", "down":
		a.history.move(1, n)
	case "k", "up":
		a.history.move(-1, n)
	case "g", "home":
		a.history.cursor = 0
	case "G", "end":
		a.history.move(n, n)
	case "d", "delete":
		if _, ok := a.selectedEntry(); ok {
			a.history.confirming = true
		}
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) updateHistoryConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.history.confirming = false
	if msg.String() != "y" {
		return a, nil
	}
	e, ok := a.selectedEntry()
	if !ok {
		return a, nil
	}
	return a, deleteEntryCmd(a.st, e)
}

func (a App) renderHistoryTab(cw, h int) string {
	t := theme.Active

	if len(a.newest) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("No entries yet.")
		return components.ContentCard("History", hint, cw)
	}

	inner := components.CardInnerWidth(cw)
	const (
		dateW   = 10
		typeW   = 6
		amountW = 14
		idW     = 8
	)
	noteW := max(inner-dateW-typeW-amountW-idW-8, 8)

	headStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	// Header, rule, rows, footer and the card border take 6 lines.
	visible := max(h-6, 1)
	if a.history.cursor < a.history.offset {
		a.history.offset = a.history.cursor
	}
	if a.history.cursor >= a.history.offset+visible {
		a.history.offset = a.history.cursor - visible + 1
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-*s  %-*s  %*s  %-*s  %-*s",
		dateW, "Date", typeW, "Type", amountW, "Amount", noteW, "Note", idW, "ID")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", inner)))

	end := min(a.history.offset+visible, len(a.newest))
	for i := a.history.offset; i < end; i++ {
		e := a.newest[i]
		typ := "Income"
		if e.Kind() == model.KindLoss {
			typ = "Loss"
		}
		amt := lipgloss.NewStyle().Foreground(t.AmountColor(e.Amount))
		style := rowStyle
		if i == a.history.cursor {
			style = selStyle
		}
		amt = amt.Background(style.GetBackground())

		id := e.ID
		if len(id) > idW {
			id = id[:idW]
		}
		b.WriteString("\n")
		b.WriteString(style.Render(fmt.Sprintf("%-*s  %-*s  ", dateW, model.FormatDay(e.Date), typeW, typ)))
		b.WriteString(amt.Render(fmt.Sprintf("%*s", amountW, cli.FormatSigned(e.Amount))))
		b.WriteString(style.Render(fmt.Sprintf("  %-*s  %-*s", noteW, truncStr(e.Note, noteW), idW, id)))
	}

	b.WriteString("\n")
	if a.history.confirming {
		if e, ok := a.selectedEntry(); ok {
			warn := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface).Bold(true)
			b.WriteString(warn.Render(fmt.Sprintf("Delete %s %s? [y/N]", model.FormatDay(e.Date), cli.FormatSigned(e.Amount))))
		}
	} else {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d · total %s · [j/k] move  [d] delete",
			a.history.cursor+1, len(a.newest), cli.FormatMoney(a.pacing.TotalRevenue))))
	}

	return components.ContentCard("History", b.String(), cw)
}
