package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/config"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/tui/components"
	"github.com/theirongolddev/revtrack/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTargetAmount = iota
	settingsFieldTargetDate
	settingsFieldTheme
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

// updateSettingsKey handles navigation keys; ok is false for keys it ignores.
func (a App) updateSettingsKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter":
		next, cmd := a.settingsStartEdit()
		return next, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) settingsStartEdit() (App, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTargetAmount:
		ti.Placeholder = "100000"
		ti.SetValue(strconv.FormatFloat(a.goal.TargetAmount, 'f', -1, 64))
	case settingsFieldTargetDate:
		ti.Placeholder = "YYYY-MM-DD"
		ti.SetValue(model.FormatDay(a.goal.TargetDate))
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		next, cmd, err := a.applySetting(a.settings.cursor, a.settings.input.Value())
		next.settings.editing = false
		next.settings.saveErr = err
		next.settings.saved = err == nil && cmd == nil
		return next, cmd
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// applySetting validates value for field. Goal fields return a command that
// saves the goal; the theme is written to the config file right away.
func (a App) applySetting(field int, value string) (App, tea.Cmd, error) {
	value = strings.TrimSpace(value)
	goal := a.goal

	switch field {
	case settingsFieldTargetAmount:
		v, err := model.ParseAmount(value)
		if err != nil {
			return a, nil, err
		}
		if v < 0 {
			return a, nil, errors.New("target must be positive")
		}
		goal.TargetAmount = v
		return a, saveGoalCmd(a.st, goal), nil

	case settingsFieldTargetDate:
		d, err := model.ParseDay(value)
		if err != nil {
			return a, nil, err
		}
		goal.TargetDate = d
		return a, saveGoalCmd(a.st, goal), nil

	case settingsFieldTheme:
		th, ok := theme.Lookup(value)
		if !ok {
			return a, nil, fmt.Errorf("unknown theme %q (choose from %s)", value, strings.Join(theme.Names(), ", "))
		}
		a.cfg.Appearance.Theme = th.Name
		theme.SetActive(th.Name)
		if err := a.saveConfig(a.cfg); err != nil {
			return a, nil, fmt.Errorf("saving config: %w", err)
		}
		return a, nil, nil
	}
	return a, nil, fmt.Errorf("unknown setting %d", field)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)

	fields := []struct{ label, value string }{
		{"Target amount", cli.FormatMoney(a.goal.TargetAmount)},
		{"Target date", model.FormatDay(a.goal.TargetDate)},
		{"Theme", a.cfg.Appearance.Theme},
	}

	innerW := components.CardInnerWidth(cw)
	var form strings.Builder
	for i, f := range fields {
		switch {
		case a.settings.editing && i == a.settings.cursor:
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(accentStyle.Render(fmt.Sprintf("%-16s ", f.label)))
			form.WriteString(a.settings.input.View())
		case i == a.settings.cursor:
			row := markerStyle.Render("▸ ") +
				selectedLabelStyle.Render(fmt.Sprintf("%-16s ", f.label+":")) +
				selectedStyle.Render(f.value)
			form.WriteString(row)
			if pad := innerW - lipgloss.Width(row); pad > 0 {
				form.WriteString(lipgloss.NewStyle().Background(t.SurfaceHover).Render(strings.Repeat(" ", pad)))
			}
		default:
			form.WriteString(labelStyle.Render("  " + fmt.Sprintf("%-16s ", f.label+":")))
			form.WriteString(valueStyle.Render(f.value))
		}
		form.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warn := lipgloss.NewStyle().Foreground(t.Loss).Background(t.Surface)
		form.WriteString("\n" + warn.Render("Save failed: "+a.settings.saveErr.Error()) + "\n")
	} else if a.settings.saved {
		ok := lipgloss.NewStyle().Foreground(t.Income).Background(t.Surface)
		form.WriteString("\n" + ok.Render("Saved!") + "\n")
	}
	form.WriteString("\n" + labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	start, end := a.cfg.PickerRange()
	info := []struct{ label, value string }{
		{"Week boundary:", a.cfg.Boundary().String()},
		{"Chart span:", fmt.Sprintf("%d weeks", a.cfg.Chart.DisplayWeeks)},
		{"Recent weeks:", strconv.Itoa(a.cfg.Chart.BarWeeks)},
		{"Date picker:", model.FormatDay(start) + " to " + model.FormatDay(end)},
		{"Entries:", cli.FormatNumber(int64(len(a.entries)))},
		{"Config file:", config.ConfigPath()},
	}
	var infoBody strings.Builder
	for i, row := range info {
		if i > 0 {
			infoBody.WriteString("\n")
		}
		infoBody.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", row.label)) + valueStyle.Render(row.value))
	}

	return components.ContentCard("Settings", form.String(), cw) + "\n" +
		components.ContentCard("General", infoBody.String(), cw)
}
