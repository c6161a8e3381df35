package tui

import (
	"fmt"
	"time"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/pipeline"
	"github.com/theirongolddev/revtrack/internal/tui/components"
	"github.com/theirongolddev/revtrack/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// addValues is bound to the add form fields.
type addValues struct {
	Kind   string
	Amount string
	Date   string
	Note   string
}

type addState struct {
	form *huh.Form
	vals *addValues
}

// dateOptions lists the selectable entry days: every boundary weekday in
// the configured picker range. The default day is added if it falls
// outside the range.
func (a App) dateOptions() ([]time.Time, time.Time) {
	boundary := a.cfg.Boundary()
	start, end := a.cfg.PickerRange()
	def := pipeline.DefaultEntryDay(a.today, boundary)

	days, err := pipeline.WeekdayOptions(start, end, boundary)
	if err != nil || len(days) == 0 {
		return []time.Time{def}, def
	}
	for _, d := range days {
		if d.Equal(def) {
			return days, def
		}
	}
	return append(days, def), def
}

func newAddForm(vals *addValues, days []time.Time) *huh.Form {
	opts := make([]huh.Option[string], len(days))
	for i, d := range days {
		key := fmt.Sprintf("%s (%s)", model.FormatDay(d), cli.FormatDayOfWeek(int(d.Weekday())))
		opts[i] = huh.NewOption(key, model.FormatDay(d))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Income", string(model.KindIncome)),
					huh.NewOption("Loss", string(model.KindLoss)),
				).
				Value(&vals.Kind),

			huh.NewInput().
				Title("Amount").
				Placeholder("1,200.50").
				Validate(func(s string) error {
					_, err := model.ParseAmount(s)
					return err
				}).
				Value(&vals.Amount),

			huh.NewSelect[string]().
				Title("Week").
				Description("Entries are grouped into the week ending on this day.").
				Options(opts...).
				Height(8).
				Value(&vals.Date),

			huh.NewInput().
				Title("Note").
				Placeholder("optional").
				CharLimit(200).
				Value(&vals.Note),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(true)
}

func (a App) formWidth() int {
	return min(components.CardInnerWidth(a.contentWidth()), 72)
}

func (a App) openAddForm() (App, tea.Cmd) {
	days, def := a.dateOptions()
	a.add.vals = &addValues{Kind: string(model.KindIncome), Date: model.FormatDay(def)}
	a.add.form = newAddForm(a.add.vals, days)
	if a.width > 0 {
		a.add.form = a.add.form.WithWidth(a.formWidth())
	}
	return a, a.add.form.Init()
}

// entryFromValues turns submitted form values into a new entry.
func entryFromValues(v addValues) (model.Entry, error) {
	kind, err := model.ParseKind(v.Kind)
	if err != nil {
		return model.Entry{}, err
	}
	amount, err := model.ParseAmount(v.Amount)
	if err != nil {
		return model.Entry{}, err
	}
	day, err := model.ParseDay(v.Date)
	if err != nil {
		return model.Entry{}, err
	}
	return model.NewEntry(day, model.SignedAmount(kind, amount), v.Note), nil
}

func (a App) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.add.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.add.form = f
	}

	switch a.add.form.State {
	case huh.StateCompleted:
		e, err := entryFromValues(*a.add.vals)
		next, initCmd := a.openAddForm()
		if err != nil {
			next.notify(err.Error(), true)
			return next, initCmd
		}
		return next, tea.Batch(addEntryCmd(a.st, e), initCmd)
	case huh.StateAborted:
		a.add.form = nil
		a.activeTab = components.TabDashboard
		return a, nil
	}
	return a, cmd
}

func (a App) renderAddTab(cw int) string {
	if a.add.form == nil {
		return ""
	}
	t := theme.Active
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
		Render("enter: next field · esc: back to dashboard")
	return components.ContentCard("New entry", a.add.form.View()+"\n"+hint, cw)
}
