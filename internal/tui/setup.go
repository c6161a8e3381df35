package tui

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues is bound to the first-run form.
type setupValues struct {
	TargetAmount string
	TargetDate   string
	Theme        string
}

func newSetupValues(goal model.GoalParameters, themeName string) *setupValues {
	return &setupValues{
		TargetAmount: strconv.FormatFloat(goal.TargetAmount, 'f', -1, 64),
		TargetDate:   model.FormatDay(goal.TargetDate),
		Theme:        theme.ByName(themeName).Name,
	}
}

func validateTarget(s string) error {
	v, err := model.ParseAmount(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("target must be positive")
	}
	return nil
}

func validateDate(s string) error {
	_, err := model.ParseDay(s)
	return err
}

func newSetupForm(vals *setupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, th := range theme.All {
		themeOpts[i] = huh.NewOption(th.Name, th.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to revtrack").
				Description("Set a revenue goal to pace yourself against.\nYou can change it later in Settings or with `revtrack goal set`."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Target amount").
				Validate(validateTarget).
				Value(&vals.TargetAmount),
			huh.NewInput().
				Title("Target date").
				Description("YYYY-MM-DD").
				Validate(validateDate).
				Value(&vals.TargetDate),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(true)
}

// applySetup saves the chosen theme to the config and returns the goal to
// store.
func (a *App) applySetup(v setupValues) (model.GoalParameters, error) {
	amount, err := model.ParseAmount(v.TargetAmount)
	if err != nil {
		return model.GoalParameters{}, err
	}
	date, err := model.ParseDay(v.TargetDate)
	if err != nil {
		return model.GoalParameters{}, err
	}

	a.cfg.Appearance.Theme = theme.ByName(v.Theme).Name
	theme.SetActive(a.cfg.Appearance.Theme)
	if err := a.saveConfig(a.cfg); err != nil {
		return model.GoalParameters{}, fmt.Errorf("saving config: %w", err)
	}
	return model.GoalParameters{TargetAmount: amount, TargetDate: date}, nil
}
