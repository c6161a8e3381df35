// Package tui provides the interactive Bubble Tea dashboard for revtrack.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/revtrack/internal/cli"
	"github.com/theirongolddev/revtrack/internal/config"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/pipeline"
	"github.com/theirongolddev/revtrack/internal/store"
	"github.com/theirongolddev/revtrack/internal/tui/components"
	"github.com/theirongolddev/revtrack/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Store is the part of the entry store the dashboard uses.
type Store interface {
	Load(defaults model.GoalParameters) (store.State, error)
	AddEntry(e model.Entry) error
	DeleteEntry(id string) error
	SaveGoal(goal model.GoalParameters) error
}

// StateLoadedMsg is sent when a store load finishes.
type StateLoadedMsg struct {
	State    store.State
	Err      error
	LoadTime time.Duration
}

type entryAddedMsg struct {
	Entry model.Entry
	Err   error
}

type entryDeletedMsg struct {
	Entry model.Entry
	Err   error
}

type goalSavedMsg struct {
	Goal model.GoalParameters
	Err  error
}

// App is the root Bubble Tea model.
type App struct {
	st         Store
	cfg        config.Config
	today      time.Time
	saveConfig func(config.Config) error

	// Data
	entries []model.Entry
	goal    model.GoalParameters
	loaded  bool
	loadErr error

	// Derived from entries and goal
	newest   []model.Entry
	pacing   model.PacingStats
	progress model.GoalProgress
	series   []model.CumulativePoint
	bars     []model.WeeklyBar

	// Reload state
	loading    bool
	lastReload time.Time
	loadTime   time.Duration

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Transient status bar notice
	flash      string
	flashErr   bool
	flashUntil time.Time

	// Per-tab state
	history  historyState
	add      addState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5
	flashDuration    = 4 * time.Second
)

// NewApp creates the dashboard model. firstRun shows the setup form once
// the store has loaded.
func NewApp(st Store, cfg config.Config, today time.Time, firstRun bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		st:         st,
		cfg:        cfg,
		today:      model.DayOf(today),
		saveConfig: config.Save,
		needSetup:  firstRun,
		spinner:    sp,
		loading:    true,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadStateCmd(a.st, a.cfg.GoalDefaults()),
		a.spinner.Tick,
		tickCmd(),
	)
}

func (a *App) recompute() {
	a.newest = pipeline.SortNewestFirst(a.entries)
	a.pacing = pipeline.PacingFor(a.entries, a.goal, a.today)
	a.progress = pipeline.GoalProgress(a.pacing.TotalRevenue, a.goal.TargetAmount)
	a.series = pipeline.AggregateWith(a.entries, a.today, a.cfg.WeekOptions())
	a.bars = pipeline.WeeklyBars(a.entries, a.today, a.cfg.Chart.BarWeeks)

	if a.history.cursor >= len(a.newest) {
		a.history.cursor = len(a.newest) - 1
	}
	if a.history.cursor < 0 {
		a.history.cursor = 0
	}
	a.history.confirming = false
}

func (a *App) notify(msg string, isErr bool) {
	a.flash = msg
	a.flashErr = isErr
	a.flashUntil = time.Now().Add(flashDuration)
}

func (a App) reload() (App, tea.Cmd) {
	if a.loading {
		return a, nil
	}
	a.loading = true
	return a, loadStateCmd(a.st, a.cfg.GoalDefaults())
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.add.form != nil {
			a.add.form = a.add.form.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case StateLoadedMsg:
		a.loading = false
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		if msg.Err != nil {
			a.notify("load failed: "+msg.Err.Error(), true)
			return a, nil
		}
		a.entries = msg.State.Entries
		a.goal = msg.State.Goal
		a.lastReload = time.Now()
		a.recompute()

		if a.needSetup && a.setupForm == nil {
			a.setupVals = newSetupValues(a.goal, a.cfg.Appearance.Theme)
			a.setupForm = newSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case entryAddedMsg:
		if msg.Err != nil {
			a.notify("add failed: "+msg.Err.Error(), true)
			return a, nil
		}
		a.notify(fmt.Sprintf("added %s on %s", cli.FormatSigned(msg.Entry.Amount), model.FormatDay(msg.Entry.Date)), false)
		return a.reload()

	case entryDeletedMsg:
		if msg.Err != nil {
			a.notify("delete failed: "+msg.Err.Error(), true)
			return a, nil
		}
		a.notify(fmt.Sprintf("deleted %s on %s", cli.FormatSigned(msg.Entry.Amount), model.FormatDay(msg.Entry.Date)), false)
		return a.reload()

	case goalSavedMsg:
		if msg.Err != nil {
			a.settings.saveErr = msg.Err
			a.notify("saving goal failed: "+msg.Err.Error(), true)
			return a, nil
		}
		a.goal = msg.Goal
		a.recompute()
		a.settings.saved = true
		a.notify("goal saved", false)
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		if a.flash != "" && time.Now().After(a.flashUntil) {
			a.flash = ""
			a.flashErr = false
		}
		return a, tickCmd()
	}

	// Forward unhandled messages (cursor blinks, etc.) to an active form.
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.activeTab == components.TabAdd && a.add.form != nil {
		return a.updateAddForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// First-run setup intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// The add form owns the keyboard; esc leaves it.
	if a.activeTab == components.TabAdd && a.add.form != nil {
		if key == "esc" {
			a.add.form = nil
			a.activeTab = components.TabDashboard
			return a, nil
		}
		return a.updateAddForm(msg)
	}

	if a.activeTab == components.TabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if a.activeTab == components.TabHistory && a.history.confirming {
		return a.updateHistoryConfirm(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case components.TabHistory:
		if next, cmd, ok := a.updateHistoryKey(key); ok {
			return next, cmd
		}
	case components.TabSettings:
		if next, cmd, ok := a.updateSettingsKey(key); ok {
			return next, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		return a.reload()
	case "left", "shift+tab":
		return a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
	case "right", "tab":
		return a.switchTab((a.activeTab + 1) % len(components.Tabs))
	}
	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			return a.switchTab(idx)
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == components.TabHistory {
			a.history.move(-1, len(a.newest))
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == components.TabHistory {
			a.history.move(1, len(a.newest))
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || msg.Y != 0 {
			return a, nil
		}
		if tab := a.tabAtX(msg.X); tab >= 0 {
			return a.switchTab(tab)
		}
	}
	return a, nil
}

// switchTab activates a tab, opening a fresh add form when needed.
func (a App) switchTab(idx int) (App, tea.Cmd) {
	a.activeTab = idx
	a.history.confirming = false
	if idx == components.TabAdd && a.add.form == nil {
		return a.openAddForm()
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		goal, err := a.applySetup(*a.setupVals)
		a.needSetup = false
		a.setupForm = nil
		if err != nil {
			a.notify("setup: "+err.Error(), true)
			return a, nil
		}
		return a, saveGoalCmd(a.st, goal)
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  revtrack needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ revtrack"))
	b.WriteString(subtitleStyle.Render(" · Revenue Goal Tracker"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading entries..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Goal).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o h a s", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k g G", "Move through history"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"d", "Delete selected entry"},
			{"Enter", "Edit setting"},
			{"Esc", "Leave form / Cancel"},
			{"r", "Reload from the database"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar and goal pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	pill := pillStyle.Render(" goal ") +
		pillAccent.Render(cli.FormatMoney(a.goal.TargetAmount)) +
		pillStyle.Render(" by ") +
		pillAccent.Render(model.FormatDay(a.goal.TargetDate)) +
		pillStyle.Render(" │ today ") +
		pillAccent.Render(model.FormatDay(a.today)) +
		pillStyle.Render(" ")
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, components.StatusInfo{
		Entries:  len(a.entries),
		Reloaded: a.lastReload,
		Loading:  a.loading,
		Message:  a.flash,
		IsError:  a.flashErr,
	})

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	// 4. Tab content
	var content string
	switch a.activeTab {
	case components.TabDashboard:
		content = a.renderDashboardTab(cw)
	case components.TabHistory:
		content = a.renderHistoryTab(cw, contentH)
	case components.TabAdd:
		content = a.renderAddTab(cw)
	case components.TabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Exactly contentH lines, each filled to the content width
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 6. Center when the terminal is wider than the content
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadStateCmd reads entries and goal off the UI goroutine.
func loadStateCmd(st Store, defaults model.GoalParameters) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		state, err := st.Load(defaults)
		return StateLoadedMsg{State: state, Err: err, LoadTime: time.Since(start)}
	}
}

func addEntryCmd(st Store, e model.Entry) tea.Cmd {
	return func() tea.Msg {
		return entryAddedMsg{Entry: e, Err: st.AddEntry(e)}
	}
}

func deleteEntryCmd(st Store, e model.Entry) tea.Cmd {
	return func() tea.Msg {
		return entryDeletedMsg{Entry: e, Err: st.DeleteEntry(e.ID)}
	}
}

func saveGoalCmd(st Store, goal model.GoalParameters) tea.Cmd {
	return func() tea.Msg {
		return goalSavedMsg{Goal: goal, Err: st.SaveGoal(goal)}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes use the same widths RenderTabBar draws.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}
