package cmd

import (
	"fmt"

	"github.com/theirongolddev/revtrack/internal/config"
	"github.com/theirongolddev/revtrack/internal/log"
	"github.com/theirongolddev/revtrack/internal/tui"
	"github.com/theirongolddev/revtrack/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	firstRun := !config.Exists()

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	// Log lines would corrupt the alt screen.
	sess.store.SetLogger(log.Discard())
	log.SetDefault(log.Discard())

	theme.SetActive(sess.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(sess.store, sess.cfg, sess.today, firstRun)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
