package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/foliohq/folio-cli/internal/adapters/driving/tui"
	"github.com/foliohq/folio-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The TUI browses the cached document listings, runs live searches and
opens documents in a reader pane.

Controls:
  ↑/k, ↓/j - Navigate
  Tab      - Cycle listing tabs
  /        - Search
  Enter    - Open document
  y        - Copy document URL
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Recover panics so terminal state and a stack trace survive
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// The TUI is long-running; pick up config edits without a restart
	if configStore != nil {
		stop, err := configStore.Watch(func() {
			logger.Debug("Configuration reloaded")
		})
		if err != nil {
			logger.Warn("Config watch unavailable: %v", err)
		} else {
			defer stop()
		}
	}

	ports := &tui.Ports{
		Documents:   documentsService,
		Collections: collectionsService,
		Config:      configStore,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
