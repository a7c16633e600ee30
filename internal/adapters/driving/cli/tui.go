package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driven/config/file"
	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui"
	"github.com/ragtalk-labs/ragtalk-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for ragtalk.

The TUI provides a conversational interface with a scrollable transcript,
retrieved-context inspection, and keyboard-driven retrieval controls.

Controls:
  enter    - Send question
  ctrl+r   - Toggle RAG on/off
  ctrl+o   - Show/hide retrieved context
  ctrl+l   - Clear conversation
  ctrl+g   - Toggle help
  ctrl+c   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Reload config when the file changes on disk. The TUI is long-running,
	// so edits made by `ragtalk config set` in another shell are picked up.
	if configStore != nil {
		watcher, err := file.NewWatcher(configStore)
		if err != nil {
			logger.Warn("config watcher unavailable: %v", err)
		} else {
			go watcher.Run(ctx)
		}
	}

	ports := tui.NewPorts(chatService, healthService, settingsService)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
