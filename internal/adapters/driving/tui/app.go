package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/keymap"
	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/messages"
	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/styles"
	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/views/chat"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the active keybindings.
	keymap *keymap.KeyMap

	// chatView is the conversation view component.
	chatView *chat.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	chatView := chat.NewView(s, km, ports.Chat)

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		chatView:    chatView,
		currentView: messages.ViewChat,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ragtalk"),
		a.chatView.Init(),
		a.checkHealth(),
	)
}

// checkHealth probes the backend once at startup.
func (a *App) checkHealth() tea.Cmd {
	return func() tea.Msg {
		health, err := a.ports.Health.Check(a.ctx)
		return messages.HealthChecked{Health: health, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.chatView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}

		// Help toggling is global
		if keymap.Matches(msg.String(), a.keymap.Help) {
			if a.currentView == messages.ViewHelp {
				a.currentView = messages.ViewChat
			} else {
				a.currentView = messages.ViewHelp
			}
			return a, nil
		}

		switch a.currentView {
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
			a.err = a.chatView.Err()
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes back to the conversation
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewChat
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (chat completions, spinner ticks, health
	// probes) to the conversation view regardless of which view is shown,
	// so in-flight requests resolve while help is open.
	a.chatView, cmd = a.chatView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.chatView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Conversation:
  (type)      Compose a question
  enter       Send question
  ctrl+l      Clear conversation
  ctrl+p      Retrieve context for the draft without answering

Retrieval:
  ctrl+r      Toggle retrieval augmentation on/off
  ctrl+↑/↓    Adjust top-k (number of chunks retrieved)
  ctrl+o      Show/hide retrieved context panel

Navigation:
  pgup/pgdn   Scroll the transcript
  j/k, ↑/↓    Navigate context chunks (when panel is open)
  ctrl+g      Toggle this help
  esc         Back to conversation
  ctrl+c      Quit

[esc] back to conversation`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// ChatView returns the conversation view (for testing).
func (a *App) ChatView() *chat.View {
	return a.chatView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.chatView.SetDimensions(width, height)
}
