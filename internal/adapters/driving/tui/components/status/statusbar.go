// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/keymap"
	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateWaiting State = "waiting"
	StateError   State = "error"
	StateHelp    State = "help"
)

// Bar displays application status, backend health and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	ragEnabled  bool
	topK        int
	model       string
	healthy     bool
	healthKnown bool
	hasContext  bool
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:     s,
		keymap:     km,
		state:      StateReady,
		ragEnabled: true,
		topK:       5,
		width:      80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is mostly passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := s.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state, mode badge and backend health.
func (s *Bar) renderLeft() string {
	parts := []string{s.renderState(), s.renderMode()}
	if health := s.renderHealth(); health != "" {
		parts = append(parts, health)
	}
	return strings.Join(parts, "  ")
}

func (s *Bar) renderState() string {
	switch s.state {
	case StateWaiting:
		return s.styles.Muted.Render("Waiting...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateReady:
		return s.styles.Muted.Render("Ready")
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderMode() string {
	if s.ragEnabled {
		return s.styles.Normal.Render(fmt.Sprintf("RAG on (top-k %d)", s.topK))
	}
	return s.styles.Muted.Render("RAG off")
}

func (s *Bar) renderHealth() string {
	if !s.healthKnown {
		return ""
	}
	if !s.healthy {
		return s.styles.Error.Render("backend down")
	}
	if s.model != "" {
		return s.styles.Muted.Render(s.model)
	}
	return s.styles.Muted.Render("backend ok")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.hasContext {
		bindings = s.keymap.ContextHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetMode sets the retrieval mode badge.
func (s *Bar) SetMode(ragEnabled bool, topK int) {
	s.ragEnabled = ragEnabled
	s.topK = topK
}

// SetHealth records the backend health probe result.
func (s *Bar) SetHealth(healthy bool, model string) {
	s.healthKnown = true
	s.healthy = healthy
	s.model = model
}

// SetHasContext marks whether retrieved context is available.
func (s *Bar) SetHasContext(hasContext bool) {
	s.hasContext = hasContext
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
