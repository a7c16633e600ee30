package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/messages"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
)

func newTestPorts() *Ports {
	return &Ports{
		Chat:     &MockChatService{ragEnabled: true, topK: 5},
		Health:   &MockHealthService{},
		Settings: &MockSettingsService{},
	}
}

func TestNewApp_Success(t *testing.T) {
	ports := newTestPorts()

	app, err := NewApp(ports)

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewChat, app.CurrentView())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	ports := &Ports{
		Chat:   nil,
		Health: &MockHealthService{},
	}

	app, err := NewApp(ports)

	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
}

func TestApp_Init(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	cmd := app.Init()

	// Init returns a batch command including the health probe
	assert.NotNil(t, cmd)
}

func TestApp_Update_WindowSize(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	msg := tea.WindowSizeMsg{Width: 80, Height: 24}
	model, cmd := app.Update(msg)

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_Update_Typing(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	for _, r := range "hello" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "hello", app.ChatView().Draft())
}

func TestApp_Update_CtrlC_Quits(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_HelpToggle(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.Equal(t, messages.ViewHelp, app.CurrentView())

	// Esc goes back to the conversation
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewChat, app.CurrentView())

	// Toggling twice also returns
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.Equal(t, messages.ViewChat, app.CurrentView())
}

func TestApp_Update_ViewChanged(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	assert.Equal(t, messages.ViewHelp, app.CurrentView())
}

func TestApp_Update_ErrorOccurred(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	wantErr := errors.New("backend exploded")
	app.Update(messages.ErrorOccurred{Err: wantErr})

	assert.Equal(t, wantErr, app.Err())
}

func TestApp_Update_QuitMessage(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_HealthChecked_ForwardedDuringHelp(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	// Health results still reach the conversation view while help is open
	_, cmd := app.Update(messages.HealthChecked{
		Health: &domain.BackendHealth{Status: "ok", Model: "sonar"},
	})

	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
}

func TestApp_View_NotReady(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	view := app.View()

	assert.Contains(t, view, "Initialising")
}

func TestApp_View_Chat(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	view := app.View()

	assert.Contains(t, view, "RagTalk")
}

func TestApp_View_Help(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlG})

	view := app.View()

	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "ctrl+r")
}
