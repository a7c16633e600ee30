package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/keymap"
	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := NewBar(s, km)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_Init(t *testing.T) {
	bar := NewBar(nil, nil)

	cmd := bar.Init()

	assert.Nil(t, cmd)
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	updated, cmd := bar.Update(msg)

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_SetState(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetState(StateWaiting)

	assert.Equal(t, StateWaiting, bar.State())
}

func TestStatusBar_SetMessage(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetMessage("test message")

	assert.Equal(t, "test message", bar.Message())
}

func TestStatusBar_View_Ready(t *testing.T) {
	bar := NewBar(nil, nil)

	view := bar.View()

	assert.Contains(t, view, "Ready")
}

func TestStatusBar_View_Waiting(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateWaiting)

	view := bar.View()

	assert.Contains(t, view, "Waiting")
}

func TestStatusBar_View_Error(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("backend unreachable")

	view := bar.View()

	assert.Contains(t, view, "Error: backend unreachable")
}

func TestStatusBar_View_Mode(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetMode(true, 7)
	assert.Contains(t, bar.View(), "RAG on (top-k 7)")

	bar.SetMode(false, 7)
	assert.Contains(t, bar.View(), "RAG off")
}

func TestStatusBar_View_Health(t *testing.T) {
	bar := NewBar(nil, nil)

	// Unknown until probed
	assert.NotContains(t, bar.View(), "backend")

	bar.SetHealth(true, "sonar")
	assert.Contains(t, bar.View(), "sonar")

	bar.SetHealth(false, "")
	assert.Contains(t, bar.View(), "backend down")
}

func TestStatusBar_View_Hints(t *testing.T) {
	bar := NewBar(nil, nil)

	view := bar.View()
	assert.Contains(t, view, "enter: send")

	bar.SetHasContext(true)
	view = bar.View()
	assert.Contains(t, view, "ctrl+o: context")
}

func TestStatusBar_SetWidth(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetWidth(120)

	assert.Equal(t, 120, bar.Width())
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
}
