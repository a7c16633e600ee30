package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Submit.Keys(), "enter")
	assert.Contains(t, km.ToggleRAG.Keys(), "ctrl+r")
	assert.Contains(t, km.ToggleContext.Keys(), "ctrl+o")
	assert.Contains(t, km.Clear.Keys(), "ctrl+l")
	assert.Contains(t, km.Peek.Keys(), "ctrl+p")
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.NotEmpty(t, bindings)
	assert.Len(t, bindings, 4)
}

func TestKeyMap_ContextHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ContextHelp()

	require.NotEmpty(t, bindings)
	assert.Contains(t, bindings[0].Keys(), "ctrl+o")
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()

	assert.NotEmpty(t, groups)
	for _, group := range groups {
		assert.NotEmpty(t, group)
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("enter", km.Submit))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("", km.Submit))
}
