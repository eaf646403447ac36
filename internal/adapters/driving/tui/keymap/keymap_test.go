package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	assert.Contains(t, km.Quit.Keys(), "q")
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Up.Keys(), "k")
	assert.Contains(t, km.Down.Keys(), "j")
	assert.Contains(t, km.Search.Keys(), "/")
	assert.Contains(t, km.Yank.Keys(), "y")
	assert.Contains(t, km.NextTab.Keys(), "tab")
	assert.Contains(t, km.PrevTab.Keys(), "shift+tab")
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("up", km.Up))
	assert.True(t, Matches("k", km.Up))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("enter", km.Up))
}

func TestHelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 3)
	assert.NotEmpty(t, km.BrowseHelp())
	assert.NotEmpty(t, km.ResultsHelp())

	full := km.FullHelp()
	require.NotEmpty(t, full)
	for _, group := range full {
		assert.NotEmpty(t, group)
	}
}
