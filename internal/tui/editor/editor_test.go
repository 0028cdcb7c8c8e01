package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func newTestEditor(content string) Model {
	m := New()
	m.SetFocused(true)
	m.SetTableNames([]string{"planets", "planet_moons", "stars"})
	m.SetQuery(content)
	return m
}

func TestTryCompletionCompletesTableName(t *testing.T) {
	m := newTestEditor("SELECT * FROM pl")

	require.True(t, m.TryCompletion())
	require.True(t, m.CompletionActive())
	require.Equal(t, "SELECT * FROM planets", m.Value())
}

func TestTryCompletionCyclesCandidates(t *testing.T) {
	m := newTestEditor("SELECT * FROM pl")

	require.True(t, m.TryCompletion())
	require.Equal(t, "SELECT * FROM planets", m.Value())

	require.True(t, m.TryCompletion())
	require.Equal(t, "SELECT * FROM planet_moons", m.Value())

	require.True(t, m.TryCompletion())
	require.Equal(t, "SELECT * FROM planets", m.Value())
}

func TestTryCompletionRequiresTableContext(t *testing.T) {
	// "pl" is a plausible prefix but there is no FROM or JOIN yet.
	m := newTestEditor("SELECT pl")

	require.False(t, m.TryCompletion())
	require.False(t, m.CompletionActive())
}

func TestTryCompletionNoCandidates(t *testing.T) {
	m := newTestEditor("SELECT * FROM zz")

	require.False(t, m.TryCompletion())
	require.False(t, m.CompletionActive())
}

func TestCompletionCancelsOnEscape(t *testing.T) {
	m := newTestEditor("SELECT * FROM pl")
	require.True(t, m.TryCompletion())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.CompletionActive())
	require.Equal(t, "SELECT * FROM planets", m.Value())
}
