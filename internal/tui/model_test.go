package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/blindtype/internal/engine"
	"github.com/verte-zerg/blindtype/internal/model"
	"github.com/verte-zerg/blindtype/internal/results"
	"github.com/verte-zerg/blindtype/internal/store"
	"github.com/verte-zerg/blindtype/internal/texts"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(time.Second)
	return t
}

func newTestModel(t *testing.T, sentences ...string) (*Model, *results.Store) {
	t.Helper()
	rs := results.New(filepath.Join(t.TempDir(), "results.json"))
	clock := &stepClock{now: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)}
	m := NewModel(Options{
		Results:   rs,
		Sentences: sentences,
		Picker:    texts.NewPickerWithSeed(1),
		Clock:     clock.Now,
	})
	return m, rs
}

func runeKey(r rune) tea.KeyMsg {
	if r == ' ' {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(m *Model, keys string) tea.Cmd {
	var cmd tea.Cmd
	for _, r := range keys {
		_, cmd = m.Update(runeKey(r))
	}
	return cmd
}

func TestTypingFlowPersistsResult(t *testing.T) {
	m, rs := newTestModel(t, "ab")

	press(m, "s")
	require.Equal(t, ScreenTyping, m.Screen())
	assert.Equal(t, "ab", m.engine.Sample())

	press(m, "axb")
	require.Equal(t, ScreenTypingResult, m.Screen())
	assert.Equal(t, 66.7, m.session.TotalAccuracy)
	assert.Equal(t, 30.0, m.session.WPM)

	agg := rs.Load()
	assert.Equal(t, 66.7, agg.TotalAccuracy)
	assert.Equal(t, 2, agg.Letters['b'].TotalPresses)
	assert.Contains(t, m.View(), "66.7%")
}

func TestTypingResultKeys(t *testing.T) {
	m, _ := newTestModel(t, "ab")
	press(m, "sab")
	require.Equal(t, ScreenTypingResult, m.Screen())

	press(m, "r")
	assert.Equal(t, ScreenTyping, m.Screen())
	assert.Equal(t, 0, m.engine.Guessed())

	press(m, "ab")
	require.Equal(t, ScreenTypingResult, m.Screen())
	press(m, "c")
	require.Equal(t, ScreenTyping, m.Screen())
	assert.Equal(t, engine.StateInProgress, m.engine.State())
	assert.Equal(t, 0, m.engine.Guessed())

	press(m, "a")
	assert.Equal(t, ScreenTyping, m.Screen())
	assert.Equal(t, 1, m.engine.Guessed())

	press(m, "b")
	require.Equal(t, ScreenTypingResult, m.Screen())
	press(m, "q")
	assert.Equal(t, ScreenMain, m.Screen())
}

func TestContinueLoadsNewSample(t *testing.T) {
	m, _ := newTestModel(t, "one", "two")
	press(m, "s")
	first := m.engine.Sample()
	press(m, first)
	require.Equal(t, ScreenTypingResult, m.Screen())

	m.sentences = []string{"xyz"}
	press(m, "c")
	require.Equal(t, ScreenTyping, m.Screen())
	assert.Equal(t, "xyz", m.engine.Sample())

	press(m, "xy")
	assert.Equal(t, 2, m.engine.Guessed())
	assert.Equal(t, engine.StateInProgress, m.engine.State())
}

func TestTypingTabResetsAndEscLeaves(t *testing.T) {
	m, _ := newTestModel(t, "abc")
	press(m, "sa")
	require.Equal(t, 1, m.engine.Guessed())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.engine.Guessed())
	assert.Equal(t, ScreenTyping, m.Screen())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenMain, m.Screen())
}

func TestGlobalAndLetterResults(t *testing.T) {
	m, _ := newTestModel(t, "ab")
	press(m, "saxb")
	press(m, "q")

	press(m, "r")
	require.Equal(t, ScreenGlobalResult, m.Screen())
	assert.Equal(t, 66.7, m.display.TotalAccuracy)

	press(m, "b")
	require.Equal(t, ScreenLetterResult, m.Screen())
	require.NoError(t, m.letterErr)
	assert.Equal(t, 50.0, m.letter.Accuracy)
	assert.Contains(t, m.View(), "Pressed instead")

	press(m, "z")
	assert.Equal(t, ScreenLetterResult, m.Screen())
	assert.True(t, errors.Is(m.letterErr, results.ErrLetterNotFound))
	assert.Contains(t, m.View(), "No data for letter")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenGlobalResult, m.Screen())
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenMain, m.Screen())
}

func TestGlobalResultWithoutData(t *testing.T) {
	m, _ := newTestModel(t, "ab")
	press(m, "r")
	assert.Contains(t, m.View(), "No results yet")
}

func TestPerfectSessionMessage(t *testing.T) {
	m, _ := newTestModel(t, "ab")
	press(m, "sab")
	assert.Contains(t, m.View(), "You made it to 100% accuracy!")
}

func TestDeleteResultsShowsAlert(t *testing.T) {
	m, rs := newTestModel(t, "ab")
	press(m, "sab")
	press(m, "q")
	require.NotEmpty(t, rs.Load().Letters)

	press(m, "R")
	require.Equal(t, ScreenAlert, m.Screen())
	assert.Empty(t, rs.Load().Letters)

	press(m, "x")
	assert.Equal(t, ScreenMain, m.Screen())
}

func TestExitPrompt(t *testing.T) {
	m, _ := newTestModel(t, "ab")
	press(m, "q")
	require.Equal(t, ScreenExiting, m.Screen())

	press(m, "n")
	assert.Equal(t, ScreenMain, m.Screen())

	press(m, "q")
	cmd := press(m, "y")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestCtrlCQuitsFromAnyScreen(t *testing.T) {
	m, _ := newTestModel(t, "ab")
	press(m, "s")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestSaveFailureRaisesAlert(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	rs := results.New(filepath.Join(blocker, "results.json"))
	m := NewModel(Options{Results: rs, Sentences: []string{"a"}})
	press(m, "sa")
	require.Equal(t, ScreenAlert, m.Screen())
	assert.Contains(t, m.alert, "Failed to save results")

	press(m, " ")
	assert.Equal(t, ScreenTypingResult, m.Screen())
}

func TestFetchWithoutFetcherAlerts(t *testing.T) {
	m, _ := newTestModel(t, "ab")
	_, cmd := m.Update(runeKey('t'))
	assert.Nil(t, cmd)
	assert.Equal(t, ScreenAlert, m.Screen())
}

func TestFetchDoneReplacesSentences(t *testing.T) {
	m, _ := newTestModel(t, "ab")
	m.fetching = true
	m.Update(fetchDoneMsg{sentences: []string{"new one", "new two"}})
	assert.False(t, m.fetching)
	assert.Equal(t, []string{"new one", "new two"}, m.sentences)
	assert.Equal(t, ScreenMain, m.Screen())

	m.Update(fetchDoneMsg{err: texts.ErrNoAPIKey})
	assert.Equal(t, ScreenAlert, m.Screen())
	assert.Equal(t, []string{"new one", "new two"}, m.sentences)
}

func TestFinishedSessionGoesToHistory(t *testing.T) {
	dir := t.TempDir()
	hist, err := store.Open(filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = hist.Close() })

	clock := &stepClock{now: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)}
	m := NewModel(Options{
		Config:    model.Config{FocusWeak: true, WeakTop: 1, WeakWindow: 5, WeakFactor: 2},
		Results:   results.New(filepath.Join(dir, "results.json")),
		History:   hist,
		Sentences: []string{"ab"},
		Clock:     clock.Now,
	})
	press(m, "saxb")

	sessions, err := hist.ListSessions(context.Background(), model.HistoryConfig{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 66.7, sessions[0].Accuracy)
	assert.Equal(t, 3, sessions[0].Keystrokes)
	assert.Equal(t, int64(2000), sessions[0].DurationMs)
	assert.Equal(t, 30.0, sessions[0].WPM)
	assert.Equal(t, map[rune]struct{}{'b': {}}, m.weakSet)
}

func TestKeyboardRender(t *testing.T) {
	lower := keyboard{}.render()
	assert.Contains(t, lower, "q")
	assert.Contains(t, lower, "space")
	assert.NotContains(t, lower, "Q")

	upper := keyboard{upper: true, pressed: 'Q'}.render()
	assert.Contains(t, upper, "Q")
	assert.Equal(t, 5, len(strings.Split(lower, "\n"))/3)
}

func TestUpperLayoutDetection(t *testing.T) {
	assert.True(t, isUpperLayout('A'))
	assert.True(t, isUpperLayout('?'))
	assert.False(t, isUpperLayout('a'))
}
