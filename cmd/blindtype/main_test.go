package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/blindtype/internal/config"
	"github.com/verte-zerg/blindtype/internal/model"
	"github.com/verte-zerg/blindtype/internal/results"
	"github.com/verte-zerg/blindtype/internal/texts"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func seedResults(t *testing.T) {
	t.Helper()
	_, err := results.New(config.DefaultResultsPath()).MergeAndPersist(model.Result{
		WPM:           30,
		TotalAccuracy: 66.7,
		Letters: map[rune]model.LetterStat{
			'a': {MainLetter: 'a', Presses: map[rune]int{'a': 1}, TotalPresses: 1},
			'b': {MainLetter: 'b', Presses: map[rune]int{'b': 1, 'x': 1}, TotalPresses: 2},
		},
	})
	require.NoError(t, err)
}

func TestResultsWithoutData(t *testing.T) {
	isolateXDG(t)
	out, err := runCLI(t, "results")
	require.NoError(t, err)
	assert.Equal(t, "No results yet.\n", out)
}

func TestResultsPrintsAggregate(t *testing.T) {
	isolateXDG(t)
	seedResults(t)

	out, err := runCLI(t, "results")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "WPM: 30.0", lines[0])
	assert.Equal(t, "Accuracy: 66.7%", lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "a"))
	assert.True(t, strings.HasPrefix(lines[4], "b"))
}

func TestResultsLetterBreakdown(t *testing.T) {
	isolateXDG(t)
	seedResults(t)

	out, err := runCLI(t, "results", "--letter", "b")
	require.NoError(t, err)
	assert.Contains(t, out, "Letter b: 50.0% over 2 presses")
	assert.Contains(t, out, "x")

	out, err = runCLI(t, "results", "--letter", "q")
	require.NoError(t, err)
	assert.Contains(t, out, "No data for letter")

	_, err = runCLI(t, "results", "--letter", "ab")
	assert.Error(t, err)
}

func TestResetWithYes(t *testing.T) {
	isolateXDG(t)
	seedResults(t)

	out, err := runCLI(t, "reset", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "Results deleted.\n", out)
	assert.Empty(t, results.New(config.DefaultResultsPath()).Load().Letters)
}

func TestTextsListFallsBackToDefaults(t *testing.T) {
	isolateXDG(t)
	out, err := runCLI(t, "texts", "list")
	require.NoError(t, err)
	assert.Equal(t, len(texts.DefaultSentences), strings.Count(out, "\n"))
}

func TestTextsListReadsConfiguredFile(t *testing.T) {
	dir := isolateXDG(t)
	path := filepath.Join(dir, "mine.txt")
	require.NoError(t, os.WriteFile(path, []byte("one sentence\n\nanother one\n"), 0o644))
	require.NoError(t, os.MkdirAll(config.ConfigDir(), 0o755))
	cfg := "[practice]\ntexts = \"" + filepath.ToSlash(path) + "\"\n"
	require.NoError(t, os.WriteFile(config.DefaultConfigPath(), []byte(cfg), 0o644))

	out, err := runCLI(t, "texts", "list")
	require.NoError(t, err)
	assert.Equal(t, "one sentence\nanother one\n", out)
}

func TestUnknownConfigKeyFails(t *testing.T) {
	isolateXDG(t)
	require.NoError(t, os.MkdirAll(config.ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(config.DefaultConfigPath(), []byte("[practice]\nwords = 3\n"), 0o644))

	_, err := runCLI(t, "results")
	assert.Error(t, err)
}

func TestInvalidLogLevelFails(t *testing.T) {
	isolateXDG(t)
	_, err := runCLI(t, "results", "--log-level", "loud")
	assert.Error(t, err)
}

func TestHistoryConfigValidation(t *testing.T) {
	historySince, historyLast, historyWindow = "2026-01-02", 5, 10
	cfg, err := historyConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.Since)
	assert.Equal(t, 2026, cfg.Since.Year())
	assert.Equal(t, 5, cfg.Last)

	historySince = "yesterday"
	_, err = historyConfig()
	assert.Error(t, err)

	historySince, historyWindow = "", 0
	_, err = historyConfig()
	assert.Error(t, err)
}

func TestHistoryWithoutSessions(t *testing.T) {
	isolateXDG(t)
	out, err := runCLI(t, "history")
	require.NoError(t, err)
	assert.Equal(t, "No sessions recorded yet.\n", out)
}

func TestValidateConfig(t *testing.T) {
	valid := model.Config{TextsPattern: "texts.txt", WeakTop: 1, WeakFactor: 1, WeakWindow: 1}
	assert.NoError(t, validateConfig(valid))

	bad := valid
	bad.TextsPattern = " "
	assert.Error(t, validateConfig(bad))

	bad = valid
	bad.WeakFactor = -1
	assert.Error(t, validateConfig(bad))
}

func TestFetchTarget(t *testing.T) {
	isolateXDG(t)
	assert.Equal(t, config.DefaultTextsPath(), fetchTarget("texts/**/*.txt"))
	assert.Equal(t, "/tmp/mine.txt", fetchTarget("/tmp/mine.txt"))
}

func TestPracticeConfigFlagsWin(t *testing.T) {
	isolateXDG(t)
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--weak-top", "3"}))

	top, window, history := 9, 7, false
	fileCfg := config.FileConfig{Practice: config.PracticeConfig{WeakTop: &top, WeakWindow: &window, History: &history}}
	cfg, err := practiceConfig(cmd, fileCfg)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.WeakTop)
	assert.Equal(t, 7, cfg.WeakWindow)
	assert.False(t, cfg.History)
}
