package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Practice.Texts)
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `[practice]
texts = "~/texts/**/*.txt"
focus-weak = true
weak-top = 4

[texts]
model = "gpt-4o-mini"
count = 20

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Practice.FocusWeak)
	assert.True(t, *cfg.Practice.FocusWeak)
	assert.Equal(t, 4, *cfg.Practice.WeakTop)
	assert.Equal(t, 20, *cfg.Texts.Count)
	assert.Equal(t, "debug", *cfg.Log.Level)
	assert.Nil(t, cfg.Texts.Endpoint)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[practice]\nwords = 3\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "practice.words")
}

func TestLoadEnvKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BLINDTYPE_TEST_A=file\nBLINDTYPE_TEST_B=file\n"), 0o600))
	t.Setenv("BLINDTYPE_TEST_A", "env")
	t.Setenv("BLINDTYPE_TEST_B", "")
	require.NoError(t, os.Unsetenv("BLINDTYPE_TEST_B"))

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "env", os.Getenv("BLINDTYPE_TEST_A"))
	assert.Equal(t, "file", os.Getenv("BLINDTYPE_TEST_B"))

	require.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	assert.Equal(t, filepath.Join("/cfg", "blindtype", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/data", "blindtype", "results.json"), DefaultResultsPath())
	assert.Equal(t, filepath.Join("/data", "blindtype", "history.db"), DefaultHistoryPath())
	assert.Equal(t, filepath.Join("/state", "blindtype", "blindtype.log"), DefaultLogPath())
}
