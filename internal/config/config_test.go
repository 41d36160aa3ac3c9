package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirRespectsXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))

	assert.Equal(t, filepath.Join(base, AppName), Dir())
	assert.Equal(t, filepath.Join(base, "state", AppName), StateDir())
	assert.Equal(t, filepath.Join(base, AppName, "settings.md"), DocumentPath(""))
	assert.Equal(t, filepath.Join(base, AppName, "settings.toml"), SettingsPath())
}

func TestDirFallsBackToXDGDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")

	assert.True(t, strings.HasSuffix(Dir(), AppName))
	assert.True(t, strings.HasSuffix(StateDir(), AppName))
}

func TestDocumentPathOverride(t *testing.T) {
	assert.Equal(t, "/tmp/custom.md", DocumentPath("/tmp/custom.md"))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "prefs.md"), DocumentPath("~/prefs.md"))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.True(t, s.DefaultEnabled)
	assert.True(t, s.GreedyCasks, "auto-updating casks are queried by default")
	assert.Equal(t, 5*time.Second, s.Debounce())
}

func TestLoadFile(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	path := filepath.Join(t.TempDir(), "settings.toml")
	content := `
default_enabled = false
greedy_casks = false
brew_binary = "/usr/local/bin/brew"
history_db = "/var/tmp/history.db"
watch_debounce = "750ms"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.False(t, s.DefaultEnabled)
	assert.False(t, s.GreedyCasks)
	assert.Equal(t, "/usr/local/bin/brew", s.BrewBinary)
	assert.Equal(t, 750*time.Millisecond, s.Debounce())
	assert.Equal(t, "/var/tmp/history.db", s.HistoryPath())
	assert.Equal(t, filepath.Join(state, AppName, "upgrade.log"), s.LogPath())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("greedy_casks = false\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.True(t, s.DefaultEnabled, "absent key keeps its default")
	assert.False(t, s.GreedyCasks)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed", "default_enabled = = true\n", "failed to parse"},
		{"unknown key", "auto_prune = true\n", "failed to parse"},
		{"bad duration", "watch_debounce = \"soon\"\n", "watch_debounce"},
		{"negative duration", "watch_debounce = \"-1s\"\n", "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
