// Package config resolves the tool's file locations and loads settings.toml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "brew-update-helper"

const (
	documentFile = "settings.md"
	settingsFile = "settings.toml"
	logFile      = "upgrade.log"
	historyFile  = "history.db"

	defaultDebounce = 5 * time.Second
)

// Dir returns the config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/brew-update-helper.
func Dir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, AppName)
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

// StateDir returns the state directory, respecting XDG_STATE_HOME.
// Defaults to ~/.local/state/brew-update-helper.
func StateDir() string {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, AppName)
	}
	return filepath.Join(xdg.StateHome, AppName)
}

// DocumentPath returns the settings document path. A non-empty override
// (the --config flag) wins.
func DocumentPath(override string) string {
	if override != "" {
		return expandHome(override)
	}
	return filepath.Join(Dir(), documentFile)
}

// SettingsPath returns the default location of settings.toml.
func SettingsPath() string {
	return filepath.Join(Dir(), settingsFile)
}

// Settings holds the optional tool configuration.
type Settings struct {
	// DefaultEnabled is the checkbox state given to newly discovered packages.
	DefaultEnabled bool `toml:"default_enabled"`
	// GreedyCasks adds --greedy to the outdated cask query so casks that
	// update themselves are still listed. On by default.
	GreedyCasks bool `toml:"greedy_casks"`
	// BrewBinary overrides the brew executable.
	BrewBinary string `toml:"brew_binary"`
	// LogFile overrides the upgrade log location.
	LogFile string `toml:"log_file"`
	// HistoryDB overrides the run history database location.
	HistoryDB string `toml:"history_db"`
	// WatchDebounce is a Go duration string such as "5s".
	WatchDebounce string `toml:"watch_debounce"`

	debounce time.Duration
}

// Defaults returns the settings used when no file exists.
func Defaults() *Settings {
	return &Settings{
		DefaultEnabled: true,
		GreedyCasks:    true,
		WatchDebounce:  defaultDebounce.String(),
		debounce:       defaultDebounce,
	}
}

// Load reads settings from path, or from SettingsPath when path is empty.
// A missing file yields Defaults. Unknown keys are an error.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = SettingsPath()
	}
	path = expandHome(path)

	s := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return s, nil
}

func (s *Settings) validate() error {
	if s.WatchDebounce == "" {
		s.debounce = defaultDebounce
		return nil
	}
	d, err := time.ParseDuration(s.WatchDebounce)
	if err != nil {
		return fmt.Errorf("watch_debounce: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("watch_debounce must be positive, got %s", s.WatchDebounce)
	}
	s.debounce = d
	return nil
}

// Debounce returns the parsed watch debounce interval.
func (s *Settings) Debounce() time.Duration {
	if s.debounce <= 0 {
		return defaultDebounce
	}
	return s.debounce
}

// LogPath returns the upgrade log path.
func (s *Settings) LogPath() string {
	if s.LogFile != "" {
		return expandHome(s.LogFile)
	}
	return filepath.Join(StateDir(), logFile)
}

// HistoryPath returns the run history database path.
func (s *Settings) HistoryPath() string {
	if s.HistoryDB != "" {
		return expandHome(s.HistoryDB)
	}
	return filepath.Join(StateDir(), historyFile)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
