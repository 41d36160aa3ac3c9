package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brew-update-helper/internal/brew"
	"github.com/blackwell-systems/brew-update-helper/internal/capability"
	"github.com/blackwell-systems/brew-update-helper/internal/config"
	"github.com/blackwell-systems/brew-update-helper/internal/logging"
	"github.com/blackwell-systems/brew-update-helper/internal/output"
)

var (
	configPath   string
	settingsPath string
	dryRun       bool
	verbosity    int
	noColor      bool

	// settings is loaded once per invocation by PersistentPreRunE.
	settings = config.Defaults()

	// RootCmd is the root command for brew-update-helper
	RootCmd = &cobra.Command{
		Use:   "brew-update-helper",
		Short: "Selectively upgrade Homebrew packages from a checklist you control",
		Long: `brew-update-helper keeps a Markdown checklist of your manually installed
Homebrew formulae and casks. Tick the packages you want kept up to date and
untick the ones you want to leave alone; 'upgrade' only touches ticked ones.

Quick Start:
  1. brew-update-helper dump       # write the checklist
  2. edit ~/.config/brew-update-helper/settings.md
  3. brew-update-helper upgrade    # pick from outdated, ticked packages

Examples:
  # Preview the checklist without writing it
  brew-update-helper dump --dry-run

  # Upgrade without the interactive picker
  brew-update-helper upgrade --yes

  # Show what is configured and outdated
  brew-update-helper status

  # Keep the checklist in sync as you install packages
  brew-update-helper watch`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "brew-update-helper: selective Homebrew upgrades")
			fmt.Fprintln(out)
			if _, err := os.Stat(config.DocumentPath(configPath)); os.IsNotExist(err) {
				fmt.Fprintln(out, "Run 'brew-update-helper dump' to create your settings file.")
			} else {
				fmt.Fprintln(out, "Run 'brew-update-helper upgrade' to upgrade enabled packages.")
			}
			fmt.Fprintln(out, "Run 'brew-update-helper --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings document path (default: $XDG_CONFIG_HOME/brew-update-helper/settings.md)")
	RootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "tool config file (default: $XDG_CONFIG_HOME/brew-update-helper/settings.toml)")
	RootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "show what would happen without changing anything")
	RootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")

	RootCmd.SuggestionsMinimumDistance = 2

	RootCmd.AddCommand(dumpCmd)
	RootCmd.AddCommand(upgradeCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(historyCmd)
	RootCmd.AddCommand(watchCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

func setup(cmd *cobra.Command, args []string) error {
	logging.Setup(verbosity, os.Stderr, noColor)
	output.SetupColor(noColor)

	s, err := config.Load(settingsPath)
	if err != nil {
		return err
	}
	settings = s
	return nil
}

// newManager builds the package manager for this run. Tests replace it.
var newManager = func(s *config.Settings, caps capability.Capabilities) (brew.Manager, error) {
	if caps.FixturePath != "" {
		return brew.LoadFixture(caps.FixturePath)
	}
	return brew.NewSystemManager(s.BrewBinary, s.GreedyCasks), nil
}

// detectCapabilities is capability.Detect; tests replace it.
var detectCapabilities = capability.Detect

// connectManager builds the manager and verifies it once.
func connectManager(caps capability.Capabilities) (brew.Manager, error) {
	m, err := newManager(settings, caps)
	if err != nil {
		return nil, err
	}
	if err := m.Verify(); err != nil {
		return nil, managerError(err)
	}
	return m, nil
}

// managerError adds the install hint to availability failures.
func managerError(err error) error {
	if errors.Is(err, brew.ErrManagerUnavailable) {
		return fmt.Errorf("%w\nPlease install Homebrew first: https://brew.sh/", err)
	}
	return err
}

// stderr returns the command's error writer.
func stderr(cmd *cobra.Command) io.Writer {
	return cmd.ErrOrStderr()
}
