package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brew-update-helper/internal/brew"
	"github.com/blackwell-systems/brew-update-helper/internal/config"
	"github.com/blackwell-systems/brew-update-helper/internal/history"
	"github.com/blackwell-systems/brew-update-helper/internal/output"
	"github.com/blackwell-systems/brew-update-helper/internal/plan"
	"github.com/blackwell-systems/brew-update-helper/internal/prefs"
	"github.com/blackwell-systems/brew-update-helper/internal/watcher"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show settings, Homebrew and upgrade statistics",
	Long: `Display statistics about the settings checklist and the Homebrew install.

Shows:
  • Installed formulae and casks, and how many are enabled or disabled
  • Outdated packages, and how many of them are enabled
  • Configured packages that are no longer installed
  • Homebrew version, prefix, OS and architecture
  • Settings file location, last dump and last upgrade run`,
	Example: `  brew-update-helper status`,
	Args:    cobra.NoArgs,
	RunE:    runStatus,
}

// kindStats counts one section of the status report.
type kindStats struct {
	Installed    int
	Enabled      int
	Disabled     int
	Unconfigured int
	Outdated     int
	Candidates   int
}

type statusReport struct {
	Formulae     kindStats
	Casks        kindStats
	NotInstalled int
}

func (r *statusReport) kind(k brew.Kind) *kindStats {
	if k == brew.Cask {
		return &r.Casks
	}
	return &r.Formulae
}

// buildStatus counts installed, configured and outdated packages.
func buildStatus(inv inventory, doc *prefs.Document, outdated []brew.OutdatedPackage) statusReport {
	var r statusReport
	installed := make(map[brew.Item]bool)

	for _, kind := range []brew.Kind{brew.Formula, brew.Cask} {
		names := inv.formulae
		if kind == brew.Cask {
			names = inv.casks
		}
		stats := r.kind(kind)
		for _, name := range names {
			item := brew.Item{Name: name, Kind: kind}
			installed[item] = true
			stats.Installed++

			entry, ok := doc.Lookup(item)
			switch {
			case !ok:
				stats.Unconfigured++
			case entry.Enabled:
				stats.Enabled++
			default:
				stats.Disabled++
			}
		}
		for _, e := range doc.Section(kind) {
			if !installed[e.Item] {
				r.NotInstalled++
			}
		}
	}

	for _, pkg := range outdated {
		r.kind(pkg.Kind).Outdated++
	}
	for _, c := range plan.Build(outdated, doc) {
		r.kind(c.Outdated.Kind).Candidates++
	}
	return r
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := config.DocumentPath(configPath)

	m, err := connectManager(detectCapabilities())
	if err != nil {
		return err
	}

	inv, err := listInventory(m)
	if err != nil {
		return err
	}
	doc, err := prefs.Load(path)
	if err != nil {
		return err
	}

	spinner := output.NewSpinner("Checking for outdated packages")
	spinner.SetWriter(stderr(cmd))
	spinner.Start()
	outdated, err := m.ListOutdated()
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("failed to check for outdated packages: %w", err)
	}

	report := buildStatus(inv, doc, outdated)

	version, err := m.Version()
	if err != nil {
		version = "unknown"
	}
	info := m.SystemInfo()

	fmt.Fprintln(out)
	output.Header.Fprintln(out, "Packages")
	fmt.Fprint(out, output.RenderKeyValues([][2]string{
		{"Formulae", formatKindStats(report.Formulae)},
		{"Casks", formatKindStats(report.Casks)},
		{"Outdated", fmt.Sprintf("%d formulae, %d casks (%d enabled for upgrade)",
			report.Formulae.Outdated, report.Casks.Outdated, report.Formulae.Candidates+report.Casks.Candidates)},
		{"Not installed", fmt.Sprintf("%d configured %s no longer installed",
			report.NotInstalled, pluralize(report.NotInstalled, "package is", "packages are"))},
	}))

	fmt.Fprintln(out)
	output.Header.Fprintln(out, "Homebrew")
	fmt.Fprint(out, output.RenderKeyValues([][2]string{
		{"Version", version},
		{"Prefix", valueOr(info.Prefix, "unknown")},
		{"OS", valueOr(info.OSVersion, "unknown")},
		{"Architecture", valueOr(info.Architecture, "unknown")},
	}))

	settingsState := path
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		settingsState = path + " (missing, run 'brew-update-helper dump')"
	}

	fmt.Fprintln(out)
	output.Header.Fprintln(out, "Settings")
	fmt.Fprint(out, output.RenderKeyValues([][2]string{
		{"File", settingsState},
		{"Generated", output.FormatTimestamp(doc.GeneratedAt)},
		{"Last upgrade", lastRunSummary()},
		{"Watcher", watcherState()},
	}))
	fmt.Fprintln(out)
	return nil
}

func formatKindStats(s kindStats) string {
	line := fmt.Sprintf("%d installed · %d enabled · %d disabled", s.Installed, s.Enabled, s.Disabled)
	if s.Unconfigured > 0 {
		line += fmt.Sprintf(" · %d not in settings", s.Unconfigured)
	}
	return line
}

// lastRunSummary describes the most recent recorded upgrade run without
// creating the history database.
func lastRunSummary() string {
	dbPath := settings.HistoryPath()
	if _, err := os.Stat(dbPath); err != nil {
		return "never"
	}
	store, err := history.New(dbPath)
	if err != nil {
		return "unknown"
	}
	defer store.Close()

	run, err := store.LastRun()
	if err != nil || run == nil {
		return "never"
	}
	return fmt.Sprintf("%s · %d upgraded, %d failed",
		output.FormatTimestamp(run.StartedAt), run.Upgraded, run.Failed)
}

func watcherState() string {
	running, err := watcher.IsDaemonRunning(defaultPIDFile())
	if err != nil {
		return "unknown"
	}
	if running {
		return "running"
	}
	return "stopped"
}

func defaultPIDFile() string {
	return filepath.Join(config.StateDir(), "watch.pid")
}

func defaultWatchLogFile() string {
	return filepath.Join(config.StateDir(), "watch.log")
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
