package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brew-update-helper/internal/brew"
	"github.com/blackwell-systems/brew-update-helper/internal/config"
	"github.com/blackwell-systems/brew-update-helper/internal/history"
	"github.com/blackwell-systems/brew-update-helper/internal/logging"
	"github.com/blackwell-systems/brew-update-helper/internal/output"
	"github.com/blackwell-systems/brew-update-helper/internal/plan"
	"github.com/blackwell-systems/brew-update-helper/internal/prefs"
	"github.com/blackwell-systems/brew-update-helper/internal/runlog"
	"github.com/blackwell-systems/brew-update-helper/internal/selection"
	"github.com/blackwell-systems/brew-update-helper/internal/upgrade"
)

var (
	upgradeYes bool

	upgradeCmd = &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade outdated packages that are enabled in the settings checklist",
		Long: `Upgrade outdated packages whose checkbox is ticked in the settings checklist.

On a terminal a picker lists every outdated, enabled package, all selected.
Elsewhere (pipes, CI, TERM=dumb) a single yes/no question is asked instead.
Packages are upgraded one at a time; a failure is reported and the run
continues with the next package.

Results are appended to the upgrade log and recorded in the run history
(see 'brew-update-helper history').`,
		Example: `  # Pick packages to upgrade
  brew-update-helper upgrade

  # Upgrade everything enabled without asking
  brew-update-helper upgrade --yes

  # Show what would be upgraded
  brew-update-helper upgrade --dry-run`,
		Args: cobra.NoArgs,
		RunE: runUpgrade,
	}
)

func init() {
	upgradeCmd.Flags().BoolVarP(&upgradeYes, "yes", "y", false, "upgrade every candidate without asking")
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := config.DocumentPath(configPath)

	caps := detectCapabilities()
	m, err := connectManager(caps)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: settings file not found at %s. Run 'dump' command first", prefs.ErrDocumentIO, path)
	}
	doc, err := prefs.Load(path)
	if err != nil {
		return err
	}
	if doc.Len() == 0 {
		return fmt.Errorf("no packages found in settings file %s. Run 'dump' command first", path)
	}
	if doc.EnabledCount() == 0 {
		fmt.Fprintln(out, "No packages are enabled for upgrade in settings.")
		return nil
	}

	logger := logging.GetLogger("upgrade")
	if n, err := brew.CheckStaleness(m, doc.Known()); err != nil {
		// The drift check is informational; the upgrade still runs.
		logger.Warn().Err(err).Msg("Could not compare installed packages with settings")
	} else if n > 0 {
		output.Warningf(out, "%d installed %s not in your settings. Run 'brew-update-helper dump' to add them.",
			n, pluralize(n, "package is", "packages are"))
	}

	spinner := output.NewSpinner("Checking for outdated packages")
	spinner.SetWriter(out)
	spinner.Start()
	outdated, err := m.ListOutdated()
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("failed to check for outdated packages: %w", err)
	}

	candidates := plan.Build(outdated, doc)
	logger.Debug().
		Int("outdated", len(outdated)).
		Int("candidates", len(candidates)).
		Msg("Upgrade plan built")

	session := selection.NewSession(caps, cmd.InOrStdin(), out, upgradeYes)
	result, err := session.Select(candidates)
	if err != nil {
		return fmt.Errorf("selection failed: %w", err)
	}
	if result.NothingToUpgrade {
		fmt.Fprintln(out, "All enabled packages are up to date!")
		return nil
	}

	selected := result.Selected()
	if len(selected) == 0 {
		fmt.Fprintln(out, "No packages selected for upgrade.")
		return nil
	}

	return executeUpgrades(cmd, m, len(candidates), selected)
}

func executeUpgrades(cmd *cobra.Command, m brew.Manager, planned int, selected []brew.OutdatedPackage) error {
	out := cmd.OutOrStdout()
	executor := upgrade.NewExecutor(m)

	if dryRun {
		fmt.Fprintf(out, "\nWould upgrade %d %s:\n", len(selected), pluralize(len(selected), "package", "packages"))
		executor.OnStart = func(i, total int, pkg brew.OutdatedPackage) {
			fmt.Fprintf(out, "  Would upgrade %s (%s) %s → %s\n",
				pkg.Name, pkg.Kind, pkg.CurrentVersion, pkg.AvailableVersion)
		}
		outcomes := executor.Execute(selected, true)
		fmt.Fprint(out, "\n"+output.RenderSummary(upgrade.Summarize(planned, outcomes), true))
		return nil
	}

	journal := openRunLog(stderr(cmd))
	if journal != nil {
		defer journal.Close()
		journal.RunStarted(len(selected))
	}

	fmt.Fprintf(out, "\nUpgrading %d %s:\n", len(selected), pluralize(len(selected), "package", "packages"))
	bar := output.NewProgress(out, len(selected))
	executor.OnStart = func(i, total int, pkg brew.OutdatedPackage) {
		bar.Describe(fmt.Sprintf("Upgrading %s %s → %s", pkg.Name, pkg.CurrentVersion, pkg.AvailableVersion))
	}
	executor.OnDone = func(i, total int, o upgrade.Outcome) {
		bar.Increment()
		if journal != nil {
			journal.Outcome(o)
		}
	}

	started := time.Now()
	outcomes := executor.Execute(selected, false)
	finished := time.Now()
	bar.Finish()

	fmt.Fprintln(out)
	for _, o := range outcomes {
		if o.Success {
			output.Successf(out, "Upgraded %s %s → %s (%s)",
				o.Package.Name, o.Package.CurrentVersion, o.Package.AvailableVersion, output.FormatDuration(o.Duration))
		} else {
			output.Failuref(out, "Failed to upgrade %s: %s", o.Package.Name, o.Detail)
		}
	}

	summary := upgrade.Summarize(planned, outcomes)
	if journal != nil {
		journal.RunFinished(summary, outcomes)
	}
	recordHistory(stderr(cmd), history.NewRun(started, finished, planned, outcomes))

	fmt.Fprint(out, "\n"+output.RenderSummary(summary, false))
	return nil
}

// openRunLog opens the append-only upgrade log. Failure only warns.
func openRunLog(warn io.Writer) *runlog.Log {
	journal, err := runlog.Open(settings.LogPath())
	if err != nil {
		output.Warningf(warn, "upgrade log unavailable: %v", err)
		return nil
	}
	return journal
}

// recordHistory stores run in the history database. Failure only warns.
func recordHistory(warn io.Writer, run *history.Run) {
	store, err := history.Open(settings.HistoryPath())
	if err != nil {
		output.Warningf(warn, "run history unavailable: %v", err)
		return
	}
	defer store.Close()

	if err := store.RecordRun(run); err != nil {
		output.Warningf(warn, "failed to record run history: %v", err)
	}
}
