package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/brew-update-helper/internal/brew"
	"github.com/blackwell-systems/brew-update-helper/internal/logging"
	"github.com/blackwell-systems/brew-update-helper/internal/prefs"
)

// inventory is what the manager reports as installed on request.
type inventory struct {
	formulae []string
	casks    []string
}

func listInventory(m brew.Manager) (inventory, error) {
	formulae, err := m.ListInstalledFormulae()
	if err != nil {
		return inventory{}, fmt.Errorf("failed to list installed formulae: %w", err)
	}
	casks, err := m.ListInstalledCasks()
	if err != nil {
		return inventory{}, fmt.Errorf("failed to list installed casks: %w", err)
	}
	return inventory{formulae: formulae, casks: casks}, nil
}

// mergeDocument loads the document at path and merges the current inventory
// into it. Nothing is written.
func mergeDocument(inv inventory, path string) (*prefs.Document, prefs.MergeReport, error) {
	existing, err := prefs.Load(path)
	if err != nil {
		return nil, prefs.MergeReport{}, err
	}
	merged, report := prefs.Merge(existing, inv.formulae, inv.casks, settings.DefaultEnabled)
	return merged, report, nil
}

// syncDocument merges the live inventory into the document at path and saves
// it. Used by watch.
func syncDocument(m brew.Manager, path string) (prefs.MergeReport, error) {
	logger := logging.GetLogger("sync")
	done := logging.LogOperationStart(logger, "sync")
	defer done()

	inv, err := listInventory(m)
	if err != nil {
		return prefs.MergeReport{}, err
	}
	merged, report, err := mergeDocument(inv, path)
	if err != nil {
		return prefs.MergeReport{}, err
	}
	if err := prefs.Save(merged, path); err != nil {
		return prefs.MergeReport{}, err
	}
	logger.Info().
		Int("added", len(report.Added)).
		Int("missing", len(report.Missing)).
		Str("path", path).
		Msg("Settings synchronised")
	return report, nil
}

// printMergeReport lists added and no-longer-installed items.
func printMergeReport(w io.Writer, report prefs.MergeReport) {
	if len(report.Added) > 0 {
		fmt.Fprintf(w, "Added %d new %s: %s\n",
			len(report.Added), pluralize(len(report.Added), "package", "packages"), itemNames(report.Added))
	}
	if len(report.Missing) > 0 {
		fmt.Fprintf(w, "%d configured %s no longer installed (kept): %s\n",
			len(report.Missing), pluralize(len(report.Missing), "package is", "packages are"), itemNames(report.Missing))
	}
}

func itemNames(items []brew.Item) string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return strings.Join(names, ", ")
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
