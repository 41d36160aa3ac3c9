package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/brew-update-helper/internal/brew"
	"github.com/blackwell-systems/brew-update-helper/internal/history"
	"github.com/blackwell-systems/brew-update-helper/internal/output"
)

var (
	historyLimit   int
	historyYAML    bool
	historyPackage string

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Show recorded upgrade runs",
		Long: `List recent upgrade runs, newest first, with per-run counts and the
packages that failed. Dry runs are not recorded.`,
		Example: `  # Last 10 runs
  brew-update-helper history

  # Every run, as YAML
  brew-update-helper history --limit 0 --yaml

  # How often a package failed to upgrade
  brew-update-helper history --package docker`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyYAML, "yaml", false, "print runs as YAML")
	historyCmd.Flags().StringVar(&historyPackage, "package", "", "show how often this package failed to upgrade")
}

func runHistory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	dbPath := settings.HistoryPath()
	var runs []*history.Run
	if _, err := os.Stat(dbPath); err == nil {
		store, err := history.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open run history: %w", err)
		}
		defer store.Close()

		if historyPackage != "" {
			return printPackageFailures(out, store, historyPackage)
		}

		runs, err = store.ListRuns(historyLimit)
		if err != nil && !errors.Is(err, history.ErrNotInitialized) {
			return err
		}
	} else if historyPackage != "" {
		fmt.Fprintf(out, "%s failed to upgrade 0 times\n", historyPackage)
		return nil
	}

	if historyYAML {
		if runs == nil {
			runs = []*history.Run{}
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(runs); err != nil {
			return fmt.Errorf("failed to encode history: %w", err)
		}
		return enc.Close()
	}

	fmt.Fprint(out, output.RenderHistoryTable(runs))
	return nil
}

// printPackageFailures prints the failure count of name for each kind that
// has failures, or a single zero line.
func printPackageFailures(out io.Writer, store *history.Store, name string) error {
	printed := false
	for _, kind := range []brew.Kind{brew.Formula, brew.Cask} {
		count, err := store.PackageFailures(brew.Item{Name: name, Kind: kind})
		if err != nil {
			if errors.Is(err, history.ErrNotInitialized) {
				break
			}
			return err
		}
		if count > 0 {
			fmt.Fprintf(out, "%s (%s) failed to upgrade %d %s\n", name, kind, count, pluralize(count, "time", "times"))
			printed = true
		}
	}
	if !printed {
		fmt.Fprintf(out, "%s failed to upgrade 0 times\n", name)
	}
	return nil
}
