package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brew-update-helper/internal/config"
	"github.com/blackwell-systems/brew-update-helper/internal/output"
	"github.com/blackwell-systems/brew-update-helper/internal/prefs"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write installed packages to the settings checklist",
	Long: `Collect manually installed formulae and all installed casks and merge them
into the settings checklist.

Packages already in the checklist keep their checkbox and position. New
packages are appended, enabled unless default_enabled = false is set in
settings.toml. Packages that are no longer installed stay in the file.`,
	Example: `  # Write or update the checklist
  brew-update-helper dump

  # Show the resulting checklist without writing it
  brew-update-helper dump --dry-run

  # Use a different checklist
  brew-update-helper dump --config ~/dotfiles/brew-settings.md`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := config.DocumentPath(configPath)

	m, err := connectManager(detectCapabilities())
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Fprintf(out, "Would write settings to: %s\n", path)
	}

	inv, err := listInventory(m)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d manually installed formulae\n", len(inv.formulae))
	fmt.Fprintf(out, "Found %d installed casks\n", len(inv.casks))

	merged, report, err := mergeDocument(inv, path)
	if err != nil {
		return err
	}
	printMergeReport(out, report)

	if dryRun {
		fmt.Fprintln(out, "\nSettings content would be:")
		output.Preview(out, prefs.Render(merged))
		return nil
	}

	if err := prefs.Save(merged, path); err != nil {
		return err
	}
	output.Successf(out, "Settings written to: %s", path)
	fmt.Fprintln(out, "Edit the file to untick packages you do not want upgraded, then run 'brew-update-helper upgrade'.")
	return nil
}
