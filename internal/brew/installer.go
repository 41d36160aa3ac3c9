package brew

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/blackwell-systems/brew-update-helper/internal/logging"
)

// upgradeArgs returns the brew arguments that upgrade pkg.
func upgradeArgs(pkg OutdatedPackage) []string {
	if pkg.Kind == Cask {
		return []string{"upgrade", "--cask", pkg.Name}
	}
	return []string{"upgrade", pkg.Name}
}

// Upgrade runs brew upgrade for a single formula or cask.
func (m *SystemManager) Upgrade(pkg OutdatedPackage) error {
	args := upgradeArgs(pkg)
	logging.LogCommand(m.binary, args)
	cmd := exec.Command(m.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = err.Error()
		}
		return fmt.Errorf("%w: brew upgrade %s: %s", ErrUpgradeFailed, pkg.Name, detail)
	}
	return nil
}
