package brew

import "errors"

var (
	// ErrManagerUnavailable is returned when brew is missing or cannot run.
	ErrManagerUnavailable = errors.New("homebrew is not installed or not in PATH")

	// ErrUpgradeFailed wraps the failure of a single package upgrade.
	ErrUpgradeFailed = errors.New("upgrade failed")
)

// Manager is everything the tool needs from the package manager.
// SystemManager shells out to brew; FixtureManager serves canned data.
type Manager interface {
	// Verify checks that the manager can be invoked at all.
	Verify() error
	// ListInstalledFormulae returns formulae installed on request.
	ListInstalledFormulae() ([]string, error)
	// ListInstalledCasks returns all installed casks.
	ListInstalledCasks() ([]string, error)
	// ListOutdated returns outdated formulae followed by outdated casks.
	ListOutdated() ([]OutdatedPackage, error)
	// Upgrade upgrades exactly one package.
	Upgrade(pkg OutdatedPackage) error
	// Version returns the first line of `brew --version`.
	Version() (string, error)
	// Prefix returns the Homebrew installation prefix.
	Prefix() (string, error)
	// SystemInfo describes the host.
	SystemInfo() SystemInfo
}
