package brew

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FixtureManager is a Manager that serves fixed responses and records
// upgrade calls instead of running brew.
type FixtureManager struct {
	Formulae    []string
	Casks       []string
	Outdated    []OutdatedPackage
	Failures    map[string]string // package name -> upgrade error detail
	Unavailable bool
	// ListErr, when set, is returned by the installed-package listings.
	ListErr     error
	BrewVersion string
	Info        SystemInfo

	// Upgraded records every Upgrade call in order, failed ones included.
	Upgraded []OutdatedPackage
}

// NewFixtureManager returns a fixture with the sample data used across tests.
func NewFixtureManager() *FixtureManager {
	return &FixtureManager{
		Formulae: []string{"git", "node", "python"},
		Casks:    []string{"visual-studio-code", "docker", "firefox"},
		Outdated: []OutdatedPackage{
			{Name: "git", Kind: Formula, CurrentVersion: "2.40.0", AvailableVersion: "2.41.0"},
			{Name: "docker", Kind: Cask, CurrentVersion: "4.18.0", AvailableVersion: "4.19.0"},
		},
		Failures:    map[string]string{},
		BrewVersion: "Homebrew 4.1.5",
		Info: SystemInfo{
			OSVersion:    "macOS 14.5",
			Architecture: "Apple Silicon",
			Prefix:       "/opt/homebrew",
		},
	}
}

// fixtureFile is the YAML layout read by LoadFixture.
type fixtureFile struct {
	Version     string            `yaml:"version"`
	Prefix      string            `yaml:"prefix"`
	OS          string            `yaml:"os"`
	Arch        string            `yaml:"arch"`
	Unavailable bool              `yaml:"unavailable"`
	Formulae    []string          `yaml:"formulae"`
	Casks       []string          `yaml:"casks"`
	Outdated    []fixtureOutdated `yaml:"outdated"`
	Failures    map[string]string `yaml:"failures"`
}

type fixtureOutdated struct {
	Name      string `yaml:"name"`
	Kind      string `yaml:"kind"`
	Current   string `yaml:"current"`
	Available string `yaml:"available"`
}

// LoadFixture reads a FixtureManager from a YAML file.
func LoadFixture(path string) (*FixtureManager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes fixture YAML. Omitted fields stay empty.
func ParseFixture(data []byte) (*FixtureManager, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	m := &FixtureManager{
		Formulae:    f.Formulae,
		Casks:       f.Casks,
		Failures:    f.Failures,
		Unavailable: f.Unavailable,
		BrewVersion: f.Version,
		Info: SystemInfo{
			OSVersion:    f.OS,
			Architecture: f.Arch,
			Prefix:       f.Prefix,
		},
	}
	if m.Failures == nil {
		m.Failures = map[string]string{}
	}

	for _, o := range f.Outdated {
		kind := Formula
		if o.Kind != "" {
			k, err := ParseKind(o.Kind)
			if err != nil {
				return nil, fmt.Errorf("fixture outdated entry %q: %w", o.Name, err)
			}
			kind = k
		}
		m.Outdated = append(m.Outdated, OutdatedPackage{
			Name:             o.Name,
			Kind:             kind,
			CurrentVersion:   o.Current,
			AvailableVersion: o.Available,
		})
	}

	return m, nil
}

func (m *FixtureManager) Verify() error {
	if m.Unavailable {
		return fmt.Errorf("%w: fixture marked unavailable", ErrManagerUnavailable)
	}
	return nil
}

func (m *FixtureManager) ListInstalledFormulae() ([]string, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]string(nil), m.Formulae...), nil
}

func (m *FixtureManager) ListInstalledCasks() ([]string, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]string(nil), m.Casks...), nil
}

func (m *FixtureManager) ListOutdated() ([]OutdatedPackage, error) {
	return append([]OutdatedPackage(nil), m.Outdated...), nil
}

// Upgrade fails for names listed in Failures and succeeds otherwise.
func (m *FixtureManager) Upgrade(pkg OutdatedPackage) error {
	m.Upgraded = append(m.Upgraded, pkg)
	if detail, ok := m.Failures[pkg.Name]; ok {
		return fmt.Errorf("%w: brew upgrade %s: %s", ErrUpgradeFailed, pkg.Name, detail)
	}
	return nil
}

func (m *FixtureManager) Version() (string, error) {
	if m.BrewVersion == "" {
		return "Unknown version", nil
	}
	return m.BrewVersion, nil
}

func (m *FixtureManager) Prefix() (string, error) {
	if m.Info.Prefix == "" {
		return "", fmt.Errorf("fixture has no prefix")
	}
	return m.Info.Prefix, nil
}

func (m *FixtureManager) SystemInfo() SystemInfo {
	return m.Info
}
