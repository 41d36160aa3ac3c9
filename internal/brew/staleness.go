package brew

import "fmt"

// CheckStaleness returns how many installed packages are missing from the
// known set, i.e. were installed since the settings were last dumped.
func CheckStaleness(m Manager, known map[Item]bool) (int, error) {
	formulae, err := m.ListInstalledFormulae()
	if err != nil {
		return 0, fmt.Errorf("failed to list installed formulae: %w", err)
	}
	casks, err := m.ListInstalledCasks()
	if err != nil {
		return 0, fmt.Errorf("failed to list installed casks: %w", err)
	}

	newCount := 0
	for _, name := range formulae {
		if !known[Item{Name: name, Kind: Formula}] {
			newCount++
		}
	}
	for _, name := range casks {
		if !known[Item{Name: name, Kind: Cask}] {
			newCount++
		}
	}

	return newCount, nil
}
