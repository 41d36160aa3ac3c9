// Package plan joins outdated packages with the settings document.
package plan

import (
	"github.com/blackwell-systems/brew-update-helper/internal/brew"
	"github.com/blackwell-systems/brew-update-helper/internal/prefs"
)

// Candidate is an outdated package the user allowed to upgrade.
// Selected starts true; only the selection session changes it.
type Candidate struct {
	Outdated brew.OutdatedPackage
	Selected bool
}

// Build returns a candidate for every outdated package whose (name, kind)
// has an enabled entry in doc, in the order of outdated.
func Build(outdated []brew.OutdatedPackage, doc *prefs.Document) []Candidate {
	var candidates []Candidate
	for _, pkg := range outdated {
		entry, ok := doc.Lookup(pkg.Item())
		if !ok || !entry.Enabled {
			continue
		}
		candidates = append(candidates, Candidate{Outdated: pkg, Selected: true})
	}
	return candidates
}

// SelectedPackages returns the outdated packages of the selected candidates.
func SelectedPackages(candidates []Candidate) []brew.OutdatedPackage {
	var selected []brew.OutdatedPackage
	for _, c := range candidates {
		if c.Selected {
			selected = append(selected, c.Outdated)
		}
	}
	return selected
}
