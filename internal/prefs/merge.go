package prefs

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/blackwell-systems/brew-update-helper/internal/brew"
)

// MergeReport describes what a merge changed.
type MergeReport struct {
	// Added lists newly discovered items in the order they were appended.
	Added []brew.Item
	// Missing lists configured items that were not discovered. They stay in
	// the document.
	Missing []brew.Item
}

// now is the clock used for GeneratedAt.
var now = time.Now

// Merge returns a copy of doc with every discovered item that is not yet
// configured appended to its section, enabled according to defaultEnabled.
// Existing entries keep their flag and position and are never removed.
// New entries within a section are appended in name order.
func Merge(doc *Document, formulae, casks []string, defaultEnabled bool) (*Document, MergeReport) {
	merged := doc.Clone()
	merged.GeneratedAt = now().UTC().Truncate(time.Second)

	var report MergeReport
	for _, kind := range []brew.Kind{brew.Formula, brew.Cask} {
		discovered := formulae
		if kind == brew.Cask {
			discovered = casks
		}

		names := append([]string(nil), discovered...)
		sort.Strings(names)

		seen := make(map[string]bool, len(names))
		for _, name := range names {
			if !validName(name) {
				continue
			}
			seen[name] = true
			item := brew.Item{Name: name, Kind: kind}
			if merged.add(Entry{Item: item, Enabled: defaultEnabled}) {
				report.Added = append(report.Added, item)
			}
		}

		for _, e := range doc.Section(kind) {
			if !seen[e.Item.Name] {
				report.Missing = append(report.Missing, e.Item)
			}
		}
	}

	return merged, report
}

// validName rejects names the document format cannot represent.
func validName(name string) bool {
	return name != "" && strings.IndexFunc(name, unicode.IsSpace) < 0
}
