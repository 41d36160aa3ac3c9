// Package prefs owns the hand-editable settings document that records which
// Homebrew packages may be upgraded.
//
// The document is Markdown with one checkbox per package:
//
//	# Brew Auto-Update Settings
//
//	Generated on: 2024-08-22 10:30:00 UTC
//
//	## Formulae
//
//	- [x] git
//	- [ ] node
//
//	## Casks
//
//	- [x] docker
//
// The package is the only writer of that file.
package prefs

import (
	"errors"
	"time"

	"github.com/blackwell-systems/brew-update-helper/internal/brew"
)

// ErrDocumentIO is wrapped by every read or write failure on the document.
var ErrDocumentIO = errors.New("settings document I/O failed")

// Entry is one checkbox line.
type Entry struct {
	Item    brew.Item
	Enabled bool
}

// Document is the parsed settings file: two ordered sections and the time
// the file was last generated.
type Document struct {
	GeneratedAt time.Time
	Formulae    []Entry
	Casks       []Entry
}

// Section returns the entries for kind.
func (d *Document) Section(kind brew.Kind) []Entry {
	if kind == brew.Cask {
		return d.Casks
	}
	return d.Formulae
}

// Lookup finds the entry for item. Matching is exact on name and kind.
func (d *Document) Lookup(item brew.Item) (Entry, bool) {
	for _, e := range d.Section(item.Kind) {
		if e.Item.Name == item.Name {
			return e, true
		}
	}
	return Entry{}, false
}

// Known returns the set of every configured item, enabled or not.
func (d *Document) Known() map[brew.Item]bool {
	known := make(map[brew.Item]bool, d.Len())
	for _, e := range d.Formulae {
		known[e.Item] = true
	}
	for _, e := range d.Casks {
		known[e.Item] = true
	}
	return known
}

// Len returns the number of entries in both sections.
func (d *Document) Len() int {
	return len(d.Formulae) + len(d.Casks)
}

// EnabledCount returns how many entries are checked.
func (d *Document) EnabledCount() int {
	n := 0
	for _, e := range d.Formulae {
		if e.Enabled {
			n++
		}
	}
	for _, e := range d.Casks {
		if e.Enabled {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	return &Document{
		GeneratedAt: d.GeneratedAt,
		Formulae:    append([]Entry(nil), d.Formulae...),
		Casks:       append([]Entry(nil), d.Casks...),
	}
}

// add appends an entry to its section unless the name is already present.
// Reports whether the entry was added.
func (d *Document) add(e Entry) bool {
	if _, exists := d.Lookup(e.Item); exists {
		return false
	}
	if e.Item.Kind == brew.Cask {
		d.Casks = append(d.Casks, e)
	} else {
		d.Formulae = append(d.Formulae, e)
	}
	return true
}
