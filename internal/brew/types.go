package brew

import (
	"fmt"
	"strings"
)

// Kind distinguishes Homebrew formulae from casks.
type Kind int

const (
	Formula Kind = iota
	Cask
)

// String returns the human-readable kind name.
func (k Kind) String() string {
	switch k {
	case Formula:
		return "formula"
	case Cask:
		return "cask"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts "formula"/"cask" (any case, plural accepted) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "formula", "formulae":
		return Formula, nil
	case "cask", "casks":
		return Cask, nil
	default:
		return 0, fmt.Errorf("unknown package kind %q", s)
	}
}

// Item identifies an installed package. Names are unique within a kind.
type Item struct {
	Name string
	Kind Kind
}

// OutdatedPackage is one line of the outdated report.
type OutdatedPackage struct {
	Name             string
	Kind             Kind
	CurrentVersion   string
	AvailableVersion string
}

// Item returns the (name, kind) identity of the package.
func (p OutdatedPackage) Item() Item {
	return Item{Name: p.Name, Kind: p.Kind}
}

// SystemInfo describes the host Homebrew runs on.
type SystemInfo struct {
	OSVersion    string
	Architecture string
	Prefix       string
}
