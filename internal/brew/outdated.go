package brew

import (
	"regexp"
	"strings"
)

// outdatedLine matches `brew outdated --verbose` output, e.g.
//
//	git (2.40.0) < 2.41.0
//	python@3.11 (3.11.3, 3.11.4) < 3.11.5 [pinned at 3.11.3]
//	visual-studio-code (1.79.0) != 1.80.0
var outdatedLine = regexp.MustCompile(`^(\S+)\s+\(([^)]*)\)\s+(<|!=)\s+(\S+)`)

// ParseOutdatedLine parses a single outdated report line. Formula lines use
// "<"; cask lines use "!=" (newer brew versions also print "<" for casks).
// Lines that do not match are reported with ok=false.
func ParseOutdatedLine(line string, kind Kind) (OutdatedPackage, bool) {
	m := outdatedLine.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return OutdatedPackage{}, false
	}

	if kind == Formula && m[3] != "<" {
		return OutdatedPackage{}, false
	}

	current := strings.TrimSpace(m[2])
	if current == "" {
		return OutdatedPackage{}, false
	}

	return OutdatedPackage{
		Name:             m[1],
		Kind:             kind,
		CurrentVersion:   current,
		AvailableVersion: m[4],
	}, true
}

// ParseOutdatedReport parses every line of an outdated report, skipping
// anything that is not an outdated entry.
func ParseOutdatedReport(output string, kind Kind) []OutdatedPackage {
	var pkgs []OutdatedPackage
	for _, line := range strings.Split(output, "\n") {
		if pkg, ok := ParseOutdatedLine(line, kind); ok {
			pkgs = append(pkgs, pkg)
		}
	}
	return pkgs
}

// parseNameList parses one-name-per-line output, dropping blanks.
func parseNameList(output string) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
