package prefs

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/blackwell-systems/brew-update-helper/internal/brew"
	"github.com/blackwell-systems/brew-update-helper/internal/logging"
)

const (
	documentTitle   = "# Brew Auto-Update Settings"
	generatedPrefix = "Generated on:"
	timestampLayout = "2006-01-02 15:04:05 UTC"
	formulaeHeader  = "## Formulae"
	casksHeader     = "## Casks"
)

// checkboxLine matches "- [x] name" and "- [ ] name" with loose spacing.
// The name group may be empty; such lines are skipped by the parser.
// Only the first word of the name group is used.
var checkboxLine = regexp.MustCompile(`^-\s*\[([ xX])\]\s*(.*)$`)

// section tracks which header the parser is under.
type section int

const (
	sectionNone section = iota
	sectionFormulae
	sectionCasks
	sectionOther
)

// Load reads the document at path. A missing file yields an empty document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrDocumentIO, path, err)
	}

	doc, skipped := Parse(string(data))
	if len(skipped) > 0 {
		logger := logging.GetLogger("prefs")
		logger.Debug().
			Str("path", path).
			Ints("lines", skipped).
			Msg("Ignored malformed settings lines")
	}
	return doc, nil
}

// Parse parses document content. It never fails: lines that look like
// checkboxes but carry no usable name are returned as 1-based line numbers
// in skipped, and every other unrecognised line is ignored.
func Parse(content string) (doc *Document, skipped []int) {
	doc = &Document{}
	current := sectionNone

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "##") && !strings.HasPrefix(line, "###") {
			current = parseHeader(line)
			continue
		}

		if strings.HasPrefix(line, generatedPrefix) {
			stamp := strings.TrimSpace(strings.TrimPrefix(line, generatedPrefix))
			if t, err := time.Parse(timestampLayout, stamp); err == nil {
				doc.GeneratedAt = t
			}
			continue
		}

		m := checkboxLine.FindStringSubmatch(line)
		if m == nil {
			if strings.HasPrefix(line, "- [") {
				skipped = append(skipped, i+1)
			}
			continue
		}

		// Anything after the first word is treated as a trailing note.
		fields := strings.Fields(m[2])
		if len(fields) == 0 {
			skipped = append(skipped, i+1)
			continue
		}
		name := fields[0]

		var kind brew.Kind
		switch current {
		case sectionNone, sectionFormulae:
			kind = brew.Formula
		case sectionCasks:
			kind = brew.Cask
		default:
			continue
		}

		// First occurrence wins on duplicates.
		doc.add(Entry{
			Item:    brew.Item{Name: name, Kind: kind},
			Enabled: m[1] != " ",
		})
	}

	return doc, skipped
}

// parseHeader classifies a "## ..." line, tolerating spacing and case.
func parseHeader(line string) section {
	title := strings.ToLower(strings.TrimSpace(strings.TrimLeft(line, "#")))
	switch title {
	case "formulae", "formula":
		return sectionFormulae
	case "casks", "cask":
		return sectionCasks
	default:
		return sectionOther
	}
}
