package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Render serializes doc deterministically in document order.
func Render(doc *Document) string {
	var sb strings.Builder

	sb.WriteString(documentTitle + "\n\n")
	sb.WriteString(fmt.Sprintf("%s %s\n\n", generatedPrefix, doc.GeneratedAt.UTC().Format(timestampLayout)))

	sb.WriteString(formulaeHeader + "\n\n")
	writeEntries(&sb, doc.Formulae)

	sb.WriteString("\n" + casksHeader + "\n\n")
	writeEntries(&sb, doc.Casks)

	return sb.String()
}

func writeEntries(sb *strings.Builder, entries []Entry) {
	for _, e := range entries {
		checkbox := "[ ]"
		if e.Enabled {
			checkbox = "[x]"
		}
		sb.WriteString(fmt.Sprintf("- %s %s\n", checkbox, e.Item.Name))
	}
}

// Save writes doc to path, creating the parent directory. The file is
// written to a temporary sibling and renamed into place so a failed write
// never truncates the user's settings.
func Save(doc *Document, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create %s: %w", ErrDocumentIO, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.md")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file in %s: %w", ErrDocumentIO, dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(Render(doc)); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: failed to write %s: %w", ErrDocumentIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: failed to write %s: %w", ErrDocumentIO, path, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: failed to set permissions on %s: %w", ErrDocumentIO, path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: failed to replace %s: %w", ErrDocumentIO, path, err)
	}

	return nil
}
