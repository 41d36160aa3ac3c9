package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestRenderFormat(t *testing.T) {
	doc := &Document{
		GeneratedAt: time.Date(2024, 8, 22, 10, 30, 0, 0, time.UTC),
		Formulae:    []Entry{formula("git", true), formula("node", false), formula("python", true)},
		Casks:       []Entry{cask("docker", false), cask("firefox", true)},
	}

	if got := Render(doc); got != sampleDocument {
		t.Errorf("Render() mismatch\ngot:\n%s\nwant:\n%s", got, sampleDocument)
	}
}

func TestRenderEmptySections(t *testing.T) {
	doc := &Document{GeneratedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	want := "# Brew Auto-Update Settings\n\nGenerated on: 2024-01-02 03:04:05 UTC\n\n## Formulae\n\n\n## Casks\n\n"
	if got := Render(doc); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderConvertsTimestampToUTC(t *testing.T) {
	loc := time.FixedZone("PDT", -7*3600)
	doc := &Document{GeneratedAt: time.Date(2024, 8, 22, 3, 30, 0, 0, loc)}
	want := "Generated on: 2024-08-22 10:30:00 UTC"
	if got := Render(doc); !contains(got, want) {
		t.Errorf("Render() = %q, want it to contain %q", got, want)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "settings.md")
	doc := &Document{
		GeneratedAt: time.Date(2024, 8, 22, 10, 30, 0, 0, time.UTC),
		Formulae:    []Entry{formula("git", true), formula("node", false)},
		Casks:       []Entry{cask("docker", true)},
	}

	if err := Save(doc, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded.GeneratedAt.Equal(doc.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", loaded.GeneratedAt, doc.GeneratedAt)
	}
	if !reflect.DeepEqual(loaded.Formulae, doc.Formulae) || !reflect.DeepEqual(loaded.Casks, doc.Casks) {
		t.Errorf("loaded = %+v, want %+v", loaded, doc)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}

	// No temp files are left behind.
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only settings.md in dir, found %d entries", len(entries))
	}
}

func TestMergedDocumentWithUnicodeSpacesRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.md")
	merged, _ := Merge(&Document{}, []string{"foo\u00a0bar", "baz\u2028qux", "git"}, []string{"ideo\u3000graphic"}, true)

	if err := Save(merged, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded.Formulae, merged.Formulae) || !reflect.DeepEqual(loaded.Casks, merged.Casks) {
		t.Errorf("loaded = %+v, want %+v", loaded, merged)
	}
	if !reflect.DeepEqual(merged.Formulae, []Entry{formula("git", true)}) || len(merged.Casks) != 0 {
		t.Errorf("names with whitespace should not be merged: %+v %+v", merged.Formulae, merged.Casks)
	}
}

func TestSaveOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.md")
	if err := os.WriteFile(path, []byte("old content"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Save(&Document{Formulae: []Entry{formula("git", true)}}, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if contains(string(data), "old content") {
		t.Error("Save() did not replace file contents")
	}
}

func TestSaveToUnwritableLocation(t *testing.T) {
	// A regular file where a parent directory is expected.
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	err := Save(&Document{}, filepath.Join(blocker, "settings.md"))
	if !errors.Is(err, ErrDocumentIO) {
		t.Errorf("Save() error = %v, want ErrDocumentIO", err)
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
