package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/brew-update-helper/internal/brew"
	"github.com/blackwell-systems/brew-update-helper/internal/prefs"
)

func TestBuildStatus(t *testing.T) {
	doc, _ := prefs.Parse(`## Formulae
- [x] git
- [ ] node
- [x] removed-tool

## Casks
- [x] docker
`)
	inv := inventory{
		formulae: []string{"git", "node", "wget"},
		casks:    []string{"docker", "firefox"},
	}
	outdated := []brew.OutdatedPackage{
		{Name: "git", Kind: brew.Formula, CurrentVersion: "1", AvailableVersion: "2"},
		{Name: "node", Kind: brew.Formula, CurrentVersion: "1", AvailableVersion: "2"},
		{Name: "firefox", Kind: brew.Cask, CurrentVersion: "1", AvailableVersion: "2"},
	}

	r := buildStatus(inv, doc, outdated)

	assert.Equal(t, kindStats{Installed: 3, Enabled: 1, Disabled: 1, Unconfigured: 1, Outdated: 2, Candidates: 1}, r.Formulae)
	assert.Equal(t, kindStats{Installed: 2, Enabled: 1, Unconfigured: 1, Outdated: 1}, r.Casks)
	assert.Equal(t, 1, r.NotInstalled)
}

func TestStatusCommand(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "", "dump")
	h.manager.Formulae = []string{"git", "node", "wget"}

	out := h.mustRun(t, "", "status")

	assert.Contains(t, out, "3 installed · 2 enabled · 0 disabled · 1 not in settings")
	assert.Contains(t, out, "3 installed · 3 enabled · 0 disabled")
	assert.Contains(t, out, "1 formulae, 1 casks (2 enabled for upgrade)")
	assert.Contains(t, out, "1 configured package is no longer installed")
	assert.Contains(t, out, "Homebrew 4.1.5")
	assert.Contains(t, out, "/opt/homebrew")
	assert.Contains(t, out, "macOS 14.5")
	assert.Contains(t, out, "Apple Silicon")
	assert.Contains(t, out, h.docPath)
	assert.Contains(t, out, "Last upgrade:")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "Watcher:")
	assert.Contains(t, out, "stopped")
}

func TestStatusWithoutSettings(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(t, "", "status")

	assert.Contains(t, out, "missing, run 'brew-update-helper dump'")
	assert.Contains(t, out, "3 installed · 0 enabled · 0 disabled · 3 not in settings")
}

func TestStatusShowsLastRun(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "", "dump")
	h.manager.Failures["docker"] = "checksum mismatch"
	h.mustRun(t, "", "upgrade", "--yes")

	out := h.mustRun(t, "", "status")

	assert.Contains(t, out, "1 upgraded, 1 failed")
}
