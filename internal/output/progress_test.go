package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBarNonTTY(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(buf, 2)

	p.Describe("Upgrading git")
	p.Increment()
	p.Describe("Upgrading docker")
	p.Increment()
	p.Finish()

	want := "[1/2] Upgrading git\n[2/2] Upgrading docker\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestProgressBarDoesNotOvershoot(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(buf, 1)
	p.Increment()
	p.Increment()
	if p.current != 1 {
		t.Errorf("current = %d, want 1", p.current)
	}
	p.Describe("late")
	if strings.Contains(buf.String(), "late") {
		t.Error("descriptions after completion should not print")
	}
}

func TestSpinnerNonTTY(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Checking for outdated packages")
	s.SetWriter(buf)

	s.Start()
	s.Start()
	s.Stop()
	s.Stop()

	if got := buf.String(); got != "Checking for outdated packages...\n" {
		t.Errorf("output = %q", got)
	}
}

func TestSpinnerRestartAfterStop(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Checking for outdated packages")
	s.SetWriter(buf)

	s.Start()
	s.Stop()
	s.Start()
	s.Stop()

	want := "Checking for outdated packages...\nChecking for outdated packages...\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := NewSpinner("idle")
	s.SetWriter(&bytes.Buffer{})
	s.Stop()
}

func TestWriterIsTTY(t *testing.T) {
	if writerIsTTY(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}

func TestPreviewNonTTYWritesRaw(t *testing.T) {
	buf := &bytes.Buffer{}
	content := "# Brew Auto-Update Settings\n\n## Formulae\n\n- [x] git\n"
	Preview(buf, content)
	if buf.String() != content {
		t.Errorf("Preview() = %q, want raw content", buf.String())
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("## Formulae\n\n- [x] git\n", 40)
	if !strings.Contains(out, "git") {
		t.Errorf("RenderMarkdown() lost content: %q", out)
	}
}

func TestMessageHelpers(t *testing.T) {
	buf := &bytes.Buffer{}
	Successf(buf, "upgraded %s", "git")
	Failuref(buf, "failed %s", "node")
	Warningf(buf, "%d new", 2)
	Infof(buf, "checking")

	want := "✓ upgraded git\n✗ failed node\n⚠ 2 new\n→ checking\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
