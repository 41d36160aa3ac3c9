package brew

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/blackwell-systems/brew-update-helper/internal/logging"
)

// osReleasePath is read for the distribution name on Linux.
var osReleasePath = "/etc/os-release"

// SystemManager runs the real brew executable.
type SystemManager struct {
	binary      string
	greedyCasks bool
}

// NewSystemManager returns a Manager backed by the brew executable. An empty
// binary means "brew" looked up on PATH. greedyCasks adds --greedy to the
// cask outdated query so auto-updating casks are reported too.
func NewSystemManager(binary string, greedyCasks bool) *SystemManager {
	if binary == "" {
		binary = "brew"
	}
	return &SystemManager{binary: binary, greedyCasks: greedyCasks}
}

// output runs brew with args and returns stdout.
func (m *SystemManager) output(args ...string) ([]byte, error) {
	logging.LogCommand(m.binary, args)
	cmd := exec.Command(m.binary, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("brew %s failed: %w (stderr: %s)",
				strings.Join(args, " "), err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("brew %s failed: %w", strings.Join(args, " "), err)
	}
	return output, nil
}

// Verify checks that brew is on PATH and answers --version.
func (m *SystemManager) Verify() error {
	if _, err := exec.LookPath(m.binary); err != nil {
		return fmt.Errorf("%w: %v", ErrManagerUnavailable, err)
	}
	if _, err := m.output("--version"); err != nil {
		return fmt.Errorf("%w: %v", ErrManagerUnavailable, err)
	}
	return nil
}

// ListInstalledFormulae returns formulae the user installed explicitly.
func (m *SystemManager) ListInstalledFormulae() ([]string, error) {
	output, err := m.output("leaves", "--installed-on-request")
	if err != nil {
		return nil, fmt.Errorf("failed to list installed formulae: %w", err)
	}
	return parseNameList(string(output)), nil
}

// ListInstalledCasks returns every installed cask.
func (m *SystemManager) ListInstalledCasks() ([]string, error) {
	output, err := m.output("list", "--cask")
	if err != nil {
		return nil, fmt.Errorf("failed to list installed casks: %w", err)
	}
	return parseNameList(string(output)), nil
}

// ListOutdated queries formulae first, then casks.
func (m *SystemManager) ListOutdated() ([]OutdatedPackage, error) {
	formulae, err := m.output("outdated", "--formula", "--verbose")
	if err != nil {
		return nil, fmt.Errorf("failed to list outdated formulae: %w", err)
	}

	caskArgs := []string{"outdated", "--cask", "--verbose"}
	if m.greedyCasks {
		caskArgs = append(caskArgs, "--greedy")
	}
	casks, err := m.output(caskArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list outdated casks: %w", err)
	}

	outdated := ParseOutdatedReport(string(formulae), Formula)
	outdated = append(outdated, ParseOutdatedReport(string(casks), Cask)...)
	return outdated, nil
}

// Version returns the first line of `brew --version`.
func (m *SystemManager) Version() (string, error) {
	output, err := m.output("--version")
	if err != nil {
		return "", err
	}
	lines := parseNameList(string(output))
	if len(lines) == 0 {
		return "Unknown version", nil
	}
	return lines[0], nil
}

// Prefix returns the Homebrew installation prefix.
func (m *SystemManager) Prefix() (string, error) {
	output, err := m.output("--prefix")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// SystemInfo never fails; unknown fields are reported as "Unknown".
func (m *SystemManager) SystemInfo() SystemInfo {
	info := SystemInfo{
		OSVersion:    "Unknown OS",
		Architecture: architectureName(runtime.GOARCH),
		Prefix:       "Unknown",
	}

	if prefix, err := m.Prefix(); err == nil && prefix != "" {
		info.Prefix = prefix
	}

	switch runtime.GOOS {
	case "darwin":
		info.OSVersion = "macOS Unknown"
		if out, err := exec.Command("sw_vers", "-productVersion").Output(); err == nil {
			info.OSVersion = "macOS " + strings.TrimSpace(string(out))
		}
	case "linux":
		info.OSVersion = linuxVersion(osReleasePath)
	}

	return info
}

// linuxVersion returns PRETTY_NAME from an os-release file, or "Linux".
func linuxVersion(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "Linux"
	}
	if name, ok := prettyName(string(data)); ok {
		return name
	}
	return "Linux"
}

// prettyName extracts the PRETTY_NAME value from os-release content.
func prettyName(content string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "PRETTY_NAME=") {
			continue
		}
		name := strings.Trim(strings.TrimPrefix(line, "PRETTY_NAME="), `"'`)
		if name == "" {
			return "", false
		}
		return name, true
	}
	return "", false
}

// architectureName maps GOARCH to the names Homebrew users know.
func architectureName(goarch string) string {
	switch goarch {
	case "arm64":
		return "Apple Silicon"
	case "amd64":
		return "Intel"
	default:
		return goarch
	}
}
