// Package capability decides, once per process, how the tool talks to the
// user and to Homebrew. Nothing else reads the environment for that purpose.
package capability

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// FixtureEnv names a YAML file that replaces the real brew binary.
const FixtureEnv = "BREW_UPDATE_HELPER_FIXTURE"

// Capabilities describes the current runtime environment.
type Capabilities struct {
	// Interactive is true when the full-screen picker may be used.
	Interactive bool
	// Reason explains why Interactive is false.
	Reason string
	// FixturePath is set when package data comes from a fixture file.
	FixturePath string
}

// Detect inspects the process environment and standard streams.
func Detect() Capabilities {
	return detect(os.Getenv, isTerminal(os.Stdin), isTerminal(os.Stdout))
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func detect(getenv func(string) string, stdinTTY, stdoutTTY bool) Capabilities {
	caps := Capabilities{FixturePath: strings.TrimSpace(getenv(FixtureEnv))}

	switch {
	case !stdinTTY:
		caps.Reason = "stdin is not a terminal"
	case !stdoutTTY:
		caps.Reason = "stdout is not a terminal"
	case getenv("CI") != "" || getenv("GITHUB_ACTIONS") != "":
		caps.Reason = "running under CI"
	case strings.EqualFold(getenv("TERM"), "dumb"):
		caps.Reason = "TERM is dumb"
	default:
		caps.Interactive = true
	}
	return caps
}
