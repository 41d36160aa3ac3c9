package output

import (
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	// Message colors
	Success = color.New(color.FgGreen)
	Warning = color.New(color.FgYellow)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)

	// Structural colors
	Header = color.New(color.Bold)
)

// IsColorEnabled returns true if colour should be emitted on stdout.
// It checks that os.Stdout is a TTY and that NO_COLOR is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return writerIsTTY(os.Stdout)
}

// SetupColor applies the --no-color decision to every palette entry.
func SetupColor(noColor bool) {
	color.NoColor = noColor || !IsColorEnabled()
}

// Successf prints a success line.
func Successf(w io.Writer, format string, args ...interface{}) {
	Success.Fprintf(w, "✓ "+format+"\n", args...)
}

// Failuref prints a failure line.
func Failuref(w io.Writer, format string, args ...interface{}) {
	Error.Fprintf(w, "✗ "+format+"\n", args...)
}

// Warningf prints a warning line.
func Warningf(w io.Writer, format string, args ...interface{}) {
	Warning.Fprintf(w, "⚠ "+format+"\n", args...)
}

// Infof prints an informational line.
func Infof(w io.Writer, format string, args ...interface{}) {
	Info.Fprintf(w, "→ "+format+"\n", args...)
}
