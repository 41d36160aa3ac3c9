// Package runlog appends upgrade runs to a JSON-lines log file.
//
// Each run writes a start record, one record per outcome and a finish
// record. The file is only ever appended to.
package runlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/blackwell-systems/brew-update-helper/internal/upgrade"
)

// Log writes run records.
type Log struct {
	closer io.Closer
	logger zerolog.Logger
}

// Open opens path for appending, creating it and its parent directories.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := New(file)
	l.closer = file
	return l, nil
}

// New returns a Log writing to w.
func New(w io.Writer) *Log {
	return &Log{logger: zerolog.New(w).With().Timestamp().Logger()}
}

// RunStarted records the start of a run over count selected packages.
func (l *Log) RunStarted(count int) {
	l.logger.Info().
		Str("event", "run_start").
		Int("packages", count).
		Msgf("Starting upgrade of %d packages", count)
}

// Outcome records the result of one package.
func (l *Log) Outcome(o upgrade.Outcome) {
	var event *zerolog.Event
	if o.Success {
		event = l.logger.Info()
	} else {
		event = l.logger.Error().Str("error", o.Detail)
	}

	status := "SUCCESS"
	if !o.Success {
		status = "FAILED"
	}

	event.
		Str("event", "outcome").
		Str("name", o.Package.Name).
		Str("kind", o.Package.Kind.String()).
		Str("from", o.Package.CurrentVersion).
		Str("to", o.Package.AvailableVersion).
		Bool("success", o.Success).
		Dur("duration", o.Duration).
		Msgf("%s: %s %s → %s", status, o.Package.Name, o.Package.CurrentVersion, o.Package.AvailableVersion)
}

// RunFinished records the summary of a run. A run with failures is logged
// at warn level and lists the failed packages.
func (l *Log) RunFinished(s upgrade.Summary, outcomes []upgrade.Outcome) {
	var event *zerolog.Event
	if !s.HasFailures() {
		event = l.logger.Info()
	} else {
		failed := upgrade.Failures(outcomes)
		names := make([]string, len(failed))
		for i, o := range failed {
			names[i] = o.Package.Name
		}
		event = l.logger.Warn().Strs("failed_packages", names)
	}

	event.
		Str("event", "run_end").
		Int("upgraded", s.Upgraded).
		Int("failed", s.Failed).
		Int("skipped", s.Skipped).
		Msgf("Upgrade session completed: %s", s)
}

// Close closes the underlying file, if any.
func (l *Log) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
