package history

import (
	"time"

	"github.com/blackwell-systems/brew-update-helper/internal/upgrade"
)

// Run is one recorded upgrade session.
type Run struct {
	ID         int64     `yaml:"id"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
	Planned    int       `yaml:"planned"`
	Upgraded   int       `yaml:"upgraded"`
	Failed     int       `yaml:"failed"`
	Skipped    int       `yaml:"skipped"`
	Outcomes   []Outcome `yaml:"outcomes,omitempty"`
}

// Outcome is one package result within a run.
type Outcome struct {
	Name        string        `yaml:"name"`
	Kind        string        `yaml:"kind"`
	FromVersion string        `yaml:"from"`
	ToVersion   string        `yaml:"to"`
	Success     bool          `yaml:"success"`
	Detail      string        `yaml:"detail,omitempty"`
	Duration    time.Duration `yaml:"duration"`
}

// NewRun builds a journal entry from executor outcomes. Dry-run outcomes are
// not journaled.
func NewRun(started, finished time.Time, planned int, outcomes []upgrade.Outcome) *Run {
	summary := upgrade.Summarize(planned, outcomes)
	run := &Run{
		StartedAt:  started.UTC(),
		FinishedAt: finished.UTC(),
		Planned:    summary.Planned,
		Upgraded:   summary.Upgraded,
		Failed:     summary.Failed,
		Skipped:    summary.Skipped,
	}
	for _, o := range outcomes {
		if o.DryRun {
			continue
		}
		run.Outcomes = append(run.Outcomes, Outcome{
			Name:        o.Package.Name,
			Kind:        o.Package.Kind.String(),
			FromVersion: o.Package.CurrentVersion,
			ToVersion:   o.Package.AvailableVersion,
			Success:     o.Success,
			Detail:      o.Detail,
			Duration:    o.Duration,
		})
	}
	return run
}

// FailedOutcomes returns the outcomes that did not succeed.
func (r *Run) FailedOutcomes() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.Success {
			failed = append(failed, o)
		}
	}
	return failed
}
