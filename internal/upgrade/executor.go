// Package upgrade runs the selected upgrades one at a time and records what
// happened to each.
package upgrade

import (
	"time"

	"github.com/blackwell-systems/brew-update-helper/internal/brew"
	"github.com/blackwell-systems/brew-update-helper/internal/logging"
)

// Outcome is the result of one attempted (or simulated) upgrade.
type Outcome struct {
	Package  brew.OutdatedPackage
	Success  bool
	DryRun   bool
	Detail   string
	Duration time.Duration
}

// Executor performs upgrades through a Manager.
type Executor struct {
	Manager brew.Manager

	// OnStart and OnDone are optional progress hooks.
	OnStart func(index, total int, pkg brew.OutdatedPackage)
	OnDone  func(index, total int, outcome Outcome)
}

// NewExecutor returns an executor for m.
func NewExecutor(m brew.Manager) *Executor {
	return &Executor{Manager: m}
}

// Execute upgrades selected in order. A failure is recorded in its outcome
// and does not stop the batch. In dry-run mode the manager is never called
// and every outcome is a successful would-upgrade.
func (e *Executor) Execute(selected []brew.OutdatedPackage, dryRun bool) []Outcome {
	logger := logging.GetLogger("upgrade")
	outcomes := make([]Outcome, 0, len(selected))

	for i, pkg := range selected {
		if e.OnStart != nil {
			e.OnStart(i, len(selected), pkg)
		}

		outcome := Outcome{Package: pkg, DryRun: dryRun}
		if dryRun {
			outcome.Success = true
			outcome.Detail = "dry run"
		} else {
			start := time.Now()
			err := e.Manager.Upgrade(pkg)
			outcome.Duration = time.Since(start)
			if err != nil {
				outcome.Detail = err.Error()
				logger.Debug().Err(err).Str("package", pkg.Name).Msg("Upgrade failed")
			} else {
				outcome.Success = true
				logger.Debug().Str("package", pkg.Name).Dur("duration", outcome.Duration).Msg("Upgraded")
			}
		}

		outcomes = append(outcomes, outcome)
		if e.OnDone != nil {
			e.OnDone(i, len(selected), outcome)
		}
	}

	return outcomes
}
