package upgrade

import "fmt"

// Summary counts the outcomes of a run.
type Summary struct {
	Planned      int
	Upgraded     int
	Failed       int
	Skipped      int
	WouldUpgrade int
}

// Summarize compares the number of planned candidates with the outcomes
// of the run. Candidates without an outcome count as skipped.
func Summarize(planned int, outcomes []Outcome) Summary {
	s := Summary{Planned: planned}
	for _, o := range outcomes {
		switch {
		case o.DryRun:
			s.WouldUpgrade++
		case o.Success:
			s.Upgraded++
		default:
			s.Failed++
		}
	}
	if skipped := planned - len(outcomes); skipped > 0 {
		s.Skipped = skipped
	}
	return s
}

// HasFailures reports whether any upgrade failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

func (s Summary) String() string {
	if s.WouldUpgrade > 0 {
		return fmt.Sprintf("%d would upgrade, %d skipped", s.WouldUpgrade, s.Skipped)
	}
	return fmt.Sprintf("%d successful, %d failed, %d skipped", s.Upgraded, s.Failed, s.Skipped)
}

// Failures returns the failed outcomes.
func Failures(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if !o.DryRun && !o.Success {
			failed = append(failed, o)
		}
	}
	return failed
}
