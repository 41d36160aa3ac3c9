// Package selection turns upgrade candidates into the set that will actually
// be executed, either through a full-screen picker or a yes/no prompt.
package selection

import (
	"io"
	"os"

	"github.com/blackwell-systems/brew-update-helper/internal/brew"
	"github.com/blackwell-systems/brew-update-helper/internal/capability"
	"github.com/blackwell-systems/brew-update-helper/internal/logging"
	"github.com/blackwell-systems/brew-update-helper/internal/plan"
)

// Result is the outcome of a selection session.
type Result struct {
	// Candidates echoes the input with the user's Selected flags applied.
	Candidates []plan.Candidate
	// NothingToUpgrade is set when there were no candidates at all.
	NothingToUpgrade bool
	// Aborted is set when the user quit the picker.
	Aborted bool
}

// Selected returns the packages the user chose, in candidate order.
func (r Result) Selected() []brew.OutdatedPackage {
	return plan.SelectedPackages(r.Candidates)
}

// Strategy asks the user which candidates to upgrade.
type Strategy interface {
	Select(candidates []plan.Candidate) (Result, error)
}

// Session picks a strategy and runs it.
type Session struct {
	Interactive Strategy
	Fallback    Strategy
	// UseInteractive selects Interactive; when false only Fallback runs.
	UseInteractive bool
}

// NewSession builds a session for the detected capabilities. The picker is
// only offered when in is a file. With assumeYes the prompt answers itself
// and the picker is never shown.
func NewSession(caps capability.Capabilities, in io.Reader, out io.Writer, assumeYes bool) *Session {
	file, isFile := in.(*os.File)
	return &Session{
		Interactive:    &Picker{In: file, Out: out},
		Fallback:       &Prompt{In: in, Out: out, AssumeYes: assumeYes},
		UseInteractive: caps.Interactive && isFile && file != nil && !assumeYes,
	}
}

// Select runs the session. Empty input returns immediately without asking.
// If the picker cannot start, the prompt is used instead.
func (s *Session) Select(candidates []plan.Candidate) (Result, error) {
	if len(candidates) == 0 {
		return Result{NothingToUpgrade: true}, nil
	}

	if s.UseInteractive && s.Interactive != nil {
		result, err := s.Interactive.Select(candidates)
		if err == nil {
			return result, nil
		}
		logger := logging.GetLogger("selection")
		logger.Warn().Err(err).Msg("Interactive selection failed, falling back to prompt")
	}

	return s.Fallback.Select(candidates)
}

// withAll returns a copy of candidates with every Selected flag set to v.
func withAll(candidates []plan.Candidate, v bool) []plan.Candidate {
	out := make([]plan.Candidate, len(candidates))
	for i, c := range candidates {
		c.Selected = v
		out[i] = c
	}
	return out
}
