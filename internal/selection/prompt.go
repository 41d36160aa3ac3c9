package selection

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/brew-update-helper/internal/plan"
)

// Prompt lists the candidates and asks a single yes/no question.
// Yes selects everything, anything else selects nothing.
type Prompt struct {
	In        io.Reader
	Out       io.Writer
	AssumeYes bool
}

// Select implements Strategy.
func (p *Prompt) Select(candidates []plan.Candidate) (Result, error) {
	fmt.Fprintln(p.Out, "\nOutdated packages found:")
	for i, c := range candidates {
		pkg := c.Outdated
		fmt.Fprintf(p.Out, "%d. [x] %s (%s) %s → %s\n",
			i+1, pkg.Name, kindLabel(pkg.Kind.String()), pkg.CurrentVersion, pkg.AvailableVersion)
	}

	fmt.Fprintln(p.Out, "\nAll packages are selected by default.")
	fmt.Fprintf(p.Out, "Do you want to proceed with upgrading all %d packages? [y/N]: ", len(candidates))

	if p.AssumeYes {
		fmt.Fprintln(p.Out, "y")
		return Result{Candidates: withAll(candidates, true)}, nil
	}

	reader := bufio.NewReader(p.In)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return Result{Candidates: withAll(candidates, strings.HasPrefix(response, "y"))}, nil
}

// kindLabel capitalises a kind name for display.
func kindLabel(kind string) string {
	if kind == "" {
		return kind
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}
