package selection

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/brew-update-helper/internal/plan"
)

var errNoTerminal = errors.New("interactive selection needs a terminal on stdin")

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	checkboxStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	nameStyle     = lipgloss.NewStyle().Bold(true)
	kindStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

// Picker is the full-screen checkbox list.
type Picker struct {
	In  *os.File
	Out io.Writer
}

// Select implements Strategy.
func (p *Picker) Select(candidates []plan.Candidate) (Result, error) {
	if p.In == nil {
		return Result{}, errNoTerminal
	}

	guard, err := acquireTerminal(p.In.Fd())
	if err != nil {
		return Result{}, err
	}
	defer guard.Release()

	program := tea.NewProgram(newPickerModel(candidates),
		tea.WithInput(p.In),
		tea.WithOutput(p.Out),
		tea.WithAltScreen(),
	)
	final, err := program.Run()
	if err != nil {
		return Result{}, fmt.Errorf("picker failed: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok {
		return Result{}, fmt.Errorf("picker returned unexpected model %T", final)
	}
	return m.result(), nil
}

// pickerModel is the bubbletea model behind Picker.
type pickerModel struct {
	candidates []plan.Candidate
	cursor     int
	done       bool
	aborted    bool
}

func newPickerModel(candidates []plan.Candidate) pickerModel {
	return pickerModel{candidates: withAll(candidates, true)}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.candidates)-1 {
			m.cursor++
		}
	case " ":
		m.candidates = append([]plan.Candidate(nil), m.candidates...)
		m.candidates[m.cursor].Selected = !m.candidates[m.cursor].Selected
	case "a":
		m.candidates = withAll(m.candidates, !m.allSelected())
	case "enter":
		m.done = true
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) allSelected() bool {
	for _, c := range m.candidates {
		if !c.Selected {
			return false
		}
	}
	return true
}

func (m pickerModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("Outdated packages found - select packages to upgrade"))
	sb.WriteString("\n\n")

	for i, c := range m.candidates {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("▸ ")
		}
		box := "[ ]"
		if c.Selected {
			box = "[x]"
		}
		pkg := c.Outdated
		sb.WriteString(fmt.Sprintf("%s%s %s %s %s → %s\n",
			prefix,
			checkboxStyle.Render(box),
			nameStyle.Render(pkg.Name),
			kindStyle.Render("("+kindLabel(pkg.Kind.String())+")"),
			pkg.CurrentVersion,
			pkg.AvailableVersion,
		))
	}

	sb.WriteString("\n")
	sb.WriteString(faintStyle.Render("  [↑↓] Navigate  [Space] Toggle  [a] All  [Enter] Upgrade  [q] Quit"))
	sb.WriteString("\n")
	return sb.String()
}

// result converts the final model into a Result. An aborted picker selects
// nothing.
func (m pickerModel) result() Result {
	if m.aborted {
		return Result{Candidates: withAll(m.candidates, false), Aborted: true}
	}
	return Result{Candidates: m.candidates}
}
