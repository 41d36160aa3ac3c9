package selection

import (
	"fmt"

	"github.com/charmbracelet/x/term"
)

// terminalGuard restores the terminal to the state it had when the guard was
// acquired. Release must be deferred immediately after acquireTerminal.
type terminalGuard struct {
	fd    uintptr
	state *term.State
}

func acquireTerminal(fd uintptr) (*terminalGuard, error) {
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("fd %d is not a terminal", fd)
	}
	state, err := term.GetState(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to save terminal state: %w", err)
	}
	return &terminalGuard{fd: fd, state: state}, nil
}

// Release restores the saved state. Safe to call more than once.
func (g *terminalGuard) Release() {
	if g == nil || g.state == nil {
		return
	}
	_ = term.Restore(g.fd, g.state)
	g.state = nil
}
