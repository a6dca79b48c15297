package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/glxwin/internal/ipc"
)

// Controller is the presenter control surface the panel drives.
// *ipc.Client implements it.
type Controller interface {
	GetStatus() (*ipc.StatusData, error)
	SetVSync(interval int) error
	Show() error
	Hide() error
	SetTitle(title string) error
}

var _ Controller = (*ipc.Client)(nil)

// Run opens the interactive control panel and blocks until the user quits.
func Run(ctrl Controller) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
