package ui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/docmd/internal/config"
)

// getTTY returns file handles for TUI input/output
// Uses /dev/tty when stdout is piped or captured
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	if fileInfo, err := os.Stdout.Stat(); err == nil && fileInfo.Mode()&os.ModeCharDevice != 0 {
		return os.Stdin, os.Stdout, func() {}
	}

	var closers []func()

	out, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		out = os.Stderr // Last resort fallback
	} else {
		closers = append(closers, func() { out.Close() })
	}

	in, err = os.OpenFile("/dev/tty", os.O_RDONLY, 0)
	if err != nil {
		in = os.Stdin
	} else {
		closers = append(closers, func() { in.Close() })
	}

	// Tell lipgloss to use the TTY for color detection
	lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out))

	return in, out, func() {
		for _, c := range closers {
			c()
		}
	}
}

// Run launches the documentation browser and blocks until the user quits
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("no content store")
	}

	ttyIn, ttyOut, cleanup := getTTY()
	defer cleanup()
	RefreshStyles(config.GetTheme()) // Refresh after getTTY sets up the renderer

	m := newModel(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(ttyOut),
		tea.WithInput(ttyIn),
		tea.WithContext(m.ctx),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
