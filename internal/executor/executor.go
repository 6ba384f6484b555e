package executor

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"github.com/gubarz/docmd/internal/config"
	"github.com/gubarz/docmd/internal/parser"
)

// ErrNoClipboard is returned when no clipboard tool is installed
var ErrNoClipboard = errors.New("no clipboard tool found (wl-copy, xclip, xsel, pbcopy)")

// ErrNoCode is returned when a document has no code blocks to copy
var ErrNoCode = errors.New("no code blocks on this page")

// ============================================================================
// Clipboard Interface
// ============================================================================

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard implements Clipboard using system commands
type systemClipboard struct{}

// Copy copies text to the system clipboard
func (c *systemClipboard) Copy(text string) error {
	cmd := c.findClipboardCommand()
	if cmd == nil {
		return ErrNoClipboard
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// findClipboardCommand returns the appropriate clipboard command for the system
func (c *systemClipboard) findClipboardCommand() *exec.Cmd {
	switch {
	case commandExists("wl-copy"):
		return exec.Command("wl-copy")
	case commandExists("xclip"):
		return exec.Command("xclip", "-selection", "clipboard")
	case commandExists("xsel"):
		return exec.Command("xsel", "--clipboard", "--input")
	case commandExists("pbcopy"):
		return exec.Command("pbcopy")
	default:
		return nil
	}
}

// commandExists checks if a command is available in PATH
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ============================================================================
// Executor
// ============================================================================

// Executor runs the external tools the browser hands off to
type Executor struct {
	editor    string
	clipboard Clipboard
	start     func(cmd *exec.Cmd) error
}

// NewExecutor creates an executor using the configured editor
func NewExecutor() *Executor {
	return &Executor{
		editor:    config.GetEditor(),
		clipboard: &systemClipboard{},
		start:     (*exec.Cmd).Start,
	}
}

// WithEditor overrides the configured editor command
func (e *Executor) WithEditor(editor string) *Executor {
	e.editor = editor
	return e
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (e *Executor) WithClipboard(c Clipboard) *Executor {
	e.clipboard = c
	return e
}

// ============================================================================
// Code Blocks
// ============================================================================

// CodeText joins the code blocks of a document, separated by a blank line
func CodeText(blocks []parser.Block) string {
	var parts []string
	for _, b := range blocks {
		if b.Kind == parser.BlockCode {
			parts = append(parts, strings.TrimRight(b.Code, "\n"))
		}
	}
	return strings.Join(parts, "\n\n")
}

// CopyCode copies every code block of a document to the clipboard
func (e *Executor) CopyCode(blocks []parser.Block) error {
	text := CodeText(blocks)
	if text == "" {
		return ErrNoCode
	}
	return e.clipboard.Copy(text)
}

// ============================================================================
// Viewer
// ============================================================================

// EditorCommand returns the configured editor invoked on filePath. ok is
// false when no editor is configured. The caller must hand the terminal to
// the command and wait for it.
func (e *Executor) EditorCommand(filePath string) (cmd *exec.Cmd, ok bool) {
	fields := strings.Fields(e.editor)
	if len(fields) == 0 {
		return nil, false
	}
	return exec.Command(fields[0], append(fields[1:], filePath)...), true
}

// Open opens the file with the system default viewer.
// It does not wait for the viewer to exit.
func (e *Executor) Open(filePath string) error {
	return e.start(viewerCommand(filePath))
}

func viewerCommand(filePath string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", filePath)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", filePath)
	default: // linux, freebsd, etc.
		return exec.Command("xdg-open", filePath)
	}
}
