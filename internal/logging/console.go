package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/edakit/edakit/internal/models"
)

var (
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
)

var (
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleVerbose = lipgloss.NewStyle().Foreground(colorDim)
)

// Console writes log output to a terminal or plain writer.
type Console struct {
	mu        sync.Mutex
	w         io.Writer
	verbosity Verbosity
	styled    bool
}

// NewConsole creates a console logger. Styles are applied only when w is a
// terminal.
func NewConsole(w io.Writer, verbosity Verbosity) *Console {
	return &Console{
		w:         w,
		verbosity: verbosity,
		styled:    isTerminal(w),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Log writes a classified entry.
func (c *Console) Log(entry models.LogEntry) {
	line := entry.String()
	if c.styled {
		switch entry.Severity {
		case models.SeverityWarning:
			line = styleWarning.Render(line)
		case models.SeverityError:
			line = styleError.Render(line)
		}
	}
	c.writeLine(line)
}

// Normal writes a line that is always shown.
func (c *Console) Normal(format string, args ...any) {
	c.writeLine(fmt.Sprintf(format, args...))
}

// Verbose writes a diagnostic line when verbosity is at least Verbose.
func (c *Console) Verbose(format string, args ...any) {
	if c.verbosity < VerbosityVerbose {
		return
	}
	c.writeDim(fmt.Sprintf(format, args...))
}

// Debug writes a line when verbosity is Debug.
func (c *Console) Debug(format string, args ...any) {
	if c.verbosity < VerbosityDebug {
		return
	}
	c.writeDim(fmt.Sprintf(format, args...))
}

func (c *Console) writeDim(line string) {
	if c.styled {
		line = styleVerbose.Render(line)
	}
	c.writeLine(line)
}

func (c *Console) writeLine(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, line)
}
