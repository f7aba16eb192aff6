package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
)

// Styles per line role, used only when the output is a color-capable TTY.
var (
	consoleScoreStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	consoleStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24"))
	consoleDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	consoleLeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399"))
	consoleNoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	consoleRuleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Console writes a textual representation of each frame to an io.Writer.
// It has no failure mode: a write error is dropped because there is nothing
// useful the scheduler could do about a broken stdout.
type Console struct {
	w      io.Writer
	styled bool
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithStyled forces styling on or off, overriding TTY detection.
func WithStyled(styled bool) ConsoleOption {
	return func(c *Console) { c.styled = styled }
}

// NewConsole creates a console target writing to w. Styling is enabled when
// w is a color-capable terminal.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{w: w}
	if f, ok := w.(*os.File); ok {
		c.styled = isatty.IsTerminal(f.Fd()) && termenv.EnvColorProfile() != termenv.Ascii
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns "console".
func (c *Console) Name() string { return "console" }

// Present writes the frame as a titled block of lines.
func (c *Console) Present(f board.Frame) error {
	var b strings.Builder

	title := fmt.Sprintf("── %s ── %s ──", strings.ToUpper(f.Source), f.CreatedAt.Format("15:04:05"))
	b.WriteString(c.style(title, consoleRuleStyle))
	b.WriteByte('\n')
	for _, line := range f.Lines {
		b.WriteString(c.style(line.Text, c.styleFor(line.Role)))
		b.WriteByte('\n')
	}

	fmt.Fprint(c.w, b.String())
	return nil
}

// Close is a no-op.
func (c *Console) Close() error { return nil }

func (c *Console) style(text string, s lipgloss.Style) string {
	if !c.styled {
		return text
	}
	return s.Render(text)
}

func (c *Console) styleFor(role board.Role) lipgloss.Style {
	switch role {
	case board.RoleScore:
		return consoleScoreStyle
	case board.RoleStatus:
		return consoleStatusStyle
	case board.RoleLeader:
		return consoleLeaderStyle
	case board.RoleNotice:
		return consoleNoticeStyle
	default:
		return consoleDetailStyle
	}
}
