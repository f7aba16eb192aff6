// Package tui is an interactive console preview of the scoreboard: a
// bubbletea program that displays whatever frame the scheduler most
// recently presented through a channel render target. It exists for
// developing modes and sources away from the hardware panel.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
)

var (
	tuiBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Padding(0, 2)

	tuiTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	tuiScoreStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	tuiStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24"))
	tuiDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	tuiLeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399"))
	tuiNoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	tuiFooterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// frameMsg delivers the next frame from the scheduler's channel target.
type frameMsg board.Frame

// ModeFunc reports the scheduler's active mode and rotation position for
// the footer.
type ModeFunc func() (string, int)

// Model is the bubbletea model for the preview.
type Model struct {
	frames <-chan board.Frame
	mode   ModeFunc

	frame  board.Frame
	width  int
	height int
}

// NewModel creates a preview model reading frames from the given channel.
func NewModel(frames <-chan board.Frame, mode ModeFunc) Model {
	return Model{frames: frames, mode: mode}
}

// Init starts listening for frames.
func (m Model) Init() tea.Cmd {
	return m.waitForFrame()
}

// waitForFrame blocks on the frame channel and delivers the next frame as
// a message.
func (m Model) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		return frameMsg(<-m.frames)
	}
}

// Update handles frames, resizes, and quit keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = board.Frame(msg)
		return m, m.waitForFrame()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the current frame in a bordered box with a footer showing
// the active mode and rotation position.
func (m Model) View() string {
	if m.frame.Source == "" {
		return tuiDetailStyle.Render("waiting for first frame...")
	}

	var b strings.Builder
	b.WriteString(tuiTitleStyle.Render(strings.ToUpper(m.frame.Source)))
	b.WriteByte('\n')
	for _, line := range m.frame.Lines {
		b.WriteString(styleFor(line.Role).Render(line.Text))
		b.WriteByte('\n')
	}

	box := tuiBoxStyle.Render(strings.TrimRight(b.String(), "\n"))

	footer := "q:quit"
	if m.mode != nil {
		mode, pos := m.mode()
		footer = fmt.Sprintf("mode:%s  pos:%d  %s", mode, pos, footer)
	}
	return box + "\n" + tuiFooterStyle.Render(footer)
}

func styleFor(role board.Role) lipgloss.Style {
	switch role {
	case board.RoleScore:
		return tuiScoreStyle
	case board.RoleStatus:
		return tuiStatusStyle
	case board.RoleLeader:
		return tuiLeaderStyle
	case board.RoleNotice:
		return tuiNoticeStyle
	default:
		return tuiDetailStyle
	}
}
