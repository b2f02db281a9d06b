package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"chatmorph/internal/clipboard"
	"chatmorph/internal/segview"
	"chatmorph/internal/textdiff"
)

// Revision is one old/new text pair to animate.
type Revision struct {
	Name    string
	OldText string
	NewText string
}

type startMsg struct{}

type clipboardResultMsg struct {
	err error
}

type alertTickMsg struct{}

// Model is the Bubble Tea state container for the app.
type Model struct {
	keys      KeyMap
	revisions []Revision
	current   int
	mode      textdiff.Mode
	opts      segview.Options

	seg  segview.Model
	view viewport.Model

	width    int
	height   int
	ready    bool
	helpOpen bool

	alertMsg   string
	alertUntil time.Time
}

func NewModel(revisions []Revision, mode textdiff.Mode, opts segview.Options) Model {
	if len(revisions) == 0 {
		revisions = []Revision{{Name: "empty"}}
	}
	m := Model{
		keys:      defaultKeyMap(),
		revisions: revisions,
		mode:      mode,
		opts:      opts,
	}
	m.view = viewport.New(1, 1)
	m.seg = segview.New(m.computeSegments(), opts)
	return m
}

func (m Model) computeSegments() []textdiff.Segment {
	rev := m.revisions[m.current]
	return textdiff.Compute(rev.OldText, rev.NewText, m.mode)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(startCmd, alertTickCmd())
}

func startCmd() tea.Msg {
	return startMsg{}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.update(msg)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.view.Width = max(1, m.width)
		m.view.Height = max(1, m.height-3)
		m.refreshContent()
		return m, nil

	case startMsg:
		var cmd tea.Cmd
		m.seg, cmd = m.seg.Start(time.Now())
		m.refreshContent()
		return m, cmd

	case clipboardResultMsg:
		if msg.err != nil {
			m.setAlert(fmt.Sprintf("copy failed: %v", msg.err))
		} else {
			m.setAlert("Copied revised text to clipboard.")
		}
		return m, nil

	case alertTickMsg:
		if m.alertMsg != "" && !m.alertUntil.IsZero() && time.Now().After(m.alertUntil) {
			m.alertMsg = ""
			m.alertUntil = time.Time{}
		}
		return m, alertTickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Everything else is animation traffic for the segment view.
	var cmd tea.Cmd
	m.seg, cmd = m.seg.Update(msg)
	m.refreshContent()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpOpen = !m.helpOpen
		return m, nil

	case key.Matches(msg, m.keys.Replay):
		return m.restart()

	case key.Matches(msg, m.keys.ToggleMode):
		if m.mode == textdiff.Words {
			m.mode = textdiff.Chars
		} else {
			m.mode = textdiff.Words
		}
		return m.restart()

	case key.Matches(msg, m.keys.ToggleAnimate):
		m.opts.Animate = !m.opts.Animate
		return m.restart()

	case key.Matches(msg, m.keys.ToggleRemoved):
		m.opts.ShowRemoved = !m.opts.ShowRemoved
		return m.restart()

	case key.Matches(msg, m.keys.Copy):
		text := m.revisions[m.current].NewText
		return m, copyRevisedCmd(text)

	case key.Matches(msg, m.keys.Next):
		m.current = (m.current + 1) % len(m.revisions)
		return m.restart()

	case key.Matches(msg, m.keys.Prev):
		m.current = (m.current - 1 + len(m.revisions)) % len(m.revisions)
		return m.restart()

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}
	return m, nil
}

// restart recomputes the diff for the current revision and begins a fresh
// animation pass. The previous pass's animators are stopped first so their
// in-flight frames cannot retire segments of the new diff.
func (m Model) restart() (Model, tea.Cmd) {
	m.seg = m.seg.Stop()
	m.seg = segview.New(m.computeSegments(), m.opts)
	m.refreshContent()
	return m, startCmd
}

func (m *Model) refreshContent() {
	content := m.seg.View()
	if m.view.Width > 1 {
		content = ansi.Wrap(content, m.view.Width, "")
	}
	m.view.SetContent(content)
}

func copyRevisedCmd(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return clipboardResultMsg{err: clipboard.CopyText(ctx, text)}
	}
}

func alertTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return alertTickMsg{}
	})
}

func (m *Model) setAlert(msg string) {
	m.alertMsg = msg
	m.alertUntil = time.Now().Add(3 * time.Second)
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	if m.helpOpen {
		return b.String() + "\n" + m.renderHelp()
	}
	return b.String()
}

func (m Model) renderHeader() string {
	rev := m.revisions[m.current]
	name := rev.Name
	if name == "" {
		name = "(untitled)"
	}
	title := fmt.Sprintf(" %s — %s", name, m.mode)
	if len(m.revisions) > 1 {
		title += fmt.Sprintf(" [%d/%d]", m.current+1, len(m.revisions))
	}
	if !m.opts.Animate {
		title += " static"
	}
	if !m.opts.ShowRemoved {
		title += " no-removed"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("63")).
		Width(max(1, m.width)).
		Render(ansi.Truncate(title, max(1, m.width), ""))
}

func (m Model) renderFooter() string {
	help := "q quit | r replay | m mode | a animate | x removed | y copy | ? help"
	if len(m.revisions) > 1 {
		help += " | n/p file"
	}
	line := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(help)
	if m.alertMsg != "" {
		line += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).Render(m.alertMsg)
	}
	return ansi.Truncate(line, max(1, m.width), "")
}

func (m Model) renderHelp() string {
	bindings := []key.Binding{
		m.keys.Quit, m.keys.Replay, m.keys.ToggleMode, m.keys.ToggleAnimate,
		m.keys.ToggleRemoved, m.keys.Copy, m.keys.Next, m.keys.Prev,
		m.keys.Up, m.keys.Down, m.keys.Help,
	}
	lines := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("  %-8s %s", h.Key, h.Desc))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(strings.Join(lines, "\n"))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
