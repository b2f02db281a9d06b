// Package segview renders a textdiff segment sequence with per-segment
// animation: added text types itself in, removed text is struck through and
// faded out, then retired from the output.
package segview

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chatmorph/internal/textdiff"
)

const (
	addedFgHex   = "#a6e3a1"
	addedBgHex   = "#23402a"
	removedFgHex = "#f38ba8"
	removedBgHex = "#40222e"
	baseBgHex    = "#1e1e2e"
)

var (
	addedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(addedFgHex)).
			Background(lipgloss.Color(addedBgHex))

	removedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(removedFgHex)).
			Background(lipgloss.Color(removedBgHex)).
			Strikethrough(true)
)

// Options controls how changed segments are shown. Zero value means hidden
// removals and no animation; use DefaultOptions for the usual behavior.
type Options struct {
	ShowRemoved bool
	Animate     bool
}

func DefaultOptions() Options {
	return Options{ShowRemoved: true, Animate: true}
}

// RetiredSet tracks segment indices whose removal fade has completed.
// Updates are copy-on-write so a set captured by an earlier render pass
// stays a consistent snapshot.
type RetiredSet struct {
	members map[int]struct{}
}

func (s RetiredSet) Has(index int) bool {
	_, ok := s.members[index]
	return ok
}

func (s RetiredSet) Len() int {
	return len(s.members)
}

// With returns a new set that additionally contains index. The receiver is
// not modified.
func (s RetiredSet) With(index int) RetiredSet {
	members := make(map[int]struct{}, len(s.members)+1)
	for k := range s.members {
		members[k] = struct{}{}
	}
	members[index] = struct{}{}
	return RetiredSet{members: members}
}

// Model owns one diff's segment sequence, the animators for its changed
// segments, and the retired set. Build a fresh Model whenever the diff is
// recomputed; indices and animator identities are only meaningful within
// one segment sequence.
type Model struct {
	segments []textdiff.Segment
	opts     Options
	retired  RetiredSet

	typers    map[int]Typewriter // keyed by segment index
	faders    map[int]FadeOut
	typerByID map[int]int // animator id -> segment index
	faderByID map[int]int
}

func New(segments []textdiff.Segment, opts Options) Model {
	m := Model{
		segments:  segments,
		opts:      opts,
		typers:    make(map[int]Typewriter),
		faders:    make(map[int]FadeOut),
		typerByID: make(map[int]int),
		faderByID: make(map[int]int),
	}
	if !opts.Animate {
		return m
	}
	for _, seg := range segments {
		switch seg.Kind {
		case textdiff.Added:
			tw := NewTypewriter(seg.Value)
			m.typers[seg.Index] = tw
			m.typerByID[tw.id] = seg.Index
		case textdiff.Removed:
			if !opts.ShowRemoved {
				continue
			}
			f := NewFadeOut(seg.Value, seg.Index)
			m.faders[seg.Index] = f
			m.faderByID[f.id] = seg.Index
		}
	}
	return m
}

// Start begins every animator's timeline at now.
func (m Model) Start(now time.Time) (Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, len(m.typers)+len(m.faders))
	for idx, tw := range m.typers {
		tw, cmd := tw.Start(now)
		m.typers[idx] = tw
		cmds = append(cmds, cmd)
	}
	for idx, f := range m.faders {
		f, cmd := f.Start(now)
		m.faders[idx] = f
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if idx, ok := m.typerByID[msg.id]; ok {
			tw, cmd := m.typers[idx].Update(msg)
			m.typers[idx] = tw
			return m, cmd
		}
		if idx, ok := m.faderByID[msg.id]; ok {
			f, cmd := m.faders[idx].Update(msg)
			m.faders[idx] = f
			return m, cmd
		}
		return m, nil

	case RemoveDoneMsg:
		// Only honor completions from this model's own animators; a message
		// from a previous diff's fader must not retire an unrelated index.
		if idx, ok := m.faderByID[msg.ID]; ok && idx == msg.Index {
			m.retired = m.retired.With(msg.Index)
		}
		return m, nil
	}
	return m, nil
}

// Stop cancels every in-flight animation. No completion message is emitted
// for a canceled fade.
func (m Model) Stop() Model {
	for idx, tw := range m.typers {
		m.typers[idx] = tw.Stop()
	}
	for idx, f := range m.faders {
		m.faders[idx] = f.Stop()
	}
	return m
}

// Settled reports whether nothing remains animating: every reveal finished
// and every visible removal retired.
func (m Model) Settled() bool {
	for _, tw := range m.typers {
		if !tw.Settled() {
			return false
		}
	}
	for idx := range m.faders {
		if !m.retired.Has(idx) {
			return false
		}
	}
	return true
}

func (m Model) Retired() RetiredSet {
	return m.retired
}

func (m Model) View() string {
	var b strings.Builder
	for _, seg := range m.segments {
		switch seg.Kind {
		case textdiff.Unchanged:
			b.WriteString(seg.Value)

		case textdiff.Added:
			if tw, ok := m.typers[seg.Index]; ok {
				b.WriteString(tw.View())
			} else {
				b.WriteString(addedStyle.Render(seg.Value))
			}

		case textdiff.Removed:
			if m.retired.Has(seg.Index) || !m.opts.ShowRemoved {
				continue
			}
			if f, ok := m.faders[seg.Index]; ok {
				b.WriteString(f.View())
			} else {
				b.WriteString(removedStyle.Render(seg.Value))
			}
		}
	}
	return b.String()
}
