package segview

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	strikeDuration = 300 * time.Millisecond
	fadeDelay      = 300 * time.Millisecond
	fadeDuration   = 500 * time.Millisecond
)

type fadeState int

const (
	fadeIdle fadeState = iota
	fadeStriking
	fadeFading
	fadeDone
)

// FadeOut plays the two-phase removal treatment for a removed segment: a
// strike-through grows across the text, then the whole segment fades toward
// the background. When the fade finishes it emits a RemoveDoneMsg carrying
// the segment index, exactly once.
type FadeOut struct {
	id         int
	tag        int
	index      int
	value      []rune
	state      fadeState
	startedAt  time.Time
	strikeFrac float64
	opacity    float64
}

func NewFadeOut(value string, index int) FadeOut {
	return FadeOut{id: nextID(), index: index, value: []rune(value), opacity: 1}
}

func (f FadeOut) Start(now time.Time) (FadeOut, tea.Cmd) {
	f.state = fadeStriking
	f.startedAt = now
	f.tag++
	return f, frameCmd(f.id, f.tag)
}

func (f FadeOut) Update(msg tea.Msg) (FadeOut, tea.Cmd) {
	fm, ok := msg.(frameMsg)
	if !ok || fm.id != f.id || fm.tag != f.tag {
		return f, nil
	}
	if f.state != fadeStriking && f.state != fadeFading {
		return f, nil
	}

	elapsed := fm.at.Sub(f.startedAt)
	f.strikeFrac = easeOutQuad(progress(elapsed, strikeDuration))

	if elapsed >= fadeDelay {
		f.state = fadeFading
		fp := progress(elapsed-fadeDelay, fadeDuration)
		f.opacity = 1 - smoothstep(fp)
		if fp >= 1 {
			f.state = fadeDone
			f.opacity = 0
			id, index := f.id, f.index
			return f, func() tea.Msg {
				return RemoveDoneMsg{ID: id, Index: index}
			}
		}
	}
	return f, frameCmd(f.id, f.tag)
}

// Stop cancels both phases. A stopped fade never emits its completion
// message; stopping after completion is a no-op.
func (f FadeOut) Stop() FadeOut {
	f.tag++
	return f
}

func (f FadeOut) Done() bool {
	return f.state == fadeDone
}

func (f FadeOut) View() string {
	if f.state == fadeDone {
		return ""
	}

	fade := 1 - f.opacity
	style := lipgloss.NewStyle().
		Foreground(blend(removedFgHex, baseBgHex, fade)).
		Background(blend(removedBgHex, baseBgHex, fade))

	struck := int(math.Round(f.strikeFrac * float64(len(f.value))))
	if struck > len(f.value) {
		struck = len(f.value)
	}
	if struck <= 0 {
		return style.Render(string(f.value))
	}
	return style.Strikethrough(true).Render(string(f.value[:struck])) +
		style.Render(string(f.value[struck:]))
}
