package segview

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	revealPerRune = 40 * time.Millisecond
	revealMin     = 500 * time.Millisecond
	revealMax     = 1500 * time.Millisecond
)

type typewriterState int

const (
	typewriterIdle typewriterState = iota
	typewriterRevealing
	typewriterSettled
)

// Typewriter reveals an added segment's text rune by rune over a duration
// proportional to its length. The revealed prefix only ever grows.
type Typewriter struct {
	id        int
	tag       int
	value     []rune
	state     typewriterState
	startedAt time.Time
	duration  time.Duration
	revealed  int
}

func NewTypewriter(value string) Typewriter {
	runes := []rune(value)
	d := time.Duration(len(runes)) * revealPerRune
	if d < revealMin {
		d = revealMin
	}
	if d > revealMax {
		d = revealMax
	}
	return Typewriter{id: nextID(), value: runes, duration: d}
}

// Start begins the reveal. The returned command schedules the first frame.
func (t Typewriter) Start(now time.Time) (Typewriter, tea.Cmd) {
	t.state = typewriterRevealing
	t.startedAt = now
	t.tag++
	return t, frameCmd(t.id, t.tag)
}

func (t Typewriter) Update(msg tea.Msg) (Typewriter, tea.Cmd) {
	fm, ok := msg.(frameMsg)
	if !ok || fm.id != t.id || fm.tag != t.tag || t.state != typewriterRevealing {
		return t, nil
	}

	p := progress(fm.at.Sub(t.startedAt), t.duration)
	if n := int(math.Ceil(p * float64(len(t.value)))); n > t.revealed {
		t.revealed = n
	}
	if p >= 1 {
		t.revealed = len(t.value)
		t.state = typewriterSettled
		return t, nil
	}
	return t, frameCmd(t.id, t.tag)
}

// Stop cancels an in-flight reveal. Frames already scheduled carry the old
// tag and are ignored; stopping a settled reveal is a no-op.
func (t Typewriter) Stop() Typewriter {
	t.tag++
	return t
}

func (t Typewriter) Settled() bool {
	return t.state == typewriterSettled
}

// Duration reports the total reveal time for this segment's length.
func (t Typewriter) Duration() time.Duration {
	return t.duration
}

func (t Typewriter) View() string {
	if t.state == typewriterIdle || t.revealed == 0 {
		return ""
	}
	return addedStyle.Render(string(t.value[:t.revealed]))
}
