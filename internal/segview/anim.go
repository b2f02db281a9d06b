package segview

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const frameInterval = time.Second / 30

// frameMsg carries one animation frame to a single animator. The id selects
// the animator; the tag invalidates frames scheduled before a stop or
// restart, so a canceled animation can never advance or complete.
type frameMsg struct {
	id  int
	tag int
	at  time.Time
}

// RemoveDoneMsg signals that a removed segment's fade has finished and the
// segment should be retired from rendering. Emitted exactly once per fade.
type RemoveDoneMsg struct {
	ID    int
	Index int
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

func frameCmd(id, tag int) tea.Cmd {
	return tea.Tick(frameInterval, func(at time.Time) tea.Msg {
		return frameMsg{id: id, tag: tag, at: at}
	})
}

func progress(elapsed, total time.Duration) float64 {
	if total <= 0 || elapsed >= total {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(total)
}

func easeOutQuad(p float64) float64 {
	return 1 - (1-p)*(1-p)
}

func smoothstep(p float64) float64 {
	return p * p * (3 - 2*p)
}

// blend interpolates between two hex colors in HCL space; t=0 yields from,
// t=1 yields to.
func blend(from, to string, t float64) lipgloss.Color {
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	if errA != nil || errB != nil {
		return lipgloss.Color(from)
	}
	return lipgloss.Color(a.BlendHcl(b, t).Clamped().Hex())
}
