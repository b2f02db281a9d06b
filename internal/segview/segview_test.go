package segview

import (
	"strings"
	"testing"
	"time"

	"chatmorph/internal/textdiff"
)

func sampleSegments() []textdiff.Segment {
	return []textdiff.Segment{
		{Value: "the ", Kind: textdiff.Unchanged, Index: 0},
		{Value: "quick", Kind: textdiff.Removed, Index: 1},
		{Value: "slow", Kind: textdiff.Added, Index: 2},
		{Value: " fox", Kind: textdiff.Unchanged, Index: 3},
	}
}

func TestRetiredSetCopyOnWrite(t *testing.T) {
	var s RetiredSet
	s2 := s.With(3)

	if s.Has(3) {
		t.Fatalf("With mutated the original set")
	}
	if !s2.Has(3) || s2.Len() != 1 {
		t.Fatalf("derived set missing member: %+v", s2)
	}

	s3 := s2.With(5)
	if s2.Has(5) {
		t.Fatalf("second With mutated its receiver")
	}
	if !s3.Has(3) || !s3.Has(5) {
		t.Fatalf("derived set lost members: %+v", s3)
	}
}

func TestStaticModeRendersFullTextWithoutTimers(t *testing.T) {
	m := New(sampleSegments(), Options{ShowRemoved: true, Animate: false})
	if len(m.typers) != 0 || len(m.faders) != 0 {
		t.Fatalf("static mode created animators: %d typers, %d faders", len(m.typers), len(m.faders))
	}

	m, cmd := m.Start(time.Now())
	if cmd != nil {
		t.Fatalf("static mode scheduled frames")
	}

	if got := stripANSI(m.View()); got != "the quickslow fox" {
		t.Fatalf("static view = %q", got)
	}
}

func TestSuppressedRemovalsRenderNothing(t *testing.T) {
	m := New(sampleSegments(), Options{ShowRemoved: false, Animate: true})
	if len(m.faders) != 0 {
		t.Fatalf("suppressed removals still created %d faders", len(m.faders))
	}

	m, _ = m.Start(time.Now())
	if got := stripANSI(m.View()); strings.Contains(got, "quick") {
		t.Fatalf("suppressed removal rendered: %q", got)
	}
}

func TestAnimatedLifecycleRetiresRemovedSegment(t *testing.T) {
	m := New(sampleSegments(), DefaultOptions())
	t0 := time.Now()
	m, cmd := m.Start(t0)
	if cmd == nil {
		t.Fatalf("Start scheduled no frames")
	}

	fader := m.faders[1]
	typer := m.typers[2]

	// Drive the fade to completion and fold its message back in.
	m, doneCmd := m.Update(frameMsg{id: fader.id, tag: fader.tag, at: t0.Add(850 * time.Millisecond)})
	if doneCmd == nil {
		t.Fatalf("fade completion produced no command")
	}
	m, _ = m.Update(doneCmd())

	if !m.Retired().Has(1) {
		t.Fatalf("completed removal not retired")
	}
	if got := stripANSI(m.View()); strings.Contains(got, "quick") {
		t.Fatalf("retired segment still rendered: %q", got)
	}

	// Finish the reveal.
	m, _ = m.Update(frameMsg{id: typer.id, tag: typer.tag, at: t0.Add(2 * time.Second)})
	if got := stripANSI(m.View()); got != "the slow fox" {
		t.Fatalf("settled view = %q, want %q", got, "the slow fox")
	}
	if !m.Settled() {
		t.Fatalf("model not settled after all animations finished")
	}
}

func TestStaleCompletionMessageIgnored(t *testing.T) {
	m := New(sampleSegments(), DefaultOptions())
	m, _ = m.Start(time.Now())

	m, _ = m.Update(RemoveDoneMsg{ID: 999999, Index: 1})
	if m.Retired().Has(1) {
		t.Fatalf("completion from a foreign animator retired a segment")
	}
}

func TestStopCancelsEverything(t *testing.T) {
	m := New(sampleSegments(), DefaultOptions())
	t0 := time.Now()
	m, _ = m.Start(t0)

	faderTag := m.faders[1].tag
	typerTag := m.typers[2].tag
	m = m.Stop()

	m, cmd := m.Update(frameMsg{id: m.faders[1].id, tag: faderTag, at: t0.Add(5 * time.Second)})
	if cmd != nil {
		t.Fatalf("stopped fader still produced a command")
	}
	m, cmd = m.Update(frameMsg{id: m.typers[2].id, tag: typerTag, at: t0.Add(5 * time.Second)})
	if cmd != nil {
		t.Fatalf("stopped typer still produced a command")
	}
	if m.Retired().Has(1) {
		t.Fatalf("stopped fade still retired its segment")
	}
}

func TestUnstartedAnimatorsHideChangedText(t *testing.T) {
	m := New(sampleSegments(), DefaultOptions())
	if got := stripANSI(m.View()); got != "the quick fox" {
		t.Fatalf("pre-start view = %q, want removed text visible and added hidden", got)
	}
}
