package selection

import (
	"testing"

	"screen-snip/src/geometry"
)

type recorder struct {
	committed []geometry.Rect
	cancels   int
	redraws   int
}

func newRecorded() (*Machine, *recorder) {
	rec := &recorder{}
	m := New(Callbacks{
		Committed: func(r geometry.Rect) { rec.committed = append(rec.committed, r) },
		Cancelled: func() { rec.cancels++ },
		Redraw:    func() { rec.redraws++ },
	})
	return m, rec
}

func TestCommitLargeEnoughSelection(t *testing.T) {
	m, rec := newRecorded()
	m.HandlePress(ButtonPrimary, geometry.Point{X: 50, Y: 50})
	m.HandleMove(geometry.Point{X: 90, Y: 80})
	m.HandleRelease(ButtonPrimary, geometry.Point{X: 150, Y: 120})

	if m.State() != Committed {
		t.Fatalf("state = %v, want committed", m.State())
	}
	if len(rec.committed) != 1 {
		t.Fatalf("committed fired %d times, want 1", len(rec.committed))
	}
	want := geometry.Rect{X: 50, Y: 50, Width: 100, Height: 70}
	if rec.committed[0] != want {
		t.Errorf("committed rect = %v, want %v", rec.committed[0], want)
	}
	if rec.cancels != 0 {
		t.Errorf("cancel fired %d times on a committed gesture", rec.cancels)
	}
}

func TestReleaseBelowMinimumCancels(t *testing.T) {
	m, rec := newRecorded()
	m.HandlePress(ButtonPrimary, geometry.Point{X: 100, Y: 100})
	m.HandleRelease(ButtonPrimary, geometry.Point{X: 102, Y: 103})

	if m.State() != Cancelled {
		t.Fatalf("state = %v, want cancelled", m.State())
	}
	if rec.cancels != 1 || len(rec.committed) != 0 {
		t.Errorf("cancels=%d committed=%d, want 1/0", rec.cancels, len(rec.committed))
	}
}

func TestSecondaryButtonIgnored(t *testing.T) {
	m, rec := newRecorded()
	m.HandlePress(ButtonSecondary, geometry.Point{X: 10, Y: 10})
	if m.State() != Idle {
		t.Fatalf("secondary press started a drag")
	}
	m.HandlePress(ButtonPrimary, geometry.Point{X: 10, Y: 10})
	m.HandleRelease(ButtonSecondary, geometry.Point{X: 200, Y: 200})
	if m.State() != Dragging {
		t.Fatalf("secondary release ended the drag")
	}
	if rec.cancels != 0 || len(rec.committed) != 0 {
		t.Errorf("terminal callback fired for secondary input")
	}
}

func TestMoveWithoutPressIgnored(t *testing.T) {
	m, rec := newRecorded()
	m.HandleMove(geometry.Point{X: 40, Y: 40})
	if m.State() != Idle || rec.redraws != 0 {
		t.Fatalf("move outside a drag changed state or requested redraw")
	}
	if _, ok := m.Rect(); ok {
		t.Error("Rect reported a rubber band before any press")
	}
}

func TestEscapeCancelsMidDrag(t *testing.T) {
	m, rec := newRecorded()
	m.HandlePress(ButtonPrimary, geometry.Point{X: 5, Y: 5})
	m.HandleMove(geometry.Point{X: 300, Y: 300})
	m.Cancel()
	if m.State() != Cancelled || rec.cancels != 1 {
		t.Fatalf("escape did not cancel the drag exactly once")
	}
	// Terminal machines ignore everything, including a second cancel.
	m.Cancel()
	m.HandlePress(ButtonPrimary, geometry.Point{X: 1, Y: 1})
	m.HandleRelease(ButtonPrimary, geometry.Point{X: 500, Y: 500})
	if rec.cancels != 1 || len(rec.committed) != 0 {
		t.Errorf("terminal machine emitted further events: cancels=%d committed=%d", rec.cancels, len(rec.committed))
	}
}

func TestRubberBandTracksMoves(t *testing.T) {
	m, rec := newRecorded()
	m.HandlePress(ButtonPrimary, geometry.Point{X: 20, Y: 30})
	m.HandleMove(geometry.Point{X: 10, Y: 60})

	r, ok := m.Rect()
	if !ok {
		t.Fatal("no rubber band while dragging")
	}
	want := geometry.Rect{X: 10, Y: 30, Width: 10, Height: 30}
	if r != want {
		t.Errorf("rubber band = %v, want %v", r, want)
	}
	if rec.redraws != 2 {
		t.Errorf("redraws = %d, want one per press/move", rec.redraws)
	}
}
