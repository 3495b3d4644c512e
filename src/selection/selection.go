// Package selection models one rubber-band capture gesture as an explicit
// state machine. A Machine lives for exactly one overlay: it commits or
// cancels once, then stays terminal and is discarded with the overlay.
package selection

import (
	"log"

	"screen-snip/src/geometry"
)

// State is the lifecycle position of the gesture.
type State int

const (
	Idle State = iota
	Dragging
	Committed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Button identifies a pointer button. Everything except ButtonPrimary is
// ignored by the machine.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Callbacks connect the machine to its overlay host. Committed and Cancelled
// fire exactly once per machine; Redraw fires on every visual change while
// dragging. Any callback may be nil.
type Callbacks struct {
	Committed func(geometry.Rect)
	Cancelled func()
	Redraw    func()
}

// Machine tracks a single selection gesture.
type Machine struct {
	state   State
	origin  geometry.Point
	current geometry.Point
	cb      Callbacks
}

func New(cb Callbacks) *Machine {
	return &Machine{state: Idle, cb: cb}
}

// State returns the current lifecycle state.
func (m *Machine) State() State { return m.state }

// Rect returns the normalized rubber-band rectangle and whether one exists
// (an origin has been set and the gesture is still in flight).
func (m *Machine) Rect() (geometry.Rect, bool) {
	if m.state != Dragging {
		return geometry.Rect{}, false
	}
	return geometry.Normalize(m.origin, m.current), true
}

// HandlePress starts the drag. Only a primary press in Idle has any effect.
func (m *Machine) HandlePress(btn Button, p geometry.Point) {
	if btn != ButtonPrimary || m.state != Idle {
		return
	}
	m.origin = p
	m.current = p
	m.state = Dragging
	m.requestRedraw()
}

// HandleMove updates the live corner of the rubber band.
func (m *Machine) HandleMove(p geometry.Point) {
	if m.state != Dragging {
		return
	}
	m.current = p
	m.requestRedraw()
}

// HandleRelease ends the drag: the gesture commits when the normalized
// rectangle spans at least MinCommitSpan on both axes, otherwise it cancels.
func (m *Machine) HandleRelease(btn Button, p geometry.Point) {
	if btn != ButtonPrimary || m.state != Dragging {
		return
	}
	m.current = p
	rect := geometry.Normalize(m.origin, m.current)
	if rect.Width < geometry.MinCommitSpan || rect.Height < geometry.MinCommitSpan {
		log.Printf("selection: released below minimum span (%dx%d), cancelling", rect.Width, rect.Height)
		m.cancel()
		return
	}
	m.state = Committed
	log.Printf("selection: committed %dx%d at (%d,%d)", rect.Width, rect.Height, rect.X, rect.Y)
	if m.cb.Committed != nil {
		m.cb.Committed(rect)
	}
}

// Cancel aborts the gesture from any pre-terminal state (escape key).
func (m *Machine) Cancel() {
	if m.state == Committed || m.state == Cancelled {
		return
	}
	m.cancel()
}

func (m *Machine) cancel() {
	m.state = Cancelled
	if m.cb.Cancelled != nil {
		m.cb.Cancelled()
	}
}

func (m *Machine) requestRedraw() {
	if m.cb.Redraw != nil {
		m.cb.Redraw()
	}
}
