// Package stroke implements the freehand pen: a brush spec, the per-window
// pen/stroke lifecycle, and a round-capped segment rasterizer that writes
// directly into the window's RGBA buffer.
package stroke

import (
	"errors"
	"image"
	"image/color"

	"screen-snip/src/geometry"
)

// Brush size bounds in image pixels.
const (
	MinBrushSize     = 1
	MaxBrushSize     = 40
	DefaultBrushSize = 4
)

// DefaultBrushColor matches the overlay's selection accent.
var DefaultBrushColor = color.RGBA{R: 255, G: 80, B: 80, A: 255}

var (
	// ErrPenInactive is returned when a stroke is started without the pen tool.
	ErrPenInactive = errors.New("stroke: pen tool is not active")
	// ErrNoActiveStroke is returned when a segment arrives outside a stroke.
	ErrNoActiveStroke = errors.New("stroke: no stroke in progress")
)

// Brush is the pen configuration. It persists across strokes for the
// lifetime of one floating window.
type Brush struct {
	Size  int
	Color color.RGBA
}

// NewBrush returns a brush with the size clamped into [MinBrushSize, MaxBrushSize].
func NewBrush(size int, c color.RGBA) Brush {
	return Brush{Size: clampSize(size), Color: c}
}

// Step adjusts the size by delta wheel notches, clamped.
func (b *Brush) Step(delta int) {
	b.Size = clampSize(b.Size + delta)
}

func clampSize(s int) int {
	if s < MinBrushSize {
		return MinBrushSize
	}
	if s > MaxBrushSize {
		return MaxBrushSize
	}
	return s
}

// Engine drives pen strokes against a single image buffer. The buffer is
// owned by the floating window and never resized; the engine is its only
// mutator. Not safe for concurrent use; all calls arrive on the window's
// event thread.
type Engine struct {
	buf    *image.RGBA
	brush  *Brush
	pen    bool
	active bool
	last   geometry.Point
}

// NewEngine wires an engine to the window's buffer and brush. The brush is
// shared with the toolbar so size/color changes apply at draw time.
func NewEngine(buf *image.RGBA, brush *Brush) *Engine {
	return &Engine{buf: buf, brush: brush}
}

// PenActive reports whether the pen tool is toggled on.
func (e *Engine) PenActive() bool { return e.pen }

// Drawing reports whether a stroke is in flight.
func (e *Engine) Drawing() bool { return e.active }

// SetPenActive toggles the pen tool. Deactivating ends any in-flight stroke.
func (e *Engine) SetPenActive(on bool) {
	if !on {
		e.EndStroke()
	}
	e.pen = on
}

// StartStroke begins a stroke at an image-space point. Legal only while the
// pen tool is active.
func (e *Engine) StartStroke(p geometry.Point) error {
	if !e.pen {
		return ErrPenInactive
	}
	e.active = true
	e.last = p
	return nil
}

// ContinueStroke draws a round-capped segment from the last point to p using
// the brush's current size and color, then advances the last point. Legal
// only while a stroke is active.
func (e *Engine) ContinueStroke(p geometry.Point) error {
	if !e.active {
		return ErrNoActiveStroke
	}
	drawSegment(e.buf, e.last, p, *e.brush)
	e.last = p
	return nil
}

// EndStroke finishes the current stroke. Calling it with no stroke in
// progress is a no-op.
func (e *Engine) EndStroke() {
	e.active = false
	e.last = geometry.Point{}
}

// drawSegment rasterizes a thick line with round caps: every pixel whose
// distance to the segment is within the brush radius gets the brush color.
func drawSegment(buf *image.RGBA, from, to geometry.Point, b Brush) {
	radius := float64(clampSize(b.Size)) / 2
	bounds := buf.Bounds()

	pad := int(radius) + 1
	x0 := max(bounds.Min.X, min(from.X, to.X)-pad)
	y0 := max(bounds.Min.Y, min(from.Y, to.Y)-pad)
	x1 := min(bounds.Max.X-1, max(from.X, to.X)+pad)
	y1 := min(bounds.Max.Y-1, max(from.Y, to.Y)+pad)

	r2 := radius * radius
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if distSquaredToSegment(float64(x), float64(y), from, to) <= r2 {
				buf.SetRGBA(x, y, b.Color)
			}
		}
	}
}

// distSquaredToSegment returns the squared distance from (px,py) to the
// segment from-to, treating a zero-length segment as a point (round dot).
func distSquaredToSegment(px, py float64, from, to geometry.Point) float64 {
	ax, ay := float64(from.X), float64(from.Y)
	bx, by := float64(to.X), float64(to.Y)
	dx, dy := bx-ax, by-ay

	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((px-ax)*dx + (py-ay)*dy) / lenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	cx := ax + t*dx
	cy := ay + t*dy
	return (px-cx)*(px-cx) + (py-cy)*(py-cy)
}
