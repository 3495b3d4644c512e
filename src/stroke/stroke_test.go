package stroke

import (
	"image"
	"image/color"
	"testing"

	"screen-snip/src/geometry"
)

func newEngine(w, h int) (*Engine, *image.RGBA, *Brush) {
	buf := image.NewRGBA(image.Rect(0, 0, w, h))
	brush := NewBrush(DefaultBrushSize, DefaultBrushColor)
	return NewEngine(buf, &brush), buf, &brush
}

func TestStartRequiresActivePen(t *testing.T) {
	e, _, _ := newEngine(20, 20)
	if err := e.StartStroke(geometry.Point{X: 5, Y: 5}); err != ErrPenInactive {
		t.Fatalf("StartStroke without pen = %v, want ErrPenInactive", err)
	}
	e.SetPenActive(true)
	if err := e.StartStroke(geometry.Point{X: 5, Y: 5}); err != nil {
		t.Fatalf("StartStroke with pen = %v", err)
	}
}

func TestContinueRequiresActiveStroke(t *testing.T) {
	e, _, _ := newEngine(20, 20)
	e.SetPenActive(true)
	if err := e.ContinueStroke(geometry.Point{X: 1, Y: 1}); err != ErrNoActiveStroke {
		t.Fatalf("ContinueStroke outside a stroke = %v, want ErrNoActiveStroke", err)
	}
}

func TestEndStrokeIdempotent(t *testing.T) {
	e, _, _ := newEngine(20, 20)
	e.SetPenActive(true)
	if err := e.StartStroke(geometry.Point{X: 2, Y: 2}); err != nil {
		t.Fatal(err)
	}
	e.EndStroke()
	e.EndStroke() // second call is a no-op
	if e.Drawing() {
		t.Fatal("still drawing after EndStroke")
	}
	if err := e.ContinueStroke(geometry.Point{X: 3, Y: 3}); err != ErrNoActiveStroke {
		t.Fatalf("ContinueStroke after EndStroke = %v, want ErrNoActiveStroke", err)
	}
}

func TestPenDeactivationEndsStroke(t *testing.T) {
	e, _, _ := newEngine(20, 20)
	e.SetPenActive(true)
	if err := e.StartStroke(geometry.Point{X: 2, Y: 2}); err != nil {
		t.Fatal(err)
	}
	e.SetPenActive(false)
	if e.Drawing() {
		t.Fatal("stroke survived pen deactivation")
	}
}

func TestSegmentRoundCapCoverage(t *testing.T) {
	buf := image.NewRGBA(image.Rect(0, 0, 32, 32))
	brush := NewBrush(6, color.RGBA{R: 10, G: 200, B: 30, A: 255})
	e := NewEngine(buf, &brush)
	e.SetPenActive(true)
	if err := e.StartStroke(geometry.Point{X: 5, Y: 5}); err != nil {
		t.Fatal(err)
	}
	if err := e.ContinueStroke(geometry.Point{X: 5, Y: 10}); err != nil {
		t.Fatal(err)
	}

	// On-segment pixels and pixels within the 3px radius are painted.
	painted := []geometry.Point{
		{X: 5, Y: 5}, {X: 5, Y: 7}, {X: 5, Y: 10},
		{X: 3, Y: 7}, {X: 7, Y: 7},
		{X: 5, Y: 3}, {X: 5, Y: 12}, // round caps extend past the endpoints
	}
	for _, p := range painted {
		if buf.RGBAAt(p.X, p.Y) != brush.Color {
			t.Errorf("pixel (%d,%d) not painted", p.X, p.Y)
		}
	}
	// Pixels beyond the brush radius are untouched.
	clear := []geometry.Point{
		{X: 5, Y: 1}, {X: 5, Y: 15}, {X: 10, Y: 7}, {X: 0, Y: 0}, {X: 20, Y: 20},
	}
	for _, p := range clear {
		if got := buf.RGBAAt(p.X, p.Y); got != (color.RGBA{}) {
			t.Errorf("pixel (%d,%d) outside the brush radius was painted: %v", p.X, p.Y, got)
		}
	}
}

func TestSegmentClampedToBuffer(t *testing.T) {
	buf := image.NewRGBA(image.Rect(0, 0, 8, 8))
	brush := NewBrush(MaxBrushSize, DefaultBrushColor)
	e := NewEngine(buf, &brush)
	e.SetPenActive(true)
	// A huge brush near the edge must not write outside the buffer.
	if err := e.StartStroke(geometry.Point{X: 0, Y: 0}); err != nil {
		t.Fatal(err)
	}
	if err := e.ContinueStroke(geometry.Point{X: 7, Y: 7}); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if buf.RGBAAt(x, y) != brush.Color {
				t.Fatalf("pixel (%d,%d) missed by a full-coverage brush", x, y)
			}
		}
	}
}

func TestBrushStepClamping(t *testing.T) {
	b := NewBrush(2, DefaultBrushColor)
	b.Step(-5)
	if b.Size != MinBrushSize {
		t.Errorf("size after under-step = %d, want %d", b.Size, MinBrushSize)
	}
	b.Step(100)
	if b.Size != MaxBrushSize {
		t.Errorf("size after over-step = %d, want %d", b.Size, MaxBrushSize)
	}
	if got := NewBrush(0, DefaultBrushColor).Size; got != MinBrushSize {
		t.Errorf("NewBrush(0) size = %d, want %d", got, MinBrushSize)
	}
}

func TestMidStrokeSizeChangeAppliesToNextSegment(t *testing.T) {
	buf := image.NewRGBA(image.Rect(0, 0, 64, 64))
	brush := NewBrush(2, DefaultBrushColor)
	e := NewEngine(buf, &brush)
	e.SetPenActive(true)
	if err := e.StartStroke(geometry.Point{X: 10, Y: 10}); err != nil {
		t.Fatal(err)
	}
	if err := e.ContinueStroke(geometry.Point{X: 10, Y: 20}); err != nil {
		t.Fatal(err)
	}
	// Size is read per segment at draw time: a wheel step mid-stroke
	// thickens the rest of this same stroke.
	brush.Step(8)
	if err := e.ContinueStroke(geometry.Point{X: 10, Y: 30}); err != nil {
		t.Fatal(err)
	}

	if buf.RGBAAt(14, 25) != brush.Color {
		t.Error("second segment did not pick up the larger size")
	}
	if buf.RGBAAt(14, 14) == brush.Color {
		t.Error("first segment retroactively thickened")
	}
}
