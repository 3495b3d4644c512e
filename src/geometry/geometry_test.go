package geometry

import (
	"testing"
)

func TestNormalizeSymmetry(t *testing.T) {
	pairs := []struct {
		a, b Point
	}{
		{Point{0, 0}, Point{0, 0}},
		{Point{50, 50}, Point{150, 120}},
		{Point{150, 120}, Point{50, 50}},
		{Point{-30, 10}, Point{12, -44}},
		{Point{100, 100}, Point{102, 103}},
	}
	for _, p := range pairs {
		ab := Normalize(p.a, p.b)
		ba := Normalize(p.b, p.a)
		if ab != ba {
			t.Errorf("Normalize(%v,%v)=%v but Normalize(%v,%v)=%v", p.a, p.b, ab, p.b, p.a, ba)
		}
		if ab.Width < 0 || ab.Height < 0 {
			t.Errorf("Normalize(%v,%v) produced negative span: %v", p.a, p.b, ab)
		}
	}
}

func TestNormalizeSpan(t *testing.T) {
	r := Normalize(Point{50, 50}, Point{150, 120})
	want := Rect{X: 50, Y: 50, Width: 100, Height: 70}
	if r != want {
		t.Fatalf("got %v, want %v", r, want)
	}
}

func TestMapToImageSpaceClamped(t *testing.T) {
	const w, h = 200, 100
	tests := []struct {
		p     Point
		scale float64
		want  Point
	}{
		{Point{0, 0}, 1.0, Point{0, 0}},
		{Point{100, 50}, 1.0, Point{100, 50}},
		{Point{100, 50}, 2.0, Point{50, 25}},
		{Point{100, 50}, 0.5, Point{199, 99}},  // overshoot clamps to max
		{Point{-10, -10}, 1.0, Point{0, 0}},    // undershoot clamps to zero
		{Point{5000, 5000}, 5.0, Point{199, 99}},
		{Point{3, 3}, 0.2, Point{15, 15}},
		{Point{7, 7}, 3.0, Point{2, 2}}, // truncation toward zero
	}
	for _, tt := range tests {
		got := MapToImageSpace(tt.p, tt.scale, w, h)
		if got != tt.want {
			t.Errorf("MapToImageSpace(%v, %v) = %v, want %v", tt.p, tt.scale, got, tt.want)
		}
		if got.X < 0 || got.X >= w || got.Y < 0 || got.Y >= h {
			t.Errorf("MapToImageSpace(%v, %v) = %v out of image bounds", tt.p, tt.scale, got)
		}
	}
}

func TestMapToImageSpaceDegenerateScale(t *testing.T) {
	p := Point{X: 123, Y: -7}
	if got := MapToImageSpace(p, 0, 10, 10); got != p {
		t.Errorf("scale 0 should pass input through, got %v", got)
	}
	if got := MapToImageSpace(p, -1.5, 10, 10); got != p {
		t.Errorf("negative scale should pass input through, got %v", got)
	}
}

func TestScaleToPhysical(t *testing.T) {
	r := ScaleToPhysical(Rect{X: 10, Y: 10, Width: 50, Height: 40}, 2)
	want := Rect{X: 20, Y: 20, Width: 100, Height: 80}
	if r != want {
		t.Fatalf("got %v, want %v", r, want)
	}
}

func TestIntersect(t *testing.T) {
	frame := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	tests := []struct {
		r    Rect
		want Rect
	}{
		{Rect{X: 20, Y: 20, Width: 100, Height: 80}, Rect{X: 20, Y: 20, Width: 80, Height: 80}},
		{Rect{X: -10, Y: -10, Width: 20, Height: 20}, Rect{X: 0, Y: 0, Width: 10, Height: 10}},
		{Rect{X: 100, Y: 100, Width: 50, Height: 50}, Rect{}},
		{Rect{X: 40, Y: 40, Width: 0, Height: 10}, Rect{}},
	}
	for _, tt := range tests {
		if got := tt.r.Intersect(frame); got != tt.want {
			t.Errorf("%v.Intersect(frame) = %v, want %v", tt.r, got, tt.want)
		}
	}
	if !(Rect{}).Empty() {
		t.Error("zero Rect should be empty")
	}
}

func TestClampScale(t *testing.T) {
	// N scroll-up notches from 1.0 never exceed MaxScale.
	s := DefaultScale
	for i := 0; i < 64; i++ {
		s = ClampScale(s * ZoomStep)
		if s > MaxScale {
			t.Fatalf("scale %v exceeded MaxScale after %d notches", s, i+1)
		}
	}
	if s != MaxScale {
		t.Errorf("expected saturation at %v, got %v", MaxScale, s)
	}
	if got := ClampScale(s / ZoomStep); got >= MaxScale {
		t.Errorf("one notch down from saturation should drop below max, got %v", got)
	}
	if got := ClampScale(0.01); got != MinScale {
		t.Errorf("ClampScale(0.01) = %v, want %v", got, MinScale)
	}
}
