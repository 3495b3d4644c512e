// Package geometry holds the pure coordinate math shared by the capture
// overlay and the floating canvas: rubber-band normalization, window-to-image
// mapping under zoom, and logical-to-physical scaling at capture time.
package geometry

// Point is an integer position in window (logical) coordinates.
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned rectangle with non-negative width and height.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Zoom scale bounds for the floating canvas. The presentation scale is
// multiplied by ZoomStep per wheel notch and clamped into [MinScale, MaxScale].
const (
	MinScale     = 0.2
	MaxScale     = 5.0
	DefaultScale = 1.0
	ZoomStep     = 1.1
)

// MinCommitSpan is the smallest selection edge (in screen pixels) that still
// commits; anything smaller is treated as a cancelled gesture.
const MinCommitSpan = 4

// Normalize returns the axis-aligned rectangle spanned by origin and current,
// swapping coordinates as needed so width and height are non-negative.
// Normalize(a, b) == Normalize(b, a).
func Normalize(origin, current Point) Rect {
	x0, x1 := origin.X, current.X
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	y0, y1 := origin.Y, current.Y
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Empty reports whether the rectangle has zero area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect returns the overlap of r and other. An empty Rect is returned
// when the two do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// MapToImageSpace converts a window-space point to image-pixel coordinates
// under the given presentation scale, truncating toward zero and clamping
// into [0,w-1]x[0,h-1]. A scale <= 0 cannot occur through ClampScale; the
// input is returned unchanged as a degenerate guard.
func MapToImageSpace(p Point, scale float64, w, h int) Point {
	if scale <= 0 {
		return p
	}
	x := int(float64(p.X) / scale)
	y := int(float64(p.Y) / scale)
	return Point{X: clamp(x, 0, w-1), Y: clamp(y, 0, h-1)}
}

// ScaleToPhysical converts a logical on-screen rectangle into physical pixel
// coordinates of the raw grabbed frame by multiplying each component with
// the device pixel ratio, truncating. The caller intersects the result with
// the frame bounds and discards the capture when the overlap is empty.
func ScaleToPhysical(r Rect, devicePixelRatio float64) Rect {
	return Rect{
		X:      int(float64(r.X) * devicePixelRatio),
		Y:      int(float64(r.Y) * devicePixelRatio),
		Width:  int(float64(r.Width) * devicePixelRatio),
		Height: int(float64(r.Height) * devicePixelRatio),
	}
}

// ClampScale bounds a zoom scale into [MinScale, MaxScale].
func ClampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
