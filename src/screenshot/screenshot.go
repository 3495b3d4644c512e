// Package screenshot wraps the screen-grab collaborator: it produces a raw
// physical-pixel frame plus the device pixel ratio relating it to the
// logical overlay coordinates, and crops committed regions out of it.
package screenshot

import (
	"fmt"
	"image"
	"image/draw"
	"log"

	"github.com/kbinani/screenshot"

	"screen-snip/src/geometry"
)

// Frame is one grabbed screen: raw physical pixels plus the ratio between
// physical pixels and the logical coordinate space the overlay works in.
type Frame struct {
	Img              *image.RGBA
	LogicalWidth     int
	LogicalHeight    int
	DevicePixelRatio float64
}

// Bounds returns the physical pixel bounds of the frame.
func (f *Frame) Bounds() geometry.Rect {
	b := f.Img.Bounds()
	return geometry.Rect{X: 0, Y: 0, Width: b.Dx(), Height: b.Dy()}
}

// Init sanity-checks the grab backend at startup so a headless session is
// diagnosed once, up front, instead of at the first capture. Non-fatal:
// a display may appear later (RDP reconnect).
func Init() {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		log.Printf("screenshot: no active displays detected, captures will fail until one appears")
		return
	}
	log.Printf("screenshot: %d active display(s), primary bounds %v", n, screenshot.GetDisplayBounds(0))
}

// GrabPrimary captures the primary display. The hotkey capture flow spans
// exactly one screen; multi-monitor mapping stays with the windowing
// collaborator.
func GrabPrimary() (*Frame, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, fmt.Errorf("no active displays found")
	}
	bounds := screenshot.GetDisplayBounds(0)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to capture primary display: %v", err)
	}
	if img == nil || img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, fmt.Errorf("capture returned an empty frame")
	}

	ratio := 1.0
	if bounds.Dx() > 0 {
		ratio = float64(img.Bounds().Dx()) / float64(bounds.Dx())
	}
	log.Printf("screenshot: grabbed %dx%d physical (logical %dx%d, ratio %.2f)",
		img.Bounds().Dx(), img.Bounds().Dy(), bounds.Dx(), bounds.Dy(), ratio)

	return &Frame{
		Img:              img,
		LogicalWidth:     bounds.Dx(),
		LogicalHeight:    bounds.Dy(),
		DevicePixelRatio: ratio,
	}, nil
}

// CropFrame copies a physical-pixel region of the frame into a fresh RGBA
// buffer owned by the caller. The region must be non-empty and inside the
// frame; capture commit guarantees both by intersecting first.
func CropFrame(f *Frame, r geometry.Rect) (*image.RGBA, error) {
	if r.Empty() {
		return nil, fmt.Errorf("invalid crop dimensions: width=%d, height=%d", r.Width, r.Height)
	}
	if r.Intersect(f.Bounds()) != r {
		return nil, fmt.Errorf("crop %v outside frame bounds %v", r, f.Bounds())
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	src := f.Img.Bounds().Min.Add(image.Pt(r.X, r.Y))
	draw.Draw(dst, dst.Bounds(), f.Img, src, draw.Src)
	return dst, nil
}
