//go:build !windows

package gui

import (
	"fmt"
	"image"

	"screen-snip/src/canvas"
	"screen-snip/src/geometry"
	"screen-snip/src/screenshot"
	"screen-snip/src/session"
	"screen-snip/src/stroke"
)

// RunCaptureOverlay is a stub for non-Windows platforms.
func RunCaptureOverlay() (geometry.Rect, *screenshot.Frame, bool, error) {
	return geometry.Rect{}, nil, false, fmt.Errorf("interactive region selection not implemented for this platform")
}

// ShowFloatingWindow is a stub for non-Windows platforms.
func ShowFloatingWindow(buf *image.RGBA, b stroke.Brush, reg *session.Registry, export canvas.ExportFunc) error {
	return fmt.Errorf("floating windows not implemented for this platform")
}
