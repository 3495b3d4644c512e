// Package canvas implements the floating-window controller: it arbitrates
// between drag-to-move and pen drawing, owns the zoom scale and toolbar
// state, and renders the captured buffer at the current presentation size.
//
// The windowing host is a collaborator behind the Host interface; the
// controller never paints or moves a window itself, it only asks.
package canvas

import (
	"image"
	"image/color"
	"log"

	xdraw "golang.org/x/image/draw"

	"screen-snip/src/geometry"
	"screen-snip/src/selection"
	"screen-snip/src/stroke"
)

// Host is the window/paint collaborator for one floating window. All calls
// happen on the window's event thread.
type Host interface {
	// MoveBy translates the window by a global-coordinate delta.
	MoveBy(dx, dy int)
	// SetPresentationSize resizes the displayed canvas (baseSize x scale).
	SetPresentationSize(w, h int)
	// RequestRedraw schedules a repaint; the host calls Render when ready.
	RequestRedraw()
	// Close tears the window down; the controller is discarded with it.
	Close()
}

// ExportFunc delivers the buffer to the clipboard collaborator.
// Fire-and-forget: the controller neither waits for nor observes a result.
type ExportFunc func(*image.RGBA)

// Key identifies the keyboard gestures the controller reacts to.
type Key int

const (
	KeyEscape Key = iota
	KeySpace
)

// Controller owns one captured image for the lifetime of one floating
// window. Single-threaded by construction.
type Controller struct {
	img    *image.RGBA
	brush  stroke.Brush
	engine *stroke.Engine
	host   Host
	export ExportFunc

	scale          float64
	toolbarVisible bool
	colorPopupOpen bool
	dragging       bool
	lastGlobal     geometry.Point
}

// New creates a controller around a freshly cropped buffer. The buffer is
// never resized afterwards, only presented at different scales.
func New(img *image.RGBA, b stroke.Brush, host Host, export ExportFunc) *Controller {
	c := &Controller{
		img:            img,
		brush:          b,
		host:           host,
		export:         export,
		scale:          geometry.DefaultScale,
		toolbarVisible: true,
	}
	c.engine = stroke.NewEngine(img, &c.brush)
	return c
}

// Image exposes the owned buffer for rendering and export.
func (c *Controller) Image() *image.RGBA { return c.img }

// Scale returns the current presentation scale.
func (c *Controller) Scale() float64 { return c.scale }

// PresentationSize returns the displayed canvas size at the current scale.
func (c *Controller) PresentationSize() (int, int) {
	b := c.img.Bounds()
	return scaledSpan(b.Dx(), c.scale), scaledSpan(b.Dy(), c.scale)
}

func (c *Controller) ToolbarVisible() bool { return c.toolbarVisible }
func (c *Controller) PenActive() bool      { return c.engine.PenActive() }
func (c *Controller) ColorPopupOpen() bool { return c.colorPopupOpen }

// Brush returns the current brush spec (for toolbar display).
func (c *Controller) Brush() stroke.Brush { return c.brush }

// OnPress routes a primary press to either window dragging or a new stroke,
// depending on the pen toggle. Secondary input is ignored.
func (c *Controller) OnPress(btn selection.Button, local, global geometry.Point) {
	if btn != selection.ButtonPrimary {
		return
	}
	if c.engine.PenActive() {
		if err := c.engine.StartStroke(c.toImageSpace(local)); err != nil {
			log.Printf("canvas: start stroke: %v", err)
		}
		return
	}
	c.dragging = true
	c.lastGlobal = global
}

// OnMove continues the active gesture: a window drag moves by the global
// delta, a stroke draws a segment in image space.
func (c *Controller) OnMove(local, global geometry.Point) {
	if c.engine.Drawing() {
		if err := c.engine.ContinueStroke(c.toImageSpace(local)); err != nil {
			log.Printf("canvas: continue stroke: %v", err)
			return
		}
		c.host.RequestRedraw()
		return
	}
	if c.dragging {
		c.host.MoveBy(global.X-c.lastGlobal.X, global.Y-c.lastGlobal.Y)
		c.lastGlobal = global
	}
}

// OnRelease ends the active gesture.
func (c *Controller) OnRelease(btn selection.Button) {
	if btn != selection.ButtonPrimary {
		return
	}
	c.engine.EndStroke()
	c.dragging = false
}

// OnWheel handles a scroll over the canvas: zoom when the pen is off,
// nothing otherwise. Positive notches zoom in.
func (c *Controller) OnWheel(notches int) {
	if c.engine.PenActive() || notches == 0 {
		return
	}
	s := c.scale
	for i := 0; i < notches; i++ {
		s = geometry.ClampScale(s * geometry.ZoomStep)
	}
	for i := 0; i > notches; i-- {
		s = geometry.ClampScale(s / geometry.ZoomStep)
	}
	if s == c.scale {
		return
	}
	c.scale = s
	w, h := c.PresentationSize()
	c.host.SetPresentationSize(w, h)
	c.host.RequestRedraw()
}

// OnBrushWheel handles a scroll over the toolbar's size control:
// one size step per notch, clamped.
func (c *Controller) OnBrushWheel(notches int) {
	if !c.toolbarVisible || notches == 0 {
		return
	}
	c.brush.Step(notches)
	c.host.RequestRedraw()
}

// OnKey handles the two keyboard gestures. Escape first retreats from
// annotation (pen off, toolbar hidden); only a further escape with nothing
// to retreat from closes the window.
func (c *Controller) OnKey(k Key) {
	switch k {
	case KeySpace:
		c.setToolbarVisible(!c.toolbarVisible)
	case KeyEscape:
		if c.engine.PenActive() || c.toolbarVisible {
			c.deactivatePen()
			c.setToolbarVisible(false)
			return
		}
		c.host.Close()
	}
}

// TogglePen flips the pen tool. Activation opens the transient color popup
// anchored at the toggle; deactivation closes it and ends any stroke.
func (c *Controller) TogglePen() {
	if c.engine.PenActive() {
		c.deactivatePen()
	} else {
		c.engine.SetPenActive(true)
		c.colorPopupOpen = true
	}
	c.host.RequestRedraw()
}

// SetBrushColor applies a popup color choice to subsequent strokes and
// closes the popup.
func (c *Controller) SetBrushColor(col color.RGBA) {
	c.brush.Color = col
	c.colorPopupOpen = false
	c.host.RequestRedraw()
}

// Commit exports the unscaled buffer verbatim. Repeatable; mutates nothing.
// The export gets its own copy: the stroke engine keeps writing into the
// live buffer while the encoder reads on another goroutine.
func (c *Controller) Commit() {
	if c.export == nil {
		return
	}
	snap := image.NewRGBA(c.img.Bounds())
	copy(snap.Pix, c.img.Pix)
	c.export(snap)
}

// Render produces the presentation image at the current scale. The buffer
// itself is never rescaled.
func (c *Controller) Render() *image.RGBA {
	w, h := c.PresentationSize()
	b := c.img.Bounds()
	if w == b.Dx() && h == b.Dy() {
		return c.img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), c.img, b, xdraw.Src, nil)
	return dst
}

func (c *Controller) setToolbarVisible(visible bool) {
	if c.toolbarVisible == visible {
		return
	}
	c.toolbarVisible = visible
	if !visible {
		c.deactivatePen()
	}
	c.host.RequestRedraw()
}

func (c *Controller) deactivatePen() {
	c.engine.SetPenActive(false)
	c.colorPopupOpen = false
}

func (c *Controller) toImageSpace(local geometry.Point) geometry.Point {
	b := c.img.Bounds()
	return geometry.MapToImageSpace(local, c.scale, b.Dx(), b.Dy())
}

func scaledSpan(v int, scale float64) int {
	s := int(float64(v) * scale)
	if s < 1 {
		return 1
	}
	return s
}
