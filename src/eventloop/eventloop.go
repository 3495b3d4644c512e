// Package eventloop is the single-threaded coordinator of the capture flow:
// hotkey and tray triggers are serialized onto one goroutine, which runs the
// overlay, crops the committed region, and opens a floating window around it.
package eventloop

import (
	"context"
	"image"
	"log"
	"time"

	"screen-snip/src/canvas"
	"screen-snip/src/config"
	"screen-snip/src/geometry"
	"screen-snip/src/gui"
	"screen-snip/src/hotkey"
	"screen-snip/src/overlay"
	"screen-snip/src/screenshot"
	"screen-snip/src/session"
	"screen-snip/src/stroke"
	"screen-snip/src/tray"
	"screen-snip/src/worker"
)

// OpenWindowFunc opens a floating window around a freshly cropped buffer.
// The window registers itself with the registry and uses export on commit.
type OpenWindowFunc func(buf *image.RGBA, b stroke.Brush, reg *session.Registry, export canvas.ExportFunc) error

// Loop owns the capture flow. Select() blocks the loop goroutine while the
// overlay is open, so a second overlay can never start concurrently;
// triggers that arrive meanwhile are drained and dropped.
type Loop struct {
	selector   overlay.Selector
	pool       *worker.Pool
	windows    *session.Registry
	openWindow OpenWindowFunc
	brush      stroke.Brush
	hotkeyCh   chan struct{}
	quitCh     chan struct{}
}

// New creates the loop with platform defaults from config.
func New(cfg *config.Config) *Loop {
	brush := stroke.NewBrush(stroke.DefaultBrushSize, stroke.DefaultBrushColor)
	if cfg != nil {
		brush = stroke.NewBrush(cfg.BrushSize, cfg.BrushColor)
	}
	return &Loop{
		selector:   overlay.NewSelector(),
		pool:       worker.New(0, nil),
		windows:    session.NewRegistry(),
		openWindow: gui.ShowFloatingWindow,
		brush:      brush,
		hotkeyCh:   make(chan struct{}, 4),
		quitCh:     make(chan struct{}),
	}
}

// StartHotkey registers the global hotkey and posts triggers into the loop.
func (l *Loop) StartHotkey(combo string) {
	if combo == "" {
		return
	}
	hotkey.Listen(combo, l.TriggerCapture)
}

// TriggerCapture requests a capture from any goroutine (hotkey, tray menu).
func (l *Loop) TriggerCapture() {
	select {
	case l.hotkeyCh <- struct{}{}:
	default:
	}
}

// Quit asks Run to return.
func (l *Loop) Quit() {
	select {
	case <-l.quitCh:
	default:
		close(l.quitCh)
	}
}

// Run processes triggers until ctx is cancelled or Quit is called. On the
// way out it closes every floating window and drains the export pool.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		l.windows.CloseAll()
		l.pool.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quitCh:
			return nil
		case <-l.hotkeyCh:
			l.handleCapture(ctx)
		}
	}
}

func (l *Loop) handleCapture(ctx context.Context) {
	res, cancelled, err := l.selector.Select(ctx)

	// Triggers that piled up while the overlay was open are a precondition
	// violation, silently dropped.
	for {
		select {
		case <-l.hotkeyCh:
			continue
		default:
		}
		break
	}

	if err != nil {
		log.Printf("eventloop: selection failed: %v", err)
		return
	}
	if cancelled {
		log.Printf("eventloop: selection cancelled")
		return
	}

	phys := geometry.ScaleToPhysical(res.Region, res.Frame.DevicePixelRatio)
	phys = phys.Intersect(res.Frame.Bounds())
	if phys.Empty() {
		// Degenerate geometry is a user cancellation, not an error.
		log.Printf("eventloop: selection intersected to empty, discarding capture")
		return
	}

	buf, err := screenshot.CropFrame(res.Frame, phys)
	if err != nil {
		log.Printf("eventloop: crop failed: %v", err)
		return
	}

	if err := l.openWindow(buf, l.brush, l.windows, l.exportBuffer); err != nil {
		log.Printf("eventloop: floating window failed: %v", err)
	}
}

// exportBuffer is the commit path shared by every floating window:
// fire-and-forget into the export pool, tooltip flash on success.
func (l *Loop) exportBuffer(img *image.RGBA) {
	submitted := l.pool.Submit(img, func(err error) {
		if err == nil {
			tray.FlashTooltip("Copied to clipboard", 2*time.Second)
		}
	})
	if !submitted {
		log.Printf("eventloop: export queue full, dropping commit")
	}
}
