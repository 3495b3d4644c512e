//go:build windows

package overlay

import (
	"context"

	"screen-snip/src/gui"
)

// windowsSelector adapts the win32 overlay window to the synchronous API.
type windowsSelector struct{}

func newPlatformSelector() Selector { return &windowsSelector{} }

func (w *windowsSelector) Select(ctx context.Context) (Result, bool, error) {
	region, frame, cancelled, err := gui.RunCaptureOverlay()
	if err != nil {
		return Result{}, false, err
	}
	if cancelled {
		return Result{}, true, nil
	}

	// The overlay blocks; honor a shutdown that raced with it.
	select {
	case <-ctx.Done():
		return Result{}, false, ctx.Err()
	default:
		return Result{Region: region, Frame: frame}, false, nil
	}
}
