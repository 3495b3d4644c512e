// Package overlay owns the region-selection step of a capture.
package overlay

import (
	"context"

	"screen-snip/src/geometry"
	"screen-snip/src/screenshot"
)

// Result is a committed selection: the logical region the user dragged out
// and the frame that was on screen while they dragged. Commit crops the
// frame so the floating window shows exactly the pixels the user saw.
type Result struct {
	Region geometry.Rect
	Frame  *screenshot.Frame
}

// Selector defines a synchronous region-selection API owned by the event
// loop. The call is blocking and MUST be invoked only from the single
// event-loop goroutine. Returns (result, cancelled, error); when cancelled
// is true the result is undefined and err is nil.
type Selector interface {
	Select(ctx context.Context) (Result, bool, error)
}

// NewSelector returns the platform implementation.
func NewSelector() Selector {
	return newPlatformSelector()
}
