//go:build !windows

package overlay

import (
	"context"
	"fmt"
)

type stubSelector struct{}

func newPlatformSelector() Selector { return &stubSelector{} }

func (s *stubSelector) Select(ctx context.Context) (Result, bool, error) {
	return Result{}, false, fmt.Errorf("interactive region selection not implemented for this platform")
}
