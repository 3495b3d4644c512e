package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
)

var (
	iconOnce  sync.Once
	iconBytes []byte
)

// IconPNG returns a 16x16 selection-corners glyph, rendered once and encoded
// as PNG for systray.
func IconPNG() []byte {
	iconOnce.Do(func() {
		img := image.NewRGBA(image.Rect(0, 0, 16, 16))
		accent := color.RGBA{R: 255, G: 80, B: 80, A: 255}
		// Four corner brackets of a selection rectangle.
		for i := 0; i < 5; i++ {
			img.SetRGBA(1+i, 1, accent)
			img.SetRGBA(1, 1+i, accent)
			img.SetRGBA(14-i, 1, accent)
			img.SetRGBA(14, 1+i, accent)
			img.SetRGBA(1+i, 14, accent)
			img.SetRGBA(1, 14-i, accent)
			img.SetRGBA(14-i, 14, accent)
			img.SetRGBA(14, 14-i, accent)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err == nil {
			iconBytes = buf.Bytes()
		}
	})
	return iconBytes
}
