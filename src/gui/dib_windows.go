//go:build windows

package gui

import (
	"image"
	"unsafe"

	"github.com/lxn/win"
)

// dib wraps a top-down 32-bit DIB section holding an RGBA image in BGRA
// order, selected into its own memory DC for BitBlt during WM_PAINT.
type dib struct {
	memDC win.HDC
	bmp   win.HBITMAP
	old   win.HGDIOBJ
	w, h  int32
}

func newDIB(img *image.RGBA) *dib {
	b := img.Bounds()
	w, h := int32(b.Dx()), int32(b.Dy())
	if w == 0 || h == 0 {
		return nil
	}

	memDC := win.CreateCompatibleDC(0)
	if memDC == 0 {
		return nil
	}

	bi := win.BITMAPINFO{
		BmiHeader: win.BITMAPINFOHEADER{
			BiSize:        uint32(unsafe.Sizeof(win.BITMAPINFOHEADER{})),
			BiWidth:       w,
			BiHeight:      -h, // negative for top-down
			BiPlanes:      1,
			BiBitCount:    32,
			BiCompression: win.BI_RGB,
		},
	}

	var pBits unsafe.Pointer
	bmp := win.CreateDIBSection(memDC, &bi.BmiHeader, win.DIB_RGB_COLORS, &pBits, 0, 0)
	if bmp == 0 {
		win.DeleteDC(memDC)
		return nil
	}

	// 32bpp rows are naturally DWORD-aligned: stride == w*4.
	dst := unsafe.Slice((*byte)(pBits), int(w)*int(h)*4)
	for y := 0; y < int(h); y++ {
		srcRow := img.Pix[y*img.Stride : y*img.Stride+int(w)*4]
		dstRow := dst[y*int(w)*4:]
		for x := 0; x < int(w); x++ {
			dstRow[x*4] = srcRow[x*4+2]   // B
			dstRow[x*4+1] = srcRow[x*4+1] // G
			dstRow[x*4+2] = srcRow[x*4]   // R
			dstRow[x*4+3] = srcRow[x*4+3] // A
		}
	}

	old := win.SelectObject(memDC, win.HGDIOBJ(bmp))
	return &dib{memDC: memDC, bmp: bmp, old: old, w: w, h: h}
}

// blit copies a sub-rectangle of the DIB onto hdc at (dstX, dstY).
func (d *dib) blit(hdc win.HDC, dstX, dstY, w, h, srcX, srcY int32) {
	win.BitBlt(hdc, dstX, dstY, w, h, d.memDC, srcX, srcY, win.SRCCOPY)
}

func (d *dib) release() {
	if d == nil {
		return
	}
	win.SelectObject(d.memDC, d.old)
	win.DeleteObject(win.HGDIOBJ(d.bmp))
	win.DeleteDC(d.memDC)
}
