//go:build windows

package gui

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"runtime"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"github.com/lxn/win"

	"screen-snip/src/canvas"
	"screen-snip/src/geometry"
	"screen-snip/src/selection"
	"screen-snip/src/session"
	"screen-snip/src/stroke"
)

// Toolbar geometry (client pixels). The strip sits above the canvas; the
// color popup hangs below the pen toggle when open.
const (
	toolbarHeight   = 28
	buttonWidth     = 52
	buttonPad       = 4
	swatchSize      = 18
	swatchPad       = 4
	wmAppClose      = win.WM_APP + 1
	wheelDeltaNotch = 120
)

// popupColors is the fixed palette offered by the pen popup.
var popupColors = []colorEntry{
	{0xFF, 0x50, 0x50}, // accent red
	{0x20, 0xC0, 0x40},
	{0x30, 0x70, 0xFF},
	{0xFF, 0xD0, 0x30},
	{0x10, 0x10, 0x10},
	{0xF0, 0xF0, 0xF0},
}

type colorEntry struct{ r, g, b uint8 }

func imageColor(c colorEntry) color.RGBA {
	return color.RGBA{R: c.r, G: c.g, B: c.b, A: 0xFF}
}

// floatingWindow is one live result window: its controller, its hwnd, and
// the host glue between them. All fields after creation are touched only on
// the window's own thread, except the registry handle.
type floatingWindow struct {
	hwnd win.HWND
	ctrl *canvas.Controller
	reg  *session.Registry

	toolbarShown bool // height the window was last sized for
}

var (
	floatMu      sync.Mutex
	floatWindows = map[win.HWND]*floatingWindow{}
)

func lookupFloating(hwnd win.HWND) *floatingWindow {
	floatMu.Lock()
	defer floatMu.Unlock()
	return floatWindows[hwnd]
}

// Close posts a close request; safe from any goroutine (session shutdown).
func (w *floatingWindow) Close() {
	win.PostMessage(w.hwnd, wmAppClose, 0, 0)
}

// Host interface: all four are only ever called from the window's thread
// (inside controller handlers running under the wndproc).

func (w *floatingWindow) MoveBy(dx, dy int) {
	var r win.RECT
	if !win.GetWindowRect(w.hwnd, &r) {
		return
	}
	win.SetWindowPos(w.hwnd, 0, r.Left+int32(dx), r.Top+int32(dy), 0, 0,
		win.SWP_NOSIZE|win.SWP_NOZORDER|win.SWP_NOACTIVATE)
}

func (w *floatingWindow) SetPresentationSize(pw, ph int) {
	w.applyWindowSize(pw, ph)
}

func (w *floatingWindow) RequestRedraw() {
	// Toolbar visibility is controller state; resize when it changed.
	if w.ctrl.ToolbarVisible() != w.toolbarShown {
		pw, ph := w.ctrl.PresentationSize()
		w.applyWindowSize(pw, ph)
	}
	win.InvalidateRect(w.hwnd, nil, true)
}

func (w *floatingWindow) applyWindowSize(pw, ph int) {
	w.toolbarShown = w.ctrl.ToolbarVisible()
	h := ph
	if w.toolbarShown {
		h += toolbarHeight
	}
	win.SetWindowPos(w.hwnd, 0, 0, 0, int32(pw), int32(h),
		win.SWP_NOMOVE|win.SWP_NOZORDER|win.SWP_NOACTIVATE)
	win.InvalidateRect(w.hwnd, nil, true)
}

// canvasOrigin is the client-space Y where the canvas starts.
func (w *floatingWindow) canvasOrigin() int {
	if w.ctrl.ToolbarVisible() {
		return toolbarHeight
	}
	return 0
}

// ShowFloatingWindow opens a frameless always-on-top window around buf on a
// dedicated OS thread and returns once it is registered. The window owns
// buf from here on.
func ShowFloatingWindow(buf *image.RGBA, b stroke.Brush, reg *session.Registry, export canvas.ExportFunc) error {
	errCh := make(chan error, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		w := &floatingWindow{reg: reg}
		w.ctrl = canvas.New(buf, b, w, export)

		className := syscall.StringToUTF16Ptr(fmt.Sprintf("SnipFloat_%d", time.Now().UnixNano()))
		wndClass := win.WNDCLASSEX{
			CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
			Style:         win.CS_HREDRAW | win.CS_VREDRAW,
			LpfnWndProc:   syscall.NewCallback(floatingWndProc),
			HInstance:     win.GetModuleHandle(nil),
			HCursor:       win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_ARROW)),
			HbrBackground: 0,
			LpszClassName: className,
		}
		if win.RegisterClassEx(&wndClass) == 0 {
			errCh <- fmt.Errorf("failed to register floating window class")
			return
		}
		defer win.UnregisterClass(className)

		pw, ph := w.ctrl.PresentationSize()
		hwnd := win.CreateWindowEx(
			win.WS_EX_TOPMOST|win.WS_EX_TOOLWINDOW,
			className,
			syscall.StringToUTF16Ptr("Snip"),
			win.WS_POPUP,
			64, 64, int32(pw), int32(ph+toolbarHeight),
			0, 0, win.GetModuleHandle(nil), nil,
		)
		if hwnd == 0 {
			errCh <- fmt.Errorf("failed to create floating window")
			return
		}
		w.hwnd = hwnd
		w.toolbarShown = true

		floatMu.Lock()
		floatWindows[hwnd] = w
		floatMu.Unlock()
		reg.Add(w)

		win.ShowWindow(hwnd, win.SW_SHOW)
		win.SetForegroundWindow(hwnd)
		win.SetFocus(hwnd)
		win.UpdateWindow(hwnd)
		errCh <- nil

		var msg win.MSG
		for {
			ret := win.GetMessage(&msg, 0, 0, 0)
			if ret == 0 || ret == -1 {
				break
			}
			win.TranslateMessage(&msg)
			win.DispatchMessage(&msg)
		}
		log.Printf("gui: floating window thread exiting")
	}()

	return <-errCh
}

func floatingWndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	w := lookupFloating(hwnd)
	if w == nil {
		// Messages before registration (WM_CREATE etc).
		if msg == win.WM_DESTROY {
			win.PostQuitMessage(0)
			return 0
		}
		return win.DefWindowProc(hwnd, msg, wParam, lParam)
	}

	switch msg {
	case win.WM_LBUTTONDOWN:
		win.SetForegroundWindow(hwnd)
		win.SetFocus(hwnd)
		win.SetCapture(hwnd)
		p := lparamPoint(lParam)
		if w.hitToolbar(p) {
			return 0
		}
		w.ctrl.OnPress(selection.ButtonPrimary, w.toCanvas(p), cursorPos())
		return 0

	case win.WM_MOUSEMOVE:
		w.ctrl.OnMove(w.toCanvas(lparamPoint(lParam)), cursorPos())
		return 0

	case win.WM_LBUTTONUP:
		win.ReleaseCapture()
		w.ctrl.OnRelease(selection.ButtonPrimary)
		return 0

	case win.WM_RBUTTONDOWN, win.WM_RBUTTONUP:
		return 0

	case win.WM_MOUSEWHEEL:
		notches := int(int16(win.HIWORD(uint32(wParam)))) / wheelDeltaNotch
		// Wheel coordinates arrive in screen space.
		pt := win.POINT{X: int32(int16(win.LOWORD(uint32(lParam)))), Y: int32(int16(win.HIWORD(uint32(lParam))))}
		win.ScreenToClient(hwnd, &pt)
		local := geometry.Point{X: int(pt.X), Y: int(pt.Y)}
		if w.ctrl.ToolbarVisible() && w.sizeControlRect().contains(local) {
			w.ctrl.OnBrushWheel(notches)
		} else {
			w.ctrl.OnWheel(notches)
		}
		return 0

	case win.WM_KEYDOWN:
		switch wParam {
		case win.VK_ESCAPE:
			w.ctrl.OnKey(canvas.KeyEscape)
		case win.VK_SPACE:
			w.ctrl.OnKey(canvas.KeySpace)
		}
		return 0

	case win.WM_PAINT:
		var ps win.PAINTSTRUCT
		hdc := win.BeginPaint(hwnd, &ps)
		w.paint(hdc)
		win.EndPaint(hwnd, &ps)
		return 0

	case win.WM_NCHITTEST:
		return uintptr(win.HTCLIENT)

	case wmAppClose, win.WM_CLOSE:
		win.DestroyWindow(hwnd)
		return 0

	case win.WM_DESTROY:
		floatMu.Lock()
		delete(floatWindows, hwnd)
		floatMu.Unlock()
		w.reg.Remove(w)
		win.PostQuitMessage(0)
		return 0
	}

	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

// hitToolbar routes presses on the tool strip and the color popup.
// Returns true when the press was consumed by a control.
func (w *floatingWindow) hitToolbar(p geometry.Point) bool {
	if w.ctrl.ColorPopupOpen() {
		if idx, ok := w.swatchAt(p); ok {
			c := popupColors[idx]
			w.ctrl.SetBrushColor(imageColor(c))
			return true
		}
	}
	if !w.ctrl.ToolbarVisible() || p.Y >= toolbarHeight {
		return false
	}
	switch {
	case w.penButtonRect().contains(p):
		w.ctrl.TogglePen()
	case w.copyButtonRect().contains(p):
		w.ctrl.Commit()
	case w.sizeControlRect().contains(p):
		// Size changes ride the wheel, not clicks.
	}
	return true
}

type clientRect struct{ x, y, w, h int }

func (r clientRect) contains(p geometry.Point) bool {
	return p.X >= r.x && p.X < r.x+r.w && p.Y >= r.y && p.Y < r.y+r.h
}

func (w *floatingWindow) penButtonRect() clientRect {
	return clientRect{buttonPad, buttonPad, buttonWidth, toolbarHeight - 2*buttonPad}
}

func (w *floatingWindow) sizeControlRect() clientRect {
	return clientRect{buttonPad*2 + buttonWidth, buttonPad, buttonWidth, toolbarHeight - 2*buttonPad}
}

func (w *floatingWindow) copyButtonRect() clientRect {
	return clientRect{buttonPad*3 + buttonWidth*2, buttonPad, buttonWidth, toolbarHeight - 2*buttonPad}
}

// swatchAt maps a press to a popup color index. The popup is a single row
// anchored below the pen toggle.
func (w *floatingWindow) swatchAt(p geometry.Point) (int, bool) {
	base := w.penButtonRect()
	y := base.y + base.h + buttonPad
	if p.Y < y || p.Y >= y+swatchSize {
		return 0, false
	}
	for i := range popupColors {
		x := base.x + i*(swatchSize+swatchPad)
		if p.X >= x && p.X < x+swatchSize {
			return i, true
		}
	}
	return 0, false
}

func (w *floatingWindow) toCanvas(p geometry.Point) geometry.Point {
	return geometry.Point{X: p.X, Y: p.Y - w.canvasOrigin()}
}

func (w *floatingWindow) paint(hdc win.HDC) {
	origin := int32(w.canvasOrigin())

	rendered := w.ctrl.Render()
	if d := newDIB(rendered); d != nil {
		d.blit(hdc, 0, origin, d.w, d.h, 0, 0)
		d.release()
	}

	if w.ctrl.ToolbarVisible() {
		w.paintToolbar(hdc)
	}
	if w.ctrl.ColorPopupOpen() {
		w.paintColorPopup(hdc)
	}
}

func (w *floatingWindow) paintToolbar(hdc win.HDC) {
	var client win.RECT
	win.GetClientRect(w.hwnd, &client)

	fillClientRect(hdc, clientRect{0, 0, int(client.Right), toolbarHeight}, colorref(40, 40, 40))

	pen := w.penButtonRect()
	penBg := colorref(64, 64, 64)
	if w.ctrl.PenActive() {
		penBg = colorref(200, 60, 60)
	}
	fillClientRect(hdc, pen, penBg)
	labelButton(hdc, pen, "PEN")

	size := w.sizeControlRect()
	fillClientRect(hdc, size, colorref(64, 64, 64))
	labelButton(hdc, size, fmt.Sprintf("%d px", w.ctrl.Brush().Size))

	cp := w.copyButtonRect()
	fillClientRect(hdc, cp, colorref(64, 64, 64))
	labelButton(hdc, cp, "COPY")
}

func (w *floatingWindow) paintColorPopup(hdc win.HDC) {
	base := w.penButtonRect()
	y := base.y + base.h + buttonPad
	for i, c := range popupColors {
		x := base.x + i*(swatchSize+swatchPad)
		fillClientRect(hdc, clientRect{x, y, swatchSize, swatchSize}, colorref(c.r, c.g, c.b))
	}
}

func fillClientRect(hdc win.HDC, r clientRect, color win.COLORREF) {
	rect := win.RECT{Left: int32(r.x), Top: int32(r.y), Right: int32(r.x + r.w), Bottom: int32(r.y + r.h)}
	brush := win.CreateBrushIndirect(&win.LOGBRUSH{LbStyle: win.BS_SOLID, LbColor: color})
	procFillRect.Call(uintptr(hdc), uintptr(unsafe.Pointer(&rect)), uintptr(brush))
	win.DeleteObject(win.HGDIOBJ(brush))
}

func labelButton(hdc win.HDC, r clientRect, text string) {
	win.SetBkMode(hdc, win.TRANSPARENT)
	win.SetTextColor(hdc, colorref(235, 235, 235))
	win.TextOut(hdc, int32(r.x+6), int32(r.y+3), syscall.StringToUTF16Ptr(text), int32(len(text)))
}

func cursorPos() geometry.Point {
	var pt win.POINT
	win.GetCursorPos(&pt)
	return geometry.Point{X: int(pt.X), Y: int(pt.Y)}
}

func colorref(r, g, b uint8) win.COLORREF {
	return win.COLORREF(uint32(r) | uint32(g)<<8 | uint32(b)<<16)
}
