//go:build windows

package gui

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"runtime"
	"syscall"
	"time"
	"unsafe"

	"github.com/lxn/win"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sys/windows"

	"screen-snip/src/geometry"
	"screen-snip/src/screenshot"
	"screen-snip/src/selection"
)

// One overlay at a time: the event loop serializes captures, so package
// globals are safe here (same layout as a wndproc cannot carry a closure).
var (
	overlayHwnd    win.HWND
	overlayMachine *selection.Machine
	overlayDim     *dib
	overlayBright  *dib
	overlayResult  chan overlayOutcome
	overlayCursor  win.HCURSOR
	overlayEscDown bool
)

type overlayOutcome struct {
	region    geometry.Rect
	cancelled bool
}

const (
	overlayKeyPollTimerID    = 1
	overlayKeyPollIntervalMs = 25
	dimAlpha                 = 90 // out of 255, matching a light smoke veil
)

var (
	user32DLL                    = windows.NewLazySystemDLL("user32.dll")
	procAllowSetForegroundWindow = user32DLL.NewProc("AllowSetForegroundWindow")
	procGetAsyncKeyState         = user32DLL.NewProc("GetAsyncKeyState")
	procFillRect                 = user32DLL.NewProc("FillRect")
	procGetCurrentProcessId      = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetCurrentProcessId")
)

// RunCaptureOverlay grabs the primary display, runs the fullscreen
// rubber-band overlay over it, and blocks until the gesture commits or
// cancels. Must run on the event-loop goroutine.
func RunCaptureOverlay() (geometry.Rect, *screenshot.Frame, bool, error) {
	// The message queue is per-thread; the window and its GetMessage loop
	// must share one.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	frame, err := screenshot.GrabPrimary()
	if err != nil {
		return geometry.Rect{}, nil, false, err
	}

	lw, lh := frame.LogicalWidth, frame.LogicalHeight
	bright := presentAtLogicalSize(frame)
	dim := dimmed(bright)

	overlayBright = newDIB(bright)
	overlayDim = newDIB(dim)
	defer func() {
		overlayBright.release()
		overlayDim.release()
		overlayBright, overlayDim = nil, nil
	}()
	if overlayBright == nil || overlayDim == nil {
		return geometry.Rect{}, nil, false, fmt.Errorf("failed to build overlay backdrop")
	}

	overlayResult = make(chan overlayOutcome, 1)
	overlayEscDown = false
	overlayMachine = selection.New(selection.Callbacks{
		Committed: func(r geometry.Rect) { overlayResult <- overlayOutcome{region: r} },
		Cancelled: func() { overlayResult <- overlayOutcome{cancelled: true} },
		Redraw: func() {
			if overlayHwnd != 0 {
				win.InvalidateRect(overlayHwnd, nil, false)
				win.UpdateWindow(overlayHwnd)
			}
		},
	})
	defer func() { overlayMachine = nil }()

	if overlayCursor == 0 {
		overlayCursor = win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_CROSS))
	}

	className := syscall.StringToUTF16Ptr(fmt.Sprintf("SnipOverlay_%d", time.Now().UnixNano()))
	wndClass := win.WNDCLASSEX{
		CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
		Style:         win.CS_HREDRAW | win.CS_VREDRAW,
		LpfnWndProc:   syscall.NewCallback(overlayWndProc),
		HInstance:     win.GetModuleHandle(nil),
		HCursor:       overlayCursor,
		HbrBackground: 0, // painted entirely by WM_PAINT
		LpszClassName: className,
	}
	if win.RegisterClassEx(&wndClass) == 0 {
		return geometry.Rect{}, nil, false, fmt.Errorf("failed to register overlay window class")
	}
	defer win.UnregisterClass(className)

	overlayHwnd = win.CreateWindowEx(
		win.WS_EX_TOPMOST,
		className,
		syscall.StringToUTF16Ptr("Snip - drag to select, ESC cancels"),
		win.WS_POPUP|win.WS_VISIBLE,
		0, 0, int32(lw), int32(lh),
		0, 0, win.GetModuleHandle(nil), nil,
	)
	if overlayHwnd == 0 {
		return geometry.Rect{}, nil, false, fmt.Errorf("failed to create overlay window")
	}
	defer func() { overlayHwnd = 0 }()

	win.ShowWindow(overlayHwnd, win.SW_SHOW)
	if pid, _, _ := procGetCurrentProcessId.Call(); pid != 0 {
		procAllowSetForegroundWindow.Call(pid)
	}
	win.SetForegroundWindow(overlayHwnd)
	win.BringWindowToTop(overlayHwnd)
	win.SetFocus(overlayHwnd)
	win.UpdateWindow(overlayHwnd)

	if win.SetTimer(overlayHwnd, overlayKeyPollTimerID, overlayKeyPollIntervalMs, 0) == 0 {
		log.Printf("gui: overlay key poll timer failed to start")
	}

	var msg win.MSG
	for {
		ret := win.GetMessage(&msg, 0, 0, 0)
		if ret == 0 || ret == -1 {
			break
		}
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)

		select {
		case outcome := <-overlayResult:
			win.DestroyWindow(overlayHwnd)
			drainThreadQueue()
			if outcome.cancelled {
				return geometry.Rect{}, nil, true, nil
			}
			return outcome.region, frame, false, nil
		default:
		}
	}

	win.DestroyWindow(overlayHwnd)
	return geometry.Rect{}, nil, true, nil
}

// drainThreadQueue disposes of messages queued between the outcome firing
// and DestroyWindow, so the next overlay on this thread starts clean.
func drainThreadQueue() {
	var msg win.MSG
	for win.PeekMessage(&msg, 0, 0, 0, win.PM_REMOVE) {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
}

func overlayWndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	m := overlayMachine
	if m == nil {
		return win.DefWindowProc(hwnd, msg, wParam, lParam)
	}

	switch msg {
	case win.WM_LBUTTONDOWN:
		win.SetCapture(hwnd)
		m.HandlePress(selection.ButtonPrimary, lparamPoint(lParam))
		return 0

	case win.WM_MOUSEMOVE:
		m.HandleMove(lparamPoint(lParam))
		return 0

	case win.WM_LBUTTONUP:
		win.ReleaseCapture()
		m.HandleRelease(selection.ButtonPrimary, lparamPoint(lParam))
		return 0

	case win.WM_RBUTTONDOWN, win.WM_RBUTTONUP:
		// Secondary button plays no part in the gesture.
		return 0

	case win.WM_PAINT:
		var ps win.PAINTSTRUCT
		hdc := win.BeginPaint(hwnd, &ps)
		paintOverlay(hdc)
		win.EndPaint(hwnd, &ps)
		return 0

	case win.WM_KEYDOWN:
		if wParam == win.VK_ESCAPE {
			overlayEscDown = true
			m.Cancel()
		}
		return 0

	case win.WM_KEYUP, win.WM_SYSKEYUP:
		if wParam == win.VK_ESCAPE {
			overlayEscDown = false
		}
		return 0

	case win.WM_TIMER:
		if wParam == overlayKeyPollTimerID {
			pollOverlayEscape()
		}
		return 0

	case win.WM_SETCURSOR:
		if overlayCursor != 0 {
			win.SetCursor(overlayCursor)
		}
		return 1

	case win.WM_NCHITTEST:
		// Force client area so the window receives all mouse input.
		return uintptr(win.HTCLIENT)

	case win.WM_DESTROY:
		win.KillTimer(hwnd, overlayKeyPollTimerID)
		return 0
	}

	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

// pollOverlayEscape catches ESC even when key messages are routed elsewhere,
// same as the focus quirks fullscreen popups are prone to.
func pollOverlayEscape() {
	state, _, _ := procGetAsyncKeyState.Call(uintptr(win.VK_ESCAPE))
	s := uint16(state)
	isDown := s&0x8000 != 0
	wasPressed := s&0x0001 != 0
	if !overlayEscDown && (isDown || wasPressed) {
		if overlayMachine != nil {
			overlayMachine.Cancel()
		}
	}
	overlayEscDown = isDown
}

// paintOverlay draws the dimmed backdrop, the undimmed hole inside the
// rubber band, and the selection border.
func paintOverlay(hdc win.HDC) {
	if overlayDim == nil {
		return
	}
	overlayDim.blit(hdc, 0, 0, overlayDim.w, overlayDim.h, 0, 0)

	rect, ok := overlayMachine.Rect()
	if !ok || rect.Empty() {
		return
	}
	overlayBright.blit(hdc,
		int32(rect.X), int32(rect.Y),
		int32(rect.Width), int32(rect.Height),
		int32(rect.X), int32(rect.Y))
	drawSelectionBorder(hdc, rect)
}

func drawSelectionBorder(hdc win.HDC, r geometry.Rect) {
	gdi32 := windows.NewLazySystemDLL("gdi32.dll")
	createPen := gdi32.NewProc("CreatePen")
	rectangle := gdi32.NewProc("Rectangle")

	// COLORREF is BGR: 0x0050_50FF = (255,80,80).
	accentPen, _, _ := createPen.Call(0, 2, 0x005050FF)
	oldPen := win.SelectObject(hdc, win.HGDIOBJ(accentPen))
	oldBrush := win.SelectObject(hdc, win.GetStockObject(win.NULL_BRUSH))

	rectangle.Call(uintptr(hdc),
		uintptr(int32(r.X)), uintptr(int32(r.Y)),
		uintptr(int32(r.X+r.Width)), uintptr(int32(r.Y+r.Height)))

	win.SelectObject(hdc, oldPen)
	win.SelectObject(hdc, oldBrush)
	win.DeleteObject(win.HGDIOBJ(accentPen))
}

// presentAtLogicalSize scales the physical frame down/up to the logical
// overlay coordinate space, so selection points index it directly.
func presentAtLogicalSize(f *screenshot.Frame) *image.RGBA {
	b := f.Img.Bounds()
	if b.Dx() == f.LogicalWidth && b.Dy() == f.LogicalHeight {
		return f.Img
	}
	dst := image.NewRGBA(image.Rect(0, 0, f.LogicalWidth, f.LogicalHeight))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), f.Img, b, xdraw.Src, nil)
	return dst
}

// dimmed returns a copy of img with a uniform dark veil.
func dimmed(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)

	keep := uint32(255 - dimAlpha)
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = uint8(uint32(dst.Pix[i]) * keep / 255)
		dst.Pix[i+1] = uint8(uint32(dst.Pix[i+1]) * keep / 255)
		dst.Pix[i+2] = uint8(uint32(dst.Pix[i+2]) * keep / 255)
	}
	return dst
}

func lparamPoint(lParam uintptr) geometry.Point {
	x := int32(int16(win.LOWORD(uint32(lParam))))
	y := int32(int16(win.HIWORD(uint32(lParam))))
	return geometry.Point{X: int(x), Y: int(y)}
}
