package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"screen-snip/src/clipboard"
	"screen-snip/src/config"
	"screen-snip/src/eventloop"
	"screen-snip/src/logutil"
	"screen-snip/src/screenshot"
	"screen-snip/src/tray"
)

// enableDPIAwareness attempts to set per-monitor DPI awareness on Windows to fix scaling issues
func enableDPIAwareness() {
	if runtime.GOOS != "windows" {
		return
	}
	// Prefer per-monitor DPI awareness via Shcore.SetProcessDpiAwareness (Win 8.1+)
	shcore := syscall.NewLazyDLL("Shcore.dll")
	setProcessDpiAwareness := shcore.NewProc("SetProcessDpiAwareness")
	const PROCESS_PER_MONITOR_DPI_AWARE = 2
	if err := setProcessDpiAwareness.Find(); err == nil {
		_, _, _ = setProcessDpiAwareness.Call(uintptr(PROCESS_PER_MONITOR_DPI_AWARE))
		return
	}
	// Fallback: user32.SetProcessDPIAware (Vista+)
	user32 := syscall.NewLazyDLL("user32.dll")
	setProcessDPIAware := user32.NewProc("SetProcessDPIAware")
	if err := setProcessDPIAware.Find(); err == nil {
		_, _, _ = setProcessDPIAware.Call()
	}
}

func main() {
	// Ensure DPI awareness before creating any windows or querying metrics
	enableDPIAwareness()

	// Lock main goroutine to its own OS thread; the tray loop runs here and
	// must not share a message queue with the capture/floating windows
	runtime.LockOSThread()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logutil.Setup(cfg.EnableFileLogging)

	screenshot.Init()
	if err := clipboard.Init(); err != nil {
		log.Fatalf("Failed to initialize clipboard: %v", err)
	}

	log.Printf("Screen Snip initialized")
	log.Printf("Hotkey: %s", cfg.Hotkey)
	log.Printf("Brush: %dpx #%02X%02X%02X", cfg.BrushSize, cfg.BrushColor.R, cfg.BrushColor.G, cfg.BrushColor.B)

	loop := eventloop.New(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop.StartHotkey(cfg.Hotkey)

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := loop.Run(ctx); err != nil {
			log.Printf("event loop stopped: %v", err)
		}
		// Unblock the tray loop on the main thread, whatever ended us.
		tray.Quit()
	}()

	// Handle SIGINT/SIGTERM
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		loop.Quit()
	}()

	// systray owns the main thread until quit. The Quit menu stops the event
	// loop; the event loop stops the tray on its way out.
	tray.Run(loop.TriggerCapture, loop.Quit)

	<-loopDone
}
