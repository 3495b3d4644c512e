// Package tray puts the resident process in the system tray: a Capture
// Region menu entry (fallback when hotkey registration fails), Quit, and a
// tooltip that doubles as lightweight feedback after clipboard exports.
package tray

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/getlantern/systray"
)

const defaultTooltip = "Screen Snip"

var ready atomic.Bool

// Run starts the tray and blocks until Quit. Must be called from the main
// goroutine on platforms that require it; onCapture/onQuit are invoked from
// the tray's click goroutine and must hand off, not do work inline.
func Run(onCapture, onQuit func()) {
	systray.Run(func() {
		systray.SetIcon(IconPNG())
		systray.SetTitle("Screen Snip")
		systray.SetTooltip(defaultTooltip)

		mCapture := systray.AddMenuItem("Capture Region", "Select a screen region to snip")
		mQuit := systray.AddMenuItem("Quit", "Quit Screen Snip")
		ready.Store(true)

		go func() {
			for {
				select {
				case <-mCapture.ClickedCh:
					if onCapture != nil {
						onCapture()
					}
				case <-mQuit.ClickedCh:
					if onQuit != nil {
						onQuit()
					}
					systray.Quit()
					return
				}
			}
		}()
	}, func() {
		ready.Store(false)
		log.Printf("tray: exited")
	})
}

// Quit tears the tray down. Safe to call from any goroutine, and more than
// once.
func Quit() {
	systray.Quit()
}

// UpdateTooltip sets the tray tooltip. Safe to call before the tray is up.
func UpdateTooltip(text string) {
	if !ready.Load() {
		return
	}
	systray.SetTooltip(text)
}

// FlashTooltip shows text briefly, then restores the default tooltip.
func FlashTooltip(text string, d time.Duration) {
	if !ready.Load() {
		return
	}
	systray.SetTooltip(text)
	time.AfterFunc(d, func() {
		if ready.Load() {
			systray.SetTooltip(defaultTooltip)
		}
	})
}
