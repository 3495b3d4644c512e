// Package hotkey registers the global capture hotkey. The listener runs on
// its own goroutine; the callback must hand off to the event loop (it is
// serialized there through a channel) rather than doing work inline.
package hotkey

import (
	"log"
	"strings"
	"sync"

	gohook "github.com/robotn/gohook"
)

// Listen starts a background listener for the configured combo (e.g. "F1",
// "Ctrl+Alt+S") and invokes callback each time the full combination is down.
// Registration problems are logged and non-fatal: capture stays reachable
// from the tray menu.
func Listen(combo string, callback func()) {
	keys := parseHotkey(combo)

	type keyState struct {
		name     string
		rawcodes []uint16
		pressed  bool
	}

	var keyStates []keyState
	for _, keyName := range keys {
		rawcodes := keyNameToRawcodes(keyName)
		if len(rawcodes) == 0 {
			log.Printf("hotkey: cannot map key %q to rawcodes, combo %q may not work", keyName, combo)
			continue
		}
		keyStates = append(keyStates, keyState{name: keyName, rawcodes: rawcodes})
	}

	if len(keyStates) == 0 {
		log.Printf("hotkey: no valid keys in combo %q, hotkey unavailable", combo)
		return
	}
	log.Printf("hotkey: listening for %s", combo)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("hotkey: panic in listener goroutine: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("hotkey: gohook.Start() returned nil channel")
			return
		}

		var mu sync.Mutex
		for ev := range evChan {
			switch ev.Kind {
			case gohook.KeyDown:
				mu.Lock()
				for i := range keyStates {
					for _, rc := range keyStates[i].rawcodes {
						if ev.Rawcode == rc {
							keyStates[i].pressed = true
							break
						}
					}
				}
				allPressed := true
				for i := range keyStates {
					if !keyStates[i].pressed {
						allPressed = false
						break
					}
				}
				if allPressed {
					for i := range keyStates {
						keyStates[i].pressed = false
					}
					mu.Unlock()
					log.Printf("hotkey: %s triggered", combo)
					if callback != nil {
						callback()
					}
				} else {
					mu.Unlock()
				}
			case gohook.KeyUp:
				mu.Lock()
				for i := range keyStates {
					for _, rc := range keyStates[i].rawcodes {
						if ev.Rawcode == rc {
							keyStates[i].pressed = false
							break
						}
					}
				}
				mu.Unlock()
			}
		}
		log.Printf("hotkey: event channel closed")
	}()
}

// parseHotkey converts a combo string like "Ctrl+Alt+s" to normalized key names.
func parseHotkey(combo string) []string {
	parts := strings.Split(strings.ToLower(combo), "+")
	var keys []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch part {
		case "win", "cmd", "super":
			keys = append(keys, "cmd")
		default:
			keys = append(keys, part)
		}
	}
	return keys
}

// keyNameToRawcodes maps a key name to its Windows virtual-key rawcodes;
// modifiers get both left and right variants.
func keyNameToRawcodes(keyName string) []uint16 {
	keyName = strings.ToLower(strings.TrimSpace(keyName))

	switch keyName {
	case "ctrl":
		return []uint16{162, 163} // VK_LCONTROL, VK_RCONTROL
	case "alt":
		return []uint16{164, 165} // VK_LMENU, VK_RMENU
	case "shift":
		return []uint16{160, 161} // VK_LSHIFT, VK_RSHIFT
	case "cmd":
		return []uint16{91, 92} // VK_LWIN, VK_RWIN
	case "space":
		return []uint16{32}
	case "esc", "escape":
		return []uint16{27}
	case "printscreen", "prtsc":
		return []uint16{44}
	}

	// Letters a-z: VK 0x41-0x5A.
	if len(keyName) == 1 && keyName[0] >= 'a' && keyName[0] <= 'z' {
		return []uint16{uint16(keyName[0] - 'a' + 65)}
	}
	// Digits 0-9: VK 0x30-0x39.
	if len(keyName) == 1 && keyName[0] >= '0' && keyName[0] <= '9' {
		return []uint16{uint16(keyName[0] - '0' + 48)}
	}
	// Function keys f1-f12: VK 0x70-0x7B.
	if len(keyName) >= 2 && keyName[0] == 'f' {
		n := 0
		for _, r := range keyName[1:] {
			if r < '0' || r > '9' {
				return nil
			}
			n = n*10 + int(r-'0')
		}
		if n >= 1 && n <= 12 {
			return []uint16{uint16(111 + n)}
		}
	}
	return nil
}
