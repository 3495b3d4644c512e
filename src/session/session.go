// Package session tracks the floating windows that are currently alive.
// Windows register on creation and unregister when closed; shutdown closes
// whatever is left.
package session

import (
	"log"
	"sync"
)

// Window is the closable handle a floating window registers under.
type Window interface {
	Close()
}

// Registry is safe for concurrent use: windows close themselves from their
// own UI threads while the event loop opens new ones.
type Registry struct {
	mu      sync.Mutex
	windows map[Window]struct{}
}

func NewRegistry() *Registry {
	return &Registry{windows: make(map[Window]struct{})}
}

// Add registers a newly opened floating window.
func (r *Registry) Add(w Window) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.windows[w] = struct{}{}
	log.Printf("session: floating window opened (%d live)", len(r.windows))
}

// Remove unregisters a window that has closed. Unknown windows are ignored,
// so Close paths may unregister more than once.
func (r *Registry) Remove(w Window) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.windows[w]; !ok {
		return
	}
	delete(r.windows, w)
	log.Printf("session: floating window closed (%d live)", len(r.windows))
}

// Count returns the number of live windows.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.windows)
}

// CloseAll closes every live window. Used at shutdown; Close triggers each
// window's own Remove, so the registry empties itself.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	open := make([]Window, 0, len(r.windows))
	for w := range r.windows {
		open = append(open, w)
	}
	r.mu.Unlock()

	for _, w := range open {
		w.Close()
	}
}
