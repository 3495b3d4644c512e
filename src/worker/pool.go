// Package worker runs clipboard exports off the UI path.
package worker

import (
	"image"
	"log"
	"runtime"
	"sync"

	"screen-snip/src/clipboard"
)

// ResultCallback is invoked when an export finishes (from a worker
// goroutine). Pass a closure that posts back into the event loop safely.
type ResultCallback func(err error)

// WriteFunc delivers one buffer to the clipboard. Replaceable for tests.
type WriteFunc func(*image.RGBA) error

// Pool is a fixed-size export pool with a 1-slot input queue (strict
// back-pressure): a commit while the queue is full is dropped and the user
// re-invokes.
type Pool struct {
	jobs  chan job
	write WriteFunc
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

type job struct {
	img *image.RGBA
	cb  ResultCallback
}

// New creates an export pool. Size defaults to NumCPU when size<=0; a nil
// write uses the clipboard collaborator.
func New(size int, write WriteFunc) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	if write == nil {
		write = clipboard.WriteImage
	}
	p := &Pool{jobs: make(chan job, 1), write: write}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				b := j.img.Bounds()
				log.Printf("worker: exporting %dx%d buffer", b.Dx(), b.Dy())
				err := p.write(j.img)
				if err != nil {
					log.Printf("worker: export failed: %v", err)
				}
				if j.cb != nil {
					j.cb(err)
				}
			}
		}()
	}
}

// Submit enqueues an export if the single-slot queue is free.
// Returns false if dropped or if the pool already shut down: a floating
// window can still fire a queued commit after Close during teardown.
func (p *Pool) Submit(img *image.RGBA, cb ResultCallback) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	select {
	case p.jobs <- job{img: img, cb: cb}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work. Idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
