package worker

import (
	"errors"
	"image"
	"sync"
	"testing"
	"time"
)

func TestSubmitDeliversToWriter(t *testing.T) {
	var mu sync.Mutex
	var wrote []*image.RGBA
	done := make(chan error, 1)

	p := New(1, func(img *image.RGBA) error {
		mu.Lock()
		wrote = append(wrote, img)
		mu.Unlock()
		return nil
	})
	defer p.Close()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if !p.Submit(img, func(err error) { done <- err }) {
		t.Fatal("submit dropped on an empty queue")
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("export callback error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("export never completed")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(wrote) != 1 || wrote[0] != img {
		t.Fatalf("writer saw %d buffers", len(wrote))
	}
}

func TestSubmitReportsWriteError(t *testing.T) {
	wantErr := errors.New("clipboard unavailable")
	done := make(chan error, 1)
	p := New(1, func(*image.RGBA) error { return wantErr })
	defer p.Close()

	p.Submit(image.NewRGBA(image.Rect(0, 0, 1, 1)), func(err error) { done <- err })
	select {
	case err := <-done:
		if !errors.Is(err, wantErr) {
			t.Fatalf("callback err = %v, want %v", err, wantErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("export never completed")
	}
}

func TestBackPressureDropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	p := New(1, func(*image.RGBA) error {
		<-block
		return nil
	})
	defer func() {
		close(block)
		p.Close()
	}()

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	// First submit occupies the worker, second fills the 1-slot queue.
	if !p.Submit(img, nil) {
		t.Fatal("first submit dropped")
	}
	// Give the worker a moment to pick up the first job.
	deadline := time.Now().Add(time.Second)
	for !p.Submit(img, nil) {
		if time.Now().After(deadline) {
			t.Fatal("queue slot never freed for the second submit")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if p.Submit(img, nil) {
		t.Fatal("third submit accepted while worker blocked and queue full")
	}
}

func TestSubmitAfterCloseIsDroppedNotPanic(t *testing.T) {
	p := New(1, func(*image.RGBA) error { return nil })
	p.Close()
	p.Close() // idempotent

	// A commit queued on a window thread can land after shutdown.
	if p.Submit(image.NewRGBA(image.Rect(0, 0, 1, 1)), nil) {
		t.Fatal("submit accepted after close")
	}
}
