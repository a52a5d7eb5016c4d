package pointer

import (
	"context"
	"sync"
)

// Viewport reports the current size of the drawing surface in pixels.
type Viewport func() (width, height float64)

// Source delivers raw pointer samples in viewport pixels until ctx is done.
// Returning unregisters the callback.
type Source interface {
	Run(ctx context.Context, move func(x, y float64)) error
}

// Tracker turns pointer samples into move events. The mapper only runs, and
// the cell is only written, when the pointer actually moved.
type Tracker struct {
	Camera   Camera
	PlaneZ   float64
	Viewport Viewport
	Cell     *Cell

	mu       sync.Mutex
	lastX    float64
	lastY    float64
	hasLast  bool
	moveHits uint64
}

func NewTracker(camera Camera, planeZ float64, viewport Viewport, cell *Cell) *Tracker {
	return &Tracker{
		Camera:   camera,
		PlaneZ:   planeZ,
		Viewport: viewport,
		Cell:     cell,
	}
}

// Sample feeds one pointer reading. It reports whether a move was handled.
func (t *Tracker) Sample(x, y float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.hasLast && x == t.lastX && y == t.lastY {
		return false
	}
	t.lastX, t.lastY, t.hasLast = x, y, true

	width, height := t.Viewport()
	world, ok := t.Camera.Map(x, y, width, height, t.PlaneZ)
	if !ok {
		return false
	}

	t.Cell.Set(world)
	t.moveHits++
	return true
}

// Moves returns how many move events were mapped so far.
func (t *Tracker) Moves() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.moveHits
}

// Attach runs src in its own goroutine, feeding the tracker, until ctx is
// cancelled. The returned channel yields the source's exit error.
func (t *Tracker) Attach(ctx context.Context, src Source) <-chan error {
	errc := make(chan error, 1)
	go func() {
		errc <- src.Run(ctx, func(x, y float64) { t.Sample(x, y) })
		close(errc)
	}()
	return errc
}
