package pointer

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Cell holds the latest pointer world position. There is one writer (the
// tracker) and any number of readers (the frame loop).
type Cell struct {
	mu      sync.RWMutex
	pos     mgl64.Vec3
	version uint64
}

func (c *Cell) Set(p mgl64.Vec3) {
	c.mu.Lock()
	c.pos = p
	c.version++
	c.mu.Unlock()
}

// Get returns the stored position and how many times it has been written.
func (c *Cell) Get() (mgl64.Vec3, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pos, c.version
}

func (c *Cell) Position() mgl64.Vec3 {
	p, _ := c.Get()
	return p
}
