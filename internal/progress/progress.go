// Package progress counts loaded assets and raises a one-shot ready signal
// once all of them are in.
package progress

import (
	"sync"

	"floatscene/internal/utils"
)

// Signal fires at most once and carries no payload.
type Signal struct {
	once  sync.Once
	ready chan struct{}
}

func NewSignal() *Signal {
	return &Signal{ready: make(chan struct{})}
}

func (s *Signal) Fire() {
	s.once.Do(func() { close(s.ready) })
}

// Ready is closed when the signal fires.
func (s *Signal) Ready() <-chan struct{} { return s.ready }

func (s *Signal) Fired() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Tracker counts named assets. When the loaded count reaches the expected
// count the signal fires.
type Tracker struct {
	mu       sync.Mutex
	expected int
	loaded   map[string]bool
	signal   *Signal
}

func NewTracker(signal *Signal) *Tracker {
	return &Tracker{loaded: make(map[string]bool), signal: signal}
}

// Expect registers n more assets to wait for.
func (t *Tracker) Expect(n int) {
	t.mu.Lock()
	t.expected += n
	t.mu.Unlock()
}

// Done marks an asset as finished, successfully or not. Failed assets still
// count so a missing file cannot hold the scene hidden forever.
func (t *Tracker) Done(name string) {
	t.mu.Lock()
	if !t.loaded[name] {
		t.loaded[name] = true
		utils.Debug("Progress: %s loaded (%d/%d)", name, len(t.loaded), t.expected)
	}
	complete := t.expected > 0 && len(t.loaded) >= t.expected
	t.mu.Unlock()

	if complete {
		t.signal.Fire()
	}
}

// Percent returns load progress in [0, 100].
func (t *Tracker) Percent() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.expected == 0 {
		return 0
	}
	p := float64(len(t.loaded)) / float64(t.expected) * 100
	if p > 100 {
		p = 100
	}
	return p
}
