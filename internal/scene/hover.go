package scene

import "floatscene/internal/utils"

// Hover is the scene-wide pointer-over-canvas flag. Every object reads the
// same value; there is no per-object hover.
type Hover struct {
	hovered bool
	entries int
}

// Enter reports whether the call changed the state.
func (h *Hover) Enter() bool {
	if h.hovered {
		return false
	}
	h.hovered = true
	h.entries++
	utils.Debug("Scene: pointer entered, objects attracting")
	return true
}

func (h *Hover) Leave() bool {
	if !h.hovered {
		return false
	}
	h.hovered = false
	utils.Debug("Scene: pointer left, objects idling")
	return true
}

// Set drives the flag from a level signal such as "cursor is on screen".
func (h *Hover) Set(on bool) bool {
	if on {
		return h.Enter()
	}
	return h.Leave()
}

func (h *Hover) Hovered() bool { return h.hovered }

// Entries counts Idle to Attracting transitions.
func (h *Hover) Entries() int { return h.entries }
