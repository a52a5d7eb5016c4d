package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

// Stats is what the overlay shows for one frame.
type Stats struct {
	FPS        int32
	Objects    int
	Hovered    bool
	HoverCount int
	Pointer    mgl64.Vec3
	Moves      uint64
	Progress   float64
}

type DebugOverlay struct {
	ShowHitSpheres bool

	fontHeight int32
	padding    int32
	lastBounce int
}

func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{fontHeight: 16, padding: 8, lastBounce: -1}
}

// Update handles overlay hotkeys. Call only while the overlay is visible.
func (d *DebugOverlay) Update() {
	if rl.IsKeyPressed(rl.KeyB) {
		d.ShowHitSpheres = !d.ShowHitSpheres
	}
}

// NoteBounce remembers the last clicked object for display.
func (d *DebugOverlay) NoteBounce(index int) {
	if index >= 0 {
		d.lastBounce = index
	}
}

func (d *DebugOverlay) Lines(s Stats) []string {
	mode := "idle"
	if s.Hovered {
		mode = "attract"
	}
	bounce := "-"
	if d.lastBounce >= 0 {
		bounce = fmt.Sprint(d.lastBounce)
	}
	spheres := "off"
	if d.ShowHitSpheres {
		spheres = "on"
	}
	return []string{
		fmt.Sprintf("FPS: %d", s.FPS),
		fmt.Sprintf("Objects: %d", s.Objects),
		fmt.Sprintf("Mode: %s (entered %d)", mode, s.HoverCount),
		fmt.Sprintf("Pointer: %.2f, %.2f, %.2f", s.Pointer.X(), s.Pointer.Y(), s.Pointer.Z()),
		fmt.Sprintf("Pointer moves: %d", s.Moves),
		fmt.Sprintf("Assets: %.0f%%", s.Progress),
		fmt.Sprintf("Last bounce: %s", bounce),
		fmt.Sprintf("[B] hit spheres: %s", spheres),
	}
}

func (d *DebugOverlay) Draw(s Stats) {
	lines := d.Lines(s)

	width := int32(0)
	for _, line := range lines {
		if w := rl.MeasureText(line, d.fontHeight); w > width {
			width = w
		}
	}
	height := int32(len(lines))*(d.fontHeight+4) + d.padding*2

	rl.DrawRectangle(10, 10, width+d.padding*2, height, rl.NewColor(0, 0, 0, 180))
	for i, line := range lines {
		y := 10 + d.padding + int32(i)*(d.fontHeight+4)
		rl.DrawText(line, 10+d.padding, y, d.fontHeight, rl.White)
	}
}
