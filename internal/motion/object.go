package motion

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Traits are fixed when an object is created and never change afterwards.
type Traits struct {
	Index     int
	Depth     float64 // distance behind the z=0 plane; the object lives at z = -Depth
	SlotX     float64 // horizontal position
	PhaseY0   float64 // starting vertical phase
	Spin      float64 // seconds per radian of idle tumble
	RotX0     float64
	RotZ0     float64
	Threshold float64 // vertical phase wraps within [-Threshold, Threshold]
}

// State is the per-object running state mutated by Update.
type State struct {
	PhaseY float64
	AccX   float64
	AccZ   float64

	Base     mgl64.Vec3 // idle position, frozen while attracting
	Offset   mgl64.Vec3 // accumulated bounce displacement
	Velocity mgl64.Vec3
	Position mgl64.Vec3

	Rotation    Euler
	Orientation mgl64.Quat
}

// Inputs are shared by every object for one frame.
type Inputs struct {
	Pointer mgl64.Vec3
	Hovered bool
	Elapsed float64
	Speed   float64
}

// NewState seeds the running state from the object's traits. The visible
// rotation starts at zero and eases toward the accumulators.
func NewState(t Traits) State {
	s := State{
		PhaseY:      t.PhaseY0,
		AccX:        t.RotX0,
		AccZ:        t.RotZ0,
		Base:        mgl64.Vec3{t.SlotX, t.PhaseY0, -t.Depth},
		Orientation: mgl64.QuatIdent(),
	}
	s.Position = s.Base
	return s
}
