// Package motion advances the floating objects one frame at a time. It is a
// pure function of (traits, state, shared inputs, dt) and needs no rendering
// context.
package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ClampDelta bounds a frame delta to [0, max].
func ClampDelta(dt, max float64) float64 {
	if dt < 0 || math.IsNaN(dt) {
		return 0
	}
	if dt > max {
		return max
	}
	return dt
}

// WrapPhase folds v into [-threshold, threshold]. The result differs from v by
// a whole multiple of 2*threshold.
func WrapPhase(v, threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	band := 2 * threshold
	w := math.Mod(v+threshold, band)
	if w < 0 {
		w += band
	}
	return w - threshold
}

// Impulse pushes the object away from a point. A zero direction is ignored.
func Impulse(s *State, from mgl64.Vec3, force float64) {
	dir := s.Position.Sub(from)
	if dir.Len() < 1e-12 {
		return
	}
	s.Velocity = s.Velocity.Add(dir.Normalize().Mul(force))
}

// Update advances one object by dt seconds.
func Update(t Traits, s *State, in Inputs, tun Tuning, dt float64) {
	dt = ClampDelta(dt, tun.MaxDelta)

	if s.Position.Sub(in.Pointer).Len() < tun.ProximityRadius {
		Impulse(s, in.Pointer, tun.BounceForce)
	}

	if !in.Hovered {
		// Idle pulls a bounced object back onto its drift path.
		s.Offset = s.Offset.Mul(tun.VelocityDecay)
	}
	s.Offset = s.Offset.Add(s.Velocity)
	s.Velocity = s.Velocity.Mul(tun.VelocityDecay)

	if in.Hovered {
		attract(s, in, tun)
	} else {
		idle(t, s, in, tun, dt)
	}

	s.Position = s.Base.Add(s.Offset)
}

func attract(s *State, in Inputs, tun Tuning) {
	target, ok := facePointer(s.Position, in.Pointer)
	if !ok {
		return
	}
	s.Orientation = slerp(s.Orientation, target, tun.AttractSlerp)
	s.Rotation = EulerFromQuat(s.Orientation)
}

func idle(t Traits, s *State, in Inputs, tun Tuning, dt float64) {
	s.PhaseY = WrapPhase(s.PhaseY+dt*in.Speed, t.Threshold)
	s.Base = mgl64.Vec3{t.SlotX, s.PhaseY, -t.Depth}

	spin := t.Spin
	if spin <= 0 {
		spin = 1
	}
	s.AccX += dt / spin
	s.AccZ += dt / spin

	wobble := math.Sin(float64(t.Index)*1000+in.Elapsed/10) * math.Pi
	s.Rotation = Euler{
		X: lerp(s.Rotation.X, s.AccX, tun.IdleSmoothing),
		Y: lerp(s.Rotation.Y, wobble, tun.IdleSmoothing),
		Z: lerp(s.Rotation.Z, s.AccZ, tun.IdleSmoothing),
	}
	s.Orientation = s.Rotation.Quat()
}
