package motion

const (
	MaxDelta        = 0.1  // seconds; larger frame gaps are treated as this
	BounceForce     = 1.5  // impulse added per proximity frame or click
	ProximityRadius = 3.0  // world units around the pointer that push objects away
	VelocityDecay   = 0.95 // per frame multiplier
	IdleSmoothing   = 0.05 // lerp factor toward idle rotation targets
	AttractSlerp    = 0.05 // slerp factor toward the pointer-facing orientation
)

// Tuning groups the constants so a scene file can override them.
type Tuning struct {
	MaxDelta        float64 `json:"maxDelta"`
	BounceForce     float64 `json:"bounceForce"`
	ProximityRadius float64 `json:"proximityRadius"`
	VelocityDecay   float64 `json:"velocityDecay"`
	IdleSmoothing   float64 `json:"idleSmoothing"`
	AttractSlerp    float64 `json:"attractSlerp"`
}

func DefaultTuning() Tuning {
	return Tuning{
		MaxDelta:        MaxDelta,
		BounceForce:     BounceForce,
		ProximityRadius: ProximityRadius,
		VelocityDecay:   VelocityDecay,
		IdleSmoothing:   IdleSmoothing,
		AttractSlerp:    AttractSlerp,
	}
}

// Sanitize replaces out-of-range values with defaults. Decay must stay below
// one so bounces always die out.
func (t Tuning) Sanitize() Tuning {
	d := DefaultTuning()
	if t.MaxDelta <= 0 {
		t.MaxDelta = d.MaxDelta
	}
	if t.BounceForce < 0 {
		t.BounceForce = d.BounceForce
	}
	if t.ProximityRadius < 0 {
		t.ProximityRadius = d.ProximityRadius
	}
	if t.VelocityDecay < 0 || t.VelocityDecay >= 1 {
		t.VelocityDecay = d.VelocityDecay
	}
	if t.IdleSmoothing <= 0 || t.IdleSmoothing > 1 {
		t.IdleSmoothing = d.IdleSmoothing
	}
	if t.AttractSlerp <= 0 || t.AttractSlerp > 1 {
		t.AttractSlerp = d.AttractSlerp
	}
	return t
}
