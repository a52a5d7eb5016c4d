// Package scene owns the field of floating objects: it creates them with
// their randomized traits, holds the scene-wide hover flag and steps every
// object once per frame.
package scene

import (
	"math"
	"math/rand"

	"floatscene/internal/motion"
	"floatscene/internal/pointer"
	"floatscene/internal/utils"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	leadBandScale  = 4.0 // the first object loops through a taller band
	otherBandScale = 1.5
	minSpin        = 8.0
	maxSpin        = 12.0
)

type Config struct {
	Count  int
	Depth  float64
	Speed  float64
	Easing Easing
	Aspect float64
	Seed   int64
	Tuning motion.Tuning
}

type Object struct {
	Traits motion.Traits
	State  motion.State

	// SlotNorm is the horizontal slot in [-1,1] before scaling by the
	// viewport width at the object's depth.
	SlotNorm float64
}

type Scene struct {
	Config  Config
	Camera  pointer.Camera
	Hover   Hover
	objects []Object
}

// New builds the object field. A non-positive count gives an empty scene.
func New(cfg Config, camera pointer.Camera) *Scene {
	if cfg.Easing == nil {
		cfg.Easing = QuarterCircle
	}
	if cfg.Aspect <= 0 {
		cfg.Aspect = 16.0 / 9.0
	}
	if cfg.Depth < 0 {
		cfg.Depth = 0
	}
	if cfg.Tuning == (motion.Tuning{}) {
		cfg.Tuning = motion.DefaultTuning()
	}
	cfg.Tuning = cfg.Tuning.Sanitize()

	s := &Scene{Config: cfg, Camera: camera}
	if cfg.Count <= 0 {
		utils.Warn("Scene: object count %d, nothing to float", cfg.Count)
		return s
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	s.objects = make([]Object, cfg.Count)

	for i := range s.objects {
		depth := math.Round(cfg.Easing(float64(i)/float64(cfg.Count)) * cfg.Depth)
		width, height := camera.ViewportAt(-depth, cfg.Aspect)

		slot := rng.Float64()*2 - 1
		if i == 0 {
			slot = 0
		}

		bandScale := otherBandScale
		if i == 0 {
			bandScale = leadBandScale
		}

		traits := motion.Traits{
			Index:     i,
			Depth:     depth,
			SlotX:     slot * width,
			PhaseY0:   (rng.Float64() - 0.5) * height * 2,
			Spin:      minSpin + rng.Float64()*(maxSpin-minSpin),
			RotX0:     rng.Float64() * math.Pi,
			RotZ0:     rng.Float64() * math.Pi,
			Threshold: height * bandScale,
		}

		s.objects[i] = Object{
			Traits:   traits,
			State:    motion.NewState(traits),
			SlotNorm: slot,
		}
	}

	utils.Debug("Scene: created %d objects, depth %.1f", len(s.objects), cfg.Depth)
	return s
}

func (s *Scene) Len() int { return len(s.objects) }

// Objects exposes the field for drawing. Callers must not keep the slice
// across Step calls.
func (s *Scene) Objects() []Object { return s.objects }

// Resize rescales slots and wrap bands for a new viewport aspect ratio.
// Running phases are kept.
func (s *Scene) Resize(aspect float64) {
	if aspect <= 0 || aspect == s.Config.Aspect {
		return
	}
	s.Config.Aspect = aspect

	for i := range s.objects {
		obj := &s.objects[i]
		width, height := s.Camera.ViewportAt(-obj.Traits.Depth, aspect)

		bandScale := otherBandScale
		if i == 0 {
			bandScale = leadBandScale
		}
		obj.Traits.SlotX = obj.SlotNorm * width
		obj.Traits.Threshold = height * bandScale
		obj.State.PhaseY = motion.WrapPhase(obj.State.PhaseY, obj.Traits.Threshold)
	}
}

// Step advances every object by dt. pointerWorld is the latest mapped
// pointer position; it may be stale if the pointer hasn't moved.
func (s *Scene) Step(dt, elapsed float64, pointerWorld mgl64.Vec3) {
	in := motion.Inputs{
		Pointer: pointerWorld,
		Hovered: s.Hover.Hovered(),
		Elapsed: elapsed,
		Speed:   s.Config.Speed,
	}

	for i := range s.objects {
		motion.Update(s.objects[i].Traits, &s.objects[i].State, in, s.Config.Tuning, dt)
	}
}
