package scene

import (
	"math"

	"floatscene/internal/motion"
	"floatscene/internal/utils"

	"github.com/go-gl/mathgl/mgl64"
)

// HitTester intersects a world ray with one object. dist is the distance
// along the (normalized) ray to the hit point.
type HitTester interface {
	Hit(obj *Object, origin, dir mgl64.Vec3) (dist float64, ok bool)
}

// SphereHitTester treats every object as a sphere of Radius around its position.
type SphereHitTester struct {
	Radius float64
}

func (t SphereHitTester) Hit(obj *Object, origin, dir mgl64.Vec3) (float64, bool) {
	oc := origin.Sub(obj.State.Position)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - t.Radius*t.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	dist := -b - sq
	if dist < 0 {
		dist = -b + sq
	}
	if dist < 0 {
		return 0, false
	}
	return dist, true
}

// Click bounces the nearest object under the ray away from the point where
// the ray struck it. It returns the object index, or -1 when nothing was hit.
func (s *Scene) Click(origin, dir mgl64.Vec3, tester HitTester) int {
	if dir.Len() == 0 || tester == nil {
		return -1
	}
	dir = dir.Normalize()

	best := -1
	bestDist := math.Inf(1)
	for i := range s.objects {
		if dist, ok := tester.Hit(&s.objects[i], origin, dir); ok && dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return -1
	}

	obj := &s.objects[best]
	hitPoint := origin.Add(dir.Mul(bestDist))
	force := s.Config.Tuning.BounceForce

	if obj.State.Position.Sub(hitPoint).Len() < 1e-9 {
		obj.State.Velocity = obj.State.Velocity.Add(dir.Mul(force))
	} else {
		motion.Impulse(&obj.State, hitPoint, force)
	}

	utils.Debug("Scene: click bounced object %d at distance %.2f", best, bestDist)
	return best
}
