package pointer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera described the way the scene is configured:
// eye, target, up and a vertical field of view in degrees.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	FovY     float64
	Near     float64
	Far      float64
}

// DefaultCamera matches the landing page canvas: a long lens pulled back to z=15.
func DefaultCamera(depth float64) Camera {
	return Camera{
		Position: mgl64.Vec3{0, 0, 15},
		Target:   mgl64.Vec3{0, 0, 0},
		Up:       mgl64.Vec3{0, 1, 0},
		FovY:     10,
		Near:     0.01,
		Far:      depth + 15,
	}
}

func (c Camera) view() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

func (c Camera) projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ViewportAt returns the world-space width and height of the frustum slice
// that passes through (0, 0, z).
func (c Camera) ViewportAt(z, aspect float64) (float64, float64) {
	distance := c.Position.Sub(mgl64.Vec3{0, 0, z}).Len()
	height := 2 * math.Tan(mgl64.DegToRad(c.FovY)/2) * distance
	return height * aspect, height
}

// Ray returns the world-space ray through the pixel (px, py) of a
// width x height viewport. ok is false for an empty viewport.
func (c Camera) Ray(px, py, width, height float64) (origin, dir mgl64.Vec3, ok bool) {
	if width <= 0 || height <= 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}

	ndcX := (px/width)*2 - 1
	ndcY := -(py/height)*2 + 1

	inv := c.projection(width / height).Mul4(c.view()).Inv()
	p := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, 0.5, 1})
	if p.W() == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}

	world := p.Vec3().Mul(1 / p.W())
	dir = world.Sub(c.Position)
	if dir.Len() == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return c.Position, dir.Normalize(), true
}

// Map resolves the pixel (px, py) to the point on its view ray lying on the
// plane z = planeZ. ok is false when the ray is (nearly) parallel to the plane.
func (c Camera) Map(px, py, width, height, planeZ float64) (mgl64.Vec3, bool) {
	origin, dir, ok := c.Ray(px, py, width, height)
	if !ok || math.Abs(dir.Z()) < 1e-9 {
		return mgl64.Vec3{}, false
	}

	t := (planeZ - origin.Z()) / dir.Z()
	return origin.Add(dir.Mul(t)), true
}
