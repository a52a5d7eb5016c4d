package engine3D

import (
	"floatscene/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

// MeshHitTester casts the click ray against the actual model triangles,
// after a cheap bounding sphere rejection.
type MeshHitTester struct {
	r *Renderer
}

func (r *Renderer) HitTester() scene.HitTester {
	return MeshHitTester{r: r}
}

func (t MeshHitTester) Hit(obj *scene.Object, origin, dir mgl64.Vec3) (float64, bool) {
	if _, ok := (scene.SphereHitTester{Radius: t.r.hitRadius}).Hit(obj, origin, dir); !ok {
		return 0, false
	}

	ray := rl.NewRay(toRL(origin), toRL(dir))
	transform := t.r.transform(obj)

	best := 0.0
	found := false
	for _, mesh := range t.r.model.GetMeshes() {
		hit := rl.GetRayCollisionMesh(ray, mesh, transform)
		if hit.Hit && (!found || float64(hit.Distance) < best) {
			best, found = float64(hit.Distance), true
		}
	}
	return best, found
}

// transform mirrors DrawModelEx: scale, then rotate, then translate.
func (r *Renderer) transform(obj *scene.Object) rl.Matrix {
	q := obj.State.Orientation.Normalize()
	rot := rl.QuaternionToMatrix(rl.Quaternion{
		X: float32(q.V.X()),
		Y: float32(q.V.Y()),
		Z: float32(q.V.Z()),
		W: float32(q.W),
	})
	pos := obj.State.Position

	m := rl.MatrixMultiply(rl.MatrixScale(r.scale, r.scale, r.scale), rot)
	return rl.MatrixMultiply(m, rl.MatrixTranslate(float32(pos.X()), float32(pos.Y()), float32(pos.Z())))
}
