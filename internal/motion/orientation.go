package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Euler holds intrinsic X then Y then Z rotation angles in radians.
type Euler struct {
	X, Y, Z float64
}

// Quat returns the orientation Rx * Ry * Rz.
func (e Euler) Quat() mgl64.Quat {
	qx := mgl64.QuatRotate(e.X, mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(e.Y, mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(e.Z, mgl64.Vec3{0, 0, 1})
	return qx.Mul(qy).Mul(qz)
}

// EulerFromQuat decomposes q into XYZ angles.
func EulerFromQuat(q mgl64.Quat) Euler {
	m := q.Normalize().Mat4()
	m13 := mgl64.Clamp(m.At(0, 2), -1, 1)

	e := Euler{Y: math.Asin(m13)}
	if math.Abs(m13) < 0.9999999 {
		e.X = math.Atan2(-m.At(1, 2), m.At(2, 2))
		e.Z = math.Atan2(-m.At(0, 1), m.At(0, 0))
	} else {
		e.X = math.Atan2(m.At(2, 1), m.At(1, 1))
	}
	return e
}

// lookAt returns the orientation that points the local +Z axis from eye to
// target. ok is false when the direction is degenerate.
func lookAt(eye, target, up mgl64.Vec3) (mgl64.Quat, bool) {
	z := target.Sub(eye)
	if z.Len() < 1e-9 {
		return mgl64.Quat{}, false
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.Len() < 1e-9 {
		// Looking straight along up; nudge the reference axis.
		x = mgl64.Vec3{0, 0, 1}.Cross(z)
		if x.Len() < 1e-9 {
			return mgl64.Quat{}, false
		}
	}
	x = x.Normalize()
	y := z.Cross(x)

	basis := mgl64.Mat3FromCols(x, y, z)
	return mgl64.Mat4ToQuat(basis.Mat4()).Normalize(), true
}

// facePointer is the attract-mode target: the object looks at the pointer
// and is then tipped a quarter turn about its own X axis so the logo face,
// not its edge, is presented.
func facePointer(pos, pointer mgl64.Vec3) (mgl64.Quat, bool) {
	q, ok := lookAt(pos, pointer, mgl64.Vec3{0, 1, 0})
	if !ok {
		return mgl64.Quat{}, false
	}
	return q.Mul(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0})), true
}

// slerp interpolates along the shorter arc.
func slerp(from, to mgl64.Quat, amount float64) mgl64.Quat {
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl64.QuatSlerp(from, to, amount).Normalize()
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
