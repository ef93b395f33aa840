package latticemath

import "math"

// Quaternion is a unit double-precision quaternion (W is the scalar part)
// used for rotations in real space. Construction helpers normalise their
// result; callers that build one by hand are responsible for keeping it
// unit length.
type Quaternion struct {
	X, Y, Z, W float64
}

// IdentityQuaternion returns the identity rotation.
func IdentityQuaternion() Quaternion { return Quaternion{0, 0, 0, 1} }

// FromAxisAngle builds a unit quaternion representing a rotation of
// angleRad radians about axis. Returns ErrZeroVector if axis is
// (near-)zero length.
func FromAxisAngle(axis DVec3, angleRad float64) (Quaternion, error) {
	n := axis.Normalized()
	if n.Length() < 1e-12 {
		return Quaternion{}, ErrZeroVector
	}
	half := angleRad / 2
	s := math.Sin(half)
	return Quaternion{
		X: n.X * s,
		Y: n.Y * s,
		Z: n.Z * s,
		W: math.Cos(half),
	}, nil
}

// Conjugate returns the conjugate of q, which for a unit quaternion is also
// its inverse.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

// Mul returns the Hamilton product q * o (applying o first, then q).
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// MulVec3 rotates v by q.
func (q Quaternion) MulVec3(v DVec3) DVec3 {
	qv := Quaternion{v.X, v.Y, v.Z, 0}
	r := q.Mul(qv).Mul(q.Conjugate())
	return DVec3{r.X, r.Y, r.Z}
}

// Normalized returns q scaled to unit length; returns the identity
// quaternion if q is (near-)zero length.
func (q Quaternion) Normalized() Quaternion {
	n := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if n < 1e-15 {
		return IdentityQuaternion()
	}
	return Quaternion{q.X / n, q.Y / n, q.Z / n, q.W / n}
}
