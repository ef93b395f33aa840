package latticemath

import "math"

// IVec2 is an integer 2-component vector, used for lattice-space
// coordinates and Miller-adjacent quantised values.
type IVec2 struct {
	X, Y int64
}

// Add returns the component-wise sum of v and o.
func (v IVec2) Add(o IVec2) IVec2 { return IVec2{v.X + o.X, v.Y + o.Y} }

// Sub returns the component-wise difference v - o.
func (v IVec2) Sub(o IVec2) IVec2 { return IVec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by the integer factor s.
func (v IVec2) Scale(s int64) IVec2 { return IVec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v IVec2) Dot(o IVec2) int64 { return v.X*o.X + v.Y*o.Y }

// ToDVec2 widens v to a double-precision vector.
func (v IVec2) ToDVec2() DVec2 { return DVec2{float64(v.X), float64(v.Y)} }

// IVec3 is an integer 3-component vector.
type IVec3 struct {
	X, Y, Z int64
}

// Add returns the component-wise sum of v and o.
func (v IVec3) Add(o IVec3) IVec3 { return IVec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the component-wise difference v - o.
func (v IVec3) Sub(o IVec3) IVec3 { return IVec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by the integer factor s.
func (v IVec3) Scale(s int64) IVec3 { return IVec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v IVec3) Dot(o IVec3) int64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v x o.
func (v IVec3) Cross(o IVec3) IVec3 {
	return IVec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// ToDVec3 widens v to a double-precision vector.
func (v IVec3) ToDVec3() DVec3 { return DVec3{float64(v.X), float64(v.Y), float64(v.Z)} }

// GCD3 returns the greatest common divisor of the absolute values of h, k, l,
// or 0 if all three are 0. Used to simplify Miller indices and other
// quantised integer triples to lowest terms.
func GCD3(h, k, l int64) int64 {
	g := gcd2(absI64(h), gcd2(absI64(k), absI64(l)))
	return g
}

func gcd2(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func absI64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Simplify divides v by GCD3(v.X, v.Y, v.Z), returning v unchanged if the
// GCD is 0 or 1.
func (v IVec3) Simplify() IVec3 {
	g := GCD3(v.X, v.Y, v.Z)
	if g <= 1 {
		return v
	}
	return IVec3{v.X / g, v.Y / g, v.Z / g}
}

// DVec2 is a double-precision 2-component vector.
type DVec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and o.
func (v DVec2) Add(o DVec2) DVec2 { return DVec2{v.X + o.X, v.Y + o.Y} }

// Sub returns the component-wise difference v - o.
func (v DVec2) Sub(o DVec2) DVec2 { return DVec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v DVec2) Scale(s float64) DVec2 { return DVec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v DVec2) Dot(o DVec2) float64 { return v.X*o.X + v.Y*o.Y }

// Length returns the Euclidean length of v.
func (v DVec2) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Normalized returns v scaled to unit length. Returns the zero vector if v
// is (near-)zero length, rather than dividing by zero.
func (v DVec2) Normalized() DVec2 {
	l := v.Length()
	if l < 1e-15 {
		return DVec2{}
	}
	return v.Scale(1 / l)
}

// DVec3 is a double-precision 3-component vector.
type DVec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of v and o.
func (v DVec3) Add(o DVec3) DVec3 { return DVec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the component-wise difference v - o.
func (v DVec3) Sub(o DVec3) DVec3 { return DVec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by s.
func (v DVec3) Scale(s float64) DVec3 { return DVec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v DVec3) Dot(o DVec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v x o.
func (v DVec3) Cross(o DVec3) DVec3 {
	return DVec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v DVec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// DistanceTo returns the Euclidean distance between v and o.
func (v DVec3) DistanceTo(o DVec3) float64 { return v.Sub(o).Length() }

// Normalized returns v scaled to unit length, or the zero vector if v is
// (near-)zero length.
func (v DVec3) Normalized() DVec3 {
	l := v.Length()
	if l < 1e-15 {
		return DVec3{}
	}
	return v.Scale(1 / l)
}

// Lerp returns the linear interpolation between v and o at parameter t in
// [0,1] (not clamped).
func (v DVec3) Lerp(o DVec3, t float64) DVec3 {
	return v.Add(o.Sub(v).Scale(t))
}

// ToIVec3 rounds v to the nearest integer lattice triple.
func (v DVec3) ToIVec3() IVec3 {
	return IVec3{
		X: int64(math.Round(v.X)),
		Y: int64(math.Round(v.Y)),
		Z: int64(math.Round(v.Z)),
	}
}
