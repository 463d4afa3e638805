package geometry

import "math"

// Vector3 is a 3D vector. Planar vectors are embedded with Z = 0 when an
// angle is taken between them, so the same formula serves both.
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// AngleTo returns the unsigned angle between v and other in radians, in [0, π].
// atan2 of the cross length over the dot product stays accurate near 0 and π
// where an acos of the normalized dot product loses precision.
// Zero-length inputs yield 0; callers reject degenerate vectors first.
func (v Vector3) AngleTo(other Vector3) float64 {
	return math.Atan2(v.Cross(other).Length(), v.Dot(other))
}
