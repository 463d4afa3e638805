package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance below which a vector component counts as zero.
const Epsilon = 1e-9

// Vector2 represents a planar point or vector
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewVector2 creates a new 2D vector
func NewVector2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies the vector by a scalar
func (v Vector2) Scale(scalar float64) Vector2 {
	return Vector2{X: v.X * scalar, Y: v.Y * scalar}
}

// Dot returns the dot product of two vectors
func (v Vector2) Dot(other Vector2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the perp-dot product, the Z component of the 3D cross product.
// It is positive when other lies counter-clockwise of v.
func (v Vector2) Cross(other Vector2) float64 {
	return v.X*other.Y - v.Y*other.X
}

// LengthSquared returns the squared magnitude of the vector
func (v Vector2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the magnitude of the vector
func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the distance between two points
func (v Vector2) Distance(other Vector2) float64 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (v Vector2) Normalize() Vector2 {
	length := v.Length()
	if length == 0 {
		return Vector2{}
	}
	return v.Scale(1.0 / length)
}

// IsZero reports whether both components are within Epsilon of zero
func (v Vector2) IsZero() bool {
	return math.Abs(v.X) < Epsilon && math.Abs(v.Y) < Epsilon
}

// IsFinite reports whether neither component is NaN or infinite
func (v Vector2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Equals reports whether two points coincide within Epsilon
func (v Vector2) Equals(other Vector2) bool {
	return v.Sub(other).IsZero()
}

// Midpoint returns the point halfway between v and other
func (v Vector2) Midpoint(other Vector2) Vector2 {
	return v.Add(other).Scale(0.5)
}

// To3D embeds the vector in the XY plane
func (v Vector2) To3D() Vector3 {
	return Vector3{X: v.X, Y: v.Y}
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y)
}
