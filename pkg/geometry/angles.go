package geometry

import "math"

// AngleBetween returns the unsigned angle between two planar vectors in
// radians, in [0, π].
func AngleBetween(v1, v2 Vector2) float64 {
	return v1.To3D().AngleTo(v2.To3D())
}

// SignedAngle returns the angle that rotates v1 onto v2, in (-π, π].
// Positive angles are counter-clockwise.
func SignedAngle(v1, v2 Vector2) float64 {
	angle := math.Atan2(v1.Cross(v2), v1.Dot(v2))
	if angle == -math.Pi {
		return math.Pi
	}
	return angle
}

// CompareClockwise orders two vectors by rotational direction. It returns -1
// when v2 lies counter-clockwise of v1 and +1 otherwise; collinear vectors
// compare as +1.
func CompareClockwise(v1, v2 Vector2) int {
	if v1.Cross(v2) > 0 {
		return -1
	}
	return 1
}

// Rotate rotates v counter-clockwise by the given angle in radians
func Rotate(v Vector2, radians float64) Vector2 {
	sin, cos := math.Sincos(radians)
	return Vector2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Arc returns segments+1 points on a circle of the given radius around
// center, starting in the direction of from and sweeping counter-clockwise
// by sweep radians.
func Arc(center, from Vector2, sweep, radius float64, segments int) []Vector2 {
	if segments < 1 {
		segments = 1
	}
	direction := from.Normalize().Scale(radius)
	increment := sweep / float64(segments)

	points := make([]Vector2, 0, segments+1)
	for i := 0; i <= segments; i++ {
		points = append(points, center.Add(Rotate(direction, increment*float64(i))))
	}
	return points
}

// ToDegrees converts radians to degrees
func ToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// ToRadians converts degrees to radians
func ToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
