package geometry

import "math"

// LineIntersection intersects the infinite line through p1,p2 with the one
// through p3,p4. It reports false when the determinant is exactly zero,
// which covers parallel and coincident lines.
func LineIntersection(p1, p2, p3, p4 Vector2) (Vector2, bool) {
	x12 := p1.X - p2.X
	x34 := p3.X - p4.X
	y12 := p1.Y - p2.Y
	y34 := p3.Y - p4.Y

	divisor := x12*y34 - y12*x34
	if divisor == 0 {
		return Vector2{}, false
	}

	a := p1.X*p2.Y - p1.Y*p2.X
	b := p3.X*p4.Y - p3.Y*p4.X

	return Vector2{
		X: (a*x34 - x12*b) / divisor,
		Y: (a*y34 - y12*b) / divisor,
	}, true
}

// PointOnLine returns the orthogonal projection of q onto the infinite line
// through p0 and p1. The line is undefined when p0 == p1; p0 is returned in
// that case and callers are expected to have rejected the line already.
func PointOnLine(q, p0, p1 Vector2) Vector2 {
	direction := p1.Sub(p0)
	lengthSq := direction.LengthSquared()
	if lengthSq == 0 {
		return p0
	}
	t := q.Sub(p0).Dot(direction) / lengthSq
	return p0.Add(direction.Scale(t))
}

// ClosestOnSegment returns the point of the segment l0-l1 nearest to point
func ClosestOnSegment(point, l0, l1 Vector2) Vector2 {
	direction := l1.Sub(l0)
	lengthSq := direction.LengthSquared()
	if lengthSq == 0 {
		return l0
	}
	t := point.Sub(l0).Dot(direction) / lengthSq
	t = math.Max(0, math.Min(1, t))
	return l0.Add(direction.Scale(t))
}

// PerpendicularLeft rotates v by 90° counter-clockwise
func PerpendicularLeft(v Vector2) Vector2 {
	return Vector2{X: -v.Y, Y: v.X}
}

// PerpendicularRight rotates v by 90° clockwise
func PerpendicularRight(v Vector2) Vector2 {
	return Vector2{X: v.Y, Y: -v.X}
}

// ScalarProjection returns the signed length of v along axis. The axis need
// not be unit length. A zero axis yields 0.
func ScalarProjection(v, axis Vector2) float64 {
	length := axis.Length()
	if length == 0 {
		return 0
	}
	return v.Dot(axis) / length
}

// PointLineDistance returns the unsigned distance from point to the infinite
// line through line0 and line1. For a degenerate line it falls back to the
// distance to line0.
func PointLineDistance(point, line0, line1 Vector2) float64 {
	length := line1.Sub(line0).Length()
	if length == 0 {
		return point.Distance(line0)
	}
	return math.Abs(point.Sub(line0).Cross(point.Sub(line1))) / length
}

// PointLineDisplacement returns the signed distance from point to the line
// through line0 and line1. It is positive on the side of
// PerpendicularRight(line1 - line0), so swapping the endpoints flips the sign.
func PointLineDisplacement(point, line0, line1 Vector2) float64 {
	return ScalarProjection(point.Sub(line0), PerpendicularRight(line1.Sub(line0)))
}
