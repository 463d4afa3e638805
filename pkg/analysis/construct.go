package analysis

import (
	"fmt"

	"github.com/philipparndt/gortho/pkg/geometry"
)

// The construct functions hold the geometry shared by Measure and Visualize
// so a drawn construction always matches the reported value.

func zeroLength(what string) error {
	return fmt.Errorf("%s has zero length: %w", what, ErrDegenerateGeometry)
}

type angleConstruction struct {
	a0, a1, b0, b1 geometry.Vector2
	dirA, dirB     geometry.Vector2
	degrees        float64
}

func constructAngle(a0, a1, b0, b1 geometry.Vector2) (angleConstruction, error) {
	c := angleConstruction{a0: a0, a1: a1, b0: b0, b1: b1, dirA: a1.Sub(a0), dirB: b1.Sub(b0)}
	if c.dirA.IsZero() {
		return c, zeroLength("line A")
	}
	if c.dirB.IsZero() {
		return c, zeroLength("line B")
	}
	c.degrees = geometry.ToDegrees(geometry.AngleBetween(c.dirA, c.dirB))
	return c, nil
}

type footConstruction struct {
	point, line0, line1 geometry.Vector2
	foot                geometry.Vector2
}

func constructFoot(point, line0, line1 geometry.Vector2) (footConstruction, error) {
	c := footConstruction{point: point, line0: line0, line1: line1}
	if line1.Sub(line0).IsZero() {
		return c, zeroLength("line")
	}
	c.foot = geometry.PointOnLine(point, line0, line1)
	return c, nil
}

func (c footConstruction) distance() float64 {
	return geometry.PointLineDistance(c.point, c.line0, c.line1)
}

func (c footConstruction) displacement() float64 {
	return geometry.PointLineDisplacement(c.point, c.line0, c.line1)
}

type projectionConstruction struct {
	point0, point1, line0, line1 geometry.Vector2
	foot0, foot1                 geometry.Vector2
}

func constructProjection(point0, point1, line0, line1 geometry.Vector2) (projectionConstruction, error) {
	c := projectionConstruction{point0: point0, point1: point1, line0: line0, line1: line1}
	if line1.Sub(line0).IsZero() {
		return c, zeroLength("line")
	}
	c.foot0 = geometry.PointOnLine(point0, line0, line1)
	c.foot1 = geometry.PointOnLine(point1, line0, line1)
	return c, nil
}

func (c projectionConstruction) distance() float64 {
	return c.foot1.Sub(c.foot0).Length()
}

func (c projectionConstruction) displacement() float64 {
	return geometry.ScalarProjection(c.foot1.Sub(c.foot0), c.line1.Sub(c.line0).Normalize())
}

type normalAngleConstruction struct {
	a0, a1, b0, b1 geometry.Vector2
	normal         geometry.Vector2
	degrees        float64
}

func constructNormalAngle(a0, a1, b0, b1 geometry.Vector2, direction NormalDirection) (normalAngleConstruction, error) {
	c := normalAngleConstruction{a0: a0, a1: a1, b0: b0, b1: b1}
	dirA := a1.Sub(a0)
	dirB := b1.Sub(b0)
	if dirA.IsZero() {
		return c, zeroLength("line A")
	}
	if dirB.IsZero() {
		return c, zeroLength("line B")
	}
	if direction == NormalLeft {
		c.normal = geometry.PerpendicularLeft(dirA)
	} else {
		c.normal = geometry.PerpendicularRight(dirA)
	}
	c.degrees = geometry.ToDegrees(geometry.AngleBetween(c.normal, dirB))
	return c, nil
}

// normalEnd is the second point of the normal line erected at a1
func (c normalAngleConstruction) normalEnd() geometry.Vector2 {
	return c.a1.Add(c.normal)
}

type normalLineConstruction struct {
	point, normalLinePoint, line0, line1 geometry.Vector2
	base                                 geometry.Vector2 // foot of normalLinePoint on the line
	normalEnd                            geometry.Vector2
	foot                                 geometry.Vector2 // foot of point on the normal
}

func constructNormalLine(point, normalLinePoint, line0, line1 geometry.Vector2) (normalLineConstruction, error) {
	c := normalLineConstruction{point: point, normalLinePoint: normalLinePoint, line0: line0, line1: line1}
	direction := line1.Sub(line0)
	if direction.IsZero() {
		return c, zeroLength("line")
	}
	c.base = geometry.PointOnLine(normalLinePoint, line0, line1)
	c.normalEnd = c.base.Add(geometry.PerpendicularLeft(direction))
	c.foot = geometry.PointOnLine(point, c.base, c.normalEnd)
	return c, nil
}

func (c normalLineConstruction) distance() float64 {
	return geometry.PointLineDistance(c.point, c.base, c.normalEnd)
}

func (c normalLineConstruction) displacement() float64 {
	return geometry.PointLineDisplacement(c.point, c.base, c.normalEnd)
}

type normalProjectionConstruction struct {
	normalPoint, target geometry.Vector2
	a0, a1, b0, b1      geometry.Vector2
	base                geometry.Vector2 // foot of normalPoint on line A
	intersection        geometry.Vector2 // normal crossing line B
	targetFoot          geometry.Vector2 // foot of target on line B
}

func constructNormalProjection(normalPoint, target, a0, a1, b0, b1 geometry.Vector2) (normalProjectionConstruction, error) {
	c := normalProjectionConstruction{normalPoint: normalPoint, target: target, a0: a0, a1: a1, b0: b0, b1: b1}
	dirA := a1.Sub(a0)
	if dirA.IsZero() {
		return c, zeroLength("line A")
	}
	if b1.Sub(b0).IsZero() {
		return c, zeroLength("line B")
	}
	c.base = geometry.PointOnLine(normalPoint, a0, a1)
	intersection, ok := geometry.LineIntersection(normalPoint, normalPoint.Add(geometry.PerpendicularLeft(dirA)), b0, b1)
	if !ok {
		return c, fmt.Errorf("normal is parallel to line B: %w", ErrDegenerateGeometry)
	}
	c.intersection = intersection
	c.targetFoot = geometry.PointOnLine(target, b0, b1)
	return c, nil
}

func (c normalProjectionConstruction) displacement() float64 {
	return geometry.ScalarProjection(c.targetFoot.Sub(c.intersection), c.b1.Sub(c.b0).Normalize())
}
