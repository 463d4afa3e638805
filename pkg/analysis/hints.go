package analysis

import (
	"fmt"

	"github.com/philipparndt/gortho/pkg/geometry"
)

// DisplayOptions selects which groups of primitives Visualize emits
type DisplayOptions uint8

const (
	ShowNames DisplayOptions = 1 << iota
	ShowMainLines
	ShowAuxiliaryLines
	ShowDistanceCallouts

	ShowNone DisplayOptions = 0
	ShowAll                 = ShowNames | ShowMainLines | ShowAuxiliaryLines | ShowDistanceCallouts
)

// Has reports whether all flags in o are set
func (d DisplayOptions) Has(o DisplayOptions) bool {
	return d&o == o
}

// Shape tells the renderer how to connect a primitive's points
type Shape int

const (
	ShapeSegment  Shape = iota // two points
	ShapePolyline              // connected points, e.g. an angle arc
	ShapeLabel                 // text anchored at one point
)

var shapeNames = map[Shape]string{
	ShapeSegment:  "segment",
	ShapePolyline: "polyline",
	ShapeLabel:    "label",
}

func (s Shape) MarshalText() ([]byte, error) {
	if name, ok := shapeNames[s]; ok {
		return []byte(name), nil
	}
	return nil, fmt.Errorf("unknown shape %d", s)
}

func (s *Shape) UnmarshalText(text []byte) error {
	for shape, name := range shapeNames {
		if name == string(text) {
			*s = shape
			return nil
		}
	}
	return fmt.Errorf("unknown shape %q", text)
}

// Role groups primitives by the display option that controls them
type Role int

const (
	RoleMain Role = iota
	RoleAuxiliary
	RoleCallout
	RoleName
)

var roleNames = map[Role]string{
	RoleMain:      "main",
	RoleAuxiliary: "auxiliary",
	RoleCallout:   "callout",
	RoleName:      "name",
}

func (r Role) MarshalText() ([]byte, error) {
	if name, ok := roleNames[r]; ok {
		return []byte(name), nil
	}
	return nil, fmt.Errorf("unknown role %d", r)
}

func (r *Role) UnmarshalText(text []byte) error {
	for role, name := range roleNames {
		if name == string(text) {
			*r = role
			return nil
		}
	}
	return fmt.Errorf("unknown role %q", text)
}

// Primitive is one element of a measurement's construction geometry
type Primitive struct {
	Shape  Shape              `json:"shape"`
	Role   Role               `json:"role"`
	Points []geometry.Vector2 `json:"points"`
	Text   string             `json:"text,omitempty"`
}

// HintStyle holds the sizes used for constructed geometry, in landmark units
type HintStyle struct {
	ExtensionLength float64 // how far construction lines run past an intersection
	ArcRadius       float64
	ArcSegments     int
}

// DefaultHintStyle returns the sizes OpenOrtho used for its annotations
func DefaultHintStyle() HintStyle {
	return HintStyle{ExtensionLength: 10, ArcRadius: 4, ArcSegments: 10}
}

type hintBuilder struct {
	options    DisplayOptions
	style      HintStyle
	primitives []Primitive
}

func (b *hintBuilder) segment(role Role, from, to geometry.Vector2) {
	if !b.options.Has(roleOption(role)) {
		return
	}
	b.primitives = append(b.primitives, Primitive{Shape: ShapeSegment, Role: role, Points: []geometry.Vector2{from, to}})
}

// extension draws the part of the infinite line between the segment l0-l1
// and a point on it that lies outside the segment
func (b *hintBuilder) extension(point, l0, l1 geometry.Vector2) {
	closest := geometry.ClosestOnSegment(point, l0, l1)
	if !closest.Equals(point) {
		b.segment(RoleAuxiliary, closest, point)
	}
}

func (b *hintBuilder) arc(center, rayA, rayB geometry.Vector2, degrees float64) {
	if !b.options.Has(ShowMainLines) {
		return
	}
	from := rayB
	if geometry.CompareClockwise(rayA, rayB) < 0 {
		from = rayA
	}
	points := geometry.Arc(center, from, geometry.ToRadians(degrees), b.style.ArcRadius, b.style.ArcSegments)
	b.primitives = append(b.primitives, Primitive{Shape: ShapePolyline, Role: RoleMain, Points: points})
}

func (b *hintBuilder) label(text string, at geometry.Vector2) {
	if !b.options.Has(ShowNames) {
		return
	}
	b.primitives = append(b.primitives, Primitive{Shape: ShapeLabel, Role: RoleName, Points: []geometry.Vector2{at}, Text: text})
}

func roleOption(role Role) DisplayOptions {
	switch role {
	case RoleAuxiliary:
		return ShowAuxiliaryLines
	case RoleCallout:
		return ShowDistanceCallouts
	case RoleName:
		return ShowNames
	}
	return ShowMainLines
}

// Visualize returns the construction geometry of the measurement with the
// default hint style. It fails exactly when Measure fails.
func (m *Measurement) Visualize(landmarks *Landmarks, measurements *Measurements, options DisplayOptions) ([]Primitive, error) {
	return m.VisualizeStyled(landmarks, measurements, options, DefaultHintStyle())
}

// VisualizeStyled is Visualize with explicit construction sizes
func (m *Measurement) VisualizeStyled(landmarks *Landmarks, measurements *Measurements, options DisplayOptions, style HintStyle) ([]Primitive, error) {
	e := newEvaluation(landmarks, measurements)
	if _, err := e.measure(m); err != nil {
		return nil, err
	}

	switch m.Variant.(type) {
	case AngleSum, ConjugateAngle:
		return nil, nil
	}

	p, err := e.points(m)
	if err != nil {
		return nil, err
	}

	b := &hintBuilder{options: options, style: style}
	switch v := m.Variant.(type) {
	case Distance:
		b.segment(RoleMain, p[0], p[1])
		b.segment(RoleCallout, p[0], p[1])
		b.label(m.name, p[0].Midpoint(p[1]))

	case Angle:
		c, err := constructAngle(p[0], p[1], p[2], p[3])
		if err != nil {
			return nil, err
		}
		b.angle(m.name, c)

	case LineDistance, LineDisplacement:
		c, err := constructFoot(p[0], p[1], p[2])
		if err != nil {
			return nil, err
		}
		b.segment(RoleMain, c.line0, c.line1)
		b.extension(c.foot, c.line0, c.line1)
		b.segment(RoleCallout, c.point, c.foot)
		b.label(m.name, c.point.Midpoint(c.foot))

	case ProjectedDistance, ProjectedDisplacement:
		c, err := constructProjection(p[0], p[1], p[2], p[3])
		if err != nil {
			return nil, err
		}
		b.segment(RoleMain, c.line0, c.line1)
		b.extension(c.foot0, c.line0, c.line1)
		b.extension(c.foot1, c.line0, c.line1)
		b.segment(RoleAuxiliary, c.point0, c.foot0)
		b.segment(RoleAuxiliary, c.point1, c.foot1)
		b.segment(RoleCallout, c.foot0, c.foot1)
		b.label(m.name, c.foot0.Midpoint(c.foot1))

	case NormalLineAngle:
		c, err := constructNormalAngle(p[0], p[1], p[2], p[3], v.NormalDirection)
		if err != nil {
			return nil, err
		}
		b.normalAngle(m.name, c)

	case NormalLineDistance, NormalLineDisplacement:
		c, err := constructNormalLine(p[0], p[1], p[2], p[3])
		if err != nil {
			return nil, err
		}
		b.segment(RoleMain, c.line0, c.line1)
		b.extension(c.base, c.line0, c.line1)
		b.segment(RoleMain, c.base, c.normalLinePoint)
		b.segment(RoleMain, c.base, c.foot)
		b.segment(RoleCallout, c.point, c.foot)
		b.label(m.name, c.point.Midpoint(c.foot))

	case NormalLineProjectedDisplacement:
		c, err := constructNormalProjection(p[0], p[1], p[2], p[3], p[4], p[5])
		if err != nil {
			return nil, err
		}
		b.segment(RoleMain, c.a0, c.a1)
		b.segment(RoleMain, c.b0, c.b1)
		b.segment(RoleMain, c.base, c.intersection)
		b.extension(c.intersection, c.b0, c.b1)
		b.extension(c.targetFoot, c.b0, c.b1)
		b.segment(RoleAuxiliary, c.target, c.targetFoot)
		b.segment(RoleCallout, c.intersection, c.targetFoot)
		b.label(m.name, c.intersection.Midpoint(c.targetFoot))
	}
	return b.primitives, nil
}

// angle draws both lines and, when they cross, extends them to the
// intersection and sweeps an arc between the two directions there. Both rays
// point the same way along their lines so the arc spans the measured angle
// rather than its supplement.
func (b *hintBuilder) angle(name string, c angleConstruction) {
	b.segment(RoleMain, c.a0, c.a1)
	b.segment(RoleMain, c.b0, c.b1)

	intersection, ok := geometry.LineIntersection(c.a0, c.a1, c.b0, c.b1)
	if !ok {
		b.label(name, c.a0.Midpoint(c.a1))
		return
	}

	rayA, rayB := c.dirA.Normalize(), c.dirB.Normalize()
	towards := c.a0.Midpoint(c.a1).Sub(intersection).Dot(rayA) + c.b0.Midpoint(c.b1).Sub(intersection).Dot(rayB)
	if towards < 0 {
		rayA, rayB = rayA.Scale(-1), rayB.Scale(-1)
	}

	b.extension(intersection, c.a0, c.a1)
	b.extension(intersection, c.b0, c.b1)
	b.arc(intersection, rayA, rayB, c.degrees)
	b.label(name, intersection.Add(bisector(rayA, rayB).Scale(b.style.ArcRadius)))
}

// normalAngle draws line A with the normal erected at its end point and
// line B, each running ExtensionLength past their intersection, and the arc
// between the normal and line B.
func (b *hintBuilder) normalAngle(name string, c normalAngleConstruction) {
	normalEnd := c.normalEnd()
	b.segment(RoleMain, c.a0, c.a1)
	b.segment(RoleMain, c.a1, normalEnd)
	b.segment(RoleMain, c.b0, c.b1)

	intersection, ok := geometry.LineIntersection(c.a1, normalEnd, c.b0, c.b1)
	if !ok {
		b.label(name, c.a1)
		return
	}

	unitNormal := c.normal.Normalize()
	unitB := c.b1.Sub(c.b0).Normalize()
	b.segment(RoleAuxiliary, intersection.Add(unitNormal.Scale(b.style.ExtensionLength)), c.a1)
	b.segment(RoleAuxiliary, intersection.Add(unitB.Scale(b.style.ExtensionLength)), c.b0)

	rayA, rayB := unitNormal.Scale(-1), unitB.Scale(-1)
	b.arc(intersection, rayA, rayB, c.degrees)
	b.label(name, intersection.Add(bisector(rayA, rayB).Scale(b.style.ArcRadius)))
}

func bisector(a, b geometry.Vector2) geometry.Vector2 {
	sum := a.Add(b)
	if sum.IsZero() {
		return geometry.PerpendicularLeft(a)
	}
	return sum.Normalize()
}
