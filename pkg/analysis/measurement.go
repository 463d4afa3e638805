package analysis

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Unit labels a measured value
type Unit string

const (
	Degrees     Unit = "deg"
	Millimeters Unit = "mm"
)

// Kind is the tag of a measurement variant as it appears in analysis documents
type Kind string

const (
	KindDistance                        Kind = "Distance"
	KindAngle                           Kind = "Angle"
	KindAngleSum                        Kind = "AngleSum"
	KindConjugateAngle                  Kind = "ConjugateAngle"
	KindLineDistance                    Kind = "LineDistance"
	KindLineDisplacement                Kind = "LineDisplacement"
	KindProjectedDistance               Kind = "ProjectedDistance"
	KindProjectedDisplacement           Kind = "ProjectedDisplacement"
	KindNormalLineAngle                 Kind = "NormalLineAngle"
	KindNormalLineDistance              Kind = "NormalLineDistance"
	KindNormalLineDisplacement          Kind = "NormalLineDisplacement"
	KindNormalLineProjectedDisplacement Kind = "NormalLineProjectedDisplacement"
)

// Kinds lists every variant tag in a stable order
func Kinds() []Kind {
	return []Kind{
		KindDistance,
		KindAngle,
		KindAngleSum,
		KindConjugateAngle,
		KindLineDistance,
		KindLineDisplacement,
		KindProjectedDistance,
		KindProjectedDisplacement,
		KindNormalLineAngle,
		KindNormalLineDistance,
		KindNormalLineDisplacement,
		KindNormalLineProjectedDisplacement,
	}
}

// NewVariant returns the zero variant for a tag, or an error for unknown tags
func NewVariant(kind Kind) (Variant, error) {
	switch kind {
	case KindDistance:
		return Distance{}, nil
	case KindAngle:
		return Angle{}, nil
	case KindAngleSum:
		return AngleSum{}, nil
	case KindConjugateAngle:
		return ConjugateAngle{}, nil
	case KindLineDistance:
		return LineDistance{}, nil
	case KindLineDisplacement:
		return LineDisplacement{}, nil
	case KindProjectedDistance:
		return ProjectedDistance{}, nil
	case KindProjectedDisplacement:
		return ProjectedDisplacement{}, nil
	case KindNormalLineAngle:
		return NormalLineAngle{}, nil
	case KindNormalLineDistance:
		return NormalLineDistance{}, nil
	case KindNormalLineDisplacement:
		return NormalLineDisplacement{}, nil
	case KindNormalLineProjectedDisplacement:
		return NormalLineProjectedDisplacement{}, nil
	}
	return nil, fmt.Errorf("unknown measurement type %q", kind)
}

// Parameter is one named reference held by a variant
type Parameter struct {
	Field       string
	Name        string
	Measurement bool // references a measurement instead of a landmark
}

// Variant is the closed set of measurement kinds. The unexported method keeps
// implementations inside this package so dispatch stays exhaustive.
type Variant interface {
	Kind() Kind
	Unit() Unit
	Parameters() []Parameter
	variant()
}

func landmarkParams(pairs ...string) []Parameter {
	params := make([]Parameter, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		params = append(params, Parameter{Field: pairs[i], Name: pairs[i+1]})
	}
	return params
}

func measurementParams(field string, names []string) []Parameter {
	if len(names) == 0 {
		return []Parameter{{Field: field, Measurement: true}}
	}
	params := make([]Parameter, len(names))
	for i, name := range names {
		params[i] = Parameter{Field: field, Name: name, Measurement: true}
	}
	return params
}

// Distance is the Euclidean distance between two landmarks
type Distance struct {
	Point0 string `yaml:"point0" xml:"Point0"`
	Point1 string `yaml:"point1" xml:"Point1"`
}

// Angle is the unsigned angle between the directions lineA0→lineA1 and lineB0→lineB1
type Angle struct {
	LineA0 string `yaml:"lineA0" xml:"PointA0"`
	LineA1 string `yaml:"lineA1" xml:"PointA1"`
	LineB0 string `yaml:"lineB0" xml:"PointB0"`
	LineB1 string `yaml:"lineB1" xml:"PointB1"`
}

// AngleSum adds up other angle measurements
type AngleSum struct {
	Angles []string `yaml:"angles,flow" xml:"Angles>string"`
}

// ConjugateAngle is 360° minus the sum of other angle measurements
type ConjugateAngle struct {
	Angles []string `yaml:"angles,flow" xml:"Angles>string"`
}

// LineDistance is the unsigned distance from a landmark to a line
type LineDistance struct {
	Point string `yaml:"point" xml:"Point"`
	Line0 string `yaml:"line0" xml:"Line0"`
	Line1 string `yaml:"line1" xml:"Line1"`
}

// LineDisplacement is the signed distance from a landmark to a line
type LineDisplacement struct {
	Point string `yaml:"point" xml:"Point"`
	Line0 string `yaml:"line0" xml:"Line0"`
	Line1 string `yaml:"line1" xml:"Line1"`
}

// ProjectedDistance is the distance between the feet of two landmarks on a line
type ProjectedDistance struct {
	Point0 string `yaml:"point0" xml:"Point0"`
	Point1 string `yaml:"point1" xml:"Point1"`
	Line0  string `yaml:"line0" xml:"Line0"`
	Line1  string `yaml:"line1" xml:"Line1"`
}

// ProjectedDisplacement is the signed distance between the feet of two
// landmarks on a line, measured along line0→line1
type ProjectedDisplacement struct {
	Point0 string `yaml:"point0" xml:"Point0"`
	Point1 string `yaml:"point1" xml:"Point1"`
	Line0  string `yaml:"line0" xml:"Line0"`
	Line1  string `yaml:"line1" xml:"Line1"`
}

// NormalLineAngle is the angle between a normal erected at lineA1 and lineB
type NormalLineAngle struct {
	LineA0          string          `yaml:"lineA0" xml:"LineA0"`
	LineA1          string          `yaml:"lineA1" xml:"LineA1"`
	LineB0          string          `yaml:"lineB0" xml:"LineB0"`
	LineB1          string          `yaml:"lineB1" xml:"LineB1"`
	NormalDirection NormalDirection `yaml:"normalDirection,omitempty" xml:"NormalDirection"`
}

// NormalLineDistance is the unsigned distance from a landmark to the normal
// of line0–line1 that passes through normalLinePoint
type NormalLineDistance struct {
	Point           string `yaml:"point" xml:"Point"`
	NormalLinePoint string `yaml:"normalLinePoint" xml:"NormalLinePoint"`
	Line0           string `yaml:"line0" xml:"Line0"`
	Line1           string `yaml:"line1" xml:"Line1"`
}

// NormalLineDisplacement is the signed variant of NormalLineDistance
type NormalLineDisplacement struct {
	Point           string `yaml:"point" xml:"Point"`
	NormalLinePoint string `yaml:"normalLinePoint" xml:"NormalLinePoint"`
	Line0           string `yaml:"line0" xml:"Line0"`
	Line1           string `yaml:"line1" xml:"Line1"`
}

// NormalLineProjectedDisplacement measures along lineB from the point where
// the normal of lineA through normalPoint crosses lineB to the foot of
// targetPoint on lineB
type NormalLineProjectedDisplacement struct {
	NormalPoint string `yaml:"normalPoint" xml:"NormalPoint"`
	TargetPoint string `yaml:"targetPoint" xml:"TargetPoint"`
	LineA0      string `yaml:"lineA0" xml:"LineA0"`
	LineA1      string `yaml:"lineA1" xml:"LineA1"`
	LineB0      string `yaml:"lineB0" xml:"LineB0"`
	LineB1      string `yaml:"lineB1" xml:"LineB1"`
}

func (Distance) Kind() Kind                        { return KindDistance }
func (Angle) Kind() Kind                           { return KindAngle }
func (AngleSum) Kind() Kind                        { return KindAngleSum }
func (ConjugateAngle) Kind() Kind                  { return KindConjugateAngle }
func (LineDistance) Kind() Kind                    { return KindLineDistance }
func (LineDisplacement) Kind() Kind                { return KindLineDisplacement }
func (ProjectedDistance) Kind() Kind               { return KindProjectedDistance }
func (ProjectedDisplacement) Kind() Kind           { return KindProjectedDisplacement }
func (NormalLineAngle) Kind() Kind                 { return KindNormalLineAngle }
func (NormalLineDistance) Kind() Kind              { return KindNormalLineDistance }
func (NormalLineDisplacement) Kind() Kind          { return KindNormalLineDisplacement }
func (NormalLineProjectedDisplacement) Kind() Kind { return KindNormalLineProjectedDisplacement }

func (Distance) Unit() Unit                        { return Millimeters }
func (Angle) Unit() Unit                           { return Degrees }
func (AngleSum) Unit() Unit                        { return Degrees }
func (ConjugateAngle) Unit() Unit                  { return Degrees }
func (LineDistance) Unit() Unit                    { return Millimeters }
func (LineDisplacement) Unit() Unit                { return Millimeters }
func (ProjectedDistance) Unit() Unit               { return Millimeters }
func (ProjectedDisplacement) Unit() Unit           { return Millimeters }
func (NormalLineAngle) Unit() Unit                 { return Degrees }
func (NormalLineDistance) Unit() Unit              { return Millimeters }
func (NormalLineDisplacement) Unit() Unit          { return Millimeters }
func (NormalLineProjectedDisplacement) Unit() Unit { return Millimeters }

func (Distance) variant()                        {}
func (Angle) variant()                           {}
func (AngleSum) variant()                        {}
func (ConjugateAngle) variant()                  {}
func (LineDistance) variant()                    {}
func (LineDisplacement) variant()                {}
func (ProjectedDistance) variant()               {}
func (ProjectedDisplacement) variant()           {}
func (NormalLineAngle) variant()                 {}
func (NormalLineDistance) variant()              {}
func (NormalLineDisplacement) variant()          {}
func (NormalLineProjectedDisplacement) variant() {}

func (v Distance) Parameters() []Parameter {
	return landmarkParams("point0", v.Point0, "point1", v.Point1)
}

func (v Angle) Parameters() []Parameter {
	return landmarkParams("lineA0", v.LineA0, "lineA1", v.LineA1, "lineB0", v.LineB0, "lineB1", v.LineB1)
}

func (v AngleSum) Parameters() []Parameter {
	return measurementParams("angles", v.Angles)
}

func (v ConjugateAngle) Parameters() []Parameter {
	return measurementParams("angles", v.Angles)
}

func (v LineDistance) Parameters() []Parameter {
	return landmarkParams("point", v.Point, "line0", v.Line0, "line1", v.Line1)
}

func (v LineDisplacement) Parameters() []Parameter {
	return landmarkParams("point", v.Point, "line0", v.Line0, "line1", v.Line1)
}

func (v ProjectedDistance) Parameters() []Parameter {
	return landmarkParams("point0", v.Point0, "point1", v.Point1, "line0", v.Line0, "line1", v.Line1)
}

func (v ProjectedDisplacement) Parameters() []Parameter {
	return landmarkParams("point0", v.Point0, "point1", v.Point1, "line0", v.Line0, "line1", v.Line1)
}

func (v NormalLineAngle) Parameters() []Parameter {
	return landmarkParams("lineA0", v.LineA0, "lineA1", v.LineA1, "lineB0", v.LineB0, "lineB1", v.LineB1)
}

func (v NormalLineDistance) Parameters() []Parameter {
	return landmarkParams("point", v.Point, "normalLinePoint", v.NormalLinePoint, "line0", v.Line0, "line1", v.Line1)
}

func (v NormalLineDisplacement) Parameters() []Parameter {
	return landmarkParams("point", v.Point, "normalLinePoint", v.NormalLinePoint, "line0", v.Line0, "line1", v.Line1)
}

func (v NormalLineProjectedDisplacement) Parameters() []Parameter {
	return landmarkParams(
		"normalPoint", v.NormalPoint,
		"targetPoint", v.TargetPoint,
		"lineA0", v.LineA0,
		"lineA1", v.LineA1,
		"lineB0", v.LineB0,
		"lineB1", v.LineB1,
	)
}

// NormalDirection selects which perpendicular of lineA a NormalLineAngle erects
type NormalDirection int

const (
	NormalRight NormalDirection = iota
	NormalLeft
)

func (d NormalDirection) String() string {
	if d == NormalLeft {
		return "left"
	}
	return "right"
}

// IsZero lets omitempty drop the default direction
func (d NormalDirection) IsZero() bool {
	return d == NormalRight
}

func (d NormalDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *NormalDirection) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "right":
		*d = NormalRight
	case "left":
		*d = NormalLeft
	default:
		return fmt.Errorf("unknown normal direction %q", text)
	}
	return nil
}

// MarshalXML writes the enum names used by OpenOrtho project files
func (d NormalDirection) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	name := "Right"
	if d == NormalLeft {
		name = "Left"
	}
	return e.EncodeElement(name, start)
}

// Measurement is a named, switchable instance of a variant
type Measurement struct {
	name    string
	Enabled bool
	Variant Variant
}

// NewMeasurement creates an enabled measurement
func NewMeasurement(name string, variant Variant) *Measurement {
	return &Measurement{name: name, Enabled: true, Variant: variant}
}

// Name returns the measurement's key
func (m *Measurement) Name() string {
	return m.name
}

// Kind returns the variant tag, empty without a variant
func (m *Measurement) Kind() Kind {
	if m.Variant == nil {
		return ""
	}
	return m.Variant.Kind()
}

// Unit returns the fixed unit of the variant, empty without a variant
func (m *Measurement) Unit() Unit {
	if m.Variant == nil {
		return ""
	}
	return m.Variant.Unit()
}

func (m *Measurement) String() string {
	return fmt.Sprintf("%s (%s, %s)", m.name, m.Kind(), m.Unit())
}
