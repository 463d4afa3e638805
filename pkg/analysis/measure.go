package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/philipparndt/gortho/pkg/geometry"
)

// evaluation resolves one measurement against a landmark/measurement snapshot.
// path holds the measurements currently being evaluated so that a composite
// re-entering one of them is reported instead of recursing forever.
type evaluation struct {
	landmarks    *Landmarks
	measurements *Measurements
	path         []string
}

func newEvaluation(landmarks *Landmarks, measurements *Measurements) *evaluation {
	if landmarks == nil {
		landmarks = NewLandmarks()
	}
	if measurements == nil {
		measurements = NewMeasurements()
	}
	return &evaluation{landmarks: landmarks, measurements: measurements}
}

// Measure evaluates the measurement against the given snapshot. The
// measurements collection is used to resolve composite references.
// Failures are returned as *MeasurementError; use IsUndefined to tell
// incomplete placement apart from definition defects.
func (m *Measurement) Measure(landmarks *Landmarks, measurements *Measurements) (float64, error) {
	return newEvaluation(landmarks, measurements).measure(m)
}

func (e *evaluation) measure(m *Measurement) (float64, error) {
	if m.Variant == nil {
		return 0, &MeasurementError{Measurement: m.name, Ref: "type", Err: ErrMissingParameter}
	}
	for i, name := range e.path {
		if name == m.name {
			cycle := append(append([]string{}, e.path[i:]...), m.name)
			return 0, &MeasurementError{Measurement: m.name, Ref: strings.Join(cycle, " -> "), Err: ErrCyclicDependency}
		}
	}
	e.path = append(e.path, m.name)
	defer func() { e.path = e.path[:len(e.path)-1] }()

	value, err := e.dispatch(m)
	if err != nil {
		var me *MeasurementError
		if errors.As(err, &me) && me.Measurement == m.name {
			return 0, err
		}
		return 0, &MeasurementError{Measurement: m.name, Err: err}
	}
	return value, nil
}

func (e *evaluation) dispatch(m *Measurement) (float64, error) {
	switch v := m.Variant.(type) {
	case AngleSum:
		sum, err := e.sum(m, v.Angles)
		return sum, err
	case ConjugateAngle:
		sum, err := e.sum(m, v.Angles)
		if err != nil {
			return 0, err
		}
		return 360 - sum, nil
	}

	p, err := e.points(m)
	if err != nil {
		return 0, err
	}

	switch v := m.Variant.(type) {
	case Distance:
		return p[1].Sub(p[0]).Length(), nil
	case Angle:
		c, err := constructAngle(p[0], p[1], p[2], p[3])
		return c.degrees, err
	case LineDistance:
		c, err := constructFoot(p[0], p[1], p[2])
		if err != nil {
			return 0, err
		}
		return c.distance(), nil
	case LineDisplacement:
		c, err := constructFoot(p[0], p[1], p[2])
		if err != nil {
			return 0, err
		}
		return c.displacement(), nil
	case ProjectedDistance:
		c, err := constructProjection(p[0], p[1], p[2], p[3])
		if err != nil {
			return 0, err
		}
		return c.distance(), nil
	case ProjectedDisplacement:
		c, err := constructProjection(p[0], p[1], p[2], p[3])
		if err != nil {
			return 0, err
		}
		return c.displacement(), nil
	case NormalLineAngle:
		c, err := constructNormalAngle(p[0], p[1], p[2], p[3], v.NormalDirection)
		return c.degrees, err
	case NormalLineDistance:
		c, err := constructNormalLine(p[0], p[1], p[2], p[3])
		if err != nil {
			return 0, err
		}
		return c.distance(), nil
	case NormalLineDisplacement:
		c, err := constructNormalLine(p[0], p[1], p[2], p[3])
		if err != nil {
			return 0, err
		}
		return c.displacement(), nil
	case NormalLineProjectedDisplacement:
		c, err := constructNormalProjection(p[0], p[1], p[2], p[3], p[4], p[5])
		if err != nil {
			return 0, err
		}
		return c.displacement(), nil
	}
	return 0, fmt.Errorf("unsupported measurement type %T", m.Variant)
}

// points resolves the landmark parameters of m in declaration order. Unknown
// names and missing parameters win over unplaced landmarks since they are
// definition defects that placing more points will not fix.
func (e *evaluation) points(m *Measurement) ([]geometry.Vector2, error) {
	params := m.Variant.Parameters()
	for _, param := range params {
		if param.Name == "" {
			return nil, &MeasurementError{Measurement: m.name, Ref: param.Field, Err: ErrMissingParameter}
		}
		if _, ok := e.landmarks.Get(param.Name); !ok {
			return nil, &MeasurementError{Measurement: m.name, Ref: param.Name, Err: ErrUnknownName}
		}
	}

	points := make([]geometry.Vector2, len(params))
	for i, param := range params {
		l, _ := e.landmarks.Get(param.Name)
		p, ok := l.Coordinate()
		if !ok {
			return nil, &MeasurementError{Measurement: m.name, Ref: param.Name, Err: ErrUnresolvedLandmark}
		}
		points[i] = p
	}
	return points, nil
}

// sum adds up the referenced angle measurements; the first failing
// reference is propagated
func (e *evaluation) sum(m *Measurement, names []string) (float64, error) {
	if len(names) == 0 {
		return 0, &MeasurementError{Measurement: m.name, Ref: "angles", Err: ErrMissingParameter}
	}

	refs := make([]*Measurement, len(names))
	for i, name := range names {
		if name == "" {
			return 0, &MeasurementError{Measurement: m.name, Ref: "angles", Err: ErrMissingParameter}
		}
		ref, ok := e.measurements.Get(name)
		if !ok {
			return 0, &MeasurementError{Measurement: m.name, Ref: name, Err: ErrUnknownName}
		}
		if ref.Unit() != Degrees {
			return 0, &MeasurementError{
				Measurement: m.name,
				Ref:         fmt.Sprintf("%s is in %s", name, ref.Unit()),
				Err:         ErrUnitMismatch,
			}
		}
		refs[i] = ref
	}

	total := 0.0
	for _, ref := range refs {
		value, err := e.measure(ref)
		if err != nil {
			return 0, &MeasurementError{Measurement: m.name, Ref: ref.name, Err: err}
		}
		total += value
	}
	return total, nil
}
