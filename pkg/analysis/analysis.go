// Package analysis implements the cephalometric measurement engine: named
// landmarks, the closed family of measurement variants computed from them,
// and the analysis template that bundles both.
//
// Evaluation is synchronous and side-effect free. Measure and Visualize read
// the landmark and measurement collections and never modify them, so they are
// safe to call on every frame of an interactive editor.
package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// Analysis is a named template of landmarks and the measurements derived
// from them. It exclusively owns both collections.
type Analysis struct {
	Name         string
	Landmarks    *Landmarks
	Measurements *Measurements
}

// New creates an empty analysis
func New(name string) *Analysis {
	return &Analysis{
		Name:         name,
		Landmarks:    NewLandmarks(),
		Measurements: NewMeasurements(),
	}
}

func (a *Analysis) String() string {
	return a.Name
}

// Validate checks the definition for authoring defects: missing parameters,
// unknown landmark or measurement names, composites over non-angle
// measurements, and reference cycles. All defects are returned joined.
func (a *Analysis) Validate() error {
	var errs []error
	for _, m := range a.Measurements.All() {
		if m.Variant == nil {
			errs = append(errs, &MeasurementError{Measurement: m.name, Ref: "type", Err: ErrMissingParameter})
			continue
		}
		for _, param := range m.Variant.Parameters() {
			switch {
			case param.Name == "":
				errs = append(errs, &MeasurementError{Measurement: m.name, Ref: param.Field, Err: ErrMissingParameter})
			case param.Measurement:
				ref, ok := a.Measurements.Get(param.Name)
				if !ok {
					errs = append(errs, &MeasurementError{Measurement: m.name, Ref: param.Name, Err: ErrUnknownName})
				} else if ref.Unit() != Degrees {
					errs = append(errs, &MeasurementError{
						Measurement: m.name,
						Ref:         fmt.Sprintf("%s is in %s", ref.name, ref.Unit()),
						Err:         ErrUnitMismatch,
					})
				}
			default:
				if _, ok := a.Landmarks.Get(param.Name); !ok {
					errs = append(errs, &MeasurementError{Measurement: m.name, Ref: param.Name, Err: ErrUnknownName})
				}
			}
		}
	}
	errs = append(errs, a.cycles()...)
	return errors.Join(errs...)
}

// cycles walks the composite reference graph depth-first and reports each
// cycle once, from the measurement where it was first entered
func (a *Analysis) cycles() []error {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int)
	var errs []error
	var path []string

	var visit func(m *Measurement)
	visit = func(m *Measurement) {
		state[m.name] = active
		path = append(path, m.name)
		var params []Parameter
		if m.Variant != nil {
			params = m.Variant.Parameters()
		}
		for _, param := range params {
			if !param.Measurement {
				continue
			}
			ref, ok := a.Measurements.Get(param.Name)
			if !ok {
				continue
			}
			switch state[ref.name] {
			case active:
				start := 0
				for i, name := range path {
					if name == ref.name {
						start = i
						break
					}
				}
				cycle := append(append([]string{}, path[start:]...), ref.name)
				errs = append(errs, &MeasurementError{Measurement: ref.name, Ref: strings.Join(cycle, " -> "), Err: ErrCyclicDependency})
			case unvisited:
				visit(ref)
			}
		}
		path = path[:len(path)-1]
		state[m.name] = done
	}

	for _, m := range a.Measurements.All() {
		if state[m.name] == unvisited {
			visit(m)
		}
	}
	return errs
}

// Result is the outcome of one measurement in a report
type Result struct {
	Name  string
	Kind  Kind
	Unit  Unit
	Value float64
	Err   error
}

// Defined reports whether the result carries a value
func (r Result) Defined() bool {
	return r.Err == nil
}

// Format renders the value with its unit, or "n/a" when undefined
func (r Result) Format(decimals int) string {
	if !r.Defined() {
		return "n/a"
	}
	return FormatValue(r.Value, r.Unit, decimals)
}

// Report holds the results of evaluating an analysis, in declaration order
type Report struct {
	Analysis string
	Results  []Result
}

// Get returns the result for a measurement name
func (r Report) Get(name string) (Result, bool) {
	for _, result := range r.Results {
		if result.Name == name {
			return result, true
		}
	}
	return Result{}, false
}

// Defined counts the results that carry a value
func (r Report) Defined() int {
	count := 0
	for _, result := range r.Results {
		if result.Defined() {
			count++
		}
	}
	return count
}

// Evaluate measures every enabled measurement against the analysis' own
// landmarks
func (a *Analysis) Evaluate() Report {
	return a.EvaluateWith(a.Landmarks, false)
}

// EvaluateWith measures against another landmark snapshot, e.g. one scaled
// to millimetres. Disabled measurements are skipped unless includeDisabled
// is set. A failing measurement never prevents the others from evaluating.
func (a *Analysis) EvaluateWith(landmarks *Landmarks, includeDisabled bool) Report {
	report := Report{Analysis: a.Name}
	for _, m := range a.Measurements.All() {
		if !m.Enabled && !includeDisabled {
			continue
		}
		value, err := m.Measure(landmarks, a.Measurements)
		report.Results = append(report.Results, Result{
			Name:  m.name,
			Kind:  m.Kind(),
			Unit:  m.Unit(),
			Value: value,
			Err:   err,
		})
	}
	return report
}

// Hints is the construction geometry of one measurement
type Hints struct {
	Measurement string      `json:"measurement"`
	Primitives  []Primitive `json:"primitives"`
	Err         error       `json:"-"`
}

// Visualize collects the construction geometry of every enabled measurement
func (a *Analysis) Visualize(landmarks *Landmarks, options DisplayOptions, style HintStyle) []Hints {
	var out []Hints
	for _, m := range a.Measurements.Enabled() {
		primitives, err := m.VisualizeStyled(landmarks, a.Measurements, options, style)
		out = append(out, Hints{Measurement: m.name, Primitives: primitives, Err: err})
	}
	return out
}
