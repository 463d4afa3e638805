package analysis

import (
	"errors"
	"testing"

	"github.com/philipparndt/gortho/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalysis(t *testing.T) *Analysis {
	t.Helper()
	a := New("test")
	for _, name := range []string{"S", "N", "A", "B"} {
		_, err := a.Landmarks.Add(name, "")
		require.NoError(t, err)
	}
	_, err := a.Measurements.Define("SNA", Angle{LineA0: "N", LineA1: "S", LineB0: "N", LineB1: "A"})
	require.NoError(t, err)
	_, err = a.Measurements.Define("SNB", Angle{LineA0: "N", LineA1: "S", LineB0: "N", LineB1: "B"})
	require.NoError(t, err)
	_, err = a.Measurements.Define("S-N", Distance{Point0: "S", Point1: "N"})
	require.NoError(t, err)
	return a
}

func TestValidateAcceptsWellFormedAnalysis(t *testing.T) {
	a := newTestAnalysis(t)
	_, err := a.Measurements.Define("sum", AngleSum{Angles: []string{"SNA", "SNB"}})
	require.NoError(t, err)

	assert.NoError(t, a.Validate())
}

func TestValidateReportsAllDefects(t *testing.T) {
	a := newTestAnalysis(t)
	a.Measurements.Define("ghost", Distance{Point0: "S", Point1: "Ghost"})
	a.Measurements.Define("half", Distance{Point0: "S"})
	a.Measurements.Define("mixed", AngleSum{Angles: []string{"SNA", "S-N"}})
	a.Measurements.Define("X", AngleSum{Angles: []string{"Y"}})
	a.Measurements.Define("Y", ConjugateAngle{Angles: []string{"X"}})

	err := a.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownName)
	assert.ErrorIs(t, err, ErrMissingParameter)
	assert.ErrorIs(t, err, ErrUnitMismatch)
	assert.ErrorIs(t, err, ErrCyclicDependency)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 4)
	assert.Contains(t, err.Error(), "X -> Y -> X")
}

func TestValidateDoesNotNeedPlacement(t *testing.T) {
	a := newTestAnalysis(t)
	assert.Zero(t, a.Landmarks.PlacedCount())
	assert.NoError(t, a.Validate())
}

func TestEvaluateIsolatesFailures(t *testing.T) {
	a := newTestAnalysis(t)
	a.Landmarks.Place("S", geometry.NewVector2(0, 0))
	a.Landmarks.Place("N", geometry.NewVector2(10, 0))
	a.Landmarks.Place("A", geometry.NewVector2(0, 10))

	report := a.Evaluate()
	require.Len(t, report.Results, 3)
	assert.Equal(t, "test", report.Analysis)
	assert.Equal(t, 2, report.Defined())

	sna, ok := report.Get("SNA")
	require.True(t, ok)
	assert.InDelta(t, 45, sna.Value, 1e-9)
	assert.Equal(t, Degrees, sna.Unit)
	assert.Equal(t, "45.00°", sna.Format(2))

	snb, ok := report.Get("SNB")
	require.True(t, ok)
	assert.False(t, snb.Defined())
	assert.True(t, IsUndefined(snb.Err))
	assert.Equal(t, "n/a", snb.Format(2))

	sn, _ := report.Get("S-N")
	assert.Equal(t, "10.0 mm", sn.Format(1))
}

func TestEvaluateSkipsDisabled(t *testing.T) {
	a := newTestAnalysis(t)
	m, _ := a.Measurements.Get("S-N")
	m.Enabled = false

	assert.Len(t, a.Evaluate().Results, 2)
	assert.Len(t, a.EvaluateWith(a.Landmarks, true).Results, 3)

	_, ok := a.Evaluate().Get("S-N")
	assert.False(t, ok)
}

func TestEvaluateWithScaledSnapshot(t *testing.T) {
	a := newTestAnalysis(t)
	a.Landmarks.Place("S", geometry.NewVector2(0, 0))
	a.Landmarks.Place("N", geometry.NewVector2(300, 400))

	scaled, err := a.Landmarks.Scaled(10)
	require.NoError(t, err)

	sn, _ := a.EvaluateWith(scaled, false).Get("S-N")
	assert.InDelta(t, 50, sn.Value, 1e-9)

	// the analysis keeps its own coordinates
	sn, _ = a.Evaluate().Get("S-N")
	assert.InDelta(t, 500, sn.Value, 1e-9)
}

func TestAnalysisVisualize(t *testing.T) {
	a := newTestAnalysis(t)
	a.Landmarks.Place("S", geometry.NewVector2(0, 0))
	a.Landmarks.Place("N", geometry.NewVector2(10, 0))

	hints := a.Visualize(a.Landmarks, ShowAll, DefaultHintStyle())
	require.Len(t, hints, 3)

	assert.Equal(t, "SNA", hints[0].Measurement)
	assert.ErrorIs(t, hints[0].Err, ErrUnresolvedLandmark)
	assert.Empty(t, hints[0].Primitives)

	assert.Equal(t, "S-N", hints[2].Measurement)
	assert.NoError(t, hints[2].Err)
	assert.NotEmpty(t, hints[2].Primitives)
}

func TestMeasurementsCollection(t *testing.T) {
	ms := NewMeasurements()
	_, err := ms.Define("a", Distance{Point0: "S", Point1: "N"})
	require.NoError(t, err)

	_, err = ms.Define("a", Distance{Point0: "S", Point1: "N"})
	assert.ErrorIs(t, err, ErrDuplicateName)
	_, err = ms.Define("", Distance{})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = ms.Define("b", AngleSum{Angles: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ms.Names())

	assert.True(t, ms.Remove("a"))
	assert.Equal(t, []string{"b"}, ms.Names())
	assert.Equal(t, 1, ms.Len())
}

func TestNewVariant(t *testing.T) {
	for _, kind := range Kinds() {
		v, err := NewVariant(kind)
		require.NoError(t, err, kind)
		assert.Equal(t, kind, v.Kind())
	}

	_, err := NewVariant("Curvature")
	assert.Error(t, err)
}

func TestVariantUnits(t *testing.T) {
	assert.Equal(t, Degrees, Angle{}.Unit())
	assert.Equal(t, Degrees, NormalLineAngle{}.Unit())
	assert.Equal(t, Degrees, ConjugateAngle{}.Unit())
	assert.Equal(t, Millimeters, Distance{}.Unit())
	assert.Equal(t, Millimeters, NormalLineProjectedDisplacement{}.Unit())
}

func TestNormalDirectionText(t *testing.T) {
	var d NormalDirection
	require.NoError(t, d.UnmarshalText([]byte("LEFT")))
	assert.Equal(t, NormalLeft, d)

	require.NoError(t, d.UnmarshalText([]byte("")))
	assert.Equal(t, NormalRight, d)

	assert.Error(t, d.UnmarshalText([]byte("up")))

	text, err := NormalLeft.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "left", string(text))
}
