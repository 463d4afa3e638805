package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compositeFixture defines two angles of 90° and 45° plus a distance
func compositeFixture(t *testing.T) (*Landmarks, *Measurements) {
	t.Helper()
	s := newLandmarks(t, at("O", 0, 0), at("X", 1, 0), at("Y", 0, 1), at("D", 1, 1), unplaced("U"))
	ms := NewMeasurements()
	_, err := ms.Define("right", Angle{LineA0: "O", LineA1: "X", LineB0: "O", LineB1: "Y"})
	require.NoError(t, err)
	_, err = ms.Define("half", Angle{LineA0: "O", LineA1: "X", LineB0: "O", LineB1: "D"})
	require.NoError(t, err)
	_, err = ms.Define("length", Distance{Point0: "O", Point1: "D"})
	require.NoError(t, err)
	_, err = ms.Define("open", Angle{LineA0: "O", LineA1: "X", LineB0: "O", LineB1: "U"})
	require.NoError(t, err)
	return s, ms
}

func TestAngleSumAndConjugate(t *testing.T) {
	s, ms := compositeFixture(t)

	sum, err := ms.Define("sum", AngleSum{Angles: []string{"right", "half"}})
	require.NoError(t, err)
	conjugate, err := ms.Define("conjugate", ConjugateAngle{Angles: []string{"right", "half"}})
	require.NoError(t, err)

	value, err := sum.Measure(s, ms)
	require.NoError(t, err)
	assert.InDelta(t, 135, value, 1e-9)

	value, err = conjugate.Measure(s, ms)
	require.NoError(t, err)
	assert.InDelta(t, 225, value, 1e-9)
}

func TestCompositeOfComposite(t *testing.T) {
	s, ms := compositeFixture(t)
	_, err := ms.Define("pair", AngleSum{Angles: []string{"half", "half"}})
	require.NoError(t, err)
	total, err := ms.Define("total", AngleSum{Angles: []string{"pair", "right"}})
	require.NoError(t, err)

	value, err := total.Measure(s, ms)
	require.NoError(t, err)
	assert.InDelta(t, 180, value, 1e-9)
}

func TestCompositeIgnoresEnabledFlag(t *testing.T) {
	s, ms := compositeFixture(t)
	right, _ := ms.Get("right")
	right.Enabled = false

	sum, err := ms.Define("sum", AngleSum{Angles: []string{"right"}})
	require.NoError(t, err)

	value, err := sum.Measure(s, ms)
	require.NoError(t, err)
	assert.InDelta(t, 90, value, 1e-9)
}

func TestCompositePropagatesUndefined(t *testing.T) {
	s, ms := compositeFixture(t)
	sum, err := ms.Define("sum", AngleSum{Angles: []string{"right", "open"}})
	require.NoError(t, err)

	_, err = sum.Measure(s, ms)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedLandmark)
	assert.True(t, IsUndefined(err))

	var me *MeasurementError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "sum", me.Measurement)
	assert.Equal(t, "open", me.Ref)
}

func TestSelfReferenceIsCycle(t *testing.T) {
	s, ms := compositeFixture(t)
	x, err := ms.Define("X", AngleSum{Angles: []string{"X"}})
	require.NoError(t, err)

	_, err = x.Measure(s, ms)
	assert.ErrorIs(t, err, ErrCyclicDependency)
	assert.True(t, IsConfigError(err))
	assert.False(t, IsUndefined(err))
	assert.Contains(t, err.Error(), "X -> X")
}

func TestMutualReferenceIsCycle(t *testing.T) {
	s, ms := compositeFixture(t)
	a, err := ms.Define("A", AngleSum{Angles: []string{"right", "B"}})
	require.NoError(t, err)
	_, err = ms.Define("B", ConjugateAngle{Angles: []string{"A"}})
	require.NoError(t, err)

	_, err = a.Measure(s, ms)
	assert.ErrorIs(t, err, ErrCyclicDependency)
	assert.Contains(t, err.Error(), "A -> B -> A")
}

func TestCompositeConfigErrors(t *testing.T) {
	s, ms := compositeFixture(t)

	tests := []struct {
		name     string
		variant  Variant
		expected error
	}{
		{"unknown reference", AngleSum{Angles: []string{"right", "ghost"}}, ErrUnknownName},
		{"distance reference", AngleSum{Angles: []string{"right", "length"}}, ErrUnitMismatch},
		{"empty list", ConjugateAngle{}, ErrMissingParameter},
		{"blank name", AngleSum{Angles: []string{""}}, ErrMissingParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMeasurement("composite", tt.variant).Measure(s, ms)
			assert.ErrorIs(t, err, tt.expected)
			assert.True(t, IsConfigError(err))
		})
	}
}

func TestUnknownReferenceWinsOverUndefined(t *testing.T) {
	s, ms := compositeFixture(t)

	_, err := NewMeasurement("composite", AngleSum{Angles: []string{"open", "ghost"}}).Measure(s, ms)
	assert.ErrorIs(t, err, ErrUnknownName)
	assert.NotErrorIs(t, err, ErrUnresolvedLandmark)
}
