package project

import (
	"bytes"
	"strings"
	"testing"

	"github.com/philipparndt/gortho/pkg/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
radiograph: images/patient.png
pixelsPerMillimeter: 5
analysis:
  name: Sample
  landmarks:
    - name: S
      description: Sella
      position: [0, 0]
    - name: N
      description: Nasion
      position: [50, 0]
    - name: A
      position: [50, 50]
    - name: B
  measurements:
    - name: SNA
      type: Angle
      lineA0: N
      lineA1: S
      lineB0: N
      lineB1: A
    - name: S-N
      type: Distance
      enabled: false
      point0: S
      point1: N
    - name: Sum
      type: AngleSum
      angles: [SNA, SNA]
    - name: Normal
      type: NormalLineAngle
      lineA0: S
      lineA1: N
      lineB0: N
      lineB1: A
      normalDirection: Left
`

func TestDecodeYAML(t *testing.T) {
	p, err := DecodeYAML(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "images/patient.png", p.Radiograph)
	assert.Equal(t, 5.0, p.PixelsPerMillimeter)
	assert.Equal(t, "Sample", p.Analysis.Name)
	assert.Equal(t, []string{"S", "N", "A", "B"}, p.Analysis.Landmarks.Names())
	assert.Equal(t, []string{"SNA", "S-N", "Sum", "Normal"}, p.Analysis.Measurements.Names())

	s, _ := p.Analysis.Landmarks.Get("S")
	assert.Equal(t, "Sella", s.Description)
	b, _ := p.Analysis.Landmarks.Get("B")
	assert.False(t, b.Placed())

	sn, _ := p.Analysis.Measurements.Get("S-N")
	assert.False(t, sn.Enabled)
	assert.Equal(t, analysis.Distance{Point0: "S", Point1: "N"}, sn.Variant)

	sum, _ := p.Analysis.Measurements.Get("Sum")
	assert.Equal(t, analysis.AngleSum{Angles: []string{"SNA", "SNA"}}, sum.Variant)

	normal, _ := p.Analysis.Measurements.Get("Normal")
	assert.Equal(t, analysis.NormalLeft, normal.Variant.(analysis.NormalLineAngle).NormalDirection)

	require.NoError(t, p.Analysis.Validate())
}

func TestYAMLRoundTripPreservesOrder(t *testing.T) {
	p, err := DecodeYAML(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, p))

	out := buf.String()
	assert.Contains(t, out, "angles: [SNA, SNA]")
	assert.Contains(t, out, "normalDirection: left")
	assert.Contains(t, out, "enabled: false")
	assert.NotContains(t, out, "enabled: true")
	assert.Less(t, strings.Index(out, "name: SNA"), strings.Index(out, "name: S-N"))

	again, err := DecodeYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, p.Analysis.Landmarks.Names(), again.Analysis.Landmarks.Names())
	assert.Equal(t, p.Analysis.Measurements.Names(), again.Analysis.Measurements.Names())
	for _, m := range p.Analysis.Measurements.All() {
		other, ok := again.Analysis.Measurements.Get(m.Name())
		require.True(t, ok)
		assert.Equal(t, m.Variant, other.Variant)
		assert.Equal(t, m.Enabled, other.Enabled)
	}
	a, _ := again.Analysis.Landmarks.Resolve("A")
	assert.Equal(t, 50.0, a.X)
}

func TestDecodeYAMLRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name     string
		document string
		contains string
	}{
		{
			name: "unknown type",
			document: `analysis:
  measurements:
    - name: X
      type: Curvature`,
			contains: "unknown measurement type",
		},
		{
			name: "missing type",
			document: `analysis:
  measurements:
    - name: X`,
			contains: "has no type",
		},
		{
			name: "duplicate landmark",
			document: `analysis:
  landmarks:
    - name: S
    - name: S`,
			contains: "duplicate name",
		},
		{
			name: "duplicate measurement",
			document: `analysis:
  measurements:
    - {name: D, type: Distance}
    - {name: D, type: Distance}`,
			contains: "duplicate name",
		},
		{
			name: "bad position",
			document: `analysis:
  landmarks:
    - name: S
      position: [1, 2, 3]`,
			contains: "two coordinates",
		},
		{
			name:     "unknown field",
			document: `analysys: {}`,
			contains: "analysys",
		},
		{
			name: "misspelled enabled",
			document: `analysis:
  measurements:
    - name: FMA
      type: NormalLineAngle
      enable: false
      lineA0: Po
      lineA1: Or
      lineB0: Go
      lineB1: Me`,
			contains: "field enable not found",
		},
		{
			name: "misspelled optional parameter",
			document: `analysis:
  measurements:
    - name: FMA
      type: NormalLineAngle
      normalDirecton: left
      lineA0: Po
      lineA1: Or
      lineB0: Go
      lineB1: Me`,
			contains: "field normalDirecton not found",
		},
		{
			name: "parameter of another type",
			document: `analysis:
  measurements:
    - name: D
      type: Distance
      point0: S
      point1: N
      line0: A`,
			contains: "field line0 not found in type Distance",
		},
		{
			name: "non-finite position",
			document: `analysis:
  landmarks:
    - name: S
      position: [.nan, 0]`,
			contains: "not finite",
		},
		{
			name: "infinite position",
			document: `analysis:
  landmarks:
    - name: S
      position: [1, -.inf]`,
			contains: "not finite",
		},
		{
			name:     "empty",
			document: ``,
			contains: "empty project document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeYAML(strings.NewReader(tt.document))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestDecodeYAMLDefaultsScale(t *testing.T) {
	p, err := DecodeYAML(strings.NewReader("analysis:\n  name: Empty\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPixelsPerMillimeter, p.PixelsPerMillimeter)
}
