package project

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/philipparndt/gortho/pkg/analysis"
	"github.com/philipparndt/gortho/pkg/geometry"
	"gopkg.in/yaml.v3"
)

// Document is the YAML representation of a project
type Document struct {
	Radiograph          string       `yaml:"radiograph,omitempty"`
	PixelsPerMillimeter float64      `yaml:"pixelsPerMillimeter,omitempty"`
	Analysis            AnalysisData `yaml:"analysis"`
}

// AnalysisData is the YAML representation of an analysis
type AnalysisData struct {
	Name         string            `yaml:"name"`
	Landmarks    []LandmarkData    `yaml:"landmarks"`
	Measurements []MeasurementData `yaml:"measurements"`
}

// LandmarkData is a landmark; Position is omitted while unplaced
type LandmarkData struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Position    []float64 `yaml:"position,flow,omitempty"`
}

// MeasurementData is a measurement whose variant parameters sit next to its
// name and type in the same mapping
type MeasurementData struct {
	Name    string
	Type    analysis.Kind
	Enabled *bool
	Variant analysis.Variant
}

type measurementHeader struct {
	Name    string        `yaml:"name"`
	Type    analysis.Kind `yaml:"type"`
	Enabled *bool         `yaml:"enabled,omitempty"`
}

func (m *MeasurementData) UnmarshalYAML(node *yaml.Node) error {
	var header measurementHeader
	if err := node.Decode(&header); err != nil {
		return err
	}
	if header.Type == "" {
		return fmt.Errorf("line %d: measurement %q has no type", node.Line, header.Name)
	}
	variant, err := decodeVariant(header.Type, node.Decode)
	if err != nil {
		return fmt.Errorf("line %d: measurement %q: %w", node.Line, header.Name, err)
	}
	if err := checkFields(node, header.Name, variant); err != nil {
		return err
	}
	*m = MeasurementData{Name: header.Name, Type: header.Type, Enabled: header.Enabled, Variant: variant}
	return nil
}

// checkFields rejects keys that neither the header nor the variant declares.
// node.Decode uses a fresh decoder, so KnownFields does not reach here.
func checkFields(node *yaml.Node, name string, variant analysis.Variant) error {
	header := yamlFields(reflect.TypeOf(measurementHeader{}))
	params := yamlFields(reflect.TypeOf(variant))
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !header[key.Value] && !params[key.Value] {
			return fmt.Errorf("line %d: measurement %q: field %s not found in type %s", key.Line, name, key.Value, variant.Kind())
		}
	}
	return nil
}

func (m MeasurementData) MarshalYAML() (interface{}, error) {
	if m.Variant == nil {
		return nil, fmt.Errorf("measurement %q has no variant", m.Name)
	}
	var node yaml.Node
	if err := node.Encode(measurementHeader{Name: m.Name, Type: m.Variant.Kind(), Enabled: m.Enabled}); err != nil {
		return nil, err
	}
	var params yaml.Node
	if err := params.Encode(m.Variant); err != nil {
		return nil, err
	}
	node.Content = append(node.Content, params.Content...)
	return &node, nil
}

// ToDocument converts a project into its YAML representation
func ToDocument(p *Project) Document {
	doc := Document{
		Radiograph:          p.Radiograph,
		PixelsPerMillimeter: p.PixelsPerMillimeter,
		Analysis: AnalysisData{
			Name:         p.Analysis.Name,
			Landmarks:    make([]LandmarkData, 0, p.Analysis.Landmarks.Len()),
			Measurements: make([]MeasurementData, 0, p.Analysis.Measurements.Len()),
		},
	}

	for _, l := range p.Analysis.Landmarks.All() {
		data := LandmarkData{Name: l.Name(), Description: l.Description}
		if position, ok := l.Coordinate(); ok {
			data.Position = []float64{position.X, position.Y}
		}
		doc.Analysis.Landmarks = append(doc.Analysis.Landmarks, data)
	}

	for _, m := range p.Analysis.Measurements.All() {
		data := MeasurementData{Name: m.Name(), Type: m.Kind(), Variant: m.Variant}
		if !m.Enabled {
			data.Enabled = boolPtr(false)
		}
		doc.Analysis.Measurements = append(doc.Analysis.Measurements, data)
	}
	return doc
}

// Project builds the project described by the document
func (d Document) Project() (*Project, error) {
	a := analysis.New(d.Analysis.Name)

	for _, data := range d.Analysis.Landmarks {
		l, err := a.Landmarks.Add(data.Name, data.Description)
		if err != nil {
			return nil, fmt.Errorf("landmark: %w", err)
		}
		switch len(data.Position) {
		case 0:
		case 2:
			if err := l.Place(geometry.NewVector2(data.Position[0], data.Position[1])); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("landmark %q: position needs two coordinates, got %d", data.Name, len(data.Position))
		}
	}

	for _, data := range d.Analysis.Measurements {
		m := analysis.NewMeasurement(data.Name, data.Variant)
		if data.Enabled != nil {
			m.Enabled = *data.Enabled
		}
		if err := a.Measurements.Add(m); err != nil {
			return nil, fmt.Errorf("measurement: %w", err)
		}
	}

	p := New(a)
	p.Radiograph = d.Radiograph
	if d.PixelsPerMillimeter != 0 {
		p.PixelsPerMillimeter = d.PixelsPerMillimeter
	}
	if p.PixelsPerMillimeter < 0 {
		return nil, fmt.Errorf("pixelsPerMillimeter must be positive, got %g", p.PixelsPerMillimeter)
	}
	return p, nil
}

// DecodeYAML reads a YAML project document
func DecodeYAML(r io.Reader) (*Project, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty project document")
		}
		return nil, err
	}
	return doc.Project()
}

// EncodeYAML writes a project as a YAML document
func EncodeYAML(w io.Writer, p *Project) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(ToDocument(p)); err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	return encoder.Close()
}
