package project

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"

	"github.com/philipparndt/gortho/pkg/analysis"
	"github.com/philipparndt/gortho/pkg/geometry"
)

// The legacy format is what OpenOrtho's XmlSerializer wrote for an
// OrthoProject. Scale is stored per metre and unplaced points carry NaN.

type xmlProject struct {
	XMLName        xml.Name    `xml:"OrthoProject"`
	Radiograph     string      `xml:"Radiograph,omitempty"`
	PixelsPerMeter float64     `xml:"PixelsPerMeter"`
	Analysis       xmlAnalysis `xml:"Analysis"`
}

type xmlAnalysis struct {
	Name         string          `xml:"Name,omitempty"`
	Points       []xmlPoint      `xml:"Points>CephalometricPoint"`
	Measurements xmlMeasurements `xml:"Measurements"`
}

type xmlPoint struct {
	Name        string    `xml:"Name"`
	Description string    `xml:"Description,omitempty"`
	Placed      bool      `xml:"Placed"`
	Measurement xmlVector `xml:"Measurement"`
}

type xmlVector struct {
	X float64 `xml:"X"`
	Y float64 `xml:"Y"`
}

type xmlMeasurements []*analysis.Measurement

// xmlMeasurementHeader captures the common fields; the variant parameters are
// decoded from the raw element body in a second pass
type xmlMeasurementHeader struct {
	Name    string `xml:"Name"`
	Enabled *bool  `xml:"Enabled"`
	Inner   []byte `xml:",innerxml"`
}

func (ms *xmlMeasurements) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			kind := analysis.Kind(t.Name.Local)
			var header xmlMeasurementHeader
			if err := d.DecodeElement(&header, &t); err != nil {
				return err
			}
			variant, err := decodeVariant(kind, func(target any) error {
				body := make([]byte, 0, len(header.Inner)+16)
				body = append(body, "<params>"...)
				body = append(body, header.Inner...)
				body = append(body, "</params>"...)
				return xml.Unmarshal(body, target)
			})
			if err != nil {
				return fmt.Errorf("measurement %q: %w", header.Name, err)
			}
			m := analysis.NewMeasurement(header.Name, variant)
			if header.Enabled != nil {
				m.Enabled = *header.Enabled
			}
			*ms = append(*ms, m)
		case xml.EndElement:
			return nil
		}
	}
}

func (ms xmlMeasurements) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, m := range ms {
		element := xml.StartElement{Name: xml.Name{Local: string(m.Kind())}}
		if err := e.EncodeToken(element); err != nil {
			return err
		}
		if err := e.EncodeElement(m.Name(), xmlName("Name")); err != nil {
			return err
		}
		if err := e.EncodeElement(m.Enabled, xmlName("Enabled")); err != nil {
			return err
		}
		if err := encodeParams(e, m.Variant); err != nil {
			return fmt.Errorf("measurement %q: %w", m.Name(), err)
		}
		if err := e.EncodeToken(element.End()); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// encodeParams writes the variant fields as siblings of Name and Enabled,
// following their xml struct tags. "Outer>inner" tags wrap slices.
func encodeParams(e *xml.Encoder, variant analysis.Variant) error {
	v := reflect.ValueOf(variant)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("xml")
		if tag == "" || tag == "-" {
			continue
		}
		outer, inner, nested := strings.Cut(tag, ">")
		if !nested {
			if err := e.EncodeElement(v.Field(i).Interface(), xmlName(tag)); err != nil {
				return err
			}
			continue
		}
		wrapper := xmlName(outer)
		if err := e.EncodeToken(wrapper); err != nil {
			return err
		}
		items := v.Field(i)
		for j := 0; j < items.Len(); j++ {
			if err := e.EncodeElement(items.Index(j).Interface(), xmlName(inner)); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(wrapper.End()); err != nil {
			return err
		}
	}
	return nil
}

func xmlName(local string) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: local}}
}

// DecodeXML reads a legacy OpenOrtho project. A bare CephalometricAnalysis
// document, as written by the analysis editor, is read as a project with
// the default scale.
func DecodeXML(r io.Reader) (*Project, error) {
	d := xml.NewDecoder(r)
	start, err := rootElement(d)
	if err != nil {
		return nil, err
	}

	var doc xmlProject
	switch start.Name.Local {
	case "OrthoProject":
		err = d.DecodeElement(&doc, &start)
	case "CephalometricAnalysis":
		err = d.DecodeElement(&doc.Analysis, &start)
	default:
		return nil, fmt.Errorf("unsupported root element <%s>", start.Name.Local)
	}
	if err != nil {
		return nil, err
	}

	a := analysis.New(doc.Analysis.Name)
	for _, point := range doc.Analysis.Points {
		l, err := a.Landmarks.Add(point.Name, point.Description)
		if err != nil {
			return nil, fmt.Errorf("landmark: %w", err)
		}
		x, y := point.Measurement.X, point.Measurement.Y
		if point.Placed && !math.IsNaN(x) && !math.IsNaN(y) {
			if err := l.Place(geometry.NewVector2(x, y)); err != nil {
				return nil, err
			}
		}
	}
	for _, m := range doc.Analysis.Measurements {
		if err := a.Measurements.Add(m); err != nil {
			return nil, fmt.Errorf("measurement: %w", err)
		}
	}

	p := New(a)
	p.Radiograph = doc.Radiograph
	if doc.PixelsPerMeter > 0 {
		p.PixelsPerMillimeter = doc.PixelsPerMeter / 1000
	}
	return p, nil
}

func rootElement(d *xml.Decoder) (xml.StartElement, error) {
	for {
		token, err := d.Token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, errors.New("empty project document")
		}
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := token.(xml.StartElement); ok {
			return start, nil
		}
	}
}

// EncodeXML writes a project in the legacy OpenOrtho layout
func EncodeXML(w io.Writer, p *Project) error {
	doc := xmlProject{
		Radiograph:     p.Radiograph,
		PixelsPerMeter: p.PixelsPerMillimeter * 1000,
		Analysis: xmlAnalysis{
			Name:         p.Analysis.Name,
			Measurements: p.Analysis.Measurements.All(),
		},
	}
	for _, l := range p.Analysis.Landmarks.All() {
		point := xmlPoint{
			Name:        l.Name(),
			Description: l.Description,
			Measurement: xmlVector{X: math.NaN(), Y: math.NaN()},
		}
		if position, ok := l.Coordinate(); ok {
			point.Placed = true
			point.Measurement = xmlVector{X: position.X, Y: position.Y}
		}
		doc.Analysis.Points = append(doc.Analysis.Points, point)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	return encoder.Close()
}
