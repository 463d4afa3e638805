// Package project ties an analysis to the radiograph it was digitized on and
// reads and writes it as YAML documents or legacy OpenOrtho XML files.
package project

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gortho/pkg/analysis"
)

// DefaultPixelsPerMillimeter is the radiograph scale used when a document
// does not state one
const DefaultPixelsPerMillimeter = 10.0

// Project is an analysis whose landmark coordinates are image pixels of a
// radiograph with a known scale
type Project struct {
	Radiograph          string
	PixelsPerMillimeter float64
	Analysis            *analysis.Analysis
}

// New wraps an analysis with the default scale
func New(a *analysis.Analysis) *Project {
	if a == nil {
		a = analysis.New("")
	}
	return &Project{PixelsPerMillimeter: DefaultPixelsPerMillimeter, Analysis: a}
}

// Snapshot returns the landmarks converted to millimetres
func (p *Project) Snapshot() (*analysis.Landmarks, error) {
	scaled, err := p.Analysis.Landmarks.Scaled(p.PixelsPerMillimeter)
	if err != nil {
		return nil, fmt.Errorf("invalid scale: %w", err)
	}
	return scaled, nil
}

// Evaluate measures the analysis in millimetres
func (p *Project) Evaluate(includeDisabled bool) (analysis.Report, error) {
	landmarks, err := p.Snapshot()
	if err != nil {
		return analysis.Report{}, err
	}
	return p.Analysis.EvaluateWith(landmarks, includeDisabled), nil
}

// Visualize returns construction geometry in image pixels so it can be
// drawn over the radiograph
func (p *Project) Visualize(options analysis.DisplayOptions, style analysis.HintStyle) []analysis.Hints {
	return p.Analysis.Visualize(p.Analysis.Landmarks, options, style)
}

// Format identifies a project file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
)

// FormatFromPath derives the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xml", ".ortho":
		return FormatXML, nil
	}
	return "", fmt.Errorf("unsupported project file extension: %s", path)
}

// Decode reads a project in the given format
func Decode(r io.Reader, format Format) (*Project, error) {
	switch format {
	case FormatYAML:
		return DecodeYAML(r)
	case FormatXML:
		return DecodeXML(r)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// Encode writes a project in the given format
func Encode(w io.Writer, p *Project, format Format) error {
	switch format {
	case FormatYAML:
		return EncodeYAML(w, p)
	case FormatXML:
		return EncodeXML(w, p)
	}
	return fmt.Errorf("unsupported format %q", format)
}

// Load reads a project file, choosing the codec by extension
func Load(path string) (*Project, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	p, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return p, nil
}

// Save writes a project file, choosing the codec by extension
func Save(path string, p *Project) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, p, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}
