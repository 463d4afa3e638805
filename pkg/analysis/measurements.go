package analysis

import (
	"errors"
	"fmt"
)

// Measurements is an insertion-ordered set of measurements keyed by name.
// Insertion order is report and draw order.
type Measurements struct {
	order []*Measurement
	index map[string]*Measurement
}

// NewMeasurements creates an empty measurement set
func NewMeasurements() *Measurements {
	return &Measurements{index: make(map[string]*Measurement)}
}

// Add appends a measurement; names must be unique and non-empty
func (s *Measurements) Add(m *Measurement) error {
	if m == nil || m.Variant == nil {
		return errors.New("measurement without variant")
	}
	if m.name == "" {
		return ErrEmptyName
	}
	if _, exists := s.index[m.name]; exists {
		return fmt.Errorf("measurement %q: %w", m.name, ErrDuplicateName)
	}
	s.order = append(s.order, m)
	s.index[m.name] = m
	return nil
}

// Define creates an enabled measurement and adds it
func (s *Measurements) Define(name string, variant Variant) (*Measurement, error) {
	m := NewMeasurement(name, variant)
	if err := s.Add(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get looks up a measurement by name
func (s *Measurements) Get(name string) (*Measurement, bool) {
	m, ok := s.index[name]
	return m, ok
}

// Remove deletes the named measurement and reports whether it existed
func (s *Measurements) Remove(name string) bool {
	if _, ok := s.index[name]; !ok {
		return false
	}
	delete(s.index, name)
	for i, m := range s.order {
		if m.name == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns the measurements in insertion order
func (s *Measurements) All() []*Measurement {
	out := make([]*Measurement, len(s.order))
	copy(out, s.order)
	return out
}

// Enabled returns the enabled measurements in insertion order
func (s *Measurements) Enabled() []*Measurement {
	var out []*Measurement
	for _, m := range s.order {
		if m.Enabled {
			out = append(out, m)
		}
	}
	return out
}

// Names returns the measurement names in insertion order
func (s *Measurements) Names() []string {
	names := make([]string, len(s.order))
	for i, m := range s.order {
		names[i] = m.name
	}
	return names
}

// Len returns the number of measurements
func (s *Measurements) Len() int {
	return len(s.order)
}
