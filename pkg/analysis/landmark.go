package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/gortho/pkg/geometry"
)

// Landmark is a named anatomical point. It starts unplaced and receives a
// coordinate once the clinician digitizes it.
type Landmark struct {
	name        string
	Description string
	position    *geometry.Vector2
}

// NewLandmark creates an unplaced landmark
func NewLandmark(name, description string) *Landmark {
	return &Landmark{name: name, Description: description}
}

// Name returns the landmark's key
func (l *Landmark) Name() string {
	return l.name
}

// Placed reports whether the landmark has a coordinate
func (l *Landmark) Placed() bool {
	return l.position != nil
}

// Coordinate returns the placed coordinate and whether there is one
func (l *Landmark) Coordinate() (geometry.Vector2, bool) {
	if l.position == nil {
		return geometry.Vector2{}, false
	}
	return *l.position, true
}

// Place sets or overwrites the coordinate. NaN or infinite components are
// rejected and leave the landmark unchanged.
func (l *Landmark) Place(position geometry.Vector2) error {
	if !position.IsFinite() {
		return fmt.Errorf("landmark %q at %s: %w", l.name, position, ErrInvalidCoordinate)
	}
	l.position = &position
	return nil
}

// Clear returns the landmark to the unplaced state
func (l *Landmark) Clear() {
	l.position = nil
}

func (l *Landmark) clone() *Landmark {
	c := &Landmark{name: l.name, Description: l.Description}
	if l.position != nil {
		p := *l.position
		c.position = &p
	}
	return c
}

// Landmarks is an insertion-ordered set of landmarks keyed by name.
// Insertion order is the placement order presented to the user.
type Landmarks struct {
	order []*Landmark
	index map[string]*Landmark
}

// NewLandmarks creates an empty landmark set
func NewLandmarks() *Landmarks {
	return &Landmarks{index: make(map[string]*Landmark)}
}

// Add appends a new unplaced landmark
func (s *Landmarks) Add(name, description string) (*Landmark, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, exists := s.index[name]; exists {
		return nil, fmt.Errorf("landmark %q: %w", name, ErrDuplicateName)
	}
	l := NewLandmark(name, description)
	s.order = append(s.order, l)
	s.index[name] = l
	return l, nil
}

// Get looks up a landmark by name
func (s *Landmarks) Get(name string) (*Landmark, bool) {
	l, ok := s.index[name]
	return l, ok
}

// Resolve returns the coordinate of the named landmark, failing with
// ErrUnknownName or ErrUnresolvedLandmark
func (s *Landmarks) Resolve(name string) (geometry.Vector2, error) {
	l, ok := s.index[name]
	if !ok {
		return geometry.Vector2{}, fmt.Errorf("landmark %q: %w", name, ErrUnknownName)
	}
	p, ok := l.Coordinate()
	if !ok {
		return geometry.Vector2{}, fmt.Errorf("landmark %q: %w", name, ErrUnresolvedLandmark)
	}
	return p, nil
}

// Place sets the coordinate of the named landmark
func (s *Landmarks) Place(name string, position geometry.Vector2) error {
	l, ok := s.index[name]
	if !ok {
		return fmt.Errorf("landmark %q: %w", name, ErrUnknownName)
	}
	return l.Place(position)
}

// Clear removes the coordinate of the named landmark
func (s *Landmarks) Clear(name string) error {
	l, ok := s.index[name]
	if !ok {
		return fmt.Errorf("landmark %q: %w", name, ErrUnknownName)
	}
	l.Clear()
	return nil
}

// Remove deletes the named landmark and reports whether it existed
func (s *Landmarks) Remove(name string) bool {
	if _, ok := s.index[name]; !ok {
		return false
	}
	delete(s.index, name)
	for i, l := range s.order {
		if l.name == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns the landmarks in insertion order
func (s *Landmarks) All() []*Landmark {
	out := make([]*Landmark, len(s.order))
	copy(out, s.order)
	return out
}

// Names returns the landmark names in insertion order
func (s *Landmarks) Names() []string {
	names := make([]string, len(s.order))
	for i, l := range s.order {
		names[i] = l.name
	}
	return names
}

// Len returns the number of landmarks
func (s *Landmarks) Len() int {
	return len(s.order)
}

// PlacedCount returns how many landmarks have a coordinate
func (s *Landmarks) PlacedCount() int {
	count := 0
	for _, l := range s.order {
		if l.Placed() {
			count++
		}
	}
	return count
}

// Next returns the first unplaced landmark in placement order
func (s *Landmarks) Next() (*Landmark, bool) {
	for _, l := range s.order {
		if !l.Placed() {
			return l, true
		}
	}
	return nil, false
}

// Clone returns a deep copy
func (s *Landmarks) Clone() *Landmarks {
	c := &Landmarks{
		order: make([]*Landmark, 0, len(s.order)),
		index: make(map[string]*Landmark, len(s.order)),
	}
	for _, l := range s.order {
		lc := l.clone()
		c.order = append(c.order, lc)
		c.index[lc.name] = lc
	}
	return c
}

// Scaled returns a deep copy with every placed coordinate divided by factor,
// e.g. pixels per millimetre to obtain millimetre coordinates
func (s *Landmarks) Scaled(factor float64) (*Landmarks, error) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("invalid scale factor %v", factor)
	}
	c := s.Clone()
	for _, l := range c.order {
		if p, ok := l.Coordinate(); ok {
			if err := l.Place(p.Scale(1 / factor)); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}
