package analysis

import (
	"errors"
	"fmt"
)

// Evaluation failures. Unresolved landmarks and degenerate geometry are
// expected while points are still being placed and render as "undefined";
// the rest are defects in the analysis definition.
var (
	ErrUnresolvedLandmark = errors.New("unresolved landmark")
	ErrUnknownName        = errors.New("unknown name")
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	ErrCyclicDependency   = errors.New("cyclic measurement dependency")
	ErrMissingParameter   = errors.New("missing parameter")
	ErrUnitMismatch       = errors.New("unit mismatch")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrEmptyName          = errors.New("empty name")
	ErrInvalidCoordinate  = errors.New("coordinate is not finite")
)

// MeasurementError reports why a single measurement could not be evaluated.
// Ref names the offending landmark, measurement, parameter or construction.
// Errors raised by a referenced measurement are nested in Err.
type MeasurementError struct {
	Measurement string
	Ref         string
	Err         error
}

func (e *MeasurementError) Error() string {
	var nested *MeasurementError
	if errors.As(e.Err, &nested) {
		return fmt.Sprintf("%s: %s", e.Measurement, nested.Error())
	}
	if e.Ref == "" {
		return fmt.Sprintf("%s: %v", e.Measurement, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Measurement, e.Err, e.Ref)
}

func (e *MeasurementError) Unwrap() error {
	return e.Err
}

// IsUndefined reports whether err is a transient state of the placement
// workflow: a landmark is not placed yet or the placed points are degenerate.
func IsUndefined(err error) bool {
	if err == nil {
		return false
	}
	if IsConfigError(err) {
		return false
	}
	return errors.Is(err, ErrUnresolvedLandmark) || errors.Is(err, ErrDegenerateGeometry)
}

// IsConfigError reports whether err stems from a broken analysis definition
func IsConfigError(err error) bool {
	return errors.Is(err, ErrUnknownName) ||
		errors.Is(err, ErrCyclicDependency) ||
		errors.Is(err, ErrMissingParameter) ||
		errors.Is(err, ErrUnitMismatch) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrEmptyName)
}
