package geometry

import (
	"math"
	"testing"
)

func TestVector2Arithmetic(t *testing.T) {
	v1 := NewVector2(1, 2)
	v2 := NewVector2(4, 6)

	if got := v1.Add(v2); got != NewVector2(5, 8) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := v2.Sub(v1); got != NewVector2(3, 4) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := v1.Scale(3); got != NewVector2(3, 6) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := v1.Midpoint(v2); got != NewVector2(2.5, 4) {
		t.Errorf("Midpoint failed: got %v", got)
	}
}

func TestVector2Products(t *testing.T) {
	x := NewVector2(1, 0)
	y := NewVector2(0, 1)

	if x.Dot(y) != 0 {
		t.Errorf("Dot failed: expected 0, got %v", x.Dot(y))
	}
	if x.Cross(y) != 1 {
		t.Errorf("Cross failed: expected 1, got %v", x.Cross(y))
	}
	if y.Cross(x) != -1 {
		t.Errorf("Cross failed: expected -1, got %v", y.Cross(x))
	}
}

func TestVector2Length(t *testing.T) {
	v := NewVector2(3, 4)

	if math.Abs(v.Length()-5) > 1e-10 {
		t.Errorf("Length failed: expected 5, got %v", v.Length())
	}
	if math.Abs(v.Distance(NewVector2(0, 0))-5) > 1e-10 {
		t.Errorf("Distance failed: expected 5, got %v", v.Distance(NewVector2(0, 0)))
	}
	if math.Abs(v.Normalize().Length()-1) > 1e-10 {
		t.Errorf("Normalize failed: expected unit length, got %v", v.Normalize().Length())
	}
}

func TestVector2NormalizeZero(t *testing.T) {
	if got := NewVector2(0, 0).Normalize(); got != (Vector2{}) {
		t.Errorf("Normalize of zero vector: expected zero, got %v", got)
	}
}

func TestVector2IsFinite(t *testing.T) {
	if !NewVector2(1e300, -3).IsFinite() {
		t.Error("expected large vector to be finite")
	}
	for _, v := range []Vector2{
		NewVector2(math.NaN(), 0),
		NewVector2(0, math.Inf(-1)),
		NewVector2(math.Inf(1), 0),
	} {
		if v.IsFinite() {
			t.Errorf("expected %v to be non-finite", v)
		}
	}
}

func TestVector2IsZero(t *testing.T) {
	if !NewVector2(1e-12, -1e-12).IsZero() {
		t.Error("expected tiny vector to be zero")
	}
	if NewVector2(1e-6, 0).IsZero() {
		t.Error("expected 1e-6 vector to be non-zero")
	}
	if !NewVector2(1, 1).Equals(NewVector2(1+1e-12, 1)) {
		t.Error("expected nearly identical points to be equal")
	}
}
