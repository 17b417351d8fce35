package geometry

import (
	"math"
	"testing"
)

func TestVector2Add(t *testing.T) {
	v1 := NewVector2(1, 2)
	v2 := NewVector2(4, 5)
	result := v1.Add(v2)

	expected := NewVector2(5, 7)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector2Sub(t *testing.T) {
	v1 := NewVector2(5, 7)
	v2 := NewVector2(1, 2)
	result := v1.Sub(v2)

	expected := NewVector2(4, 5)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector2Length(t *testing.T) {
	v := NewVector2(3, 4)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector2Distance(t *testing.T) {
	v1 := NewVector2(0, 0)
	v2 := NewVector2(3, 4)
	distance := v1.Distance(v2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVector2Normalize(t *testing.T) {
	v := NewVector2(3, 4)
	normalized := v.Normalize()

	expectedLength := 1.0
	actualLength := normalized.Length()

	if math.Abs(actualLength-expectedLength) > 1e-10 {
		t.Errorf("Normalize failed: expected length %v, got %v", expectedLength, actualLength)
	}
}

func TestVector2NormalizeZero(t *testing.T) {
	v := NewVector2(0, 0).Normalize()
	if v != (Vector2{}) {
		t.Errorf("Normalize of zero vector failed: expected zero vector, got %v", v)
	}
}

func TestVector2Dot(t *testing.T) {
	v1 := NewVector2(1, 2)
	v2 := NewVector2(4, 5)
	result := v1.Dot(v2)

	expected := 14.0 // 1*4 + 2*5 = 14
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestVector2Angle(t *testing.T) {
	v := NewVector2(0, -1)
	angle := v.Angle()

	expected := 3 * math.Pi / 2 // angles normalize to [0, 2π)
	if math.Abs(angle-expected) > 1e-10 {
		t.Errorf("Angle failed: expected %v, got %v", expected, angle)
	}
}

func TestVector2Rotate(t *testing.T) {
	v := NewVector2(1, 0).Rotate(math.Pi / 2)

	if math.Abs(v.X) > 1e-10 || math.Abs(v.Y-1) > 1e-10 {
		t.Errorf("Rotate failed: expected (0, 1), got (%v, %v)", v.X, v.Y)
	}
}
