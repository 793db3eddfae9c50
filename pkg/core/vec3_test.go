package core

import (
	"math"
	"testing"
)

func TestVec3_Basics(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
		{"Normalize zero", Vec3{}.Normalize(), Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot: expected 12, got %f", got)
	}
	if got := NewVec3(3, 4, 0).Length(); got != 5 {
		t.Errorf("Length: expected 5, got %f", got)
	}
	if got := NewVec3(0, 3, 4).Normalize().Length(); math.Abs(got-1) > 1e-12 {
		t.Errorf("Normalize: expected unit length, got %f", got)
	}
}

func TestVec3_Axis(t *testing.T) {
	v := NewVec3(7, 8, 9)
	for i, expected := range []float64{7, 8, 9} {
		if got := v.Axis(i); got != expected {
			t.Errorf("Axis(%d): expected %f, got %f", i, expected, got)
		}
	}
	if Vec3FromArray(v.Array()) != v {
		t.Errorf("Vec3FromArray(Array()) should round trip %v", v)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, -2, 3).IsFinite() {
		t.Error("Expected finite vector")
	}
	if NewVec3(math.Inf(1), 0, 0).IsFinite() {
		t.Error("Expected +Inf to be non-finite")
	}
	if NewVec3(0, math.NaN(), 0).IsFinite() {
		t.Error("Expected NaN to be non-finite")
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 0, -2))
	if got := ray.At(1.5); got != NewVec3(1, 0, -3) {
		t.Errorf("Expected (1,0,-3), got %v", got)
	}
}
