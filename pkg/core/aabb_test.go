package core

import (
	"math"
	"testing"
)

func TestAABB_ExtendBy(t *testing.T) {
	box := NewEmptyAABB()
	if !box.IsEmpty() {
		t.Fatal("Expected a new empty box to be empty")
	}

	box.ExtendBy(NewVec3(1, 2, 3))
	if box.IsEmpty() {
		t.Fatal("Expected box to be non-empty after ExtendBy")
	}
	if box.Min != NewVec3(1, 2, 3) || box.Max != NewVec3(1, 2, 3) {
		t.Errorf("Expected degenerate box at (1,2,3), got %v", box)
	}

	box.ExtendBy(NewVec3(-1, 5, 0))
	if box.Min != NewVec3(-1, 2, 0) || box.Max != NewVec3(1, 5, 3) {
		t.Errorf("Expected box (-1,2,0)-(1,5,3), got %v", box)
	}
}

func TestAABB_Union(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, 0.5, 2), NewVec3(0.5, 3, 4))

	u := a.Union(b)
	expected := NewAABB(NewVec3(-1, 0, 0), NewVec3(1, 3, 4))
	if u != expected {
		t.Errorf("Expected %v, got %v", expected, u)
	}
	if got := NewEmptyAABB().Union(a); got != a {
		t.Errorf("Union with empty box should be the other box, got %v", got)
	}
}

func TestAABB_Intersect(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		hit      bool
		expected float64
	}{
		{"Front", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), true, 4},
		{"Diagonal", NewRay(NewVec3(-3, -3, 0), NewVec3(1, 1, 0)), true, 2},
		{"Inside", NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -1)), true, -1},
		{"Behind", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), false, 0},
		{"Parallel outside", NewRay(NewVec3(2, 0, 5), NewVec3(0, 0, -1)), false, 0},
		{"Parallel on face", NewRay(NewVec3(1, 0, 5), NewVec3(0, 0, -1)), true, 4},
		{"Miss", NewRay(NewVec3(0, 3, 5), NewVec3(0, 0, -1)), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, tNear := box.Intersect(tt.ray)
			if hit != tt.hit {
				t.Fatalf("Expected hit=%v, got %v", tt.hit, hit)
			}
			if hit && math.Abs(tNear-tt.expected) > 1e-9 {
				t.Errorf("Expected tNear=%f, got %f", tt.expected, tNear)
			}
		})
	}
}

func TestAABB_IntersectInsideStartsAtOrBeforeOrigin(t *testing.T) {
	box := NewAABB(NewVec3(-2, -2, -5), NewVec3(2, 2, -1))
	hit, tNear := box.Intersect(NewRay(NewVec3(0, 0, -3), NewVec3(0.3, 0.4, -0.866)))
	if !hit || tNear > 0 {
		t.Errorf("Expected hit with tNear <= 0 for origin inside, got hit=%v tNear=%f", hit, tNear)
	}
}

func TestAABB_Measures(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(4, 2, 1))
	if box.Center() != NewVec3(2, 1, 0.5) {
		t.Errorf("Center: got %v", box.Center())
	}
	if box.Size() != NewVec3(4, 2, 1) {
		t.Errorf("Size: got %v", box.Size())
	}
	if box.Volume() != 8 {
		t.Errorf("Volume: expected 8, got %f", box.Volume())
	}
	if box.LongestAxis() != 0 {
		t.Errorf("LongestAxis: expected 0, got %d", box.LongestAxis())
	}
	if !box.Contains(NewVec3(4, 2, 1)) || box.Contains(NewVec3(4.1, 0, 0)) {
		t.Error("Contains should include the boundary and exclude outside points")
	}
	if NewAABB(NewVec3(0, 0, 0), NewVec3(math.Inf(1), 1, 1)).IsFinite() {
		t.Error("Expected infinite box to report non-finite")
	}
}
