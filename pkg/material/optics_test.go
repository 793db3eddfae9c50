package material

import (
	"math"
	"testing"

	"github.com/df07/go-grid-raytracer/pkg/core"
)

func TestReflect(t *testing.T) {
	got := Reflect(core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0))
	if got != core.NewVec3(1, 1, 0) {
		t.Errorf("Expected (1,1,0), got %v", got)
	}
}

func TestRefract(t *testing.T) {
	n := core.NewVec3(0, 0, 1)

	// Normal incidence passes straight through
	straight := Refract(core.NewVec3(0, 0, -1), n, 1.5)
	if straight.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Expected undeviated ray, got %v", straight)
	}

	// Snell's law entering glass at 45 degrees
	in := core.NewVec3(1, 0, -1).Normalize()
	refracted := Refract(in, n, 1.5)
	if math.Abs(refracted.Length()-1) > 1e-12 {
		t.Errorf("Expected unit refracted direction, got length %f", refracted.Length())
	}
	if expected := math.Sin(math.Pi/4) / 1.5; math.Abs(refracted.X-expected) > 1e-12 {
		t.Errorf("Expected sin(theta_t)=%f, got %f", expected, refracted.X)
	}
	if refracted.Z >= 0 {
		t.Errorf("Expected refracted ray to continue into the surface, got %v", refracted)
	}

	// Leaving glass at a grazing angle is totally reflected
	grazing := core.NewVec3(1, 0, 0.1).Normalize()
	if got := Refract(grazing, n, 1.5); got != (core.Vec3{}) {
		t.Errorf("Expected zero vector for total internal reflection, got %v", got)
	}
}

func TestFresnel(t *testing.T) {
	n := core.NewVec3(0, 0, 1)

	tests := []struct {
		name     string
		i        core.Vec3
		ior      float64
		expected float64
	}{
		{"normal incidence", core.NewVec3(0, 0, -1), 1.5, 0.04},
		{"normal incidence from inside", core.NewVec3(0, 0, 1), 1.5, 0.04},
		{"total internal reflection", core.NewVec3(1, 0, 0.1).Normalize(), 1.5, 1},
		{"opaque", core.NewVec3(0, 0, -1), OpaqueIOR, 1},
		{"matched media", core.NewVec3(1, 0, -1).Normalize(), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fresnel(tt.i, n, tt.ior); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected kr=%f, got %f", tt.expected, got)
			}
		})
	}
}

func TestFresnel_GrazingIncreasesReflectance(t *testing.T) {
	n := core.NewVec3(0, 0, 1)
	previous := 0.0
	for _, angle := range []float64{0, 30, 60, 80, 89} {
		rad := angle * math.Pi / 180
		i := core.NewVec3(math.Sin(rad), 0, -math.Cos(rad))
		kr := Fresnel(i, n, 1.5)
		if kr < previous {
			t.Errorf("Reflectance dropped at %v degrees: %f < %f", angle, kr, previous)
		}
		if kr < 0 || kr > 1 {
			t.Errorf("Reflectance out of range at %v degrees: %f", angle, kr)
		}
		previous = kr
	}
}
