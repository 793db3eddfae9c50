package material

import (
	"fmt"
	"math"

	"github.com/df07/go-grid-raytracer/pkg/core"
)

// Type selects the shading model applied at a hit
type Type int

const (
	// DiffuseAndGlossy is Phong-lit with an ambient term
	DiffuseAndGlossy Type = iota
	// Reflection is a perfect mirror weighted by Fresnel
	Reflection
	// ReflectionAndRefraction is glass: Fresnel-weighted reflection and transmission
	ReflectionAndRefraction
	// DiffuseGlossyAndReflection adds a Fresnel-weighted mirror term to DiffuseAndGlossy
	DiffuseGlossyAndReflection
)

var typeNames = map[Type]string{
	DiffuseAndGlossy:           "diffuse",
	Reflection:                 "reflection",
	ReflectionAndRefraction:    "refraction",
	DiffuseGlossyAndReflection: "diffuse-reflection",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType is the inverse of Type.String
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return DiffuseAndGlossy, fmt.Errorf("unknown material type %q", name)
}

// OpaqueIOR marks a material that transmits no light
var OpaqueIOR = math.Inf(1)

// Material holds the Whitted shading parameters of a surface
type Material struct {
	Type          Type
	Color         ColorSource
	Kd            float64 // Diffuse weight
	Ks            float64 // Specular weight
	PhongExponent float64
	IOR           float64 // Index of refraction
}

// NewMaterial creates a material with the default Phong weights
func NewMaterial(t Type, color ColorSource) *Material {
	return &Material{
		Type:          t,
		Color:         color,
		Kd:            0.8,
		Ks:            0.2,
		PhongExponent: 25,
		IOR:           1.3,
	}
}

// NewDiffuse creates a solid-coloured DiffuseAndGlossy material
func NewDiffuse(color core.Vec3) *Material {
	return NewMaterial(DiffuseAndGlossy, NewSolidColor(color))
}

// NewGlass creates a ReflectionAndRefraction material
func NewGlass(color core.Vec3, ior float64) *Material {
	m := NewMaterial(ReflectionAndRefraction, NewSolidColor(color))
	m.IOR = ior
	return m
}

// NewMirror creates a Reflection material
func NewMirror(ior float64) *Material {
	m := NewMaterial(Reflection, NewSolidColor(core.NewVec3(1, 1, 1)))
	m.IOR = ior
	return m
}

// ColorAt evaluates the surface colour at a hit; a nil ColorSource is white
func (m *Material) ColorAt(uv core.Vec2, point core.Vec3) core.Vec3 {
	if m.Color == nil {
		return core.NewVec3(1, 1, 1)
	}
	return m.Color.Evaluate(uv, point)
}
