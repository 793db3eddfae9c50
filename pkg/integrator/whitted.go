package integrator

import (
	"math"
	"sync/atomic"

	"github.com/df07/go-grid-raytracer/pkg/core"
	"github.com/df07/go-grid-raytracer/pkg/geometry"
	"github.com/df07/go-grid-raytracer/pkg/lights"
	"github.com/df07/go-grid-raytracer/pkg/material"
	"github.com/df07/go-grid-raytracer/pkg/scene"
)

// RayCounts totals the rays traced by an integrator
type RayCounts struct {
	Primary   int64
	Secondary int64 // Reflection and refraction rays
	Shadow    int64
}

// Total returns the number of rays of every kind
func (c RayCounts) Total() int64 {
	return c.Primary + c.Secondary + c.Shadow
}

// WhittedIntegrator implements recursive Whitted ray tracing with Phong
// shading, hard shadows and Fresnel-weighted reflection and refraction
type WhittedIntegrator struct {
	config scene.SamplingConfig

	primary   atomic.Int64
	secondary atomic.Int64
	shadow    atomic.Int64
}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator(config scene.SamplingConfig) *WhittedIntegrator {
	return &WhittedIntegrator{config: config}
}

// RayColor computes the color for a primary ray
func (w *WhittedIntegrator) RayColor(ray core.Ray, s *scene.Scene) core.Vec3 {
	w.primary.Add(1)
	return w.castRay(ray, s, 0)
}

// Counts returns the rays traced so far
func (w *WhittedIntegrator) Counts() RayCounts {
	return RayCounts{
		Primary:   w.primary.Load(),
		Secondary: w.secondary.Load(),
		Shadow:    w.shadow.Load(),
	}
}

// castRay returns the color along ray at the given recursion depth. Each
// recursive call receives depth+1; the depth is never shared between branches.
func (w *WhittedIntegrator) castRay(ray core.Ray, s *scene.Scene, depth int) core.Vec3 {
	if depth > w.config.MaxDepth {
		return core.Vec3{}
	}

	hit, isHit := s.Intersect(ray)
	if !isHit {
		return w.config.Background
	}

	shape := s.Shapes()[hit.Object]
	mat := s.Objects[hit.Object].Material
	point := ray.At(hit.T)
	normal := shape.NormalAt(point, hit.Intersection)
	dir := ray.Direction

	var color core.Vec3
	switch mat.Type {
	case material.ReflectionAndRefraction:
		kr := material.Fresnel(dir, normal, mat.IOR)
		if kr < 1 {
			refractDir := material.Refract(dir, normal, mat.IOR).Normalize()
			origin := w.offset(point, normal, dir.Dot(normal) < 0)
			color = color.Add(w.trace(origin, refractDir, s, depth).Multiply(1 - kr))
		}
		color = color.Add(w.reflection(point, normal, dir, s, depth).Multiply(kr))

	case material.Reflection:
		kr := material.Fresnel(dir, normal, mat.IOR)
		color = w.reflection(point, normal, dir, s, depth).Multiply(kr)

	case material.DiffuseGlossyAndReflection:
		kr := material.Fresnel(dir, normal, mat.IOR)
		color = w.reflection(point, normal, dir, s, depth).Multiply(kr)
		color = color.Add(w.phong(point, normal, dir, mat, hit, s))

	default:
		color = w.phong(point, normal, dir, mat, hit, s)
	}

	return color.Clamp(0, 1)
}

// trace follows a secondary ray one level deeper
func (w *WhittedIntegrator) trace(origin, direction core.Vec3, s *scene.Scene, depth int) core.Vec3 {
	w.secondary.Add(1)
	return w.castRay(core.NewRay(origin, direction), s, depth+1)
}

// reflection traces the mirror ray at a hit
func (w *WhittedIntegrator) reflection(point, normal, dir core.Vec3, s *scene.Scene, depth int) core.Vec3 {
	reflectDir := material.Reflect(dir, normal).Normalize()
	origin := w.offset(point, normal, reflectDir.Dot(normal) < 0)
	return w.trace(origin, reflectDir, s, depth)
}

// offset moves point off the surface by the bias, below it when inside is set
func (w *WhittedIntegrator) offset(point, normal core.Vec3, inside bool) core.Vec3 {
	if inside {
		return point.Subtract(normal.Multiply(w.config.Bias))
	}
	return point.Add(normal.Multiply(w.config.Bias))
}

// phong returns the ambient, diffuse and specular terms over every light
func (w *WhittedIntegrator) phong(point, normal, dir core.Vec3, mat *material.Material, hit geometry.Hit, s *scene.Scene) core.Vec3 {
	surface := mat.ColorAt(hit.UV, point)
	ambient := surface.Multiply(w.config.Ambient)

	// Shadow rays leave from the side the viewing ray arrived on
	shadowOrigin := w.offset(point, normal, dir.Dot(normal) >= 0)

	var diffuse, specular core.Vec3
	for _, light := range s.Lights {
		sample := light.Sample(point)
		if w.inShadow(shadowOrigin, sample, s) {
			continue
		}
		diffuse = diffuse.Add(sample.Emission.Multiply(math.Max(0, normal.Dot(sample.Direction))))

		reflectDir := normal.Multiply(2 * sample.Direction.Dot(normal)).Subtract(sample.Direction).Normalize()
		spec := math.Pow(math.Max(0, reflectDir.Dot(dir.Negate())), mat.PhongExponent)
		specular = specular.Add(sample.Emission.Multiply(spec))
	}

	return ambient.
		Add(diffuse.MultiplyVec(surface).Multiply(mat.Kd)).
		Add(specular.Multiply(mat.Ks))
}

// inShadow reports whether anything lies between origin and the light
func (w *WhittedIntegrator) inShadow(origin core.Vec3, sample lights.LightSample, s *scene.Scene) bool {
	w.shadow.Add(1)
	hit, isHit := s.Intersect(core.NewRay(origin, sample.Direction))
	return isHit && hit.T < sample.Distance
}
