package material

import (
	"math"

	"github.com/df07/go-grid-raytracer/pkg/core"
)

// Reflect mirrors incident direction i about normal n
func Reflect(i, n core.Vec3) core.Vec3 {
	return i.Subtract(n.Multiply(2 * i.Dot(n)))
}

// Refract bends incident direction i through a surface with normal n and
// index of refraction ior. The normal may face either side; a ray leaving the
// denser medium is detected from the sign of i·n. Total internal reflection
// returns the zero vector.
func Refract(i, n core.Vec3, ior float64) core.Vec3 {
	cosi := math.Max(-1, math.Min(1, i.Dot(n)))
	etai, etat := 1.0, ior
	normal := n
	if cosi < 0 {
		cosi = -cosi
	} else {
		etai, etat = etat, etai
		normal = n.Negate()
	}

	eta := etai / etat
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return core.Vec3{}
	}
	return i.Multiply(eta).Add(normal.Multiply(eta*cosi - math.Sqrt(k)))
}

// Fresnel returns the fraction of light reflected at the surface; the
// transmitted fraction is 1 - kr. An opaque ior reflects everything.
func Fresnel(i, n core.Vec3, ior float64) float64 {
	cosi := math.Max(-1, math.Min(1, i.Dot(n)))
	etai, etat := 1.0, ior
	if cosi > 0 {
		etai, etat = etat, etai
	}
	if math.IsInf(etat, 1) || math.IsInf(etai, 1) {
		return 1
	}

	sint := etai / etat * math.Sqrt(math.Max(0, 1-cosi*cosi))
	if sint >= 1 {
		// Total internal reflection
		return 1
	}

	cost := math.Sqrt(math.Max(0, 1-sint*sint))
	cosi = math.Abs(cosi)
	rs := (etat*cosi - etai*cost) / (etat*cosi + etai*cost)
	rp := (etai*cosi - etat*cost) / (etai*cosi + etat*cost)
	return (rs*rs + rp*rp) / 2
}
