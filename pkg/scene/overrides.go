package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-grid-raytracer/pkg/geometry"
)

// Resolution policy names accepted by Overrides
const (
	ResolutionFixed   = "fixed"
	ResolutionDensity = "density"
)

// Overrides are user supplied render settings layered over a scene's own.
// Zero values leave the scene untouched.
type Overrides struct {
	Width      int
	Height     int
	AA         int
	Depth      int
	Accel      string
	Resolution string  // ResolutionFixed or ResolutionDensity
	Res        float64 // Cells per axis for fixed, objects per cell for density
}

// Apply folds the overrides into s. Call it before Preprocess.
func (o Overrides) Apply(s *Scene) error {
	s.SamplingConfig = MergeSamplingConfig(s.SamplingConfig, SamplingConfig{
		Width:        o.Width,
		Height:       o.Height,
		AntiAliasing: o.AA,
		MaxDepth:     o.Depth,
	})
	if o.Accel != "" {
		s.Accel = o.Accel
	}

	switch o.Resolution {
	case "":
		if o.Res != 0 {
			return errors.New("res needs a resolution policy")
		}
	case ResolutionFixed:
		if o.Res < 1 || o.Res != float64(int(o.Res)) {
			return fmt.Errorf("res must be a positive integer for fixed resolution, got %g", o.Res)
		}
		s.GridConfig.Resolution = geometry.FixedResolution{N: int(o.Res)}
	case ResolutionDensity:
		if o.Res < 0 {
			return fmt.Errorf("res must not be negative, got %g", o.Res)
		}
		s.GridConfig.Resolution = geometry.DensityResolution{Lambda: o.Res}
	default:
		return fmt.Errorf("unknown resolution policy %q", o.Resolution)
	}
	return nil
}
