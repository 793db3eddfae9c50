package renderer

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/df07/go-grid-raytracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int
	Height          int
	SamplesPerPixel int                  // Primary rays per pixel
	Rays            integrator.RayCounts // Rays traced, by kind
	Workers         int                  // Rows rendered concurrently
	Accelerator     string
	Duration        time.Duration
}

// TotalPixels returns the number of pixels rendered
func (rs RenderStats) TotalPixels() int {
	return rs.Width * rs.Height
}

// RaysPerSecond returns the tracing throughput, 0 for an instantaneous render
func (rs RenderStats) RaysPerSecond() float64 {
	seconds := rs.Duration.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(rs.Rays.Total()) / seconds
}

// Fields returns the stats as structured log fields
func (rs RenderStats) Fields() logrus.Fields {
	return logrus.Fields{
		"width":          rs.Width,
		"height":         rs.Height,
		"spp":            rs.SamplesPerPixel,
		"primary_rays":   rs.Rays.Primary,
		"secondary_rays": rs.Rays.Secondary,
		"shadow_rays":    rs.Rays.Shadow,
		"workers":        rs.Workers,
		"accel":          rs.Accelerator,
		"duration":       rs.Duration.Round(time.Millisecond),
		"rays_per_sec":   int64(rs.RaysPerSecond()),
	}
}
