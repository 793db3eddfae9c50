package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-grid-raytracer/pkg/core"
	"github.com/df07/go-grid-raytracer/pkg/integrator"
	"github.com/df07/go-grid-raytracer/pkg/scene"
)

// Raytracer renders a preprocessed scene into an image
type Raytracer struct {
	scene      *scene.Scene
	integrator *integrator.WhittedIntegrator
	config     scene.SamplingConfig
	workers    int
	logger     logrus.FieldLogger
	progress   func(done, total int)
}

// NewRaytracer creates a raytracer using the scene's sampling configuration
func NewRaytracer(s *scene.Scene, logger logrus.FieldLogger) *Raytracer {
	if logger == nil {
		discard := logrus.New()
		discard.Out = io.Discard
		logger = discard
	}
	rt := &Raytracer{
		scene:   s,
		workers: runtime.NumCPU(),
		logger:  logger,
	}
	rt.SetSamplingConfig(s.SamplingConfig)
	return rt
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config scene.SamplingConfig) {
	rt.config = scene.MergeSamplingConfig(scene.DefaultSamplingConfig(), config)
	rt.integrator = integrator.NewWhittedIntegrator(rt.config)
}

// SetWorkers sets the number of rows rendered concurrently; <= 0 uses every CPU
func (rt *Raytracer) SetWorkers(workers int) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	rt.workers = workers
}

// SetProgress registers fn to be called after each completed row with the
// number of rows done so far. fn is called from the render goroutines.
func (rt *Raytracer) SetProgress(fn func(done, total int)) {
	rt.progress = fn
}

// Render traces every pixel. Rows are rendered concurrently; cancelling ctx
// stops the render between rows and returns the context error.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	width, height := rt.config.Width, rt.config.Height
	if width <= 0 || height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if rt.scene.Camera == nil {
		return nil, RenderStats{}, fmt.Errorf("scene %q has not been preprocessed", rt.scene.Name)
	}

	start := time.Now()
	rt.integrator = integrator.NewWhittedIntegrator(rt.config)
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	var rowsDone atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rt.workers)
	for y := 0; y < height; y++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Each row writes a disjoint span of img.Pix
			for x := 0; x < width; x++ {
				img.SetRGBA(x, y, rt.toRGBA(rt.pixelColor(x, y)))
			}
			if done := rowsDone.Add(1); rt.progress != nil {
				rt.progress(int(done), height)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render cancelled: %w", err)
	}

	aa := rt.antiAliasing()
	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: aa * aa,
		Rays:            rt.integrator.Counts(),
		Workers:         rt.workers,
		Accelerator:     rt.scene.AccelName(),
		Duration:        time.Since(start),
	}
	rt.logger.WithFields(stats.Fields()).Info("Render complete")
	return img, stats, nil
}

// antiAliasing returns the per-axis sample count, at least 1
func (rt *Raytracer) antiAliasing() int {
	if rt.config.AntiAliasing < 1 {
		return 1
	}
	return rt.config.AntiAliasing
}

// pixelColor averages an n x n lattice of rays spanning the pixel from its
// top-left corner to the top-left corner of the next pixel. A 1x1 lattice
// samples the pixel center.
func (rt *Raytracer) pixelColor(x, y int) core.Vec3 {
	aa := rt.antiAliasing()
	if aa == 1 {
		return rt.sample(float64(x)+0.5, float64(y)+0.5)
	}

	var sum core.Vec3
	for aay := 0; aay < aa; aay++ {
		for aax := 0; aax < aa; aax++ {
			fx := float64(x) + float64(aax)/float64(aa-1)
			fy := float64(y) + float64(aay)/float64(aa-1)
			sum = sum.Add(rt.sample(fx, fy))
		}
	}
	return sum.Multiply(1 / float64(aa*aa))
}

// sample traces the primary ray through image position (px, py)
func (rt *Raytracer) sample(px, py float64) core.Vec3 {
	s := px / float64(rt.config.Width)
	t := py / float64(rt.config.Height)
	return rt.integrator.RayColor(rt.scene.Camera.GetRay(s, t), rt.scene)
}

// toRGBA converts a Vec3 color to RGBA with gamma correction and clamping
func (rt *Raytracer) toRGBA(c core.Vec3) color.RGBA {
	if g := rt.config.Gamma; g > 0 && g != 1 {
		c = core.NewVec3(math.Pow(math.Max(0, c.X), 1/g), math.Pow(math.Max(0, c.Y), 1/g), math.Pow(math.Max(0, c.Z), 1/g))
	}
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}
