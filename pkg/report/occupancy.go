// Package report renders diagnostic plots of a uniform grid.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/df07/go-grid-raytracer/pkg/geometry"
)

// ErrNoOccupiedCells is returned when a grid has nothing to plot
var ErrNoOccupiedCells = errors.New("grid has no occupied cells")

// WriteOccupancyHistogram plots how many shapes the occupied cells of grid
// hold. The image format follows the extension of path (png, svg, pdf, ...).
func WriteOccupancyHistogram(grid *geometry.Grid, path string) error {
	counts := grid.Occupancy()
	if len(counts) == 0 {
		return ErrNoOccupiedCells
	}
	stats := grid.Stats()

	p := plot.New()
	res := stats.Resolution
	p.Title.Text = fmt.Sprintf("Grid occupancy %dx%dx%d (mean %.2f, sd %.2f)",
		res[0], res[1], res[2], stats.MeanPerOccupied, stats.StdDevPerOccupied)
	p.X.Label.Text = "Shapes per cell"
	p.Y.Label.Text = "Cells"

	// One bin per possible count
	hist, err := plotter.NewHist(plotter.Values(counts), max(1, stats.MaxPerCell))
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	p.Add(hist)

	return save(p, path)
}

// LayerReferences returns the number of shape references in each z layer of grid
func LayerReferences(grid *geometry.Grid) []float64 {
	res := grid.Resolution()
	layers := make([]float64, res[2])
	for z := 0; z < res[2]; z++ {
		for y := 0; y < res[1]; y++ {
			for x := 0; x < res[0]; x++ {
				layers[z] += float64(len(grid.Cell(x, y, z).Objects))
			}
		}
	}
	return layers
}

// WriteSliceOccupancy plots the number of shape references in each z layer of grid
func WriteSliceOccupancy(grid *geometry.Grid, path string) error {
	layers := LayerReferences(grid)
	if grid.Stats().References == 0 {
		return ErrNoOccupiedCells
	}

	p := plot.New()
	p.Title.Text = "Shape references per z layer"
	p.X.Label.Text = "z"
	p.Y.Label.Text = "References"

	bars, err := plotter.NewBarChart(plotter.Values(layers), vg.Points(12))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	p.Add(bars)

	return save(p, path)
}

func save(p *plot.Plot, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create plot directory: %w", err)
		}
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
