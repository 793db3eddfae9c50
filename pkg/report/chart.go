package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/df07/go-grid-raytracer/pkg/geometry"
)

// CellCountBuckets returns how many occupied cells hold exactly i+1 shapes
func CellCountBuckets(grid *geometry.Grid) []int {
	stats := grid.Stats()
	buckets := make([]int, stats.MaxPerCell)
	for _, n := range grid.Occupancy() {
		buckets[int(n)-1]++
	}
	return buckets
}

// WriteOccupancyChart renders an interactive HTML page with the occupancy
// histogram and the per-layer reference counts of grid
func WriteOccupancyChart(grid *geometry.Grid, title string, w io.Writer) error {
	stats := grid.Stats()
	if stats.OccupiedCells == 0 {
		return ErrNoOccupiedCells
	}
	res := stats.Resolution
	subtitle := fmt.Sprintf("%dx%dx%d cells, %d occupied, mean %.2f, sd %.2f",
		res[0], res[1], res[2], stats.OccupiedCells, stats.MeanPerOccupied, stats.StdDevPerOccupied)

	buckets := CellCountBuckets(grid)
	countLabels := make([]string, len(buckets))
	countData := make([]opts.BarData, len(buckets))
	for i, n := range buckets {
		countLabels[i] = strconv.Itoa(i + 1)
		countData[i] = opts.BarData{Value: n}
	}

	histogram := charts.NewBar()
	histogram.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{Title: "Shapes per occupied cell", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "shapes", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "cells"}),
	)
	histogram.SetXAxis(countLabels).
		AddSeries("cells", countData,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	layers := LayerReferences(grid)
	layerLabels := make([]string, len(layers))
	layerData := make([]opts.BarData, len(layers))
	for z, n := range layers {
		layerLabels[z] = strconv.Itoa(z)
		layerData[z] = opts.BarData{Value: n}
	}

	slices := charts.NewBar()
	slices.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{Title: "Shape references per z layer"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "z", NameLocation: "middle", NameGap: 25}),
	)
	slices.SetXAxis(layerLabels).AddSeries("references", layerData)

	page := components.NewPage()
	page.AddCharts(histogram, slices)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// LayersPath returns the file WritePlot writes the per-layer plot of an
// image path to: "occupancy.png" becomes "occupancy_layers.png"
func LayersPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_layers" + ext
}

// WritePlot writes the occupancy of grid to path. An .html path gets one
// interactive page with both charts; any other path gets the histogram image,
// with the per-layer plot next to it at LayersPath(path).
func WritePlot(grid *geometry.Grid, title, path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".html") {
		if err := WriteOccupancyHistogram(grid, path); err != nil {
			return err
		}
		return WriteSliceOccupancy(grid, LayersPath(path))
	}
	if grid.Stats().OccupiedCells == 0 {
		return ErrNoOccupiedCells
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create plot directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := WriteOccupancyChart(grid, title, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
