package server

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/df07/go-grid-raytracer/pkg/geometry"
	"github.com/df07/go-grid-raytracer/pkg/renderer"
	"github.com/df07/go-grid-raytracer/pkg/report"
	"github.com/df07/go-grid-raytracer/pkg/scene"
)

// GridResponse describes the uniform grid built for a scene
type GridResponse struct {
	Scene             string        `json:"scene"`
	Resolution        [3]int        `json:"resolution"`
	Bounds            [2][3]float64 `json:"bounds"` // Min and max corner
	CellSize          [3]float64    `json:"cellSize"`
	Cells             int           `json:"cells"`
	OccupiedCells     int           `json:"occupiedCells"`
	References        int           `json:"references"`
	MaxPerCell        int           `json:"maxPerCell"`
	MeanPerOccupied   float64       `json:"meanPerOccupied"`
	StdDevPerOccupied float64       `json:"stdDevPerOccupied"`
	Objects           int           `json:"objects"`
	Unbounded         int           `json:"unbounded"`
	CellCounts        []int         `json:"cellCounts"`      // Occupied cells holding 1, 2, ... shapes
	LayerReferences   []float64     `json:"layerReferences"` // Shape references per z layer
}

func newGridResponse(name string, grid *geometry.Grid) GridResponse {
	stats := grid.Stats()
	bounds := grid.Bounds()
	return GridResponse{
		Scene:             name,
		Resolution:        stats.Resolution,
		Bounds:            [2][3]float64{{bounds.Min.X, bounds.Min.Y, bounds.Min.Z}, {bounds.Max.X, bounds.Max.Y, bounds.Max.Z}},
		CellSize:          grid.CellSize(),
		Cells:             stats.Cells,
		OccupiedCells:     stats.OccupiedCells,
		References:        stats.References,
		MaxPerCell:        stats.MaxPerCell,
		MeanPerOccupied:   stats.MeanPerOccupied,
		StdDevPerOccupied: stats.StdDevPerOccupied,
		Objects:           stats.Objects,
		Unbounded:         stats.Unbounded,
		CellCounts:        report.CellCountBuckets(grid),
		LayerReferences:   report.LayerReferences(grid),
	}
}

// handleInspect reports what the ray through pixel (x, y) hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	x, errX := strconv.Atoi(values.Get("x"))
	y, errY := strconv.Atoi(values.Get("y"))
	if errX != nil || errY != nil {
		writeJSONError(w, http.StatusBadRequest, "x and y must be integer pixel coordinates")
		return
	}

	sceneObj, ok := s.sceneFromRequest(w, r)
	if !ok {
		return
	}

	result, err := renderer.InspectPixel(sceneObj, x, y)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGrid returns the occupancy statistics of the scene's grid
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	sceneObj, grid, ok := s.gridFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newGridResponse(sceneObj.Name, grid))
}

// handleGridChart returns the interactive occupancy chart of the scene's grid
func (s *Server) handleGridChart(w http.ResponseWriter, r *http.Request) {
	sceneObj, grid, ok := s.gridFromRequest(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteOccupancyChart(grid, sceneObj.Name, &buf); err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// sceneFromRequest loads the scene named by the query, writing an error
// response on failure
func (s *Server) sceneFromRequest(w http.ResponseWriter, r *http.Request) (*scene.Scene, bool) {
	req, err := parseSceneRequest(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	sceneObj, err := s.loadScene(req, s.logger.WithField("scene", req.Scene))
	if err != nil {
		s.logger.WithError(err).WithField("scene", req.Scene).Debug("Scene request rejected")
		writeJSONError(w, sceneStatus(err), err.Error())
		return nil, false
	}
	return sceneObj, true
}

func (s *Server) gridFromRequest(w http.ResponseWriter, r *http.Request) (*scene.Scene, *geometry.Grid, bool) {
	sceneObj, ok := s.sceneFromRequest(w, r)
	if !ok {
		return nil, nil, false
	}
	grid := sceneObj.Grid()
	if grid == nil {
		writeJSONError(w, http.StatusBadRequest, "scene "+strconv.Quote(sceneObj.Name)+" does not use the grid accelerator")
		return nil, nil, false
	}
	return sceneObj, grid, true
}
