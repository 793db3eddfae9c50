package renderer

import (
	"fmt"

	"github.com/df07/go-grid-raytracer/pkg/geometry"
	"github.com/df07/go-grid-raytracer/pkg/scene"
)

// InspectResult describes what the ray through a pixel center hits
type InspectResult struct {
	Hit          bool                     `json:"hit" yaml:"hit"`
	Object       int                      `json:"object" yaml:"object"`
	Name         string                   `json:"name,omitempty" yaml:"name,omitempty"`
	GeometryType string                   `json:"geometryType,omitempty" yaml:"geometryType,omitempty"`
	MaterialType string                   `json:"materialType,omitempty" yaml:"materialType,omitempty"`
	Point        [3]float64               `json:"point" yaml:"point,flow"`
	Normal       [3]float64               `json:"normal" yaml:"normal,flow"`
	Distance     float64                  `json:"distance" yaml:"distance"`
	Properties   map[string]interface{}   `json:"properties,omitempty" yaml:"properties,omitempty"`
	Cells        []geometry.TraversalStep `json:"cells,omitempty" yaml:"cells,omitempty"`
}

// InspectPixel casts the ray through the center of pixel (pixelX, pixelY)
// and reports the first object hit. When the scene uses the uniform grid the
// cells visited by the traversal are included.
func InspectPixel(s *scene.Scene, pixelX, pixelY int) (InspectResult, error) {
	width, height := s.SamplingConfig.Width, s.SamplingConfig.Height
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		return InspectResult{}, fmt.Errorf("pixel (%d, %d) outside %dx%d image", pixelX, pixelY, width, height)
	}
	if s.Camera == nil {
		return InspectResult{}, fmt.Errorf("scene %q has not been preprocessed", s.Name)
	}

	ray := s.Camera.GetRay((float64(pixelX)+0.5)/float64(width), (float64(pixelY)+0.5)/float64(height))

	result := InspectResult{Object: -1}
	if grid := s.Grid(); grid != nil {
		result.Cells, _, _ = grid.Trace(ray)
	}

	hit, isHit := s.Intersect(ray)
	if !isHit {
		return result, nil
	}

	obj := s.Objects[hit.Object]
	point := ray.At(hit.T)
	result.Hit = true
	result.Object = hit.Object
	result.Name = obj.Name
	result.Point = point.Array()
	result.Normal = obj.Shape.NormalAt(point, hit.Intersection).Array()
	result.Distance = hit.T
	result.MaterialType = obj.Material.Type.String()
	result.GeometryType, result.Properties = geometryInfo(obj.Shape)
	return result, nil
}

// geometryInfo extracts detailed geometry information
func geometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = geom.Center.Array()
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = geom.Point.Array()
		properties["normal"] = geom.Normal.Array()
		return "plane", properties

	case *geometry.Box:
		properties["center"] = geom.Center.Array()
		properties["sideLength"] = geom.SideLength
		return "box", properties

	default:
		bbox := shape.BoundingBox()
		properties["boundingBox"] = map[string]interface{}{
			"min": bbox.Min.Array(),
			"max": bbox.Max.Array(),
		}
		return "unknown", properties
	}
}
