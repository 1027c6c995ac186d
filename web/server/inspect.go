package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	ShapeID      uint64                 `json:"shapeId"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	N1           float64                `json:"n1"`
	N2           float64                `json:"n2"`
	Color        [3]float64             `json:"color"` // Shaded color of the pixel, unclamped
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains the shading state of the first object hit by an inspection ray
type InspectResult struct {
	Hit   bool
	Comps geometry.Computations
	Color core.Vec3
}

func vec3Array(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	return fmt.Sprintf("#%02x%02x%02x", renderer.ColorByte(c.X), renderer.ColorByte(c.Y), renderer.ColorByte(c.Z))
}

// extractMaterialInfo classifies a material and lists its coefficients
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"color":           hexColor(mat.Color),
		"ambient":         mat.Ambient,
		"diffuse":         mat.Diffuse,
		"specular":        mat.Specular,
		"shininess":       mat.Shininess,
		"reflective":      mat.Reflective,
		"transparency":    mat.Transparency,
		"refractiveIndex": mat.RefractiveIndex,
	}
	if mat.Pattern != nil {
		properties["pattern"] = map[string]interface{}{
			"type": mat.Pattern.Type.String(),
			"a":    hexColor(mat.Pattern.A),
			"b":    hexColor(mat.Pattern.B),
		}
	}

	switch {
	case mat.IsTransparent() && mat.IsReflective():
		return "glass", properties
	case mat.IsTransparent():
		return "transparent", properties
	case mat.IsReflective():
		return "reflective", properties
	default:
		return "matte", properties
	}
}

// extractGeometryInfo describes the hit shape in its object space
func (s *Server) extractGeometryInfo(shape *geometry.Shape) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"origin": vec3Array(shape.Transform().MulPoint(core.NewVec3(0, 0, 0))),
	}

	switch shape.Type {
	case geometry.CylinderShape, geometry.ConeShape:
		properties["min"] = boundString(shape.Min)
		properties["max"] = boundString(shape.Max)
		properties["closed"] = shape.Closed
	}
	return shape.Type.String(), properties
}

// boundString renders a cylinder or cone bound, which JSON numbers cannot hold when infinite
func boundString(v float64) string {
	if math.IsInf(v, 0) {
		if v < 0 {
			return "-inf"
		}
		return "inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// inspectPixel casts the primary ray through a pixel and prepares the hit the way shading sees it
func inspectPixel(sceneObj *scene.Scene, raytracer *renderer.Raytracer, pixelX, pixelY int) InspectResult {
	ray := sceneObj.Camera.RayForPixel(pixelX, pixelY)
	w := raytracer.World()
	xs := w.Intersect(ray)

	hit, ok := xs.Hit()
	if !ok {
		return InspectResult{Hit: false, Color: raytracer.PixelColor(pixelX, pixelY)}
	}

	comps, ok := hit.PrepareComputations(ray, xs, w.Epsilon)
	if !ok {
		return InspectResult{Hit: false}
	}

	return InspectResult{
		Hit:   true,
		Comps: comps,
		Color: raytracer.PixelColor(pixelX, pixelY),
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	raytracer, sceneObj, err := s.setupRaytracer(inspectReq, nil)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if pixelX < 0 || pixelX >= sceneObj.Camera.HSize || pixelY < 0 || pixelY >= sceneObj.Camera.VSize {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	result := inspectPixel(sceneObj, raytracer, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Color: vec3Array(result.Color)})
		return
	}

	comps := result.Comps
	materialType, materialProps := s.extractMaterialInfo(comps.Object.Material)
	geometryType, geometryProps := s.extractGeometryInfo(comps.Object)

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		ShapeID:      comps.Object.ID(),
		Point:        vec3Array(comps.Point),
		Normal:       vec3Array(comps.Normal),
		Distance:     comps.T,
		Inside:       comps.Inside,
		N1:           comps.N1,
		N2:           comps.N2,
		Color:        vec3Array(result.Color),
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}
	writeJSON(w, http.StatusOK, response)
}
