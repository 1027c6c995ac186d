package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Vec is an [x, y, z] triple in a scene file
type Vec [3]float64

// Vec3 converts the triple to a vector
func (v Vec) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// SceneFile is the JSON description of a scene
type SceneFile struct {
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Group       string      `json:"group,omitempty"`
	Camera      CameraSpec  `json:"camera"`
	Light       LightSpec   `json:"light"`
	Render      *RenderSpec `json:"render,omitempty"`
	Shapes      []ShapeSpec `json:"shapes"`
}

// CameraSpec places the camera. FieldOfView is in degrees.
type CameraSpec struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	FieldOfView float64 `json:"fieldOfView"`
	From        Vec     `json:"from"`
	To          Vec     `json:"to"`
	Up          Vec     `json:"up"`
}

// LightSpec describes the point light
type LightSpec struct {
	Position  Vec `json:"position"`
	Intensity Vec `json:"intensity"`
}

// RenderSpec overrides render settings for the scene
type RenderSpec struct {
	MaxBounces int     `json:"maxBounces,omitempty"`
	Epsilon    float64 `json:"epsilon,omitempty"`
}

// ShapeSpec describes one shape. Min, Max and Closed apply to cylinders and cones.
type ShapeSpec struct {
	Type      string          `json:"type"`
	Min       *float64        `json:"min,omitempty"`
	Max       *float64        `json:"max,omitempty"`
	Closed    bool            `json:"closed,omitempty"`
	Transform []TransformSpec `json:"transform,omitempty"`
	Material  *MaterialSpec   `json:"material,omitempty"`
}

// TransformSpec is a single transform step. Steps apply in list order.
// Rotation angles are in degrees.
type TransformSpec struct {
	Op   string    `json:"op"`
	Args []float64 `json:"args"`
}

// MaterialSpec overrides fields of the default material
type MaterialSpec struct {
	Color           *Vec         `json:"color,omitempty"`
	Ambient         *float64     `json:"ambient,omitempty"`
	Diffuse         *float64     `json:"diffuse,omitempty"`
	Specular        *float64     `json:"specular,omitempty"`
	Shininess       *float64     `json:"shininess,omitempty"`
	Reflective      *float64     `json:"reflective,omitempty"`
	Transparency    *float64     `json:"transparency,omitempty"`
	RefractiveIndex *float64     `json:"refractiveIndex,omitempty"`
	Pattern         *PatternSpec `json:"pattern,omitempty"`
}

// PatternSpec describes a two-color pattern
type PatternSpec struct {
	Type      string          `json:"type"`
	A         Vec             `json:"a"`
	B         Vec             `json:"b"`
	Transform []TransformSpec `json:"transform,omitempty"`
}

// transformArity is the number of arguments each transform op takes
var transformArity = map[string]int{
	"translate": 3,
	"scale":     3,
	"rotateX":   1,
	"rotateY":   1,
	"rotateZ":   1,
	"shear":     6,
}

// BuildTransform composes the steps into one matrix, first step applied first
func BuildTransform(steps []TransformSpec) (core.Matrix, error) {
	m := core.Identity()
	for i, step := range steps {
		arity, ok := transformArity[step.Op]
		if !ok {
			return core.Matrix{}, fmt.Errorf("transform step %d: unknown op %q", i, step.Op)
		}
		if len(step.Args) != arity {
			return core.Matrix{}, fmt.Errorf("transform step %d: %s takes %d args, got %d", i, step.Op, arity, len(step.Args))
		}

		a := step.Args
		switch step.Op {
		case "translate":
			m = m.Translate(a[0], a[1], a[2])
		case "scale":
			m = m.Scale(a[0], a[1], a[2])
		case "rotateX":
			m = m.RotateX(degrees(a[0]))
		case "rotateY":
			m = m.RotateY(degrees(a[0]))
		case "rotateZ":
			m = m.RotateZ(degrees(a[0]))
		case "shear":
			m = m.Shear(a[0], a[1], a[2], a[3], a[4], a[5])
		}
	}
	return m, nil
}

func degrees(d float64) float64 {
	return d * math.Pi / 180
}

// ParseSceneFile decodes and validates a scene description
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var sf SceneFile
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if err := sf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	return &sf, nil
}

// LoadSceneFile reads a scene description from a JSON file
func LoadSceneFile(path string) (*SceneFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	return ParseSceneFile(f)
}

// SaveSceneFile writes a scene description to a JSON file
func SaveSceneFile(path string, sf *SceneFile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sf); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// Validate checks the parts of the description that decoding cannot
func (sf *SceneFile) Validate() error {
	var errs []error

	c := sf.Camera
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("camera size must be positive, got %dx%d", c.Width, c.Height))
	}
	if !(c.FieldOfView > 0 && c.FieldOfView < 180) {
		errs = append(errs, fmt.Errorf("camera fieldOfView must be between 0 and 180 degrees, got %g", c.FieldOfView))
	}
	if c.From == c.To {
		errs = append(errs, errors.New("camera from and to must differ"))
	}
	if c.Up == (Vec{}) {
		errs = append(errs, errors.New("camera up must not be zero"))
	}

	if sf.Render != nil {
		if sf.Render.MaxBounces < 0 {
			errs = append(errs, fmt.Errorf("render maxBounces must not be negative, got %d", sf.Render.MaxBounces))
		}
		if sf.Render.Epsilon < 0 {
			errs = append(errs, fmt.Errorf("render epsilon must not be negative, got %g", sf.Render.Epsilon))
		}
	}

	for i, s := range sf.Shapes {
		if err := s.validate(); err != nil {
			errs = append(errs, fmt.Errorf("shape %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (s ShapeSpec) validate() error {
	shapeType, err := geometry.ParseShapeType(s.Type)
	if err != nil {
		return err
	}
	switch shapeType {
	case geometry.CylinderShape, geometry.ConeShape:
		if s.Min != nil && s.Max != nil && *s.Min > *s.Max {
			return fmt.Errorf("%s min %g is greater than max %g", s.Type, *s.Min, *s.Max)
		}
	default:
		if s.Min != nil || s.Max != nil || s.Closed {
			return fmt.Errorf("%s does not take min, max or closed", s.Type)
		}
	}

	if _, err := BuildTransform(s.Transform); err != nil {
		return err
	}
	if s.Material != nil && s.Material.Pattern != nil {
		p := s.Material.Pattern
		if _, err := material.ParsePatternType(p.Type); err != nil {
			return fmt.Errorf("pattern: %w", err)
		}
		if _, err := BuildTransform(p.Transform); err != nil {
			return fmt.Errorf("pattern: %w", err)
		}
	}
	return nil
}
