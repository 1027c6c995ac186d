package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// LoadFile reads a JSON scene file and builds it
func LoadFile(path string, logger core.Logger, cameraOverrides ...CameraConfig) (*Scene, error) {
	sf, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sf.Name == "" {
		sf.Name = path
	}

	s, err := FromFile(sf, cameraOverrides...)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Printf("Loaded scene %q from %s: %d shapes\n", s.Name, path, len(s.World.Objects))
	}
	return s, nil
}

// FromFile builds a scene from a parsed scene description
func FromFile(sf *loaders.SceneFile, cameraOverrides ...CameraConfig) (*Scene, error) {
	b := newBuilder(lights.NewPointLight(sf.Light.Position.Vec3(), sf.Light.Intensity.Vec3()))

	for i, spec := range sf.Shapes {
		shape, err := shapeFromSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("scene %s: shape %d: %w", sf.Name, i, err)
		}
		transform, err := loaders.BuildTransform(spec.Transform)
		if err != nil {
			return nil, fmt.Errorf("scene %s: shape %d: %w", sf.Name, i, err)
		}
		b.add(shape, transform)
	}

	cameraConfig := CameraConfig{
		Width:       sf.Camera.Width,
		Height:      sf.Camera.Height,
		FieldOfView: sf.Camera.FieldOfView * math.Pi / 180,
		From:        sf.Camera.From.Vec3(),
		To:          sf.Camera.To.Vec3(),
		Up:          sf.Camera.Up.Vec3(),
	}
	s, err := b.build(sf.Name, cameraConfig, cameraOverrides...)
	if err != nil {
		return nil, err
	}

	if sf.Render != nil {
		s.Config = renderer.Config{
			MaxBounces: sf.Render.MaxBounces,
			Epsilon:    sf.Render.Epsilon,
		}
	}
	return s, nil
}

func shapeFromSpec(spec loaders.ShapeSpec) (*geometry.Shape, error) {
	shapeType, err := geometry.ParseShapeType(spec.Type)
	if err != nil {
		return nil, err
	}

	var shape *geometry.Shape
	switch shapeType {
	case geometry.CylinderShape, geometry.ConeShape:
		lo, hi := math.Inf(-1), math.Inf(1)
		if spec.Min != nil {
			lo = *spec.Min
		}
		if spec.Max != nil {
			hi = *spec.Max
		}
		if shapeType == geometry.CylinderShape {
			shape, err = geometry.NewTruncatedCylinder(lo, hi, spec.Closed)
		} else {
			shape, err = geometry.NewTruncatedCone(lo, hi, spec.Closed)
		}
		if err != nil {
			return nil, err
		}
	default:
		shape = geometry.NewShape(shapeType)
	}

	if spec.Material != nil {
		m, err := materialFromSpec(*spec.Material)
		if err != nil {
			return nil, err
		}
		shape.Material = m
	}
	return shape, nil
}

// materialFromSpec applies the fields present in spec to the default material
func materialFromSpec(spec loaders.MaterialSpec) (material.Material, error) {
	m := material.DefaultMaterial()
	if spec.Color != nil {
		m.Color = spec.Color.Vec3()
	}
	setIf(&m.Ambient, spec.Ambient)
	setIf(&m.Diffuse, spec.Diffuse)
	setIf(&m.Specular, spec.Specular)
	setIf(&m.Shininess, spec.Shininess)
	setIf(&m.Reflective, spec.Reflective)
	setIf(&m.Transparency, spec.Transparency)
	setIf(&m.RefractiveIndex, spec.RefractiveIndex)

	if p := spec.Pattern; p != nil {
		patternType, err := material.ParsePatternType(p.Type)
		if err != nil {
			return m, fmt.Errorf("pattern: %w", err)
		}
		transform, err := loaders.BuildTransform(p.Transform)
		if err != nil {
			return m, fmt.Errorf("pattern: %w", err)
		}
		m.Pattern = material.NewPattern(patternType, p.A.Vec3(), p.B.Vec3())
		if err := m.Pattern.SetTransform(transform); err != nil {
			return m, fmt.Errorf("pattern: %w", err)
		}
	}
	return m, nil
}

func setIf(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
