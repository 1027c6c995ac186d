package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *world.World
	Camera       *renderer.Camera
	CameraConfig CameraConfig
	Config       renderer.Config // Scene-specific render settings, zero fields use the defaults
}

// CameraConfig places and sizes the camera
type CameraConfig struct {
	Width       int
	Height      int
	FieldOfView float64 // Radians
	From        core.Vec3
	To          core.Vec3
	Up          core.Vec3
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	if override.Width != 0 {
		base.Width = override.Width
	}
	if override.Height != 0 {
		base.Height = override.Height
	}
	if override.FieldOfView != 0 {
		base.FieldOfView = override.FieldOfView
	}
	if override.From != (core.Vec3{}) {
		base.From = override.From
	}
	if override.To != (core.Vec3{}) {
		base.To = override.To
	}
	if override.Up != (core.Vec3{}) {
		base.Up = override.Up
	}
	return base
}

// NewCamera creates a camera looking from From toward To
func (c CameraConfig) NewCamera() (*renderer.Camera, error) {
	camera, err := renderer.NewCamera(c.Width, c.Height, c.FieldOfView)
	if err != nil {
		return nil, err
	}
	if err := camera.SetTransform(core.ViewTransform(c.From, c.To, c.Up)); err != nil {
		return nil, fmt.Errorf("camera looking from %v to %v: %w", c.From, c.To, err)
	}
	return camera, nil
}

// builder assembles a world, collecting configuration errors as it goes so
// scene code can stay linear
type builder struct {
	world *world.World
	errs  []error
}

func newBuilder(light *lights.PointLight) *builder {
	w := world.NewWorld()
	w.Light = light
	return &builder{world: w}
}

// add places shape in the world under transform
func (b *builder) add(shape *geometry.Shape, transform core.Matrix) *geometry.Shape {
	if err := shape.SetTransform(transform); err != nil {
		b.errs = append(b.errs, err)
	}
	b.world.Add(shape)
	return shape
}

// truncated unwraps a bounded cylinder or cone constructor
func (b *builder) truncated(shape *geometry.Shape, err error) *geometry.Shape {
	if err != nil {
		b.errs = append(b.errs, err)
		return geometry.NewShape(geometry.SphereShape)
	}
	return shape
}

// pattern creates a pattern with the given transform
func (b *builder) pattern(patternType material.PatternType, a, bColor core.Vec3, transform core.Matrix) *material.Pattern {
	p := material.NewPattern(patternType, a, bColor)
	if err := p.SetTransform(transform); err != nil {
		b.errs = append(b.errs, err)
	}
	return p
}

// build finishes the scene
func (b *builder) build(name string, cameraConfig CameraConfig, overrides ...CameraConfig) (*Scene, error) {
	if len(overrides) > 0 {
		cameraConfig = MergeCameraConfig(cameraConfig, overrides[0])
	}
	camera, err := cameraConfig.NewCamera()
	if err != nil {
		b.errs = append(b.errs, err)
	}
	if err := b.world.Validate(); err != nil {
		b.errs = append(b.errs, err)
	}
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("scene %s: %w", name, errors.Join(b.errs...))
	}

	return &Scene{
		Name:         name,
		World:        b.world,
		Camera:       camera,
		CameraConfig: cameraConfig,
	}, nil
}
