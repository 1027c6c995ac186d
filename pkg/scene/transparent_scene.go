package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewTransparentScene creates a hollow glass sphere in front of a checkered wall
func NewTransparentScene(cameraOverrides ...CameraConfig) (*Scene, error) {
	b := newBuilder(lights.NewPointLight(core.NewVec3(2, 10, -5), core.NewVec3(0.9, 0.9, 0.9)))

	wall := geometry.NewPlane()
	wall.Material.Ambient = 0.7
	wall.Material.Diffuse = 0.2
	wall.Material.Specular = 0
	wall.Material.Pattern = material.NewChecker(core.NewVec3(0.15, 0.15, 0.15), core.NewVec3(0.85, 0.85, 0.85))
	b.add(wall, core.RotationX(math.Pi/2).Translate(0, 0, 10))

	glass := geometry.NewSphere()
	glass.Material = clearMaterial(core.Black, material.Glass)
	b.add(glass, core.Identity())

	// Slightly denser than vacuum so the hollow center still bends light
	air := geometry.NewSphere()
	air.Material = clearMaterial(core.White, 1.0000034)
	air.Material.Ambient = 0
	b.add(air, core.Scaling(0.5, 0.5, 0.5))

	cameraConfig := CameraConfig{
		Width:       300,
		Height:      300,
		FieldOfView: 0.45,
		From:        core.NewVec3(0, 0, -5),
		To:          core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
	}
	return b.build("transparent", cameraConfig, cameraOverrides...)
}

// clearMaterial is a highly reflective, highly transparent surface
func clearMaterial(color core.Vec3, index float64) material.Material {
	m := material.DefaultMaterial()
	m.Color = color
	m.Diffuse = 0
	m.Specular = 0.9
	m.Shininess = 300
	m.Reflective = 0.9
	m.Transparency = 0.9
	m.RefractiveIndex = index
	return m
}
