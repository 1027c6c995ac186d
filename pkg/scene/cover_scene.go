package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// coverCube is one cube of the cover arrangement
type coverCube struct {
	offset   core.Vec3
	size     float64 // Multiple of the standard half-unit cube
	material material.Material
}

// NewCoverScene recreates the book cover: a stack of matte cubes around a glassy sphere
func NewCoverScene(cameraOverrides ...CameraConfig) (*Scene, error) {
	b := newBuilder(lights.NewPointLight(core.NewVec3(50, 100, -50), core.NewVec3(0.9, 0.9, 0.9)))

	white := material.DefaultMaterial()
	white.Diffuse = 0.7
	white.Ambient = 0.1
	white.Specular = 0
	white.Reflective = 0.1
	blue, red, purple := white, white, white
	blue.Color = core.NewVec3(0.537, 0.831, 0.914)
	red.Color = core.NewVec3(0.941, 0.322, 0.388)
	purple.Color = core.NewVec3(0.373, 0.404, 0.550)

	// standard maps the unit cube onto [0, 1] before sizing
	standard := core.Scaling(0.5, 0.5, 0.5).Translate(1, -1, 1)
	sized := func(size float64) core.Matrix {
		return standard.Mul(core.Scaling(size, size, size))
	}

	backdrop := geometry.NewPlane()
	backdrop.Material.Ambient = 1
	backdrop.Material.Diffuse = 0
	backdrop.Material.Specular = 0
	b.add(backdrop, core.RotationX(math.Pi/2).Translate(0, 0, 500))

	sphere := geometry.NewSphere()
	sphere.Material = material.Material{
		Color:           purple.Color,
		Ambient:         0,
		Diffuse:         0.2,
		Specular:        1,
		Shininess:       200,
		Reflective:      0.7,
		Transparency:    0.7,
		RefractiveIndex: material.Glass,
	}
	b.add(sphere, sized(3.5))

	cubes := []coverCube{
		{core.NewVec3(4, 0, 0), 3, white},
		{core.NewVec3(8.5, 1.5, -0.5), 3, blue},
		{core.NewVec3(0, 0, 4), 3, red},
		{core.NewVec3(4, 0, 4), 2, white},
		{core.NewVec3(7.5, 0.5, 4), 3, purple},
		{core.NewVec3(-0.25, 0.25, 8), 3, white},
		{core.NewVec3(4, 1, 7.5), 3.5, blue},
		{core.NewVec3(10, 2, 7.5), 3, red},
		{core.NewVec3(8, 2, 12), 2, white},
		{core.NewVec3(20, 1, 9), 2, white},
		{core.NewVec3(-0.5, -5, 0.25), 3.5, blue},
		{core.NewVec3(4, -4, 0), 3.5, red},
		{core.NewVec3(8.5, -4, 0), 3.5, white},
		{core.NewVec3(0, -4, 4), 3.5, white},
		{core.NewVec3(-0.5, -4.5, 8), 3.5, purple},
		{core.NewVec3(0, -8, 4), 3.5, white},
		{core.NewVec3(-0.5, -8.5, 8), 3.5, white},
	}
	for _, c := range cubes {
		cube := geometry.NewCube()
		cube.Material = c.material
		b.add(cube, sized(c.size).Translate(c.offset.X, c.offset.Y, c.offset.Z))
	}

	cameraConfig := CameraConfig{
		Width:       480,
		Height:      270,
		FieldOfView: math.Pi / 2 / 1.25,
		From:        core.NewVec3(-6, 6, -10),
		To:          core.NewVec3(6, 0, 6),
		Up:          core.NewVec3(-0.45, 1, 0),
	}
	return b.build("cover", cameraConfig, cameraOverrides...)
}
