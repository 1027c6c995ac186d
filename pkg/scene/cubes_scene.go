package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCubesScene creates a glass cube with an air bubble on a reflective checkered floor
func NewCubesScene(cameraOverrides ...CameraConfig) (*Scene, error) {
	b := newBuilder(lights.NewPointLight(core.NewVec3(-10, 10, -10), core.White))

	floor := geometry.NewPlane()
	floor.Material.Specular = 0
	floor.Material.Reflective = 0.3
	floor.Material.Pattern = b.pattern(material.CheckerPattern,
		core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.2),
		core.RotationY(math.Pi/3).Translate(-10, 0, 10).Scale(0.1, 0.1, 0.1))
	b.add(floor, core.Identity())

	cube := geometry.NewCube()
	cube.Material = clearMaterial(core.NewVec3(0.1, 0.1, 0.1), material.Glass)
	cube.Material.Reflective = 0.5
	b.add(cube, core.Translation(0, 1, 0))

	bubble := geometry.NewSphere()
	bubble.Material = clearMaterial(core.White, material.Air)
	bubble.Material.Ambient = 0
	b.add(bubble, core.Scaling(0.5, 0.5, 0.5).Translate(0, 1, 0))

	right := geometry.NewSphere()
	right.Material.Color = core.NewVec3(0.5, 1, 0.1)
	right.Material.Diffuse = 0.7
	right.Material.Specular = 0.3
	right.Material.Pattern = b.pattern(material.StripePattern,
		core.NewVec3(0.1, 0.2, 0.9), core.White,
		core.RotationZ(1.5).Scale(0.3, 0.3, 0.3))
	b.add(right, core.Scaling(0.5, 0.5, 0.5).Translate(1.8, 0.5, -0.5))

	left := geometry.NewSphere()
	left.Material.Diffuse = 0.7
	left.Material.Specular = 0.1
	left.Material.Pattern = b.pattern(material.CheckerPattern,
		core.NewVec3(0.1, 0.2, 0.9), core.White,
		core.Translation(0.5, 0.5, 0.5))
	b.add(left, core.Scaling(0.33, 0.33, 0.33).Translate(-1.8, 0.33, -0.75))

	cameraConfig := CameraConfig{
		Width:       400,
		Height:      200,
		FieldOfView: math.Pi / 3,
		From:        core.NewVec3(0, 1.5, -5),
		To:          core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
	}
	return b.build("cubes", cameraConfig, cameraOverrides...)
}
