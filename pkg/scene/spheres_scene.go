package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewSpheresScene creates three striped and plain spheres resting on a striped floor
func NewSpheresScene(cameraOverrides ...CameraConfig) (*Scene, error) {
	b := newBuilder(lights.NewPointLight(core.NewVec3(-10, 10, -10), core.White))

	floor := geometry.NewPlane()
	floor.Material.Color = core.NewVec3(1, 0.9, 0.9)
	floor.Material.Specular = 0
	floor.Material.Pattern = b.pattern(material.StripePattern,
		core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.6, 0.6, 0.6),
		core.RotationY(math.Pi/3).Scale(0.1, 0.1, 0.1))
	b.add(floor, core.Identity())

	middle := geometry.NewSphere()
	middle.Material.Color = core.NewVec3(0.1, 1, 0.5)
	middle.Material.Diffuse = 0.7
	middle.Material.Specular = 0.3
	middle.Material.Pattern = b.pattern(material.StripePattern,
		core.NewVec3(0.8, 0.1, 0.1), core.NewVec3(0.1, 0.6, 0.1),
		core.RotationY(1).Scale(0.3, 0.3, 0.3))
	b.add(middle, core.Translation(-0.5, 1, 0.5))

	right := geometry.NewSphere()
	right.Material.Color = core.NewVec3(0.5, 1, 0.1)
	right.Material.Diffuse = 1
	right.Material.Specular = 0.3
	right.Material.Pattern = b.pattern(material.StripePattern,
		core.NewVec3(0.1, 0.2, 0.9), core.White,
		core.RotationZ(1).Scale(0.3, 0.3, 0.3))
	b.add(right, core.Scaling(0.5, 0.5, 0.5).Translate(1.5, 0.5, -0.5))

	left := geometry.NewSphere()
	left.Material.Color = core.NewVec3(1, 0.8, 0.1)
	left.Material.Diffuse = 0.7
	left.Material.Specular = 0.1
	b.add(left, core.Scaling(0.33, 0.33, 0.33).Translate(-1.5, 0.33, -0.75))

	cameraConfig := CameraConfig{
		Width:       400,
		Height:      200,
		FieldOfView: math.Pi / 3,
		From:        core.NewVec3(0, 1.5, -5),
		To:          core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
	}
	return b.build("spheres", cameraConfig, cameraOverrides...)
}
