package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCylindersScene shows open and capped cylinders and cones on a ringed floor
func NewCylindersScene(cameraOverrides ...CameraConfig) (*Scene, error) {
	b := newBuilder(lights.NewPointLight(core.NewVec3(-5, 8, -8), core.White))

	floor := geometry.NewPlane()
	floor.Material.Specular = 0
	floor.Material.Reflective = 0.15
	floor.Material.Pattern = b.pattern(material.RingPattern,
		core.NewVec3(0.85, 0.85, 0.8), core.NewVec3(0.55, 0.55, 0.5),
		core.Scaling(0.5, 0.5, 0.5))
	b.add(floor, core.Identity())

	// Open tube tilted toward the camera so its inside shows
	tube := b.truncated(geometry.NewTruncatedCylinder(0, 1.5, false))
	tube.Material.Color = core.NewVec3(0.9, 0.4, 0.2)
	tube.Material.Diffuse = 0.8
	tube.Material.Specular = 0.4
	b.add(tube, core.Scaling(0.6, 1, 0.6).RotateX(-math.Pi/8).Translate(-2, 0.3, 0.5))

	drum := b.truncated(geometry.NewTruncatedCylinder(0, 1, true))
	drum.Material.Color = core.NewVec3(0.2, 0.5, 0.9)
	drum.Material.Pattern = b.pattern(material.GradientPattern,
		core.NewVec3(0.2, 0.5, 0.9), core.NewVec3(0.9, 0.9, 1),
		core.Scaling(2, 1, 1).Translate(-1, 0, 0))
	b.add(drum, core.Identity())

	// Closed cone standing on its base
	spire := b.truncated(geometry.NewTruncatedCone(-1, 0, true))
	spire.Material.Color = core.NewVec3(0.3, 0.8, 0.3)
	spire.Material.Diffuse = 0.7
	spire.Material.Specular = 0.2
	b.add(spire, core.Scaling(0.6, 2, 0.6).Translate(2, 2, 0.5))

	// Open double cone (an hourglass)
	hourglass := b.truncated(geometry.NewTruncatedCone(-1, 1, false))
	hourglass.Material = clearMaterial(core.NewVec3(0.1, 0.1, 0.1), material.Glass)
	hourglass.Material.Reflective = 0.5
	b.add(hourglass, core.Scaling(0.4, 0.6, 0.4).Translate(0.2, 0.6, -1.8))

	cameraConfig := CameraConfig{
		Width:       400,
		Height:      250,
		FieldOfView: math.Pi / 3,
		From:        core.NewVec3(0, 3, -7),
		To:          core.NewVec3(0, 0.8, 0),
		Up:          core.NewVec3(0, 1, 0),
	}
	return b.build("cylinders", cameraConfig, cameraOverrides...)
}
