package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewMirrorsScene places a sphere between two facing mirrors, so the recursion
// depth shows as the number of visible reflections
func NewMirrorsScene(cameraOverrides ...CameraConfig) (*Scene, error) {
	b := newBuilder(lights.NewPointLight(core.NewVec3(0, 6, -4), core.White))

	floor := geometry.NewPlane()
	floor.Material.Specular = 0
	floor.Material.Pattern = b.pattern(material.CheckerPattern,
		core.NewVec3(0.95, 0.95, 0.95), core.NewVec3(0.3, 0.3, 0.35),
		core.Identity())
	b.add(floor, core.Identity())

	for _, x := range []float64{-3, 3} {
		mirror := geometry.NewPlane()
		mirror.Material.Color = core.NewVec3(0.05, 0.05, 0.05)
		mirror.Material.Diffuse = 0.1
		mirror.Material.Ambient = 0
		mirror.Material.Specular = 1
		mirror.Material.Shininess = 300
		mirror.Material.Reflective = 0.95
		b.add(mirror, core.RotationZ(math.Pi/2).Translate(x, 0, 0))
	}

	ball := geometry.NewSphere()
	ball.Material.Color = core.NewVec3(0.9, 0.2, 0.3)
	ball.Material.Diffuse = 0.8
	ball.Material.Specular = 0.5
	b.add(ball, core.Translation(0, 1, 0))

	cameraConfig := CameraConfig{
		Width:       320,
		Height:      240,
		FieldOfView: math.Pi / 2.5,
		From:        core.NewVec3(-1.2, 1.8, -6),
		To:          core.NewVec3(0.5, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
	}
	return b.build("mirrors", cameraConfig, cameraOverrides...)
}
