package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// NewDefaultScene renders the two-sphere default world from straight ahead
func NewDefaultScene(cameraOverrides ...CameraConfig) (*Scene, error) {
	b := &builder{world: world.NewDefaultWorld()}

	cameraConfig := CameraConfig{
		Width:       200,
		Height:      200,
		FieldOfView: math.Pi / 3,
		From:        core.NewVec3(0, 0, -5),
		To:          core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
	}
	return b.build("default", cameraConfig, cameraOverrides...)
}
