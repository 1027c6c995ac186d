package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight is a light source with no size, located at a single point
type PointLight struct {
	Position  core.Vec3 // Location of the light in world space
	Intensity core.Vec3 // Color and brightness
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{
		Position:  position,
		Intensity: intensity,
	}
}

// DirectionFrom returns the unit vector from point toward the light and the
// distance between them
func (l *PointLight) DirectionFrom(point core.Vec3) (core.Vec3, float64) {
	v := l.Position.Subtract(point)
	distance := v.Length()
	if distance == 0 {
		return core.Vec3{}, 0
	}
	return v.Multiply(1.0 / distance), distance
}
