package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Surface is anything that can be shaded: it exposes its material and can
// sample its pattern at a world-space point
type Surface interface {
	SurfaceMaterial() Material
	PatternAt(worldPoint core.Vec3) (core.Vec3, bool)
}

// Lighting evaluates the Phong reflection model at position.
// The result is not clamped; components above 1 are resolved when the image
// is encoded.
func Lighting(surface Surface, light *lights.PointLight, position, eye, normal core.Vec3, inShadow bool) core.Vec3 {
	if light == nil {
		return core.Black
	}
	m := surface.SurfaceMaterial()

	color := m.Color
	if m.Pattern != nil {
		if sampled, ok := surface.PatternAt(position); ok {
			color = sampled
		}
	}

	effective := color.MultiplyVec(light.Intensity)
	ambient := effective.Multiply(m.Ambient)
	if inShadow {
		return ambient
	}

	lightDir, _ := light.DirectionFrom(position)
	lightDotNormal := lightDir.Dot(normal)
	if lightDotNormal < 0 {
		// light is on the other side of the surface
		return ambient
	}

	diffuse := effective.Multiply(m.Diffuse * lightDotNormal)

	specular := core.Black
	reflectDir := lightDir.Negate().Reflect(normal)
	if reflectDotEye := reflectDir.Dot(eye); reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity.Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular)
}
