package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Schlick approximates the Fresnel reflectance for light leaving a medium with
// index n1 and entering one with index n2. cosine is the cosine of the angle
// between the eye vector and the surface normal. Total internal reflection
// returns 1.
func Schlick(cosine, n1, n2 float64) float64 {
	if n1 > n2 {
		ratio := n1 / n2
		sin2t := ratio * ratio * (1.0 - cosine*cosine)
		if sin2t > 1.0 {
			return 1.0
		}
		cosine = math.Sqrt(1.0 - sin2t)
	}

	r0 := (n1 - n2) / (n1 + n2)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// Refract bends the eye vector through a surface using Snell's law.
// ratio is n1/n2 and cosI is eye·normal. It returns false on total internal
// reflection.
func Refract(eye, normal core.Vec3, ratio, cosI float64) (core.Vec3, bool) {
	sin2t := ratio * ratio * (1 - cosI*cosI)
	if sin2t > 1 {
		return core.Vec3{}, false
	}
	cosT := math.Sqrt(1.0 - sin2t)
	return normal.Multiply(ratio*cosI - cosT).Subtract(eye.Multiply(ratio)), true
}
