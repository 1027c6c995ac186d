package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// intersectSphere intersects an object-space ray with the unit sphere
func intersectSphere(ray core.Ray) []float64 {
	// the sphere is centered at the origin, so origin - center is the origin itself
	sphereToRay := ray.Origin

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return nil
	}
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	return []float64{t1, t2}
}

// sphereNormal points from the center to the surface point
func sphereNormal(p core.Vec3) core.Vec3 {
	return p
}
