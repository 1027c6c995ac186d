package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// intersectPlane intersects an object-space ray with the xz plane.
// A ray parallel to the plane misses. A coplanar ray would hit the
// infinitely thin plane everywhere; it is treated as a miss as well.
func intersectPlane(ray core.Ray) []float64 {
	if math.Abs(ray.Direction.Y) < epsilon {
		return nil
	}
	return []float64{-ray.Origin.Y / ray.Direction.Y}
}

// planeNormal is constant everywhere on the plane
func planeNormal(core.Vec3) core.Vec3 {
	return core.NewVec3(0, 1, 0)
}
