package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// intersectCube intersects an object-space ray with the cube spanning -1..1
// on every axis, treating it as three pairs of parallel slabs
func intersectCube(ray core.Ray) []float64 {
	xtMin, xtMax := checkAxis(ray.Origin.X, ray.Direction.X)
	ytMin, ytMax := checkAxis(ray.Origin.Y, ray.Direction.Y)
	ztMin, ztMax := checkAxis(ray.Origin.Z, ray.Direction.Z)

	tMin := max(xtMin, ytMin, ztMin)
	tMax := min(xtMax, ytMax, ztMax)

	if tMin > tMax || math.IsInf(tMin, 0) || math.IsInf(tMax, 0) {
		return nil
	}
	return []float64{tMin, tMax}
}

// checkAxis returns where the ray enters and leaves the slab between -1 and 1
// on one axis
func checkAxis(origin, direction float64) (float64, float64) {
	if math.Abs(direction) < epsilon {
		// parallel to the slab: inside it for all t, or never
		if origin >= -1 && origin <= 1 {
			return math.Inf(-1), math.Inf(1)
		}
		return math.Inf(1), math.Inf(-1)
	}

	tMin := (-1 - origin) / direction
	tMax := (1 - origin) / direction
	if tMin > tMax {
		tMin, tMax = tMax, tMin
	}
	return tMin, tMax
}

// cubeNormal picks the face whose axis has the largest absolute component.
// Ties on edges and corners resolve in x, y, z order.
func cubeNormal(p core.Vec3) core.Vec3 {
	absX, absY, absZ := math.Abs(p.X), math.Abs(p.Y), math.Abs(p.Z)
	maxC := max(absX, absY, absZ)

	switch maxC {
	case absX:
		return core.NewVec3(p.X, 0, 0)
	case absY:
		return core.NewVec3(0, p.Y, 0)
	default:
		return core.NewVec3(0, 0, p.Z)
	}
}
