package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// intersectCylinder intersects an object-space ray with a radius-1 cylinder
// around the y axis, truncated to minY < y < maxY
func intersectCylinder(ray core.Ray, minY, maxY float64, closed bool) []float64 {
	d, o := ray.Direction, ray.Origin
	var ts []float64

	a := d.X*d.X + d.Z*d.Z
	// a ray parallel to the y axis can only hit the caps
	if math.Abs(a) >= epsilon {
		b := 2*o.X*d.X + 2*o.Z*d.Z
		c := o.X*o.X + o.Z*o.Z - 1

		discriminant := b*b - 4*a*c
		if discriminant < 0 {
			return nil
		}

		sqrtD := math.Sqrt(discriminant)
		t0 := (-b - sqrtD) / (2 * a)
		t1 := (-b + sqrtD) / (2 * a)
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		for _, t := range [2]float64{t0, t1} {
			y := o.Y + t*d.Y
			if minY < y && y < maxY {
				ts = append(ts, t)
			}
		}
	}

	if closed {
		ts = append(ts, intersectCaps(ray, minY, maxY, func(float64) float64 { return 1 })...)
	}
	return ts
}

// intersectCaps tests the planes y=minY and y=maxY, keeping hits that fall
// inside the cap disc. radius reports the disc radius at a given cap height.
func intersectCaps(ray core.Ray, minY, maxY float64, radius func(y float64) float64) []float64 {
	if math.Abs(ray.Direction.Y) < epsilon {
		return nil
	}

	var ts []float64
	for _, y := range [2]float64{minY, maxY} {
		if math.IsInf(y, 0) {
			continue
		}
		t := (y - ray.Origin.Y) / ray.Direction.Y
		if withinCap(ray, t, radius(y)) {
			ts = append(ts, t)
		}
	}
	return ts
}

// withinCap checks whether the ray at t lies within radius of the y axis
func withinCap(ray core.Ray, t, radius float64) bool {
	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	return x*x+z*z <= radius*radius
}

// cylinderNormal returns the cap normal near the ends and the radial normal
// on the body
func cylinderNormal(p core.Vec3, minY, maxY float64) core.Vec3 {
	dist := p.X*p.X + p.Z*p.Z

	if dist < 1 && p.Y >= maxY-epsilon {
		return core.NewVec3(0, 1, 0)
	}
	if dist < 1 && p.Y <= minY+epsilon {
		return core.NewVec3(0, -1, 0)
	}
	return core.NewVec3(p.X, 0, p.Z)
}
