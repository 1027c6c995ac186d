package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// intersectCone intersects an object-space ray with the double cone
// x² + z² = y², truncated to minY < y < maxY
func intersectCone(ray core.Ray, minY, maxY float64, closed bool) []float64 {
	d, o := ray.Direction, ray.Origin

	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2*o.X*d.X - 2*o.Y*d.Y + 2*o.Z*d.Z
	c := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	inBounds := func(t float64) bool {
		y := o.Y + t*d.Y
		return minY < y && y < maxY
	}

	var ts []float64
	if math.Abs(a) < epsilon {
		if math.Abs(b) < epsilon {
			// the ray runs along the surface through the apex
			return nil
		}
		// parallel to one of the halves: a single hit on the other
		if t := -c / (2 * b); inBounds(t) {
			ts = append(ts, t)
		}
	} else {
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
			if inBounds(t) {
				ts = append(ts, t)
			}
		}
	}

	if closed {
		// the cone radius at height y is |y|
		ts = append(ts, intersectCaps(ray, minY, maxY, math.Abs)...)
	}
	return ts
}

// coneNormal returns the cap normal near the ends and the slanted body normal
// elsewhere. The apex has no defined normal and yields the zero vector.
func coneNormal(p core.Vec3, minY, maxY float64) core.Vec3 {
	dist := p.X*p.X + p.Z*p.Z

	if dist < maxY*maxY && p.Y >= maxY-epsilon {
		return core.NewVec3(0, 1, 0)
	}
	if dist < minY*minY && p.Y <= minY+epsilon {
		return core.NewVec3(0, -1, 0)
	}

	y := math.Sqrt(dist)
	if p.Y > 0 {
		y = -y
	}
	return core.NewVec3(p.X, y, p.Z)
}
