package core

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Transform applies m to the ray. The direction is not renormalized so that
// t values stay comparable between object and world space.
func (r Ray) Transform(m Matrix) Ray {
	return Ray{
		Origin:    m.MulPoint(r.Origin),
		Direction: m.MulVector(r.Direction),
	}
}
