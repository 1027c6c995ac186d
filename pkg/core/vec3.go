package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the tolerance used when comparing floating point values
const Epsilon = 1e-5

// Vec3 represents a 3D point, vector or RGB color
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Black is the zero color
var Black = Vec3{0, 0, 0}

// White is full intensity on every channel
var White = Vec3{1, 1, 1}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// Normalize returns a unit vector in the same direction
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{0, 0, 0}
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// MultiplyVec returns component-wise multiplication of two vectors.
// For colors this is the Hadamard (Schur) product.
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{
		X: -v.X,
		Y: -v.Y,
		Z: -v.Z,
	}
}

// Reflect reflects the incoming vector around the normal
func (v Vec3) Reflect(normal Vec3) Vec3 {
	return v.Subtract(normal.Multiply(2 * v.Dot(normal)))
}

// Lerp linearly interpolates from v to other by fraction t
func (v Vec3) Lerp(other Vec3, t float64) Vec3 {
	return v.Add(other.Subtract(v).Multiply(t))
}

// Luminance returns the perceptual luminance of an RGB color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (v Vec3) Luminance() float64 {
	return 0.299*v.X + 0.587*v.Y + 0.114*v.Z
}

// Equals reports whether two vectors are equal within Epsilon
func (v Vec3) Equals(other Vec3) bool {
	return v.ApproxEquals(other, Epsilon)
}

// ApproxEquals reports whether every component differs by at most tolerance
func (v Vec3) ApproxEquals(other Vec3, tolerance float64) bool {
	return scalar.EqualWithinAbs(v.X, other.X, tolerance) &&
		scalar.EqualWithinAbs(v.Y, other.Y, tolerance) &&
		scalar.EqualWithinAbs(v.Z, other.Z, tolerance)
}

// String formats the vector with five decimals
func (v Vec3) String() string {
	return fmt.Sprintf("(%.5f, %.5f, %.5f)", v.X, v.Y, v.Z)
}

// FloatEquals reports whether a and b are equal within Epsilon
func FloatEquals(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, Epsilon)
}
