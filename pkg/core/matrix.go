package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

// singularThreshold bounds |det| relative to the product of the column
// lengths, the largest value the determinant can take for those columns.
// Uniform scale does not change the ratio, so tiny or huge objects stay
// invertible.
const singularThreshold = 1e-12

// Matrix is a 4x4 affine transformation acting on points (w=1) and vectors (w=0)
type Matrix struct {
	m mgl64.Mat4 // column-major
}

// Identity returns the identity transformation
func Identity() Matrix {
	return Matrix{m: mgl64.Ident4()}
}

// NewMatrix builds a matrix from rows, as it would be written on paper
func NewMatrix(rows [4][4]float64) Matrix {
	var m mgl64.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[c*4+r] = rows[r][c]
		}
	}
	return Matrix{m: m}
}

// Translation returns a matrix that moves points by (x, y, z)
func Translation(x, y, z float64) Matrix {
	return Matrix{m: mgl64.Translate3D(x, y, z)}
}

// Scaling returns a matrix that scales along each axis
func Scaling(x, y, z float64) Matrix {
	return Matrix{m: mgl64.Scale3D(x, y, z)}
}

// RotationX returns a rotation of radians around the X axis
func RotationX(radians float64) Matrix {
	return Matrix{m: mgl64.HomogRotate3DX(radians)}
}

// RotationY returns a rotation of radians around the Y axis
func RotationY(radians float64) Matrix {
	return Matrix{m: mgl64.HomogRotate3DY(radians)}
}

// RotationZ returns a rotation of radians around the Z axis
func RotationZ(radians float64) Matrix {
	return Matrix{m: mgl64.HomogRotate3DZ(radians)}
}

// Shearing moves each component in proportion to the other two.
// xy is the amount x moves in proportion to y, and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix {
	return NewMatrix([4][4]float64{
		{1, xy, xz, 0},
		{yx, 1, yz, 0},
		{zx, zy, 1, 0},
		{0, 0, 0, 1},
	})
}

// ViewTransform orients the world relative to an eye at from looking toward to.
// up only needs to be approximately up; it is not required to be orthogonal
// to the view direction.
func ViewTransform(from, to, up Vec3) Matrix {
	forward := to.Subtract(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)
	orientation := NewMatrix([4][4]float64{
		{left.X, left.Y, left.Z, 0},
		{trueUp.X, trueUp.Y, trueUp.Z, 0},
		{-forward.X, -forward.Y, -forward.Z, 0},
		{0, 0, 0, 1},
	})
	return orientation.Mul(Translation(-from.X, -from.Y, -from.Z))
}

// Mul returns m * other, so other is applied first
func (m Matrix) Mul(other Matrix) Matrix {
	return Matrix{m: m.m.Mul4(other.m)}
}

// Translate applies a translation after m
func (m Matrix) Translate(x, y, z float64) Matrix {
	return Translation(x, y, z).Mul(m)
}

// Scale applies a scaling after m
func (m Matrix) Scale(x, y, z float64) Matrix {
	return Scaling(x, y, z).Mul(m)
}

// RotateX applies a rotation around X after m
func (m Matrix) RotateX(radians float64) Matrix {
	return RotationX(radians).Mul(m)
}

// RotateY applies a rotation around Y after m
func (m Matrix) RotateY(radians float64) Matrix {
	return RotationY(radians).Mul(m)
}

// RotateZ applies a rotation around Z after m
func (m Matrix) RotateZ(radians float64) Matrix {
	return RotationZ(radians).Mul(m)
}

// Shear applies a shearing after m
func (m Matrix) Shear(xy, xz, yx, yz, zx, zy float64) Matrix {
	return Shearing(xy, xz, yx, yz, zx, zy).Mul(m)
}

// Transpose returns the transposed matrix
func (m Matrix) Transpose() Matrix {
	return Matrix{m: m.m.Transpose()}
}

// Determinant returns the determinant of the matrix
func (m Matrix) Determinant() float64 {
	return m.m.Det()
}

// Invertible reports whether the matrix has an inverse
func (m Matrix) Invertible() bool {
	det := m.m.Det()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return false
	}
	bound := 1.0
	for c := 0; c < 4; c++ {
		bound *= m.m.Col(c).Len()
	}
	return math.Abs(det) >= singularThreshold*bound
}

// Inverse returns the inverse matrix, or false if m is singular
func (m Matrix) Inverse() (Matrix, bool) {
	if !m.Invertible() {
		return Matrix{}, false
	}
	inv := m.m.Inv()
	if inv == (mgl64.Mat4{}) {
		// mgl64 gives up on determinants it considers zero
		return Matrix{}, false
	}
	return Matrix{m: inv}, true
}

// At returns the element at row, col
func (m Matrix) At(row, col int) float64 {
	return m.m.At(row, col)
}

// MulPoint transforms a point (w=1)
func (m Matrix) MulPoint(p Vec3) Vec3 {
	v := m.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return Vec3{v[0], v[1], v[2]}
}

// MulVector transforms a direction (w=0), ignoring translation
func (m Matrix) MulVector(d Vec3) Vec3 {
	v := m.m.Mul4x1(mgl64.Vec4{d.X, d.Y, d.Z, 0})
	return Vec3{v[0], v[1], v[2]}
}

// ApproxEquals compares every element within an absolute tolerance
func (m Matrix) ApproxEquals(other Matrix, tolerance float64) bool {
	for i := range m.m {
		if !scalar.EqualWithinAbs(m.m[i], other.m[i], tolerance) {
			return false
		}
	}
	return true
}

// IsIdentity reports whether m is the identity within Epsilon
func (m Matrix) IsIdentity() bool {
	return m.ApproxEquals(Identity(), Epsilon)
}
