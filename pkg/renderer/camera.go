package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrSingularCameraTransform is returned when the view transform has no inverse
var ErrSingularCameraTransform = errors.New("camera transform is not invertible")

// Camera maps a canvas of hsize x vsize pixels onto a view plane one unit in
// front of the eye. The eye looks down -Z in camera space; the view transform
// orients it in the world.
type Camera struct {
	HSize       int     // Canvas width in pixels
	VSize       int     // Canvas height in pixels
	FieldOfView float64 // Horizontal angle when HSize >= VSize, vertical otherwise, in radians

	transform  core.Matrix
	inverse    core.Matrix
	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

// NewCamera creates a camera with an identity view transform
func NewCamera(hsize, vsize int, fieldOfView float64) (*Camera, error) {
	if hsize <= 0 || vsize <= 0 {
		return nil, fmt.Errorf("camera size must be positive, got %dx%d", hsize, vsize)
	}
	if !(fieldOfView > 0 && fieldOfView < math.Pi) {
		return nil, fmt.Errorf("field of view must be between 0 and pi, got %f", fieldOfView)
	}

	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
		transform:   core.Identity(),
		inverse:     core.Identity(),
	}

	// the view plane is one unit away, so half its size is tan(fov/2)
	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)

	return c, nil
}

// SetTransform sets the view transform. A singular transform is rejected and
// the previous transform is kept.
func (c *Camera) SetTransform(m core.Matrix) error {
	inverse, ok := m.Inverse()
	if !ok {
		return ErrSingularCameraTransform
	}
	c.transform = m
	c.inverse = inverse
	return nil
}

// Transform returns the view transform
func (c *Camera) Transform() core.Matrix {
	return c.transform
}

// PixelSize returns the width of one pixel on the view plane
func (c *Camera) PixelSize() float64 {
	return c.pixelSize
}

// HalfWidth returns half the width of the view plane
func (c *Camera) HalfWidth() float64 {
	return c.halfWidth
}

// HalfHeight returns half the height of the view plane
func (c *Camera) HalfHeight() float64 {
	return c.halfHeight
}

// RayForPixel returns the world-space ray from the eye through the center of
// pixel (px, py). Pixel (0, 0) is the top-left corner of the canvas.
func (c *Camera) RayForPixel(px, py int) core.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// camera looks toward -z, so +x is to the left
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.MulPoint(core.NewVec3(worldX, worldY, -1))
	origin := c.inverse.MulPoint(core.NewVec3(0, 0, 0))
	direction := pixel.Subtract(origin).Normalize()

	return core.NewRay(origin, direction)
}
