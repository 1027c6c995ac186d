package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Canvas is a grid of unclamped linear colors. Pixel (0, 0) is top-left.
type Canvas struct {
	Width  int
	Height int
	pixels []core.Vec3
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// At returns the color at (x, y), or black outside the canvas
func (c *Canvas) At(x, y int) core.Vec3 {
	if !c.inBounds(x, y) {
		return core.Black
	}
	return c.pixels[y*c.Width+x]
}

// Set writes the color at (x, y). Writes outside the canvas are ignored.
// Distinct pixels may be written concurrently.
func (c *Canvas) Set(x, y int, color core.Vec3) {
	if !c.inBounds(x, y) {
		return
	}
	c.pixels[y*c.Width+x] = color
}

// Bounds returns the canvas rectangle
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// ToImage converts the whole canvas to 8-bit RGBA
func (c *Canvas) ToImage() *image.RGBA {
	return c.SubImage(c.Bounds())
}

// SubImage converts the pixels within r to an image whose origin is r.Min
func (c *Canvas) SubImage(r image.Rectangle) *image.RGBA {
	r = r.Intersect(c.Bounds())
	img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x-r.Min.X, y-r.Min.Y, ToRGBA(c.At(x, y)))
		}
	}
	return img
}

// ToRGBA clamps a linear color to 8 bits per channel
func ToRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: ColorByte(c.X),
		G: ColorByte(c.Y),
		B: ColorByte(c.Z),
		A: 255,
	}
}

// ColorByte scales a color component to 0..255, rounding and clamping
func ColorByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	scaled := math.Round(v * 255)
	return uint8(math.Max(0, math.Min(255, scaled)))
}
