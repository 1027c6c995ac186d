package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	PrimaryRays int           // Camera rays cast, one per pixel
	Bands       int           // Bands completed
	Workers     int           // Workers used
	Elapsed     time.Duration // Wall time of the render
}

// Add combines the counters of two partial results
func (s RenderStats) Add(other RenderStats) RenderStats {
	s.TotalPixels += other.TotalPixels
	s.PrimaryRays += other.PrimaryRays
	s.Bands += other.Bands
	return s
}

// PixelsPerSecond returns the render throughput
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Elapsed.Seconds()
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels in %d bands on %d workers in %v (%.0f pixels/s)",
		s.TotalPixels, s.Bands, s.Workers, s.Elapsed.Round(time.Millisecond), s.PixelsPerSecond())
}

// CalculateAverageLuminance returns the mean luminance of an image, with each
// channel mapped to 0..1
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := core.NewVec3(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff)
			total += c.Luminance()
		}
	}
	return total / float64(pixels)
}
