package loaders

import (
	"fmt"
	"image/png"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// SavePNG encodes the canvas as an 8-bit PNG
func SavePNG(filename string, canvas *renderer.Canvas) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, canvas.ToImage()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
