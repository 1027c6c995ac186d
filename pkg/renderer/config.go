package renderer

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Config contains rendering configuration
type Config struct {
	MaxBounces int     // Reflection and refraction depth per primary ray
	NumWorkers int     // Number of parallel workers (0 = use CPU count)
	BandHeight int     // Rows per unit of work
	Epsilon    float64 // Surface offset for secondary rays, in world units
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxBounces: 5,
		NumWorkers: 0, // Auto-detect CPU count
		BandHeight: 16,
		Epsilon:    core.Epsilon,
	}
}

// Merge returns c with every non-zero field of override applied
func (c Config) Merge(override Config) Config {
	if override.MaxBounces != 0 {
		c.MaxBounces = override.MaxBounces
	}
	if override.NumWorkers != 0 {
		c.NumWorkers = override.NumWorkers
	}
	if override.BandHeight != 0 {
		c.BandHeight = override.BandHeight
	}
	if override.Epsilon != 0 {
		c.Epsilon = override.Epsilon
	}
	return c
}

// Validate rejects settings the renderer cannot work with
func (c Config) Validate() error {
	if c.MaxBounces < 0 {
		return fmt.Errorf("max bounces must not be negative, got %d", c.MaxBounces)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	if c.BandHeight <= 0 {
		return fmt.Errorf("band height must be positive, got %d", c.BandHeight)
	}
	if !(c.Epsilon > 0) {
		return fmt.Errorf("epsilon must be positive, got %g", c.Epsilon)
	}
	return nil
}
