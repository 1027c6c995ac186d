package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// Raytracer renders a world through a camera
type Raytracer struct {
	world  *world.World
	camera *Camera
	config Config
	logger core.Logger
}

// BandUpdate carries the pixels of a finished band
type BandUpdate struct {
	Bounds     image.Rectangle // Band position in the full image
	Image      *image.RGBA     // Band pixels, origin at Bounds.Min
	BandNumber int             // Completed bands so far, including this one (1-based)
	TotalBands int
}

// NewRaytracer creates a new raytracer. Zero fields of config fall back to
// DefaultConfig, except Epsilon which falls back to w.Epsilon when set.
// w is never modified. A nil logger discards messages.
func NewRaytracer(w *world.World, camera *Camera, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = discardLogger{}
	}
	base := DefaultConfig()
	if w.Epsilon > 0 {
		base.Epsilon = w.Epsilon
	}
	rt := &Raytracer{
		camera: camera,
		config: base.Merge(config),
		logger: logger,
	}
	rt.world = w.WithEpsilon(rt.config.Epsilon)
	return rt
}

// Config returns the effective configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// World returns the world as the raytracer sees it, with the effective epsilon
func (rt *Raytracer) World() *world.World {
	return rt.world
}

// MergeConfig applies the non-zero fields of override
func (rt *Raytracer) MergeConfig(override Config) {
	rt.config = rt.config.Merge(override)
	rt.world = rt.world.WithEpsilon(rt.config.Epsilon)
}

// SetMaxBounces sets the recursion depth, including zero
func (rt *Raytracer) SetMaxBounces(bounces int) {
	rt.config.MaxBounces = bounces
}

// PixelColor traces the primary ray through pixel (x, y)
func (rt *Raytracer) PixelColor(x, y int) core.Vec3 {
	ray := rt.camera.RayForPixel(x, y)
	return rt.world.ColorAt(ray, rt.config.MaxBounces)
}

// renderBand writes every pixel within band to canvas
func (rt *Raytracer) renderBand(band Band, canvas *Canvas) RenderStats {
	b := band.Bounds
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			canvas.Set(x, y, rt.PixelColor(x, y))
		}
	}
	pixels := b.Dx() * b.Dy()
	return RenderStats{TotalPixels: pixels, PrimaryRays: pixels, Bands: 1}
}

// Render renders the full image
func (rt *Raytracer) Render(ctx context.Context) (*Canvas, RenderStats, error) {
	return rt.RenderWithCallback(ctx, nil)
}

// RenderWithCallback renders the full image, calling onBand from the calling
// goroutine as each band completes
func (rt *Raytracer) RenderWithCallback(ctx context.Context, onBand func(BandUpdate)) (*Canvas, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid render config: %w", err)
	}

	width, height := rt.camera.HSize, rt.camera.VSize
	canvas := NewCanvas(width, height)
	bands := NewBands(width, height, rt.config.BandHeight)
	pool := NewWorkerPool(rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d with %d bounces (%d bands, %d workers)...\n",
		width, height, rt.config.MaxBounces, len(bands), pool.NumWorkers())

	startTime := time.Now()
	completed := 0
	var onDone func(BandResult)
	if onBand != nil {
		onDone = func(result BandResult) {
			completed++
			onBand(BandUpdate{
				Bounds:     result.Band.Bounds,
				Image:      canvas.SubImage(result.Band.Bounds),
				BandNumber: completed,
				TotalBands: len(bands),
			})
		}
	}

	stats, err := pool.Run(ctx, bands, func(band Band) RenderStats {
		return rt.renderBand(band, canvas)
	}, onDone)
	stats.Workers = pool.NumWorkers()
	stats.Elapsed = time.Since(startTime)

	if err != nil {
		rt.logger.Printf("Rendering stopped after %d of %d bands: %v\n", stats.Bands, len(bands), err)
		return nil, stats, err
	}

	rt.logger.Printf("Render completed: %s\n", stats)
	return canvas, stats, nil
}

// Render renders w through the camera with the default configuration and w's epsilon
func (c *Camera) Render(w *world.World) (*Canvas, error) {
	canvas, _, err := NewRaytracer(w, c, Config{}, nil).Render(context.Background())
	return canvas, err
}
