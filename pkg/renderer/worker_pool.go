package renderer

import (
	"context"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Band is a horizontal strip of rows rendered as one unit of work
type Band struct {
	ID     int             // Position of the band from the top, starting at 0
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewBands splits a width x height image into bands of at most bandHeight rows
func NewBands(width, height, bandHeight int) []Band {
	if bandHeight <= 0 {
		bandHeight = height
	}

	var bands []Band
	for y0 := 0; y0 < height; y0 += bandHeight {
		y1 := min(y0+bandHeight, height) // Don't exceed image bounds
		bands = append(bands, Band{
			ID:     len(bands),
			Bounds: image.Rect(0, y0, width, y1),
		})
	}
	return bands
}

// BandResult reports a finished band
type BandResult struct {
	Band  Band
	Stats RenderStats
}

// WorkerPool renders bands in parallel with a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run renders every band with render and returns the combined stats.
// Bands cover disjoint pixels, so render may write to shared output without
// locking. onDone, if set, is called from the calling goroutine once per
// finished band, in completion order. Cancelling ctx stops scheduling new
// bands and returns ctx's error once in-flight bands finish.
func (wp *WorkerPool) Run(ctx context.Context, bands []Band, render func(Band) RenderStats, onDone func(BandResult)) (RenderStats, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	results := make(chan BandResult, len(bands))
	waitErr := make(chan error, 1)

	go func() {
		for _, band := range bands {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results <- BandResult{Band: band, Stats: render(band)}
				return nil
			})
		}
		waitErr <- g.Wait()
		close(results)
	}()

	var total RenderStats
	for result := range results {
		total = total.Add(result.Stats)
		if onDone != nil {
			onDone(result)
		}
	}

	if err := <-waitErr; err != nil {
		return total, err
	}
	// cancellation may land after the last band was scheduled but before any ran
	if err := ctx.Err(); err != nil {
		return total, err
	}
	return total, nil
}
