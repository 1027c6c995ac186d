package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// BandUpdate represents a single band update sent via SSE
type BandUpdate struct {
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this band
	BandNumber int    `json:"bandNumber"` // Completed bands so far (1-based)
	TotalBands int    `json:"totalBands"`
}

// CompleteUpdate is the final event of a successful render
type CompleteUpdate struct {
	Scene       string  `json:"scene"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	MaxBounces  int     `json:"maxBounces"`
	ShapeCount  int     `json:"shapeCount"`
	TotalPixels int     `json:"totalPixels"`
	Bands       int     `json:"bands"`
	Workers     int     `json:"workers"`
	ElapsedMs   int64   `json:"elapsedMs"`
	Luminance   float64 `json:"luminance"` // Average luminance of the finished image
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "band", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders with real-time band streaming via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Every write to w goes through one goroutine, which must finish before
	// the handler returns
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	complete, err := s.renderBands(ctx, sseEventChan, req, webLogger)

	// Flush console output ahead of the final event
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	data, err := json.Marshal(complete)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Error encoding result: %v", err))
		return
	}
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "complete", Data: string(data)})
}

// renderBands renders the request, streaming each finished band
func (s *Server) renderBands(ctx context.Context, sseEventChan chan SSEEvent, req *RenderRequest, logger core.Logger) (CompleteUpdate, error) {
	raytracer, sceneObj, err := s.setupRaytracer(req, logger)
	if err != nil {
		return CompleteUpdate{}, err
	}

	startTime := time.Now()
	canvas, stats, err := raytracer.RenderWithCallback(ctx, func(update renderer.BandUpdate) {
		s.handleBandUpdate(ctx, sseEventChan, update)
	})
	if err != nil {
		return CompleteUpdate{}, fmt.Errorf("Rendering failed: %w", err)
	}

	return CompleteUpdate{
		Scene:       sceneObj.Name,
		Width:       canvas.Width,
		Height:      canvas.Height,
		MaxBounces:  raytracer.Config().MaxBounces,
		ShapeCount:  len(sceneObj.World.Objects),
		TotalPixels: stats.TotalPixels,
		Bands:       stats.Bands,
		Workers:     stats.Workers,
		ElapsedMs:   time.Since(startTime).Milliseconds(),
		Luminance:   renderer.CalculateAverageLuminance(canvas.ToImage()),
	}, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents writes all SSE events from a single goroutine
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for event := range sseEventChan {
		// Keep draining after a disconnect so senders never block
		if ctx.Err() != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}
		s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "console", Data: string(data)})
	}
}

// handleBandUpdate encodes and sends a finished band
func (s *Server) handleBandUpdate(ctx context.Context, sseEventChan chan SSEEvent, update renderer.BandUpdate) {
	if ctx.Err() != nil {
		return
	}

	bandData, err := s.imageToBase64PNG(update.Image)
	if err != nil {
		log.Printf("Error encoding band %d: %v", update.BandNumber, err)
		return
	}

	data, err := json.Marshal(BandUpdate{
		X:          update.Bounds.Min.X,
		Y:          update.Bounds.Min.Y,
		Width:      update.Bounds.Dx(),
		Height:     update.Bounds.Dy(),
		ImageData:  bandData,
		BandNumber: update.BandNumber,
		TotalBands: update.TotalBands,
	})
	if err != nil {
		log.Printf("Error marshaling band update: %v", err)
		return
	}

	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "band", Data: string(data)})
}

// sendEvent queues an event unless the client has gone
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel. SSE data lines cannot
// contain newlines, which joined errors do.
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	message = strings.ReplaceAll(message, "\n", "; ")
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: message})
}
