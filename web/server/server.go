package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request limits shared by every endpoint that builds a scene
const (
	minImageSize  = 1
	maxImageSize  = 2000
	maxBounces    = 20
	minEpsilon    = 1e-9
	maxEpsilon    = 0.1
	defaultScene  = "default"
	sceneBounces  = -1 // maxBounces value that keeps the scene's own setting
	maxBandHeight = 256
)

// Server handles web requests for the raytracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string  `json:"scene"`      // Built-in scene name or scene file ID
	Width      int     `json:"width"`      // Image width (0 = scene default)
	Height     int     `json:"height"`     // Image height (0 = scene default)
	MaxBounces int     `json:"maxBounces"` // Recursion depth (-1 = scene default)
	Epsilon    float64 `json:"epsilon"`    // Surface offset (0 = default)
	BandHeight int     `json:"bandHeight"` // Rows per streamed band
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(serverLogger{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}

	sceneObj, err := scene.Create(sceneName, nil)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := renderer.DefaultConfig().Merge(sceneObj.Config)
	camera := sceneObj.CameraConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":       camera.Width,
			"height":      camera.Height,
			"fieldOfView": camera.FieldOfView,
			"maxBounces":  config.MaxBounces,
			"epsilon":     config.Epsilon,
			"bandHeight":  config.BandHeight,
			"shapeCount":  len(sceneObj.World.Objects),
		},
		"limits": map[string]interface{}{
			"width":      map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":     map[string]int{"min": minImageSize, "max": maxImageSize},
			"maxBounces": map[string]int{"min": 0, "max": maxBounces},
			"bandHeight": map[string]int{"min": 1, "max": maxBandHeight},
			"epsilon":    map[string]float64{"min": minEpsilon, "max": maxEpsilon},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// handleImage renders the whole image and returns it as PNG, or PPM with format=ppm
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request: " + err.Error()})
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "png"
	}
	if format != "png" && format != "ppm" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "format must be png or ppm"})
		return
	}

	raytracer, _, err := s.setupRaytracer(req, serverLogger{})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	canvas, _, err := raytracer.Render(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Render failed: " + err.Error()})
		return
	}

	var buf bytes.Buffer
	contentType := "image/png"
	if format == "ppm" {
		contentType = "image/x-portable-pixmap"
		err = loaders.WritePPM(&buf, canvas)
	} else {
		err = png.Encode(&buf, canvas.ToImage())
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Encoding failed: " + err.Error()})
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseCommonSceneParams parses the scene name and image size
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()
	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minImageSize, maxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minImageSize, maxImageSize); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.MaxBounces, err = parseIntParam(query, "maxBounces", sceneBounces, 0, maxBounces); err != nil {
		return nil, err
	}
	if req.Epsilon, err = parseFloatParam(query, "epsilon", 0, minEpsilon, maxEpsilon); err != nil {
		return nil, err
	}
	if req.BandHeight, err = parseIntParam(query, "bandHeight", 0, 1, maxBandHeight); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 1000*1000 && req.MaxBounces > 10 {
		log.Printf("Render warning: Large image with deep recursion may render slowly")
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if !(parsed >= min && parsed <= max) {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene at the requested size
func (s *Server) createScene(req *RenderRequest, logger core.Logger) (*scene.Scene, error) {
	return scene.Create(req.Scene, logger, scene.CameraConfig{Width: req.Width, Height: req.Height})
}

// setupRaytracer creates the scene and a raytracer configured from req
func (s *Server) setupRaytracer(req *RenderRequest, logger core.Logger) (*renderer.Raytracer, *scene.Scene, error) {
	sceneObj, err := s.createScene(req, logger)
	if err != nil {
		return nil, nil, err
	}

	raytracer := renderer.NewRaytracer(sceneObj.World, sceneObj.Camera, sceneObj.Config, logger)
	raytracer.MergeConfig(renderer.Config{Epsilon: req.Epsilon, BandHeight: req.BandHeight})
	if req.MaxBounces >= 0 {
		raytracer.SetMaxBounces(req.MaxBounces)
	}
	return raytracer, sceneObj, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// serverLogger sends library messages to the server log
type serverLogger struct{}

func (serverLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}
