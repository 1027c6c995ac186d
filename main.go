package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneType string
	width     int
	height    int
	bounces   int // Negative keeps the scene's setting
	workers   int
	epsilon   float64
	format    string
	out       string
}

func main() {
	var opts options
	flag.StringVar(&opts.sceneType, "scene", "default", "Built-in scene name, scene file name in scenes/, or path to a .json scene")
	flag.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = scene default)")
	flag.IntVar(&opts.bounces, "bounces", -1, "Maximum reflection/refraction depth (-1 = scene default)")
	flag.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	flag.Float64Var(&opts.epsilon, "epsilon", 0, "Surface offset for secondary rays (0 = default)")
	flag.StringVar(&opts.format, "format", "png", "Output format: 'png' or 'ppm'")
	flag.StringVar(&opts.out, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	fmt.Println("Starting Whitted Raytracer...")

	if err := run(context.Background(), opts, renderer.NewDefaultLogger()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	response, err := scene.ListAllScenes(nil)
	if err != nil {
		fmt.Printf("  (failed to list scenes: %v)\n", err)
	}
	for _, group := range response.Groups {
		fmt.Printf("  %s:\n", group.Name)
		for _, info := range group.Scenes {
			name := info.ID
			if info.Type == "file" {
				name = strings.TrimSuffix(filepath.Base(info.FilePath), filepath.Ext(info.FilePath))
			}
			fmt.Printf("    %-14s %s\n", name, info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
}

// run renders the selected scene and writes the image
func run(ctx context.Context, opts options, logger core.Logger) error {
	if opts.format != "png" && opts.format != "ppm" {
		return fmt.Errorf("unknown format %q, expected png or ppm", opts.format)
	}

	selectedScene, err := createScene(opts.sceneType, logger, scene.CameraConfig{Width: opts.width, Height: opts.height})
	if err != nil {
		return err
	}
	fmt.Printf("Using %s scene (%dx%d)...\n", selectedScene.Name, selectedScene.Camera.HSize, selectedScene.Camera.VSize)

	raytracer := renderer.NewRaytracer(selectedScene.World, selectedScene.Camera, selectedScene.Config, logger)
	raytracer.MergeConfig(renderer.Config{NumWorkers: opts.workers, Epsilon: opts.epsilon})
	if opts.bounces >= 0 {
		raytracer.SetMaxBounces(opts.bounces)
	}

	canvas, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	fmt.Printf("Render completed in %v (%.0f pixels/s)\n", stats.Elapsed, stats.PixelsPerSecond())

	filename := opts.out
	if filename == "" {
		outputDir := createOutputDir(opts.sceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, opts.format))
	}

	if opts.format == "ppm" {
		err = loaders.SavePPM(filename, canvas)
	} else {
		err = loaders.SavePNG(filename, canvas)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene resolves a built-in scene, a scene file in scenes/ by name, or a
// path to a scene file
func createScene(sceneType string, logger core.Logger, cameraOverrides ...scene.CameraConfig) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, errors.New("no scene given")
	}

	s, err := scene.Create(sceneType, logger, cameraOverrides...)
	if !errors.Is(err, scene.ErrUnknownScene) {
		return s, err
	}

	if path, ok := findSceneFile(sceneType); ok {
		return scene.LoadFile(path, logger, cameraOverrides...)
	}
	return nil, err
}

// findSceneFile looks for scenes/<name>.json
func findSceneFile(name string) (string, bool) {
	for _, dir := range []string{"scenes", "../scenes"} {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// createOutputDir returns output/<base> where base is the built-in scene name
// or the scene file name without extension
func createOutputDir(sceneType string) string {
	base := sceneType
	if strings.EqualFold(filepath.Ext(sceneType), ".json") {
		base = strings.TrimSuffix(filepath.Base(sceneType), filepath.Ext(sceneType))
	}
	if base == "" {
		base = "scene"
	}
	return filepath.Join("output", base)
}
