package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"spheres scene", "spheres", false},
		{"transparent scene", "transparent", false},
		{"cubes scene", "cubes", false},
		{"cover scene", "cover", false},
		{"cylinders scene", "cylinders", false},
		{"mirrors scene", "mirrors", false},

		// Scene files (by name)
		{"glass-spheres file", "glass-spheres", false},
		{"pillars file", "pillars", false},

		// Scene files (by path)
		{"direct file path", "scenes/pillars.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid file path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType, discardLogger{})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, scene)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene.Camera.HSize <= 0 || scene.Camera.VSize <= 0 {
				t.Errorf("Scene camera size should be positive, got %dx%d", scene.Camera.HSize, scene.Camera.VSize)
			}
			if len(scene.World.Objects) == 0 {
				t.Errorf("Scene '%s' has no objects", tt.sceneType)
			}
		})
	}
}

func TestCreateOutputDir(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		expected  string
	}{
		{"built-in scene", "default", filepath.Join("output", "default")},
		{"scene file by name", "pillars", filepath.Join("output", "pillars")},
		{"scene file path", "scenes/pillars.json", filepath.Join("output", "pillars")},
		{"nested path", "scenes/subdir/my-scene.json", filepath.Join("output", "my-scene")},
		{"empty", "", filepath.Join("output", "scene")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputDir := createOutputDir(tt.sceneType)
			if outputDir != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, outputDir)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		format string
		header string
	}{
		{"png", "\x89PNG"},
		{"ppm", "P3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out := filepath.Join(dir, "render."+tt.format)
			opts := options{
				sceneType: "default",
				width:     16,
				height:    12,
				bounces:   0,
				workers:   2,
				format:    tt.format,
				out:       out,
			}
			if err := run(context.Background(), opts, discardLogger{}); err != nil {
				t.Fatalf("run failed: %v", err)
			}

			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("Failed to read output: %v", err)
			}
			if !strings.HasPrefix(string(data), tt.header) {
				t.Errorf("Expected output to start with %q", tt.header)
			}
			if tt.format == "png" {
				f, err := os.Open(out)
				if err != nil {
					t.Fatalf("Failed to open output: %v", err)
				}
				defer f.Close()
				img, err := png.Decode(f)
				if err != nil {
					t.Fatalf("Failed to decode PNG: %v", err)
				}
				if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
					t.Errorf("Expected 16x12 image, got %dx%d", b.Dx(), b.Dy())
				}
			}
		})
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	err := run(context.Background(), options{sceneType: "default", format: "gif"}, discardLogger{})
	if err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := options{
		sceneType: "default",
		width:     64,
		height:    64,
		bounces:   -1,
		format:    "png",
		out:       filepath.Join(t.TempDir(), "never.png"),
	}
	if err := run(ctx, opts, discardLogger{}); err == nil {
		t.Error("Expected error for a cancelled render")
	}
}
