package main

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/pkg/output"
)

type silentLogger struct{}

func (silentLogger) Printf(format string, args ...interface{}) {}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		opts        options
		expectError bool
	}{
		{"default scene", options{sceneName: "default", bounces: -1}, false},
		{"mirror hall", options{sceneName: "mirror-hall", bounces: -1}, false},
		{"sphere grid", options{sceneName: "sphere-grid", bounces: -1}, false},
		{"size override", options{sceneName: "default", width: 32, height: 24, bounces: 2}, false},
		{"unknown scene", options{sceneName: "nonexistent", bounces: -1}, true},
		{"missing json file", options{sceneName: "scenes/nonexistent.json", bounces: -1}, true},
		{"negative size", options{sceneName: "default", width: -1, bounces: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.opts)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %+v, but got none", tt.opts)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if tt.opts.width > 0 && s.CameraConfig.Width != tt.opts.width {
				t.Errorf("Expected width %d, got %d", tt.opts.width, s.CameraConfig.Width)
			}
			if tt.opts.bounces >= 0 && s.BounceLimit != tt.opts.bounces {
				t.Errorf("Expected bounce limit %d, got %d", tt.opts.bounces, s.BounceLimit)
			}
			if s.CameraConfig.Width <= 0 || s.CameraConfig.Height <= 0 {
				t.Errorf("Scene camera size should be positive, got %dx%d", s.CameraConfig.Width, s.CameraConfig.Height)
			}
		})
	}
}

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()

	// Backdrop larger than the render so it is centered
	bg := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	for i := 3; i < len(bg.Pix); i += 4 {
		bg.Pix[i] = 255
	}
	bgPath := filepath.Join(dir, "bg.png")
	if err := output.SavePNG(bgPath, bg); err != nil {
		t.Fatalf("Failed to write background: %v", err)
	}

	outPath := filepath.Join(dir, "out", "render.png")
	opts := options{
		sceneName:  "default",
		width:      20,
		height:     12,
		bounces:    2,
		workers:    2,
		gamma:      1.0,
		out:        outPath,
		background: bgPath,
		opacity:    1.0,
		thumb:      10,
	}

	if err := run(context.Background(), opts, config.Default(), silentLogger{}); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	for _, path := range []string{outPath, filepath.Join(dir, "out", "render_thumb.png")} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to exist: %v", path, err)
		}
	}
}

func TestRunPublishWithoutBucket(t *testing.T) {
	opts := options{
		sceneName: "default",
		width:     8,
		height:    8,
		bounces:   -1,
		workers:   1,
		gamma:     1.0,
		out:       filepath.Join(t.TempDir(), "render.png"),
		publish:   true,
	}
	if err := run(context.Background(), opts, config.Default(), silentLogger{}); err == nil {
		t.Error("Expected publish to fail without a configured bucket")
	}
}

func TestCenterOffset(t *testing.T) {
	got := centerOffset(image.Rect(0, 0, 40, 30), image.Rect(0, 0, 20, 12))
	if got != image.Pt(10, 9) {
		t.Errorf("Expected (10,9), got %v", got)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"default":             "default",
		"scenes/mirrors.json": "mirrors",
		"":                    "scene",
	}
	for input, expected := range tests {
		if got := sanitizeName(input); got != expected {
			t.Errorf("sanitizeName(%q) = %q, want %q", input, got, expected)
		}
	}
}

