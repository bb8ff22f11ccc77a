package output

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSavePNGCreatesDirectories(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(2, 1, color.NRGBA{10, 20, 30, 40})

	path := filepath.Join(t.TempDir(), "nested", "dir", "render.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}

	// Alpha survives so coverage is preserved in the file
	got := color.NRGBAModel.Convert(decoded.At(2, 1)).(color.NRGBA)
	if got != (color.NRGBA{10, 20, 30, 40}) {
		t.Errorf("Expected pixel (10,20,30,40), got %v", got)
	}
}

func TestThumbnail(t *testing.T) {
	testCases := []struct {
		name           string
		width, height  int
		maxDim         int
		expectW, expectH int
	}{
		{"landscape", 200, 100, 50, 50, 25},
		{"portrait", 60, 120, 30, 15, 30},
		{"already small", 20, 10, 64, 20, 10},
		{"disabled", 200, 100, 0, 200, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, tc.width, tc.height))
			thumb := Thumbnail(img, tc.maxDim)
			if thumb.Bounds().Dx() != tc.expectW || thumb.Bounds().Dy() != tc.expectH {
				t.Errorf("Expected %dx%d, got %dx%d", tc.expectW, tc.expectH, thumb.Bounds().Dx(), thumb.Bounds().Dy())
			}
		})
	}
}

func TestThumbnailPath(t *testing.T) {
	testCases := map[string]string{
		"render.png":          "render_thumb.png",
		"out/scene.final.png": "out/scene.final_thumb.png",
		"noext":               "noext_thumb",
	}
	for input, expected := range testCases {
		if got := ThumbnailPath(input); got != expected {
			t.Errorf("ThumbnailPath(%q) = %q, want %q", input, got, expected)
		}
	}
}
