package output

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
)

// EncodePNG encodes an image as PNG bytes
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// SavePNG writes an image to path, creating parent directories as needed
func SavePNG(path string, img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// WriteFile writes encoded data to path, creating parent directories as needed
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Thumbnail scales img down to fit within maxDim x maxDim, keeping the aspect
// ratio. Images already small enough are returned unchanged.
func Thumbnail(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	return resize.Thumbnail(uint(maxDim), uint(maxDim), img, resize.Bilinear)
}

// ThumbnailPath derives the thumbnail file name for an output path,
// e.g. "out/render.png" -> "out/render_thumb.png"
func ThumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + "_thumb" + ext
}
