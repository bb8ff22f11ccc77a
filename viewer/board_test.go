package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

func TestBoardApply(t *testing.T) {
	b := newBoard(4, 2, 2)

	tile := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	tile.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	tile.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0})

	b.apply(renderer.TileCompletionResult{Bounds: image.Rect(2, 0, 4, 2), TileImage: tile})

	if got := b.frame.RGBAAt(2, 0); got != (color.RGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("Expected opaque tile pixel copied, got %v", got)
	}
	if got := b.frame.RGBAAt(3, 0); got.A != 0 || got.R != 0 {
		t.Errorf("Expected uncovered pixel to stay transparent, got %v", got)
	}
	if got := b.frame.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Errorf("Pixel outside the tile changed: %v", got)
	}

	if !b.takeDirty() {
		t.Error("Expected dirty after apply")
	}
	if b.takeDirty() {
		t.Error("Expected dirty flag cleared")
	}
	if b.complete() {
		t.Error("Board should not be complete after 1 of 2 tiles")
	}

	b.apply(renderer.TileCompletionResult{Bounds: image.Rect(0, 0, 2, 2), TileImage: tile})
	if !b.complete() {
		t.Error("Board should be complete after 2 of 2 tiles")
	}
}
