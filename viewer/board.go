package main

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// board accumulates finished tiles into a premultiplied frame for display
type board struct {
	frame      *image.RGBA
	tilesDone  int
	totalTiles int
	dirty      bool
}

func newBoard(width, height, totalTiles int) *board {
	return &board{
		frame:      image.NewRGBA(image.Rect(0, 0, width, height)),
		totalTiles: totalTiles,
	}
}

// apply copies a finished tile into place. Uncovered pixels stay transparent.
func (b *board) apply(tile renderer.TileCompletionResult) {
	xdraw.Draw(b.frame, tile.Bounds, tile.TileImage, tile.TileImage.Bounds().Min, xdraw.Src)
	b.tilesDone++
	b.dirty = true
}

// complete reports whether every tile has arrived
func (b *board) complete() bool {
	return b.tilesDone >= b.totalTiles
}

// takeDirty reports whether the frame changed since the last call
func (b *board) takeDirty() bool {
	dirty := b.dirty
	b.dirty = false
	return dirty
}
