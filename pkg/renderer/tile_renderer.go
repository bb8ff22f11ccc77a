package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
)

// Camera generates one primary ray per pixel
type Camera interface {
	GetRay(i, j int) core.Ray
	Size() (width, height int)
}

// TileRenderer traces the pixels of a tile with an integrator.
// It holds no mutable state and may be shared by all workers.
type TileRenderer struct {
	camera     Camera
	integrator integrator.Integrator
	gamma      float64
}

// NewTileRenderer creates a new tile renderer with the given camera and integrator
func NewTileRenderer(camera Camera, integratorInst integrator.Integrator, gamma float64) *TileRenderer {
	if gamma <= 0 {
		gamma = 1.0
	}
	return &TileRenderer{
		camera:     camera,
		integrator: integratorInst,
		gamma:      gamma,
	}
}

// RenderTileBounds traces every pixel within bounds into img.
// Concurrent calls are safe as long as their bounds do not overlap.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, img *image.NRGBA) RenderStats {
	var stats RenderStats

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			result := tr.integrator.Trace(tr.camera.GetRay(i, j))
			img.SetNRGBA(i, j, tr.vec3ToColor(result.Color, result.Coverage))
			stats.addPixel(result.Coverage, result.Bounces)
		}
	}

	return stats
}

// vec3ToColor converts a linear color and coverage to a non-premultiplied pixel
func (tr *TileRenderer) vec3ToColor(colorVec core.Vec3, coverage float64) color.NRGBA {
	// Clamp first so gamma never sees negative values
	colorVec = colorVec.Clamp(0.0, 1.0).GammaCorrect(tr.gamma)

	return color.NRGBA{
		R: toByte(colorVec.X),
		G: toByte(colorVec.Y),
		B: toByte(colorVec.Z),
		A: toByte(coverage),
	}
}

func toByte(v float64) uint8 {
	return uint8(math.Round(255 * max(0, min(1, v))))
}
