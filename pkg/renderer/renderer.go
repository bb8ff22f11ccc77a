package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains configuration for tile rendering
type Config struct {
	TileSize   int     // Size of each tile (64x64 recommended)
	NumWorkers int     // Number of parallel workers (0 = use CPU count)
	Gamma      float64 // Output gamma; 1.0 writes linear values
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		NumWorkers: 0,
		Gamma:      1.0,
	}
}

// Renderer traces one primary ray per pixel across a grid of tiles
type Renderer struct {
	camera        Camera
	width, height int
	config        Config
	tiles         []*Tile
	tileRenderer  *TileRenderer
	logger        core.Logger
}

// NewRenderer creates a renderer for the camera's image size
func NewRenderer(camera Camera, integratorInst integrator.Integrator, config Config, logger core.Logger) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	width, height := camera.Size()

	return &Renderer{
		camera:       camera,
		width:        width,
		height:       height,
		config:       config,
		tiles:        NewTileGrid(width, height, config.TileSize),
		tileRenderer: NewTileRenderer(camera, integratorInst, config.Gamma),
		logger:       logger,
	}
}

// NewSceneRenderer creates a renderer that traces a preprocessed scene
func NewSceneRenderer(s *scene.Scene, config Config, logger core.Logger) (*Renderer, error) {
	if !s.Prepared() || s.Camera == nil {
		return nil, fmt.Errorf("scene %q is not prepared; call Preprocess first", s.Name)
	}
	return NewRenderer(s.Camera, integrator.NewSceneTracer(s), config, logger), nil
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int             // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle // Pixel bounds of the tile in the full image
	TileImage *image.NRGBA    // Image data for just this tile

	// Progress information
	TileNumber int // Completion order (1-based)
	TotalTiles int // Total number of tiles in the image
}

// FrameResult is the finished image with its statistics
type FrameResult struct {
	Image *image.NRGBA
	Stats RenderStats
}

// Size returns the output image dimensions
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// TotalTiles returns the number of tiles in one frame
func (r *Renderer) TotalTiles() int {
	return len(r.tiles)
}

// Render traces the whole image in parallel. tileCallback, if non-nil, is
// called from the calling goroutine once per finished tile. Cancelling ctx
// stops work at the next tile boundary and returns ctx.Err().
func (r *Renderer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*image.NRGBA, RenderStats, error) {
	startTime := time.Now()
	img := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))

	workerPool := NewWorkerPool(r.tileRenderer, len(r.tiles), r.config.NumWorkers)
	workerPool.Start(ctx)
	defer workerPool.Stop()

	r.logger.Printf("Rendering %dx%d in %d tiles (using %d workers)...\n",
		r.width, r.height, len(r.tiles), workerPool.GetNumWorkers())

	for taskID, tile := range r.tiles {
		workerPool.SubmitTask(TileTask{
			Tile:   tile,
			TaskID: taskID,
			Image:  img,
		})
	}

	var stats RenderStats
	for i := 0; i < len(r.tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			r.logger.Printf("Rendering stopped after %d of %d tiles: %v\n", i, len(r.tiles), result.Error)
			return nil, RenderStats{}, result.Error
		}

		stats.Merge(result.Stats)

		if tileCallback != nil {
			tile := r.tiles[result.TaskID]
			tileCallback(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / r.config.TileSize,
				TileY:      tile.Bounds.Min.Y / r.config.TileSize,
				Bounds:     tile.Bounds,
				TileImage:  imaging.Crop(img, tile.Bounds),
				TileNumber: i + 1,
				TotalTiles: len(r.tiles),
			})
		}
	}

	stats.Duration = time.Since(startTime)
	r.logger.Printf("Render completed in %v (%d/%d pixels covered, %.2f bounces/pixel, max %d)\n",
		stats.Duration, stats.CoveredPixels, stats.TotalPixels, stats.AverageBounces(), stats.MaxBounces)

	return img, stats, nil
}

// RenderAsync renders with channel-based communication.
// The caller should read from these channels in separate goroutines.
// The tile channel is buffered for a whole frame; the frame and error
// channels each receive at most one value and are then closed.
func (r *Renderer) RenderAsync(ctx context.Context) (<-chan FrameResult, <-chan TileCompletionResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	tileChan := make(chan TileCompletionResult, max(len(r.tiles), 1))
	errChan := make(chan error, 1)

	go func() {
		defer close(frameChan)
		defer close(tileChan)
		defer close(errChan)

		img, stats, err := r.Render(ctx, func(result TileCompletionResult) {
			tileChan <- result
		})
		if err != nil {
			errChan <- err
			return
		}

		frameChan <- FrameResult{Image: img, Stats: stats}
	}()

	return frameChan, tileChan, errChan
}
