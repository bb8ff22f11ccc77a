package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/compositor"
	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/loaders"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName  string
	width      int
	height     int
	bounces    int // -1 keeps the scene's limit
	workers    int // -1 keeps the configured worker count
	gamma      float64
	out        string
	background string
	opacity    float64
	thumb      int
	publish    bool
}

func main() {
	// Parse command line flags
	var opts options
	flag.StringVar(&opts.sceneName, "scene", "default", "Built-in scene name or path to a .json scene file")
	flag.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = scene default)")
	flag.IntVar(&opts.bounces, "bounces", -1, "Maximum reflection bounces (-1 = scene default)")
	flag.IntVar(&opts.workers, "workers", -1, "Number of parallel workers (0 = CPU count, -1 = RAYTRACER_WORKERS)")
	flag.Float64Var(&opts.gamma, "gamma", 1.0, "Output gamma (1.0 writes linear values)")
	flag.StringVar(&opts.out, "out", "", "Output PNG path (default <output dir>/<scene>/render_<timestamp>.png)")
	flag.StringVar(&opts.background, "background", "", "Composite the render over this image")
	flag.Float64Var(&opts.opacity, "opacity", 1.0, "Opacity of the render when compositing (0-1)")
	flag.IntVar(&opts.thumb, "thumb", 0, "Also write a thumbnail no larger than this many pixels (0 = none)")
	flag.BoolVar(&opts.publish, "publish", false, "Upload the outputs to the configured S3 bucket")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		printHelp()
		return
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, cfg, renderer.NewDefaultLogger()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Sphere Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.BuiltInScenes() {
		fmt.Printf("  %-12s - %s\n", info.ID, info.Description)
	}
	if jsonScenes, err := scene.ListJSONScenes(); err == nil {
		for _, info := range jsonScenes {
			fmt.Printf("  %-12s - %s\n", info.FilePath, info.DisplayName)
		}
	}
	fmt.Println()
	fmt.Println("Settings are also read from .env and the environment:")
	fmt.Println("  RAYTRACER_OUTPUT_DIR, RAYTRACER_WORKERS, RAYTRACER_PORT,")
	fmt.Println("  S3_ACCESS_KEY, S3_SECRET_KEY, S3_ENDPOINT, S3_REGION, S3_BUCKET")
}

// run renders one scene and writes (and optionally publishes) the results
func run(ctx context.Context, opts options, cfg config.Config, logger core.Logger) error {
	selectedScene, err := createScene(opts)
	if err != nil {
		return err
	}
	logger.Printf("Using scene %q (%d spheres, %d lights, bounce limit %d)\n",
		selectedScene.Name, selectedScene.GetPrimitiveCount(), len(selectedScene.Lights), selectedScene.BounceLimit)

	renderConfig := renderer.DefaultConfig()
	renderConfig.NumWorkers = cfg.NumWorkers
	if opts.workers >= 0 {
		renderConfig.NumWorkers = opts.workers
	}
	renderConfig.Gamma = opts.gamma

	r, err := renderer.NewSceneRenderer(selectedScene, renderConfig, logger)
	if err != nil {
		return err
	}

	img, stats, err := r.Render(ctx, nil)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Coverage: %.1f%%, average bounces: %.2f\n", 100*stats.Coverage(), stats.AverageBounces())

	var final image.Image = img
	if opts.background != "" {
		bg, err := loaders.LoadNRGBA(opts.background)
		if err != nil {
			return fmt.Errorf("failed to load background: %w", err)
		}
		compositor.Composite(bg, img, opts.opacity, centerOffset(bg.Bounds(), img.Bounds()))
		final = bg
	}

	filename := opts.out
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(cfg.OutputDir, sanitizeName(selectedScene.Name), fmt.Sprintf("render_%s.png", timestamp))
	}

	fullData, err := output.EncodePNG(final)
	if err != nil {
		return err
	}
	objects := []output.Object{{Key: filepath.Base(filename), Data: fullData}}
	if err := output.WriteFile(filename, fullData); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", filename)

	if opts.thumb > 0 {
		thumbData, err := output.EncodePNG(output.Thumbnail(final, opts.thumb))
		if err != nil {
			return err
		}
		thumbName := output.ThumbnailPath(filename)
		if err := output.WriteFile(thumbName, thumbData); err != nil {
			return err
		}
		objects = append(objects, output.Object{Key: filepath.Base(thumbName), Data: thumbData})
		logger.Printf("Thumbnail saved as %s\n", thumbName)
	}

	if opts.publish {
		publisher, err := output.NewS3Publisher(cfg.S3, logger)
		if err != nil {
			return fmt.Errorf("cannot publish: %w", err)
		}
		if err := publisher.PublishAll(ctx, objects); err != nil {
			return err
		}
	}

	return nil
}

// createScene builds the requested scene with command line overrides applied
func createScene(opts options) (*scene.Scene, error) {
	if opts.width < 0 || opts.height < 0 {
		return nil, fmt.Errorf("image size must not be negative: %dx%d", opts.width, opts.height)
	}

	s, err := scene.Create(opts.sceneName, geometry.CameraConfig{Width: opts.width, Height: opts.height})
	if err != nil {
		return nil, err
	}

	if opts.bounces >= 0 {
		s.BounceLimit = opts.bounces
	}
	return s, nil
}

// centerOffset places fg in the middle of bg
func centerOffset(bg, fg image.Rectangle) image.Point {
	return image.Pt((bg.Dx()-fg.Dx())/2, (bg.Dy()-fg.Dy())/2)
}

// sanitizeName turns a scene name or path into a directory name
func sanitizeName(name string) string {
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if name == "" || name == "." {
		return "scene"
	}
	return name
}
