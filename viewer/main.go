package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

func main() {
	sceneName := flag.String("scene", "default", "Built-in scene name or path to a .json scene file")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	height := flag.Int("height", 0, "Image height in pixels (0 = scene default)")
	bounces := flag.Int("bounces", -1, "Maximum reflection bounces (-1 = scene default)")
	gamma := flag.Float64("gamma", 1.0, "Output gamma")
	scale := flag.Int("scale", 2, "Window pixels per image pixel")
	out := flag.String("out", "", "Also save the finished frame to this PNG path")
	flag.Parse()

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	s, err := scene.Create(*sceneName, geometry.CameraConfig{Width: *width, Height: *height})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *bounces >= 0 {
		s.BounceLimit = *bounces
	}

	renderConfig := renderer.DefaultConfig()
	renderConfig.NumWorkers = cfg.NumWorkers
	renderConfig.Gamma = *gamma
	r, err := renderer.NewSceneRenderer(s, renderConfig, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := runWindow(r, s.Name, max(*scale, 1), *out); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// runWindow opens a window showing tiles as they finish. It blocks until
// the window closes.
func runWindow(r *renderer.Renderer, title string, scale int, out string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	width, height := r.Size()
	frameChan, tileChan, errChan := r.RenderAsync(ctx)

	g := &viewerGame{
		title:     title,
		board:     newBoard(width, height, r.TotalTiles()),
		frameChan: frameChan,
		tileChan:  tileChan,
		errChan:   errChan,
		out:       out,
	}
	ebiten.SetWindowTitle("Sphere Raytracer - " + title)
	ebiten.SetWindowSize(width*scale, height*scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type viewerGame struct {
	title     string
	board     *board
	img       *ebiten.Image
	frameChan <-chan renderer.FrameResult
	tileChan  <-chan renderer.TileCompletionResult
	errChan   <-chan error
	out       string
	done      bool
}

func (g *viewerGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if g.done {
		return nil
	}

	// Drain whatever tiles are ready without blocking the frame
drain:
	for g.tileChan != nil {
		select {
		case tile, ok := <-g.tileChan:
			if !ok {
				g.tileChan = nil
				break drain
			}
			g.board.apply(tile)
			if !g.board.complete() {
				ebiten.SetWindowTitle(fmt.Sprintf("Sphere Raytracer - %s (%d/%d tiles)",
					g.title, g.board.tilesDone, g.board.totalTiles))
			}
		default:
			break drain
		}
	}

	select {
	case err, ok := <-g.errChan:
		if ok && err != nil {
			return err
		}
		g.errChan = nil
	default:
	}

	select {
	case frame, ok := <-g.frameChan:
		if !ok {
			g.frameChan = nil
			return nil
		}
		g.done = true
		ebiten.SetWindowTitle(fmt.Sprintf("Sphere Raytracer - %s (%.1f%% coverage, %v)",
			g.title, 100*frame.Stats.Coverage(), frame.Stats.Duration.Round(time.Millisecond)))
		if g.out != "" {
			return output.SavePNG(g.out, frame.Image)
		}
	default:
	}
	return nil
}

func (g *viewerGame) Draw(screen *ebiten.Image) {
	frame := g.board.frame
	if g.img == nil {
		g.img = ebiten.NewImage(frame.Bounds().Dx(), frame.Bounds().Dy())
		g.board.dirty = true
	}
	if g.board.takeDirty() {
		g.img.WritePixels(frame.Pix)
	}
	screen.DrawImage(g.img, nil)
}

func (g *viewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.board.frame.Bounds()
	return b.Dx(), b.Dy()
}
