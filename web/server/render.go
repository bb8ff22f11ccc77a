package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	X          int    `json:"x"` // Pixel position of the tile's top-left corner
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Completion order (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// CompleteEvent summarizes a finished render
type CompleteEvent struct {
	Scene            string  `json:"scene"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	ElapsedMs        int64   `json:"elapsedMs"`
	TotalPixels      int     `json:"totalPixels"`
	CoveredPixels    int     `json:"coveredPixels"`
	Coverage         float64 `json:"coverage"`
	AverageBounces   float64 `json:"averageBounces"`
	MaxBounces       int     `json:"maxBounces"`
	AverageLuminance float64 `json:"averageLuminance"`
	Spheres          int     `json:"spheres"`
	ImageData        string  `json:"imageData"`
	PublishedKey     string  `json:"publishedKey,omitempty"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a scene and streams finished tiles to the client via SSE.
// The handler does not return until the writer goroutine has drained.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()

	// Setup console logging and streaming
	consoleChan, webLogger := s.setupConsoleLogging()
	stopConsole := make(chan struct{})
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, stopConsole, consoleChan, sseEventChan)
	}()

	defer func() {
		close(stopConsole)
		<-consoleDone
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	config := renderer.DefaultConfig()
	config.NumWorkers = s.config.NumWorkers
	config.Gamma = req.Gamma
	rt, err := renderer.NewSceneRenderer(sceneObj, config, webLogger)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	frameChan, tileChan, errChan := rt.RenderAsync(ctx)
	s.handleRenderingEvents(ctx, sseEventChan, frameChan, tileChan, errChan, sceneObj, req, webLogger)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards logger output as console events until stopped.
// Messages still buffered when stop closes are flushed first.
func (s *Server) streamConsoleMessages(ctx context.Context, stop <-chan struct{}, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	send := func(msg ConsoleMessage) bool {
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			return true
		}
		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case msg := <-consoleChan:
			if !send(msg) {
				return
			}
		case <-stop:
			for {
				select {
				case msg := <-consoleChan:
					if !send(msg) {
						return
					}
				default:
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// handleRenderingEvents relays tiles until the render finishes, then sends
// either a complete or an error event
func (s *Server) handleRenderingEvents(ctx context.Context, sseEventChan chan<- SSEEvent,
	frameChan <-chan renderer.FrameResult, tileChan <-chan renderer.TileCompletionResult, errChan <-chan error,
	sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) {

	for tileChan != nil || frameChan != nil || errChan != nil {
		select {
		case tileResult, ok := <-tileChan:
			if !ok {
				tileChan = nil
				continue
			}
			s.handleTileUpdate(ctx, sseEventChan, tileResult)

		case frame, ok := <-frameChan:
			if !ok {
				frameChan = nil
				continue
			}
			// Tiles are buffered ahead of the frame; send the rest first
			for tileResult := range tileChan {
				s.handleTileUpdate(ctx, sseEventChan, tileResult)
			}
			tileChan = nil
			s.handleComplete(ctx, sseEventChan, frame, sceneObj, req, logger)

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			s.handleError(ctx, sseEventChan, fmt.Sprintf("Render failed: %v", err))

		case <-ctx.Done():
			return
		}
	}
}

// handleComplete encodes the finished frame, optionally publishes it, and sends the summary
func (s *Server) handleComplete(ctx context.Context, sseEventChan chan<- SSEEvent, frame renderer.FrameResult,
	sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) {

	pngData, err := output.EncodePNG(frame.Image)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Error encoding image: %v", err))
		return
	}

	bounds := frame.Image.Bounds()
	event := CompleteEvent{
		Scene:            sceneObj.Name,
		Width:            bounds.Dx(),
		Height:           bounds.Dy(),
		ElapsedMs:        frame.Stats.Duration.Milliseconds(),
		TotalPixels:      frame.Stats.TotalPixels,
		CoveredPixels:    frame.Stats.CoveredPixels,
		Coverage:         frame.Stats.Coverage(),
		AverageBounces:   frame.Stats.AverageBounces(),
		MaxBounces:       frame.Stats.MaxBounces,
		AverageLuminance: renderer.CalculateAverageLuminance(frame.Image),
		Spheres:          sceneObj.GetPrimitiveCount(),
		ImageData:        base64.StdEncoding.EncodeToString(pngData),
	}

	if req.Publish {
		key := fmt.Sprintf("renders/%s_%d.png", sceneObj.Name, time.Now().Unix())
		publisher, err := output.NewS3Publisher(s.config.S3, logger)
		if err == nil {
			err = publisher.Publish(ctx, key, pngData)
		}
		if err != nil {
			s.handleError(ctx, sseEventChan, fmt.Sprintf("Publish failed: %v", err))
			return
		}
		event.PublishedKey = key
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling complete event: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleTileUpdate processes and sends tile update events
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan<- SSEEvent, tileResult renderer.TileCompletionResult) {
	// Check if client is still connected
	select {
	case <-ctx.Done():
		return
	default:
	}

	tileData, err := imageToBase64PNG(tileResult.TileImage)
	if err != nil {
		log.Printf("Error encoding tile image (%d, %d): %v", tileResult.TileX, tileResult.TileY, err)
		return
	}

	update := TileUpdate{
		TileX:      tileResult.TileX,
		TileY:      tileResult.TileY,
		X:          tileResult.Bounds.Min.X,
		Y:          tileResult.Bounds.Min.Y,
		Width:      tileResult.Bounds.Dx(),
		Height:     tileResult.Bounds.Dy(),
		ImageData:  tileData,
		TileNumber: tileResult.TileNumber,
		TotalTiles: tileResult.TotalTiles,
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling tile update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "tile", Data: string(data)}:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	data, err := output.EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	data, _ := json.Marshal(map[string]string{"message": message})
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: string(data)}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
