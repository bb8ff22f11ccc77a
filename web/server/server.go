package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// Image size limits accepted by the API
const (
	MinImageSize = 8
	MaxImageSize = 2000
	MaxBounces   = 64
)

// Server handles web requests for the sphere raytracer
type Server struct {
	config config.Config
	mux    *http.ServeMux
}

// NewServer creates a new web server
func NewServer(cfg config.Config) *Server {
	s := &Server{config: cfg, mux: http.NewServeMux()}

	// Serve static files
	s.mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)

	return s
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string  `json:"scene"`   // Built-in scene ID or json:<path>
	Width   int     `json:"width"`   // Image width (0 = scene default)
	Height  int     `json:"height"`  // Image height (0 = scene default)
	Bounces int     `json:"bounces"` // Bounce limit (-1 = scene default)
	Gamma   float64 `json:"gamma"`   // Output gamma
	Publish bool    `json:"publish"` // Upload the finished frame to S3
}

// Handler returns the HTTP handler with all routes registered
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists built-in and JSON scenes grouped for a picker
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	response, err := scene.ListAllScenes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(&RenderRequest{Scene: sceneName, Bounces: -1})
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	cameraConfig := sceneObj.CameraConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":       cameraConfig.Width,
			"height":      cameraConfig.Height,
			"vfov":        cameraConfig.VFov,
			"bounceLimit": sceneObj.BounceLimit,
			"spheres":     sceneObj.GetPrimitiveCount(),
			"lights":      len(sceneObj.Lights),
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": MinImageSize, "max": MaxImageSize},
			"height":  map[string]int{"min": MinImageSize, "max": MaxImageSize},
			"bounces": map[string]int{"min": 0, "max": MaxBounces},
		},
	}

	json.NewEncoder(w).Encode(response)
}

// createScene builds a listed scene with size and bounce overrides applied.
// Only IDs returned by scene.ListAllScenes are accepted, and the resulting
// image size and bounce limit must be within the API limits.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	if err := checkListed(req.Scene); err != nil {
		return nil, err
	}

	sceneObj, err := scene.Create(req.Scene, geometry.CameraConfig{Width: req.Width, Height: req.Height})
	if err != nil {
		return nil, err
	}
	if req.Bounces >= 0 {
		sceneObj.BounceLimit = req.Bounces
	}

	if err := checkLimits(sceneObj); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// checkListed rejects scene IDs that are not built-in or discovered in the scenes directory
func checkListed(id string) error {
	listing, err := scene.ListAllScenes()
	if err != nil {
		return err
	}
	for _, group := range listing.Groups {
		for _, info := range group.Scenes {
			if info.ID == id {
				return nil
			}
		}
	}
	return fmt.Errorf("unknown scene: %q", id)
}

// checkLimits applies the API size and bounce limits to values coming from the scene itself
func checkLimits(sceneObj *scene.Scene) error {
	width, height := sceneObj.CameraConfig.Width, sceneObj.CameraConfig.Height
	if width < MinImageSize || width > MaxImageSize || height < MinImageSize || height > MaxImageSize {
		return fmt.Errorf("scene %q image size %dx%d is outside %d-%d", sceneObj.Name, width, height, MinImageSize, MaxImageSize)
	}
	if sceneObj.BounceLimit > MaxBounces {
		return fmt.Errorf("scene %q bounce limit %d exceeds %d", sceneObj.Name, sceneObj.BounceLimit, MaxBounces)
	}
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Bounces, err = parseIntParam(query, "bounces", -1, 0, MaxBounces); err != nil {
		return nil, err
	}
	if req.Gamma, err = parseFloatParam(query, "gamma", 1.0, 0.1, 5.0); err != nil {
		return nil, err
	}

	req.Publish = query.Get("publish") == "true"
	if req.Publish && !s.config.S3.Enabled() {
		return nil, fmt.Errorf("publishing requested but no S3 bucket is configured")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
