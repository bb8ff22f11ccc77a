package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

var (
	ErrDegenerateSphere    = errors.New("sphere radius must be positive")
	ErrNegativeShininess   = errors.New("material shininess must not be negative")
	ErrNegativeBounceLimit = errors.New("bounce limit must not be negative")
	ErrNoEnvironment       = errors.New("scene has no environment sampler")
)

// DefaultBounceLimit is the reflection depth used when a scene does not set one
const DefaultBounceLimit = 5

// Scene contains all the elements needed for rendering.
// A scene is read-only once Preprocess has succeeded; adding a sphere
// afterwards marks it unprepared until Preprocess validates it again.
type Scene struct {
	Name         string
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Spheres      []geometry.Sphere       // Objects in the scene, in intersection order
	Lights       []lights.PointLight     // Point lights in the scene
	Environment  core.EnvironmentSampler // Background seen by rays that escape
	BounceLimit  int                     // Maximum number of reflection rays per primary ray

	intersector *geometry.SphereIntersector
	prepared    bool
}

// New creates an empty scene with a black background and the default bounce limit
func New(name string, cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		CameraConfig: cameraConfig,
		Spheres:      make([]geometry.Sphere, 0),
		Lights:       make([]lights.PointLight, 0),
		Environment:  core.EnvironmentFunc(func(core.Vec3) core.Vec3 { return core.Vec3{} }),
		BounceLimit:  DefaultBounceLimit,
	}
}

// AddSphere appends a sphere to the scene. The scene must be preprocessed
// again before it can be rendered.
func (s *Scene) AddSphere(center core.Vec3, radius float64, mtl material.Material) {
	s.Spheres = append(s.Spheres, geometry.NewSphere(center, radius, mtl))
	s.intersector = nil
	s.prepared = false
}

// AddLight appends a point light to the scene
func (s *Scene) AddLight(position, intensity core.Vec3) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, intensity))
}

// Validate reports the first problem that would make the scene unrenderable
func (s *Scene) Validate() error {
	for i, sphere := range s.Spheres {
		if sphere.Degenerate() {
			return fmt.Errorf("sphere %d (radius %g): %w", i, sphere.Radius, ErrDegenerateSphere)
		}
		if sphere.Material.Shininess < 0 {
			return fmt.Errorf("sphere %d (shininess %g): %w", i, sphere.Material.Shininess, ErrNegativeShininess)
		}
	}
	if s.BounceLimit < 0 {
		return fmt.Errorf("%d: %w", s.BounceLimit, ErrNegativeBounceLimit)
	}
	if s.Environment == nil {
		return ErrNoEnvironment
	}
	return nil
}

// Preprocess validates the scene and builds the camera and intersector
func (s *Scene) Preprocess() error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid scene %q: %w", s.Name, err)
	}
	s.Camera = geometry.NewCamera(s.CameraConfig)
	s.intersector = geometry.NewSphereIntersector(s.Spheres)
	s.prepared = true
	return nil
}

// Prepared reports whether the scene has passed Preprocess since its last change
func (s *Scene) Prepared() bool {
	return s.prepared
}

// SetCameraConfig applies overrides to the camera and rebuilds it
func (s *Scene) SetCameraConfig(override geometry.CameraConfig) {
	s.CameraConfig = geometry.MergeCameraConfig(s.CameraConfig, override)
	s.Camera = geometry.NewCamera(s.CameraConfig)
}

// Intersector returns the nearest-hit search over the scene's spheres
func (s *Scene) Intersector() geometry.Intersector {
	if s.intersector == nil {
		return geometry.NewSphereIntersector(s.Spheres)
	}
	return s.intersector
}

// GetPrimitiveCount returns the total number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Spheres)
}
