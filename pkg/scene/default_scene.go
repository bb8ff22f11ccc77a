package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/environment"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with three spheres on a large ground sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	// Default camera configuration
	defaultCameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt: core.NewVec3(0, 0.5, -1), // Look at the center sphere
		Up:     core.NewVec3(0, 1, 0),    // Standard up direction
		VFov:   40.0,
		Width:  400,
		Height: 225,
	}

	// Apply any overrides using the reusable merge function
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := New("default", cameraConfig)
	s.Camera = geometry.NewCamera(cameraConfig)
	s.Environment = environment.NewGradient(
		core.NewVec3(0.5, 0.7, 1.0), // Blue sky
		core.NewVec3(1.0, 1.0, 1.0), // White horizon
	)
	s.BounceLimit = 5

	// Create materials
	matteGreen := material.NewMatte(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	plasticRed := material.NewMaterial(core.NewVec3(0.65, 0.25, 0.2), core.NewVec3(0.1, 0.1, 0.1), 64)
	mirrorSilver := material.NewMirror(core.NewVec3(0.8, 0.8, 0.8), 256)
	metalGold := material.NewMaterial(core.NewVec3(0.3, 0.2, 0.05), core.NewVec3(0.6, 0.45, 0.15), 32)

	// Ground first so ties at the contact points go to it
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, matteGreen)
	s.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, plasticRed)
	s.AddSphere(core.NewVec3(-1, 0.25, -0.5), 0.25, mirrorSilver)
	s.AddSphere(core.NewVec3(1, 0.25, -0.5), 0.25, metalGold)

	// Key light above and to the left, dimmer fill from the camera side
	s.AddLight(core.NewVec3(-2, 4, 1), core.NewVec3(0.9, 0.9, 0.85))
	s.AddLight(core.NewVec3(2, 2, 3), core.NewVec3(0.3, 0.3, 0.35))

	return s
}
