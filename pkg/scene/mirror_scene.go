package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/environment"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// NewMirrorHallScene creates two large facing mirror spheres with a small
// colored sphere between them, so the bounce limit is visible as the depth
// of the repeated reflections
func NewMirrorHallScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 1.2, 0.5),
		LookAt: core.NewVec3(0, 0, -3),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   60.0,
		Width:  400,
		Height: 300,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := New("mirror-hall", cameraConfig)
	s.Camera = geometry.NewCamera(cameraConfig)
	s.Environment = environment.NewSolidColor(core.NewVec3(0.05, 0.05, 0.1))
	s.BounceLimit = 10

	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9), 512)
	s.AddSphere(core.NewVec3(-8, 0, -3), 6, mirror)
	s.AddSphere(core.NewVec3(8, 0, -3), 6, mirror)

	s.AddSphere(core.NewVec3(0, 0, -3), 0.6, material.NewMaterial(
		core.NewVec3(0.7, 0.2, 0.1),
		core.NewVec3(0.2, 0.2, 0.2),
		32,
	))

	s.AddLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1))

	return s
}
