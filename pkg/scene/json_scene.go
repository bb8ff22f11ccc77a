package scene

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/environment"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/loaders"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// LoadFile reads a JSON scene file and builds a validated scene from it
func LoadFile(path string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	file, err := loaders.LoadSceneJSON(path)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewJSONScene(name, file, cameraOverrides...)
}

// NewJSONScene converts a parsed scene file into a validated scene
func NewJSONScene(name string, file *loaders.SceneFile, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := convertCamera(file.Camera)
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := New(name, cameraConfig)
	if file.BounceLimit != nil {
		s.BounceLimit = *file.BounceLimit
	}

	for _, spec := range file.Spheres {
		mtl := material.NewMaterial(vec(spec.Material.Kd), vec(spec.Material.Ks), spec.Material.N)
		s.AddSphere(vec(spec.Center), spec.Radius, mtl)
	}

	for _, spec := range file.Lights {
		s.AddLight(vec(spec.Position), vec(spec.Intensity))
	}

	if file.Environment != nil {
		env, err := convertEnvironment(file, file.Environment)
		if err != nil {
			return nil, fmt.Errorf("failed to convert environment: %w", err)
		}
		s.Environment = env
	}

	if err := s.Preprocess(); err != nil {
		return nil, err
	}
	return s, nil
}

func convertCamera(spec *loaders.CameraSpec) geometry.CameraConfig {
	config := geometry.DefaultCameraConfig()
	if spec == nil {
		return config
	}
	override := geometry.CameraConfig{
		Center: vec(spec.Center),
		LookAt: vec(spec.LookAt),
		Up:     vec(spec.Up),
		VFov:   spec.VFov,
		Width:  spec.Width,
		Height: spec.Height,
	}
	if mv := spec.ModelView; mv != nil {
		override.ModelView = &geometry.ModelView{
			Translation: vec(mv.Translation),
			RotX:        mv.RotX * math.Pi / 180,
			RotY:        mv.RotY * math.Pi / 180,
		}
	}
	return geometry.MergeCameraConfig(config, override)
}

func convertEnvironment(file *loaders.SceneFile, spec *loaders.EnvironmentSpec) (core.EnvironmentSampler, error) {
	switch spec.Type {
	case "", "solid":
		return environment.NewSolidColor(vec(spec.Color)), nil
	case "gradient":
		return environment.NewGradient(vec(spec.Top), vec(spec.Bottom)), nil
	case "cubemap":
		paths := make([]string, len(spec.Faces))
		for i, face := range spec.Faces {
			paths[i] = file.ResolvePath(face)
		}
		cubeMap, err := environment.LoadCubeMap(paths, spec.ZUp)
		if err != nil {
			return nil, err
		}
		return cubeMap, nil
	default:
		return nil, fmt.Errorf("unsupported environment type: %q", spec.Type)
	}
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
