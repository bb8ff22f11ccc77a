package integrator

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
	"github.com/df07/go-sphere-raytracer/pkg/shading"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	Trace(ray core.Ray) Result
}

// NewSceneTracer wires a Tracer to a validated scene. The same intersector
// answers primary, shadow and reflection queries.
func NewSceneTracer(s *scene.Scene) *Tracer {
	intersector := s.Intersector()
	shader := shading.NewBlinnPhong(intersector, s.Lights)
	return NewTracer(intersector, shader, s.Environment, s.BounceLimit)
}
