package integrator

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/shading"
)

// Result is the traced color for one ray
type Result struct {
	Color    core.Vec3 // Accumulated radiance
	Coverage float64   // 1 if the primary ray hit geometry, 0 for pure background
	Bounces  int       // Number of reflection rays cast
}

// Tracer follows a camera ray through its primary hit and a bounded chain of
// mirror reflections. It holds no mutable state and is safe for concurrent use.
type Tracer struct {
	intersector geometry.Intersector
	shader      shading.Shader
	environment core.EnvironmentSampler
	bounceLimit int
}

// NewTracer creates a tracer from its collaborators
func NewTracer(intersector geometry.Intersector, shader shading.Shader, environment core.EnvironmentSampler, bounceLimit int) *Tracer {
	return &Tracer{
		intersector: intersector,
		shader:      shader,
		environment: environment,
		bounceLimit: max(bounceLimit, 0),
	}
}

// BounceLimit returns the maximum number of reflection rays per trace
func (tr *Tracer) BounceLimit() int {
	return tr.bounceLimit
}

// Trace computes the color seen along ray
func (tr *Tracer) Trace(ray core.Ray) Result {
	hit, isHit := tr.intersector.Intersect(ray)
	if !isHit {
		return Result{Color: tr.environment.Sample(ray.Direction)}
	}

	color := tr.shade(ray, hit)
	attenuation := hit.Material.Specular

	bounces := 0
	for bounces < tr.bounceLimit {
		// No specular energy left to carry
		if attenuation.IsZero() {
			break
		}

		reflected := core.NewRay(hit.Position, core.Reflect(ray.Direction, hit.Normal).Normalize())
		bounces++

		next, isHit := tr.intersector.Intersect(reflected)
		if !isHit {
			// Escaped the scene; nothing further can be hit
			color = color.Add(attenuation.MultiplyVec(tr.environment.Sample(reflected.Direction)))
			break
		}

		color = color.Add(attenuation.MultiplyVec(tr.shade(reflected, next)))
		attenuation = attenuation.MultiplyVec(next.Material.Specular)
		ray, hit = reflected, next
	}

	return Result{Color: color, Coverage: 1, Bounces: bounces}
}

// shade evaluates direct lighting at hit as seen from ray's origin
func (tr *Tracer) shade(ray core.Ray, hit geometry.HitInfo) core.Vec3 {
	view := ray.Direction.Negate().Normalize()
	return tr.shader.Shade(hit.Material, hit.Position, hit.Normal, view)
}
