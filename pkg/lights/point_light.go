package lights

import "github.com/df07/go-sphere-raytracer/pkg/core"

// PointLight is an omnidirectional light with no distance falloff
type PointLight struct {
	Position  core.Vec3 // World-space position
	Intensity core.Vec3 // RGB intensity
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// DirectionFrom returns the unit direction from point toward the light
func (l PointLight) DirectionFrom(point core.Vec3) core.Vec3 {
	return l.Position.Subtract(point).Normalize()
}

// ShadowRay returns the ray cast from point toward the light for visibility tests.
// The origin is not offset; the intersector's epsilon rejects the surface itself.
func (l PointLight) ShadowRay(point core.Vec3) core.Ray {
	return core.NewRay(point, l.DirectionFrom(point))
}
