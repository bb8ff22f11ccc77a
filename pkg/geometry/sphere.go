package geometry

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mtl material.Material) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: mtl,
	}
}

// Degenerate reports whether the sphere has a non-positive (or NaN) radius
func (s Sphere) Degenerate() bool {
	return !(s.Radius > 0)
}

// Intersect returns the near root of the ray/sphere quadratic.
// Only the near root is considered: a ray starting inside the sphere
// (near root behind the origin) misses it.
func (s Sphere) Intersect(ray core.Ray) (float64, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	// Tangent rays (discriminant == 0) count as misses
	discriminant := b*b - 4*a*c
	if !(discriminant > 0) {
		return 0, false
	}

	root := (-b - math.Sqrt(discriminant)) / (2 * a)
	if !(root > Epsilon) {
		return 0, false
	}
	return root, true
}

// NormalAt returns the outward unit normal for a point on the surface
func (s Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Multiply(1.0 / s.Radius)
}
