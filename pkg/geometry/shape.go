package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Epsilon is the smallest accepted ray parameter; it keeps secondary rays
// from re-hitting the surface they start on.
const Epsilon = 0.001

// HitInfo contains information about the nearest ray-sphere intersection
type HitInfo struct {
	T        float64           // Parameter t along the ray
	Position core.Vec3         // Point of intersection
	Normal   core.Vec3         // Outward unit normal at the intersection
	Material material.Material // Material of the sphere that was hit
}

// Intersector finds the nearest intersection along a ray.
// Implementations must be safe for concurrent use.
type Intersector interface {
	Intersect(ray core.Ray) (HitInfo, bool)
}
