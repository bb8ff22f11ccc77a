package geometry

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// SphereIntersector finds the nearest hit by testing every sphere in order.
// The sphere slice is read, never written.
type SphereIntersector struct {
	Spheres []Sphere
}

// NewSphereIntersector creates an intersector over the given spheres
func NewSphereIntersector(spheres []Sphere) *SphereIntersector {
	return &SphereIntersector{Spheres: spheres}
}

// Intersect returns the hit with the smallest t > Epsilon across all spheres.
// On equal t the earlier sphere wins.
func (si *SphereIntersector) Intersect(ray core.Ray) (HitInfo, bool) {
	closest := -1
	closestT := math.Inf(1)

	for i := range si.Spheres {
		if t, ok := si.Spheres[i].Intersect(ray); ok && t < closestT {
			closestT = t
			closest = i
		}
	}

	if closest < 0 {
		return HitInfo{}, false
	}

	sphere := &si.Spheres[closest]
	position := ray.At(closestT)
	return HitInfo{
		T:        closestT,
		Position: position,
		Normal:   sphere.NormalAt(position),
		Material: sphere.Material,
	}, true
}
