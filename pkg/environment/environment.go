package environment

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// SolidColor returns the same color in every direction
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a constant background
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Sample implements core.EnvironmentSampler
func (s *SolidColor) Sample(direction core.Vec3) core.Vec3 {
	return s.Color
}

// Gradient blends from Bottom (straight down) to Top (straight up)
type Gradient struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradient creates a vertical gradient background
func NewGradient(top, bottom core.Vec3) *Gradient {
	return &Gradient{Top: top, Bottom: bottom}
}

// Sample implements core.EnvironmentSampler
func (g *Gradient) Sample(direction core.Vec3) core.Vec3 {
	// Normalize the ray direction to get consistent results
	unitDirection := direction.Normalize()

	// Map Y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return g.Bottom.Multiply(1.0 - t).Add(g.Top.Multiply(t))
}
