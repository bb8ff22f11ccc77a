package material

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Material describes Blinn-Phong surface response.
// Values are copied into spheres, so a material cannot change once attached.
type Material struct {
	Diffuse   core.Vec3 // k_d, diffuse coefficient per channel
	Specular  core.Vec3 // k_s, specular coefficient per channel; also the mirror reflectance
	Shininess float64   // n, Blinn specular exponent (>= 0)
}

// NewMaterial creates a new material
func NewMaterial(diffuse, specular core.Vec3, shininess float64) Material {
	return Material{Diffuse: diffuse, Specular: specular, Shininess: shininess}
}

// NewMatte creates a purely diffuse material that never spawns reflection rays
func NewMatte(diffuse core.Vec3) Material {
	return Material{Diffuse: diffuse}
}

// NewMirror creates a black-bodied material whose specular coefficient is the reflectance
func NewMirror(reflectance core.Vec3, shininess float64) Material {
	return Material{Specular: reflectance, Shininess: shininess}
}

// Reflective reports whether reflection rays leaving this surface carry any energy
func (m Material) Reflective() bool {
	return !m.Specular.IsZero()
}
