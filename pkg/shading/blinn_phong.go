package shading

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Shader computes direct illumination leaving a surface point toward the viewer
type Shader interface {
	Shade(mtl material.Material, position, normal, view core.Vec3) core.Vec3
}

// BlinnPhong shades with Lambertian diffuse plus a Blinn half-vector specular
// lobe, with hard shadows from point lights. It adds no ambient term.
type BlinnPhong struct {
	intersector geometry.Intersector
	lights      []lights.PointLight
}

// NewBlinnPhong creates a shader that tests light visibility with intersector
func NewBlinnPhong(intersector geometry.Intersector, pointLights []lights.PointLight) *BlinnPhong {
	return &BlinnPhong{
		intersector: intersector,
		lights:      pointLights,
	}
}

// Shade sums the contribution of every unoccluded light.
// normal and view must be unit length; view points from the surface toward the viewer.
func (bp *BlinnPhong) Shade(mtl material.Material, position, normal, view core.Vec3) core.Vec3 {
	color := core.Vec3{}

	for _, light := range bp.lights {
		shadowRay := light.ShadowRay(position)

		// Any hit along the shadow ray blocks the light entirely
		if _, occluded := bp.intersector.Intersect(shadowRay); occluded {
			continue
		}

		color = color.Add(bp.contribution(mtl, normal, view, shadowRay.Direction, light.Intensity))
	}

	return color
}

// contribution evaluates the Blinn-Phong terms for one visible light
func (bp *BlinnPhong) contribution(mtl material.Material, normal, view, lightDir, intensity core.Vec3) core.Vec3 {
	diffuse := math.Max(normal.Dot(lightDir), 0)

	halfVector := lightDir.Add(view).Normalize()
	specular := math.Pow(math.Max(normal.Dot(halfVector), 0), mtl.Shininess)

	return mtl.Diffuse.Multiply(diffuse).
		Add(mtl.Specular.Multiply(specular)).
		MultiplyVec(intensity)
}
