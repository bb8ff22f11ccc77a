package shading

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

var (
	up       = core.NewVec3(0, 1, 0)
	origin   = core.NewVec3(0, 0, 0)
	white    = core.NewVec3(1, 1, 1)
	testMtl  = material.NewMaterial(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0.25, 0.25, 0.25), 10)
	occluder = geometry.NewSphere(core.NewVec3(0, 5, 0), 1.0, material.Material{})
)

func TestBlinnPhong_NoLights(t *testing.T) {
	shader := NewBlinnPhong(geometry.NewSphereIntersector(nil), nil)

	views := []core.Vec3{up, core.NewVec3(0, 0.6, 0.8), core.NewVec3(0.6, 0.8, 0)}
	for _, view := range views {
		color := shader.Shade(testMtl, origin, up, view)
		if !color.IsZero() {
			t.Errorf("Expected exactly zero with no lights, got %v", color)
		}
	}
}

func TestBlinnPhong_SingleLight(t *testing.T) {
	tests := []struct {
		name     string
		light    lights.PointLight
		normal   core.Vec3
		view     core.Vec3
		expected core.Vec3
	}{
		{
			name:  "light and viewer along normal",
			light: lights.NewPointLight(core.NewVec3(0, 10, 0), white),
			// diffuse = 1, specular = 1
			normal:   up,
			view:     up,
			expected: core.NewVec3(0.75, 0.75, 0.75),
		},
		{
			name:     "colored intensity scales per channel",
			light:    lights.NewPointLight(core.NewVec3(0, 10, 0), core.NewVec3(1, 0.5, 0)),
			normal:   up,
			view:     up,
			expected: core.NewVec3(0.75, 0.375, 0),
		},
		{
			name:     "light below the surface",
			light:    lights.NewPointLight(core.NewVec3(0, -10, 0), white),
			normal:   up,
			view:     up,
			expected: core.Vec3{},
		},
		{
			name:  "grazing 60 degree light, mirror view",
			light: lights.NewPointLight(core.NewVec3(math.Sqrt(3), 1, 0), white),
			// diffuse = cos60 = 0.5; half vector equals the normal so specular = 1
			normal:   up,
			view:     core.NewVec3(-math.Sqrt(3)/2, 0.5, 0),
			expected: core.NewVec3(0.5*0.5+0.25, 0.5*0.5+0.25, 0.5*0.5+0.25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shader := NewBlinnPhong(geometry.NewSphereIntersector(nil), []lights.PointLight{tt.light})
			color := shader.Shade(testMtl, origin, tt.normal, tt.view)
			if !vecNear(color, tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestBlinnPhong_HardShadow(t *testing.T) {
	light := lights.NewPointLight(core.NewVec3(0, 10, 0), white)
	intersector := geometry.NewSphereIntersector([]geometry.Sphere{occluder})
	shader := NewBlinnPhong(intersector, []lights.PointLight{light})

	color := shader.Shade(testMtl, origin, up, up)
	if !color.IsZero() {
		t.Errorf("Expected exactly zero behind occluder, got %v", color)
	}
}

func TestBlinnPhong_ShadowPerLight(t *testing.T) {
	blocked := lights.NewPointLight(core.NewVec3(0, 10, 0), white)
	open := lights.NewPointLight(core.NewVec3(10, 0.0001, 0), core.NewVec3(0, 0, 1))
	intersector := geometry.NewSphereIntersector([]geometry.Sphere{occluder})

	withBoth := NewBlinnPhong(intersector, []lights.PointLight{blocked, open}).Shade(testMtl, origin, up, up)
	openOnly := NewBlinnPhong(intersector, []lights.PointLight{open}).Shade(testMtl, origin, up, up)

	if withBoth != openOnly {
		t.Errorf("Blocked light should add nothing: both=%v open-only=%v", withBoth, openOnly)
	}
	if withBoth.X != 0 || withBoth.Y != 0 {
		t.Errorf("Only the blue light should contribute, got %v", withBoth)
	}
}

func TestBlinnPhong_OccluderBeyondLightStillBlocks(t *testing.T) {
	// The light sits between the point and the sphere; visibility is any-hit along the ray
	light := lights.NewPointLight(core.NewVec3(0, 2, 0), white)
	intersector := geometry.NewSphereIntersector([]geometry.Sphere{occluder})
	shader := NewBlinnPhong(intersector, []lights.PointLight{light})

	if color := shader.Shade(testMtl, origin, up, up); !color.IsZero() {
		t.Errorf("Expected sphere behind the light to block it, got %v", color)
	}
}

func TestBlinnPhong_NoSelfShadow(t *testing.T) {
	sphere := geometry.NewSphere(origin, 1.0, testMtl)
	intersector := geometry.NewSphereIntersector([]geometry.Sphere{sphere})
	light := lights.NewPointLight(core.NewVec3(0, 10, 0), white)
	shader := NewBlinnPhong(intersector, []lights.PointLight{light})

	hit, isHit := intersector.Intersect(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)))
	if !isHit {
		t.Fatal("Expected primary hit on sphere")
	}

	color := shader.Shade(hit.Material, hit.Position, hit.Normal, up)
	if !vecNear(color, core.NewVec3(0.75, 0.75, 0.75), 1e-9) {
		t.Errorf("Expected lit top of sphere, got %v", color)
	}
}
