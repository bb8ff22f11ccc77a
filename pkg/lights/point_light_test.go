package lights

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

func TestPointLight_ShadowRay(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 10, 0), core.NewVec3(1, 1, 1))
	point := core.NewVec3(0, 0, 0)

	ray := light.ShadowRay(point)
	if ray.Origin != point {
		t.Errorf("Expected shadow ray to start at %v, got %v", point, ray.Origin)
	}
	if ray.Direction.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Errorf("Expected direction (0,1,0), got %v", ray.Direction)
	}
}

func TestPointLight_DirectionFrom(t *testing.T) {
	light := NewPointLight(core.NewVec3(3, 4, 0), core.NewVec3(1, 1, 1))
	dir := light.DirectionFrom(core.Vec3{})

	if math.Abs(dir.Length()-1) > 1e-12 {
		t.Errorf("Expected unit direction, got length %f", dir.Length())
	}
	if dir.Subtract(core.NewVec3(0.6, 0.8, 0)).Length() > 1e-12 {
		t.Errorf("Expected (0.6,0.8,0), got %v", dir)
	}
}
