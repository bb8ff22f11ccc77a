package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

func TestSphere_Intersect(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1.0, material.Material{})

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectHit bool
		expectedT float64
	}{
		{
			name:      "ray at center",
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(0, 0, -1),
			expectHit: true,
			expectedT: 4.0,
		},
		{
			name:      "non-unit direction scales t",
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(0, 0, -2),
			expectHit: true,
			expectedT: 2.0,
		},
		{
			name:      "sphere behind origin",
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(0, 0, 1),
			expectHit: false,
		},
		{
			name:      "origin inside sphere",
			origin:    core.NewVec3(0, 0, -5),
			direction: core.NewVec3(0, 0, -1),
			expectHit: false,
		},
		{
			name:      "clear miss",
			origin:    core.NewVec3(3, 0, 0),
			direction: core.NewVec3(0, 0, -1),
			expectHit: false,
		},
		{
			name:      "off-axis hit",
			origin:    core.NewVec3(0.6, 0, 0),
			direction: core.NewVec3(0, 0, -1),
			expectHit: true,
			expectedT: 5.0 - 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hitT, isHit := sphere.Intersect(core.NewRay(tt.origin, tt.direction))
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t (t=%f)", tt.expectHit, isHit, hitT)
			}
			if isHit && math.Abs(hitT-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hitT)
			}
		})
	}
}

func TestSphere_Intersect_TangentIsMiss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.Material{})

	// Closest approach to the center equals the radius exactly
	ray := core.NewRay(core.NewVec3(1, 0, 5), core.NewVec3(0, 0, -1))
	if hitT, isHit := sphere.Intersect(ray); isHit {
		t.Errorf("Expected tangent ray to miss, got hit at t=%f", hitT)
	}

	// Just outside the radius
	ray = core.NewRay(core.NewVec3(1+1e-9, 0, 5), core.NewVec3(0, 0, -1))
	if hitT, isHit := sphere.Intersect(ray); isHit {
		t.Errorf("Expected near-tangent ray to miss, got hit at t=%f", hitT)
	}

	// Inside the radius by more than epsilon still hits
	ray = core.NewRay(core.NewVec3(1-1e-3, 0, 5), core.NewVec3(0, 0, -1))
	if _, isHit := sphere.Intersect(ray); !isHit {
		t.Error("Expected grazing ray inside the radius to hit")
	}
}

func TestSphere_Intersect_EpsilonRejectsSelfHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.Material{})

	// Start on the surface heading inward: the near root is 0 and must be rejected
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	if hitT, isHit := sphere.Intersect(ray); isHit {
		t.Errorf("Expected self-hit to be rejected, got t=%f", hitT)
	}

	// Heading outward both roots are <= 0
	ray = core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))
	if hitT, isHit := sphere.Intersect(ray); isHit {
		t.Errorf("Expected outward ray to miss, got t=%f", hitT)
	}
}

func TestSphere_NormalAt(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 2.0, material.Material{})
	normal := sphere.NormalAt(core.NewVec3(1, 4, 3))

	if normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Errorf("Expected normal (0,1,0), got %v", normal)
	}
}

func TestSphere_Degenerate(t *testing.T) {
	tests := []struct {
		radius   float64
		expected bool
	}{
		{1, false},
		{0.001, false},
		{0, true},
		{-1, true},
		{math.NaN(), true},
	}

	for _, tt := range tests {
		if got := NewSphere(core.Vec3{}, tt.radius, material.Material{}).Degenerate(); got != tt.expected {
			t.Errorf("radius %f: expected Degenerate()=%t, got %t", tt.radius, tt.expected, got)
		}
	}
}
