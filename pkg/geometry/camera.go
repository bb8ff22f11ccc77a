package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// CameraConfig contains the viewpoint and image dimensions
type CameraConfig struct {
	Center core.Vec3 // Eye position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Up direction
	VFov   float64   // Vertical field of view in degrees
	Width  int       // Image width in pixels
	Height int       // Image height in pixels

	// ModelView, when set, replaces Center/LookAt/Up
	ModelView *ModelView
}

// ModelView places the world relative to a camera fixed at the origin
// looking down -Z. Angles are in radians.
type ModelView struct {
	Translation core.Vec3
	RotX, RotY  float64
}

// DefaultCameraConfig returns a camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45.0,
		Width:  400,
		Height: 300,
	}
}

// Camera generates one primary ray per pixel through the pixel center
type Camera struct {
	origin        core.Vec3
	cameraToWorld mgl64.Mat4
	halfWidth     float64 // Half extent of the image plane at distance 1
	halfHeight    float64
	width         int
	height        int
}

// NewCamera creates a look-at camera, or a model-view camera when config.ModelView is set
func NewCamera(config CameraConfig) *Camera {
	if mv := config.ModelView; mv != nil {
		return NewCameraFromModelView(mv.Translation, mv.RotX, mv.RotY, config.VFov, config.Width, config.Height)
	}
	view := mgl64.LookAtV(toMgl(config.Center), toMgl(config.LookAt), toMgl(config.Up))
	return newCamera(view.Inv(), config.VFov, config.Width, config.Height)
}

// NewCameraFromModelView creates a camera from a model-view transform built as
// translation * rotY * rotX (angles in radians). The transform maps world
// space into camera space, where the eye sits at the origin looking down -Z.
func NewCameraFromModelView(translation core.Vec3, rotX, rotY, vfov float64, width, height int) *Camera {
	modelView := mgl64.Translate3D(translation.X, translation.Y, translation.Z).
		Mul4(mgl64.HomogRotate3DY(rotY)).
		Mul4(mgl64.HomogRotate3DX(rotX))
	return newCamera(modelView.Inv(), vfov, width, height)
}

func newCamera(cameraToWorld mgl64.Mat4, vfov float64, width, height int) *Camera {
	width = max(width, 1)
	height = max(height, 1)

	halfHeight := math.Tan(vfov * math.Pi / 360.0)
	halfWidth := halfHeight * float64(width) / float64(height)

	origin := cameraToWorld.Mul4x1(mgl64.Vec4{0, 0, 0, 1})

	return &Camera{
		origin:        core.NewVec3(origin.X(), origin.Y(), origin.Z()),
		cameraToWorld: cameraToWorld,
		halfWidth:     halfWidth,
		halfHeight:    halfHeight,
		width:         width,
		height:        height,
	}
}

// GetRay returns the primary ray through the center of pixel (i, j),
// with (0, 0) the top-left pixel
func (c *Camera) GetRay(i, j int) core.Ray {
	x := (2*(float64(i)+0.5)/float64(c.width) - 1) * c.halfWidth
	y := (1 - 2*(float64(j)+0.5)/float64(c.height)) * c.halfHeight

	dir := c.cameraToWorld.Mul4x1(mgl64.Vec4{x, y, -1, 0})
	return core.NewRay(c.origin, core.NewVec3(dir.X(), dir.Y(), dir.Z()))
}

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	dir := c.cameraToWorld.Mul4x1(mgl64.Vec4{0, 0, -1, 0})
	return core.NewVec3(dir.X(), dir.Y(), dir.Z()).Normalize()
}

// Origin returns the eye position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// Size returns the image dimensions in pixels
func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// MergeCameraConfig applies the non-zero fields of override on top of base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov > 0 {
		result.VFov = override.VFov
	}
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.ModelView != nil {
		result.ModelView = override.ModelView
	}
	return result
}
