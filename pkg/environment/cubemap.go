package environment

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/loaders"
)

// Face indices in the conventional cube-map order
const (
	FacePositiveX = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ
	faceCount
)

// ErrFaceCount is returned when a cube map is not given exactly six faces
var ErrFaceCount = errors.New("cube map needs exactly 6 faces")

// CubeMap samples a six-image environment using the standard cube-map layout
// (Y-up, faces viewed from inside the cube).
type CubeMap struct {
	Faces [faceCount]*loaders.ImageData

	// ZUp treats scene Z as up and swaps the Y and Z axes before the face lookup
	ZUp bool
}

// NewCubeMap creates a cube map from six faces in +X, -X, +Y, -Y, +Z, -Z order
func NewCubeMap(faces []*loaders.ImageData, zUp bool) (*CubeMap, error) {
	if len(faces) != faceCount {
		return nil, fmt.Errorf("%w, got %d", ErrFaceCount, len(faces))
	}

	cm := &CubeMap{ZUp: zUp}
	for i, face := range faces {
		if face == nil || face.Width == 0 || face.Height == 0 {
			return nil, fmt.Errorf("cube map face %d is empty", i)
		}
		cm.Faces[i] = face
	}
	return cm, nil
}

// LoadCubeMap loads six face images from disk in +X, -X, +Y, -Y, +Z, -Z order
func LoadCubeMap(paths []string, zUp bool) (*CubeMap, error) {
	if len(paths) != faceCount {
		return nil, fmt.Errorf("%w, got %d", ErrFaceCount, len(paths))
	}

	faces := make([]*loaders.ImageData, len(paths))
	for i, path := range paths {
		face, err := loaders.LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("cube map face %d: %w", i, err)
		}
		faces[i] = face
	}
	return NewCubeMap(faces, zUp)
}

// Sample implements core.EnvironmentSampler
func (cm *CubeMap) Sample(direction core.Vec3) core.Vec3 {
	if cm.ZUp {
		direction = core.NewVec3(direction.X, direction.Z, direction.Y)
	}

	face, s, t, ok := cubeFace(direction)
	if !ok {
		return core.Vec3{}
	}
	return cm.Faces[face].Bilinear(s, t)
}

// cubeFace selects the face for direction and returns image coordinates
// (s right, t down) in [0, 1]. ok is false for the zero vector.
func cubeFace(d core.Vec3) (face int, s, t float64, ok bool) {
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)

	var sc, tc, ma float64
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if d.X > 0 {
			face, sc, tc = FacePositiveX, -d.Z, -d.Y
		} else {
			face, sc, tc = FaceNegativeX, d.Z, -d.Y
		}
	case ay >= az:
		ma = ay
		if d.Y > 0 {
			face, sc, tc = FacePositiveY, d.X, d.Z
		} else {
			face, sc, tc = FaceNegativeY, d.X, -d.Z
		}
	default:
		ma = az
		if d.Z > 0 {
			face, sc, tc = FacePositiveZ, d.X, -d.Y
		} else {
			face, sc, tc = FaceNegativeZ, -d.X, -d.Y
		}
	}

	if ma == 0 {
		return 0, 0, 0, false
	}
	return face, 0.5 * (sc/ma + 1), 0.5 * (tc/ma + 1), true
}
