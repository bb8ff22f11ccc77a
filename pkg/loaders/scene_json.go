package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SceneFile is the on-disk JSON description of a sphere scene
type SceneFile struct {
	Meta        *SceneMeta       `json:"meta,omitempty"`
	Spheres     []SphereSpec     `json:"spheres"`
	Lights      []LightSpec      `json:"lights"`
	BounceLimit *int             `json:"bounceLimit,omitempty"` // nil = scene default
	Environment *EnvironmentSpec `json:"environment,omitempty"`
	Camera      *CameraSpec      `json:"camera,omitempty"`

	// Directory the file was read from; relative environment paths resolve against it
	BaseDir string `json:"-"`
}

// SceneMeta carries the optional listing information shown by scene pickers
type SceneMeta struct {
	Name        string `json:"name"`
	Variant     string `json:"variant"`
	Description string `json:"description"`
	Group       string `json:"group"`
}

// SphereSpec describes one sphere
type SphereSpec struct {
	Center   [3]float64   `json:"center"`
	Radius   float64      `json:"radius"`
	Material MaterialSpec `json:"material"`
}

// MaterialSpec describes Blinn-Phong coefficients
type MaterialSpec struct {
	Kd [3]float64 `json:"kd"`
	Ks [3]float64 `json:"ks"`
	N  float64    `json:"n"`
}

// LightSpec describes a point light
type LightSpec struct {
	Position  [3]float64 `json:"position"`
	Intensity [3]float64 `json:"intensity"`
}

// EnvironmentSpec selects and parameterizes the background
type EnvironmentSpec struct {
	Type   string     `json:"type"` // "solid", "gradient" or "cubemap"
	Color  [3]float64 `json:"color"`
	Top    [3]float64 `json:"top"`
	Bottom [3]float64 `json:"bottom"`
	Faces  []string   `json:"faces"` // +X, -X, +Y, -Y, +Z, -Z
	ZUp    bool       `json:"zUp"`
}

// CameraSpec describes the viewpoint and output size
type CameraSpec struct {
	Center [3]float64 `json:"center"`
	LookAt [3]float64 `json:"lookAt"`
	Up     [3]float64 `json:"up"`
	VFov   float64    `json:"vfov"`
	Width  int        `json:"width"`
	Height int        `json:"height"`

	ModelView *ModelViewSpec `json:"modelView,omitempty"`
}

// ModelViewSpec is a world transform as translation * rotY * rotX, angles in degrees
type ModelViewSpec struct {
	Translation [3]float64 `json:"translation"`
	RotX        float64    `json:"rotX"`
	RotY        float64    `json:"rotY"`
}

// ParseSceneJSON decodes a scene description, rejecting unknown fields
func ParseSceneJSON(reader io.Reader) (*SceneFile, error) {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	var file SceneFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse scene JSON: %w", err)
	}
	return &file, nil
}

// LoadSceneJSON reads a scene description from disk
func LoadSceneJSON(filename string) (*SceneFile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	file, err := ParseSceneJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	file.BaseDir = filepath.Dir(filename)
	return file, nil
}

// ResolvePath returns path unchanged if absolute, otherwise relative to the file's directory
func (f *SceneFile) ResolvePath(path string) string {
	if filepath.IsAbs(path) || f.BaseDir == "" {
		return path
	}
	return filepath.Join(f.BaseDir, path)
}
