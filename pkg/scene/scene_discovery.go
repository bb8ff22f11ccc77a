package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/loaders"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to JSON file (json type only)
	Variant     string `json:"variant"`     // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtInGroup = "Built-in Scenes"

// BuiltInScenes lists the scenes constructed in code
func BuiltInScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "default",
			Name:        "Default Scene",
			DisplayName: "Default Scene",
			Description: "Matte, plastic, mirror and metal spheres on a ground sphere",
			Group:       builtInGroup,
			Type:        "builtin",
		},
		{
			ID:          "mirror-hall",
			Name:        "Mirror Hall",
			DisplayName: "Mirror Hall",
			Description: "Two facing mirrors showing the bounce limit",
			Group:       builtInGroup,
			Type:        "builtin",
		},
		{
			ID:          "sphere-grid",
			Name:        "Sphere Grid",
			DisplayName: "Sphere Grid",
			Description: "10x10 grid of rainbow-colored reflective spheres",
			Group:       builtInGroup,
			Type:        "builtin",
		},
	}
}

// Create builds a scene by built-in ID or JSON file path and prepares it for rendering
func Create(id string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	if strings.HasSuffix(id, ".json") {
		return LoadFile(id, cameraOverrides...)
	}
	if path, ok := strings.CutPrefix(id, "json:"); ok {
		return LoadFile(path, cameraOverrides...)
	}

	var s *Scene
	switch id {
	case "default", "":
		s = NewDefaultScene(cameraOverrides...)
	case "mirror-hall":
		s = NewMirrorHallScene(cameraOverrides...)
	case "sphere-grid":
		s = NewSphereGridScene(10, cameraOverrides...)
	default:
		return nil, fmt.Errorf("unknown scene: %q", id)
	}

	if err := s.Preprocess(); err != nil {
		return nil, err
	}
	return s, nil
}

// findScenesDir returns the first scenes directory that exists, or ""
func findScenesDir() string {
	for _, path := range []string{"scenes", "../scenes"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ListJSONScenes scans the scenes directory and returns discovered JSON scenes
func ListJSONScenes() ([]SceneInfo, error) {
	scenesDir := findScenesDir()
	if scenesDir == "" {
		return []SceneInfo{}, nil
	}
	return listJSONScenesIn(scenesDir)
}

func listJSONScenesIn(scenesDir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(scenesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		sceneInfo, err := ParseJSONMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseJSONMetadata extracts listing information from a JSON scene file,
// falling back to values derived from the file name
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          "json:" + filePath,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "JSON Scenes",
		Type:        "json",
		FilePath:    filePath,
	}

	file, err := loaders.LoadSceneJSON(filePath)
	if err != nil {
		return sceneInfo, err
	}

	if meta := file.Meta; meta != nil {
		if meta.Name != "" {
			sceneInfo.Name = meta.Name
		}
		if meta.Group != "" {
			sceneInfo.Group = meta.Group
		}
		sceneInfo.Variant = meta.Variant
		sceneInfo.Description = meta.Description
	}

	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}

	return sceneInfo, nil
}

// ListAllScenes returns both built-in and JSON scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	jsonScenes, err := ListJSONScenes()
	if err != nil {
		return ScenesResponse{}, fmt.Errorf("failed to list JSON scenes: %w", err)
	}
	return groupScenes(append(BuiltInScenes(), jsonScenes...)), nil
}

// groupScenes groups scenes by their Group field, built-in first, then alphabetical
func groupScenes(allScenes []SceneInfo) ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtIn, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   builtInGroup,
			Scenes: builtIn,
		})
	}

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response
}

// titleCase converts a filename-style string to title case
// e.g., "mirror-hall" -> "Mirror Hall"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
