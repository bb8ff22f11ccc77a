package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"mirror-hall", "Mirror Hall"},
		{"sphere_grid", "Sphere Grid"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseJSONMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.json",
			content: `{"meta": {"name": "Mirror Box", "variant": "Deep", "description": "Mirrors all around", "group": "Mirrors"},
				"spheres": [], "lights": []}`,
			expected: SceneInfo{
				Name:        "Mirror Box",
				DisplayName: "Mirror Box - Deep",
				Description: "Mirrors all around",
				Group:       "Mirrors",
				Type:        "json",
				Variant:     "Deep",
			},
		},
		{
			name:    "partial_metadata.json",
			content: `{"meta": {"name": "Orbs", "description": "Three orbs"}, "spheres": [], "lights": []}`,
			expected: SceneInfo{
				Name:        "Orbs",
				DisplayName: "Orbs",
				Description: "Three orbs",
				Group:       "JSON Scenes", // Default group
				Type:        "json",
			},
		},
		{
			name:    "no_metadata.json",
			content: `{"spheres": [], "lights": []}`,
			expected: SceneInfo{
				Name:        "No Metadata", // From filename
				DisplayName: "No Metadata",
				Group:       "JSON Scenes",
				Type:        "json",
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("Failed to write temp file: %v", err)
			}

			result, err := ParseJSONMetadata(path)
			if err != nil {
				t.Fatalf("ParseJSONMetadata() error: %v", err)
			}

			if result.ID != "json:"+path {
				t.Errorf("ID = %q, want %q", result.ID, "json:"+path)
			}
			if result.FilePath != path {
				t.Errorf("FilePath = %q, want %q", result.FilePath, path)
			}
			if result.Name != tc.expected.Name {
				t.Errorf("Name = %q, want %q", result.Name, tc.expected.Name)
			}
			if result.DisplayName != tc.expected.DisplayName {
				t.Errorf("DisplayName = %q, want %q", result.DisplayName, tc.expected.DisplayName)
			}
			if result.Description != tc.expected.Description {
				t.Errorf("Description = %q, want %q", result.Description, tc.expected.Description)
			}
			if result.Group != tc.expected.Group {
				t.Errorf("Group = %q, want %q", result.Group, tc.expected.Group)
			}
			if result.Type != tc.expected.Type {
				t.Errorf("Type = %q, want %q", result.Type, tc.expected.Type)
			}
			if result.Variant != tc.expected.Variant {
				t.Errorf("Variant = %q, want %q", result.Variant, tc.expected.Variant)
			}
		})
	}
}

func TestListJSONScenesIn(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b-scene.json": `{"spheres": [], "lights": []}`,
		"a-scene.json": `{"spheres": [], "lights": []}`,
		"broken.json":  `{"spheres": [`,
		"notes.txt":    `not a scene`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	scenes, err := listJSONScenesIn(dir)
	if err != nil {
		t.Fatalf("listJSONScenesIn() error: %v", err)
	}

	// Broken file is skipped, non-JSON ignored, remainder sorted
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].DisplayName != "A Scene" || scenes[1].DisplayName != "B Scene" {
		t.Errorf("Expected sorted [A Scene, B Scene], got [%s, %s]", scenes[0].DisplayName, scenes[1].DisplayName)
	}
}

func TestListAllScenes(t *testing.T) {
	response, err := ListAllScenes()
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	if len(response.Groups) == 0 {
		t.Fatal("ListAllScenes() returned no groups")
	}

	// Built-in group always comes first
	builtIn := response.Groups[0]
	if builtIn.Name != "Built-in Scenes" {
		t.Fatalf("First group = %q, want Built-in Scenes", builtIn.Name)
	}

	expectedScenes := []string{"default", "mirror-hall", "sphere-grid"}
	if len(builtIn.Scenes) != len(expectedScenes) {
		t.Errorf("Built-in scenes count = %d, want %d", len(builtIn.Scenes), len(expectedScenes))
	}

	sceneIDs := make(map[string]bool)
	for _, scene := range builtIn.Scenes {
		sceneIDs[scene.ID] = true
	}
	for _, expectedID := range expectedScenes {
		if !sceneIDs[expectedID] {
			t.Errorf("Missing expected built-in scene: %s", expectedID)
		}
	}
}

func TestGroupScenes_Ordering(t *testing.T) {
	response := groupScenes([]SceneInfo{
		{ID: "z", Group: "Zeta"},
		{ID: "b", Group: "Built-in Scenes"},
		{ID: "a", Group: "Alpha"},
	})

	want := []string{"Built-in Scenes", "Alpha", "Zeta"}
	if len(response.Groups) != len(want) {
		t.Fatalf("Expected %d groups, got %d", len(want), len(response.Groups))
	}
	for i, name := range want {
		if response.Groups[i].Name != name {
			t.Errorf("Group %d = %q, want %q", i, response.Groups[i].Name, name)
		}
	}
}

func TestCreate(t *testing.T) {
	for _, info := range BuiltInScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Create(info.ID)
			if err != nil {
				t.Fatalf("Create(%q) error: %v", info.ID, err)
			}
			if s.Camera == nil {
				t.Error("Expected camera to be built")
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Expected spheres in built-in scene")
			}
		})
	}

	if _, err := Create("no-such-scene"); err == nil {
		t.Error("Expected error for unknown scene")
	}
}
