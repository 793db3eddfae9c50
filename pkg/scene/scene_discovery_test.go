package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"glass-spheres", "Glass Spheres"},
		{"dragon_gold", "Dragon Gold"},
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

func TestParseSceneMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.yaml",
			content: `# Scene: Glass Trio
# Description: Three glass spheres

camera:
  center: [0, 0, 0]`,
			expected: SceneInfo{Name: "Glass Trio", Description: "Three glass spheres", Type: "file"},
		},
		{
			name:     "no_metadata.json",
			content:  `{"objects": []}`,
			expected: SceneInfo{Name: "No Metadata", Type: "file"},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			result, err := ParseSceneMetadata(path)
			require.NoError(t, err)

			tc.expected.ID = path
			tc.expected.FilePath = path
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b-scene.yaml"), []byte("# Scene: Beta\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a-scene.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	scenes, err := ListSceneFiles(dir)
	require.NoError(t, err)
	require.Len(t, scenes, 2)
	assert.Equal(t, "A Scene", scenes[0].Name)
	assert.Equal(t, "Beta", scenes[1].Name)
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.NotNil(t, scenes)
	assert.Empty(t, scenes)
}

func TestLookup(t *testing.T) {
	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Lookup(info.ID)
			require.NoError(t, err)
			assert.Equal(t, info.ID, s.Name)
			assert.NotEmpty(t, s.Objects)
			assert.NotEmpty(t, s.Lights)
		})
	}

	_, err := Lookup("cornell-box")
	assert.True(t, errors.Is(err, ErrUnknownScene))
}
