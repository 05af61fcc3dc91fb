package testdata_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	sass "github.com/sassgo/sass"
)

// TestFixtures pairs every fixtures/<name>.scss with fixtures/<name>.css
// and asserts the compile matches byte for byte. Helper files starting
// with an underscore are reachable through @import but not compiled
// directly.
func TestFixtures(t *testing.T) {
	fixturesDir := "fixtures"
	entries, err := os.ReadDir(fixturesDir)
	require.NoError(t, err, "failed to read fixtures directory")

	fixtures := make(map[string]map[string]string)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "_") {
			continue
		}
		ext := filepath.Ext(name)
		baseName := strings.TrimSuffix(name, ext)

		if fixtures[baseName] == nil {
			fixtures[baseName] = make(map[string]string)
		}
		content, err := os.ReadFile(filepath.Join(fixturesDir, name))
		require.NoError(t, err, "failed to read %s", name)
		fixtures[baseName][strings.TrimPrefix(ext, ".")] = string(content)
	}

	for fixtureName, files := range fixtures {
		t.Run(fixtureName, func(t *testing.T) {
			scss, ok := files["scss"]
			require.True(t, ok, "missing .scss file for fixture %s", fixtureName)

			expected, ok := files["css"]
			require.True(t, ok, "missing .css file for fixture %s", fixtureName)

			result, err := sass.Compile(sass.Import{
				Path:    fixtureName + ".scss",
				Content: scss,
			}, sass.Options{FS: os.DirFS(fixturesDir)})
			require.NoError(t, err, "compiling %s", fixtureName)
			require.Equal(t, expected, result.CSS, "fixture %s", fixtureName)
		})
	}
}
