package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrCreate_SeedsDefaults(t *testing.T) {
	dir := t.TempDir()

	m, path, err := LoadOrCreate(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, FileName), path)
	require.Equal(t, filepath.Base(dir), m.Project.Name)
	require.Equal(t, "3.12", m.Tool.Pytoy.PythonVersion)
	require.Equal(t, 16, m.Tool.Pytoy.ParallelDownloads)
	require.True(t, m.Tool.Pytoy.CacheEnabled)
	require.NotNil(t, m.Dependencies)
}

func TestSaveThenLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	original := Manifest{
		Project: ProjectSection{Name: "demo", Version: "1.2.3"},
		Dependencies: map[string]string{
			"requests": ">=2.0",
		},
		DevDeps: map[string]string{"pytest": "*"},
	}
	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "demo", loaded.Project.Name)
	require.Equal(t, "1.2.3", loaded.Project.Version)
	require.Equal(t, ">=2.0", loaded.Dependencies["requests"])
	require.Equal(t, "*", loaded.DevDeps["pytest"])
	require.Equal(t, "3.12", loaded.Tool.Pytoy.PythonVersion, "missing tool section should fall back to defaults")
}

func TestNormalizeDepName(t *testing.T) {
	require.Equal(t, "my-package", NormalizeDepName("My_Package"))
	require.Equal(t, "my-package", NormalizeDepName("my.package"))
}
