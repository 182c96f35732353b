package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestZip(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func TestExtract_WritesFileEntries(t *testing.T) {
	archivePath := writeTestZip(t, map[string]string{
		"pkg/__init__.py": "print('hi')",
		"pkg/mod.py":       "x = 1",
	})

	destDir := t.TempDir()
	require.NoError(t, Extract(archivePath, destDir))

	data, err := os.ReadFile(filepath.Join(destDir, "pkg", "__init__.py"))
	require.NoError(t, err)
	require.Equal(t, "print('hi')", string(data))

	data, err = os.ReadFile(filepath.Join(destDir, "pkg", "mod.py"))
	require.NoError(t, err)
	require.Equal(t, "x = 1", string(data))
}

func TestExtract_RejectsPathTraversal(t *testing.T) {
	archivePath := writeTestZip(t, map[string]string{
		"../escape.py": "evil",
	})

	destDir := t.TempDir()
	err := Extract(archivePath, destDir)
	require.Error(t, err)
}
