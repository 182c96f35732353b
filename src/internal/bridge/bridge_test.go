package bridge

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakePython writes a tiny shell script that mimics `python -c "import site; ..."`
// by printing a fixed directory, so Publish/Unpublish can be exercised without a
// real interpreter on the test machine.
func fakePython(t *testing.T, siteDir string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreter script is POSIX-shell only")
	}
	script := filepath.Join(t.TempDir(), "fake-python")
	content := "#!/bin/sh\necho " + siteDir + "\n"
	require.NoError(t, os.WriteFile(script, []byte(content), 0755))
	return script
}

func TestPublish_WritesPthFile(t *testing.T) {
	siteDir := t.TempDir()
	python := fakePython(t, siteDir)

	installRoot := t.TempDir()
	require.NoError(t, Publish(python, installRoot))

	data, err := os.ReadFile(filepath.Join(siteDir, pthFileName))
	require.NoError(t, err)

	abs, err := filepath.Abs(installRoot)
	require.NoError(t, err)
	require.Equal(t, abs+"\n", string(data))
}

func TestUnpublish_RemovesPthFile(t *testing.T) {
	siteDir := t.TempDir()
	python := fakePython(t, siteDir)

	require.NoError(t, Publish(python, t.TempDir()))
	require.NoError(t, Unpublish(python))

	_, err := os.Stat(filepath.Join(siteDir, pthFileName))
	require.True(t, os.IsNotExist(err))
}

func TestUnpublish_MissingFileIsNotAnError(t *testing.T) {
	siteDir := t.TempDir()
	python := fakePython(t, siteDir)

	require.NoError(t, Unpublish(python))
}
