package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pytoy/src/internal/model"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "registry.json"))
	require.NoError(t, err)
	require.Empty(t, r.List())
}

func TestRegisterThenIsInstalled(t *testing.T) {
	dir := t.TempDir()
	installPath := filepath.Join(dir, "alpha")
	require.NoError(t, os.MkdirAll(installPath, 0755))

	r, err := Load(filepath.Join(dir, FileName))
	require.NoError(t, err)

	pkg := model.Package{Name: "alpha", Version: "1.0.0"}
	require.NoError(t, r.Register(pkg, installPath))

	ok, err := r.IsInstalled("alpha", "*")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.IsInstalled("alpha", "==1.0.0")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.IsInstalled("alpha", "==2.0.0")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIsInstalled_SelfHealsVanishedPath(t *testing.T) {
	dir := t.TempDir()
	installPath := filepath.Join(dir, "alpha")
	require.NoError(t, os.MkdirAll(installPath, 0755))

	r, err := Load(filepath.Join(dir, FileName))
	require.NoError(t, err)
	require.NoError(t, r.Register(model.Package{Name: "alpha", Version: "1.0.0"}, installPath))

	require.NoError(t, os.RemoveAll(installPath))

	ok, err := r.IsInstalled("alpha", "*")
	require.NoError(t, err)
	require.False(t, ok)

	_, stillThere := r.Get("alpha")
	require.False(t, stillThere)
}

func TestUnregister(t *testing.T) {
	dir := t.TempDir()
	r, err := Load(filepath.Join(dir, FileName))
	require.NoError(t, err)
	require.NoError(t, r.Register(model.Package{Name: "alpha", Version: "1.0.0"}, dir))

	removed, err := r.Unregister("alpha")
	require.NoError(t, err)
	require.True(t, removed)

	ok, err := r.IsInstalled("alpha", "*")
	require.NoError(t, err)
	require.False(t, ok)

	removed, err = r.Unregister("alpha")
	require.NoError(t, err)
	require.False(t, removed)
}

func TestIsInstalled_RangeOperators(t *testing.T) {
	dir := t.TempDir()
	installPath := filepath.Join(dir, "alpha")
	require.NoError(t, os.MkdirAll(installPath, 0755))

	r, err := Load(filepath.Join(dir, FileName))
	require.NoError(t, err)
	require.NoError(t, r.Register(model.Package{Name: "alpha", Version: "1.4.2"}, installPath))

	cases := []struct {
		spec string
		want bool
	}{
		{">=1.0", true},
		{">=2.0", false},
		{"<=1.4.2", true},
		{"<=1.0", false},
		{"!=1.4.2", false},
		{"!=9.9.9", true},
		{"~=1.4", true},
		{"~=1.5", false},
	}
	for _, c := range cases {
		ok, err := r.IsInstalled("alpha", c.spec)
		require.NoError(t, err)
		require.Equalf(t, c.want, ok, "spec %q", c.spec)
	}
}

func TestSaveThenLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	r, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, r.Register(model.Package{Name: "alpha", Version: "1.0.0"}, dir))

	reloaded, err := Load(path)
	require.NoError(t, err)
	entry, ok := reloaded.Get("alpha")
	require.True(t, ok)
	require.Equal(t, "1.0.0", entry.Version)
}
