// Package manifest loads and saves the project manifest (pytoy.toml): the direct
// dependency declarations and per-project tool settings the resolver and installer
// are driven from.
package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest's well-known name at the project root.
const FileName = "pytoy.toml"

// Manifest is the decoded form of pytoy.toml.
type Manifest struct {
	Project      ProjectSection    `toml:"project"`
	Dependencies map[string]string `toml:"dependencies"`
	DevDeps      map[string]string `toml:"dev-dependencies"`
	Tool         ToolSection       `toml:"tool"`
}

// ProjectSection is the [project] table.
type ProjectSection struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
}

// ToolSection wraps [tool.pytoy], following the same nested-table convention as
// other ecosystem manifests that namespace tool-specific settings.
type ToolSection struct {
	Pytoy PytoySettings `toml:"pytoy"`
}

// PytoySettings is [tool.pytoy].
type PytoySettings struct {
	PythonVersion     string `toml:"python-version"`
	ParallelDownloads int    `toml:"parallel-downloads"`
	CacheEnabled      bool   `toml:"cache-enabled"`
	InstallDir        string `toml:"install-dir"`
}

// defaults matches the teacher's project.NewDefault: fields a fresh manifest is
// seeded with when none exists yet.
func defaults(projectDir string) Manifest {
	return Manifest{
		Project: ProjectSection{
			Name:    filepath.Base(projectDir),
			Version: "0.1.0",
		},
		Dependencies: map[string]string{},
		DevDeps:      map[string]string{},
		Tool: ToolSection{
			Pytoy: PytoySettings{
				PythonVersion:     "3.12",
				ParallelDownloads: 16,
				CacheEnabled:      true,
				InstallDir:        filepath.Join(".pytoy", "packages"),
			},
		},
	}
}

// LoadOrCreate loads pytoy.toml from projectDir, creating it with defaults if absent.
func LoadOrCreate(projectDir string) (Manifest, string, error) {
	path := filepath.Join(projectDir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		m := defaults(projectDir)
		if err := Save(path, m); err != nil {
			return Manifest{}, "", err
		}
		return m, path, nil
	}
	m, err := Load(path)
	return m, path, err
}

// Load decodes the manifest at path, filling in empty dependency tables and the
// [tool.pytoy] python-version, parallel-downloads and install-dir defaults.
func Load(path string) (Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Manifest{}, err
	}
	applyDefaults(&m)
	return m, nil
}

// Save writes m to path as TOML.
func Save(path string, m Manifest) error {
	applyDefaults(&m)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(m)
}

func applyDefaults(m *Manifest) {
	if m.Dependencies == nil {
		m.Dependencies = map[string]string{}
	}
	if m.DevDeps == nil {
		m.DevDeps = map[string]string{}
	}
	if m.Tool.Pytoy.PythonVersion == "" {
		m.Tool.Pytoy.PythonVersion = "3.12"
	}
	if m.Tool.Pytoy.ParallelDownloads == 0 {
		m.Tool.Pytoy.ParallelDownloads = 16
	}
	if m.Tool.Pytoy.InstallDir == "" {
		m.Tool.Pytoy.InstallDir = filepath.Join(".pytoy", "packages")
	}
}

// NormalizeDepName canonicalizes a dependency name for map-key comparisons, matching
// the ecosystem's PEP 503 normalization rule (case-fold, '_'/'.' collapse to '-').
func NormalizeDepName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(name, "_", "-"), ".", "-"))
}
