// Package registry persists the Installation Registry: which package is
// installed, at what version and path, per project. Grounded on the teacher's
// internal/lockfile.Lockfile (TOML load/save, single-file rewrite), generalized
// to the spec's JSON format and name-keyed map, with the write-temp-then-rename
// pattern from the teacher's internal/project.Save upgraded to an actual atomic
// rename rather than a plain os.Create, since the registry must survive a crash
// mid-write.
package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	hcversion "github.com/hashicorp/go-version"

	"pytoy/src/internal/model"
	"pytoy/src/internal/pkgerrors"
)

// FileName is the registry's well-known name under the install root.
const FileName = "registry.json"

// document is the on-disk shape of registry.json.
type document struct {
	Packages map[string]model.InstalledPackage `json:"packages"`
}

// Registry tracks installed packages for one project, keyed by name. All
// mutations are serialized under a single-writer lock; reads snapshot under a
// shared lock.
type Registry struct {
	path string

	mu       sync.RWMutex
	packages map[string]model.InstalledPackage
}

// Load reads path, returning an empty Registry if the file doesn't exist yet.
func Load(path string) (*Registry, error) {
	r := &Registry{path: path, packages: map[string]model.InstalledPackage{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "%v: read registry", pkgerrors.ErrConfig)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, pkgerrors.Wrapf(err, "%v: parse registry", pkgerrors.ErrConfig)
	}
	if doc.Packages != nil {
		r.packages = doc.Packages
	}
	return r, nil
}

// Save serializes the registry to pretty JSON and writes it atomically
// (write-temp-then-rename under the same parent directory).
func (r *Registry) Save() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(document{Packages: r.packages}, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(err, "encode registry")
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return pkgerrors.Wrap(err, "create install root")
	}

	tmp, err := os.CreateTemp(dir, ".registry-*.json.tmp")
	if err != nil {
		return pkgerrors.Wrap(err, "create temp registry file")
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return pkgerrors.Wrap(err, "write temp registry file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return pkgerrors.Wrap(err, "close temp registry file")
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return pkgerrors.Wrap(err, "rename temp registry file")
	}
	return nil
}

// IsInstalled reports whether name is registered at a version satisfying spec
// and its install_path still exists on disk. A path that has vanished
// out-of-band triggers self-heal: the entry is removed and persisted before
// this call returns false.
func (r *Registry) IsInstalled(name, spec string) (bool, error) {
	r.mu.RLock()
	entry, ok := r.packages[name]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if !satisfies(entry.Version, spec) {
		return false, nil
	}

	if _, err := os.Stat(entry.InstallPath); err == nil {
		return true, nil
	}

	r.mu.Lock()
	delete(r.packages, name)
	r.mu.Unlock()
	if err := r.Save(); err != nil {
		return false, err
	}
	return false, nil
}

// Register upserts pkg by name; version and install_path are overwritten and
// installed_at is stamped with the current UTC time.
func (r *Registry) Register(pkg model.Package, installPath string) error {
	r.mu.Lock()
	r.packages[pkg.Name] = model.InstalledPackage{
		Name:        pkg.Name,
		Version:     pkg.Version,
		InstallPath: installPath,
		InstalledAt: time.Now().UTC(),
	}
	r.mu.Unlock()
	return r.Save()
}

// Unregister removes name and persists, returning whether removal occurred.
func (r *Registry) Unregister(name string) (bool, error) {
	r.mu.Lock()
	_, existed := r.packages[name]
	delete(r.packages, name)
	r.mu.Unlock()
	if !existed {
		return false, nil
	}
	if err := r.Save(); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the installed entry for name, if any.
func (r *Registry) Get(name string) (model.InstalledPackage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.packages[name]
	return entry, ok
}

// List returns a snapshot of every installed package.
func (r *Registry) List() []model.InstalledPackage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.InstalledPackage, 0, len(r.packages))
	for _, entry := range r.packages {
		out = append(out, entry)
	}
	return out
}

// comparisonOperators mirrors the index package's parse grammar; it must stay
// in the same precedence order so ">=" is tried before a bare "=" would be.
var comparisonOperators = []string{"==", ">=", "<=", "~=", "!="}

// satisfies checks version against spec. "*"/"" match anything. A recognized
// operator prefix is evaluated with github.com/hashicorp/go-version so range
// specs ("<=2.0", "~=1.4") are meaningful, not just exact pins. Anything else
// falls back to exact string equality with the raw spec.
func satisfies(version, spec string) bool {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "*" {
		return true
	}

	for _, op := range comparisonOperators {
		if !strings.HasPrefix(spec, op) {
			continue
		}
		want := strings.TrimSpace(spec[len(op):])
		v, err := hcversion.NewVersion(version)
		if err != nil {
			return version == want
		}
		target, err := hcversion.NewVersion(want)
		if err != nil {
			return version == want
		}
		switch op {
		case "==":
			return v.Equal(target)
		case "!=":
			return !v.Equal(target)
		case ">=":
			return v.GreaterThanOrEqual(target)
		case "<=":
			return v.LessThanOrEqual(target)
		case "~=":
			return compatibleRelease(v, target)
		}
	}
	return version == spec
}

// compatibleRelease implements PEP 440's "~=" operator: version must be >=
// target and share target's release prefix up to its last component.
func compatibleRelease(v, target *hcversion.Version) bool {
	if v.LessThan(target) {
		return false
	}
	prefix := target.Segments()
	// Segments pads a short version to three components; only the components
	// written in the spec itself form the release prefix.
	written := strings.TrimPrefix(target.Original(), "v")
	if end := strings.IndexFunc(written, func(r rune) bool { return r != '.' && (r < '0' || r > '9') }); end >= 0 {
		written = written[:end]
	}
	if n := strings.Count(strings.TrimSuffix(written, "."), ".") + 1; n < len(prefix) {
		prefix = prefix[:n]
	}
	if len(prefix) == 0 {
		return true
	}
	vSeg := v.Segments()
	for i := 0; i < len(prefix)-1 && i < len(vSeg); i++ {
		if vSeg[i] != prefix[i] {
			return false
		}
	}
	return true
}
