// Package model holds the data types shared between the index client, resolver,
// cache, and installer: the wire shape of a resolved package, the manifest's
// dependency declarations, and the installation registry's persisted record.
package model

import "time"

// Dependency is a single name + version constraint, as declared in a manifest or
// extracted from an index's requirement strings.
type Dependency struct {
	Name        string `json:"name"`
	VersionSpec string `json:"version_spec"`
}

// Package is a concrete, resolved package: a specific version with a download
// location. Identity for graph purposes is the (Name, Version) pair.
type Package struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Dependencies []Dependency `json:"dependencies"`
	DownloadURL  string       `json:"download_url"`
	Hash         string       `json:"hash,omitempty"`
	Size         int64        `json:"size,omitempty"`
	Description  string       `json:"description,omitempty"`
	Author       string       `json:"author,omitempty"`
	Homepage     string       `json:"homepage,omitempty"`
}

// ID returns the (name, version) identity string used as a graph node key.
func (p Package) ID() string {
	return p.Name + "@" + p.Version
}

// InstalledPackage is a registry entry: what's on disk and when it was put there.
type InstalledPackage struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	InstallPath string    `json:"install_path"`
	InstalledAt time.Time `json:"installed_at"`
}
