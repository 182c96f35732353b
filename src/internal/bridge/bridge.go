// Package bridge publishes a project's install root into the host Python
// interpreter's search path: the Host-Interpreter Bridge. Grounded verbatim in
// approach on the teacher's cmd/runtime_helper.go (detectVenvSitePackages):
// invoke the interpreter with a one-liner that prints its per-user site-packages
// directory, then write a single .pth file there — the same mechanism the
// teacher's internal/python/manager.go (patchPthFile) uses to get CPython's site
// module to pick up a directory, generalized from editing an existing ._pth file
// to writing pytoy's own standalone one.
package bridge

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"pytoy/src/internal/pkgerrors"
)

// pthFileName is the .pth file pytoy writes into the interpreter's
// site-packages-adjacent directory.
const pthFileName = "pytoy.pth"

// SitePackagesDir invokes pythonExe to discover its per-user site-packages
// directory, the well-known location CPython's site module already scans.
func SitePackagesDir(pythonExe string) (string, error) {
	cmd := exec.Command(pythonExe, "-c", "import site; print(site.getusersitepackages())")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", pkgerrors.Wrapf(err, "%v: detect site-packages for %s", pkgerrors.ErrInstallationFailed, pythonExe)
	}
	dir := strings.TrimSpace(string(out))
	if dir == "" {
		return "", pkgerrors.Of(pkgerrors.ErrInstallationFailed, "empty site-packages path from %s", pythonExe)
	}
	return dir, nil
}

// Publish writes installRoot into pythonExe's site-packages via a .pth file.
// Failure here is a post-install warning per the spec, never fatal to the
// install itself.
func Publish(pythonExe, installRoot string) error {
	siteDir, err := SitePackagesDir(pythonExe)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(siteDir, 0755); err != nil {
		return pkgerrors.Wrap(err, "create site-packages dir")
	}

	abs, err := filepath.Abs(installRoot)
	if err != nil {
		return pkgerrors.Wrap(err, "resolve install root")
	}

	return os.WriteFile(filepath.Join(siteDir, pthFileName), []byte(abs+"\n"), 0644)
}

// Unpublish removes the .pth file pytoy wrote via Publish, used on uninstall-all.
func Unpublish(pythonExe string) error {
	siteDir, err := SitePackagesDir(pythonExe)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(siteDir, pthFileName))
	if err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrap(err, "remove bridge file")
	}
	return nil
}
