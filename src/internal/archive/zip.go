// Package archive extracts the zip-format artifacts the installer downloads.
// Grounded on the teacher's internal/core/snapshot.go, which writes zip archives
// with stdlib archive/zip for its snapshot feature; this package generalizes
// that same stdlib codec to reading, opening the archive through a memory-mapped
// view of the temp file per the installer's §4.4 contract instead of buffering it.
package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/mmap"

	"pytoy/src/internal/pkgerrors"
)

// Extract opens archivePath as a memory-mapped zip and writes every file entry
// into destDir, creating parent directories as needed. Directory entries are
// implied by their file's parent path and never written directly; any other
// non-file entry is skipped.
func Extract(archivePath, destDir string) error {
	r, err := mmap.Open(archivePath)
	if err != nil {
		return pkgerrors.Wrapf(err, "%v: open %s", pkgerrors.ErrArchive, archivePath)
	}
	defer r.Close()

	zr, err := zip.NewReader(r, int64(r.Len()))
	if err != nil {
		return pkgerrors.Wrapf(err, "%v: read zip %s", pkgerrors.ErrArchive, archivePath)
	}

	for _, entry := range zr.File {
		if err := extractEntry(entry, destDir); err != nil {
			return pkgerrors.Wrapf(err, "%v: extract %s", pkgerrors.ErrArchive, entry.Name)
		}
	}
	return nil
}

func extractEntry(entry *zip.File, destDir string) error {
	if strings.HasSuffix(entry.Name, "/") {
		return nil
	}

	target := filepath.Join(destDir, filepath.FromSlash(entry.Name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return pkgerrors.Of(pkgerrors.ErrArchive, "entry %s escapes destination", entry.Name)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, entry.Mode())
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
