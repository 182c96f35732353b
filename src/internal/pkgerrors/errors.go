// Package pkgerrors defines the error taxonomy shared across the install pipeline:
// config/manifest parsing, network transport, index lookups, dependency resolution,
// installation, cache, archive handling, and hash verification. Each kind is a sentinel
// error; call sites wrap it with context using Wrap/Wrapf and callers discriminate with
// errors.Is.
package pkgerrors

import "fmt"

var (
	// ErrConfig covers manifest and registry parse/validation failures.
	ErrConfig = fmt.Errorf("configuration error")

	// ErrNetwork covers transport failures talking to the index or downloading artifacts.
	ErrNetwork = fmt.Errorf("network error")

	// ErrPackageNotFound is returned when the index has no record for a name/spec, or a
	// resolved record is missing required fields (e.g. a download URL).
	ErrPackageNotFound = fmt.Errorf("package not found")

	// ErrResolutionFailed covers unrecoverable resolver failures: cycles, aborted
	// metadata fetches.
	ErrResolutionFailed = fmt.Errorf("resolution failed")

	// ErrInstallationFailed wraps any error surfaced from a per-package install task.
	ErrInstallationFailed = fmt.Errorf("installation failed")

	// ErrCache covers L2 disk-store corruption or I/O failures.
	ErrCache = fmt.Errorf("cache error")

	// ErrArchive covers malformed or unreadable archive contents.
	ErrArchive = fmt.Errorf("archive error")

	// ErrHashMismatch is reserved for artifact checksum verification failures.
	ErrHashMismatch = fmt.Errorf("hash mismatch")
)

// Wrap adds context to err while preserving it for errors.Is/errors.As. Returns nil if
// err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with Sprintf-style formatting of the context message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Of wraps a sentinel kind with a formatted cause, e.g. Of(ErrPackageNotFound, "%s", name).
func Of(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
