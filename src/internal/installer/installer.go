// Package installer orchestrates download, cache, extraction, and registration
// for a resolved plan under a concurrency bound. Grounded on the teacher's
// internal/engine.Installer.Install worker-pool structure (buffered job channel,
// bounded extraction semaphore, sync.WaitGroup join, first-error propagation)
// and its cache-first download path (cache.CAS.StoreBlobFromURL), generalized to
// the spec's skip/do partitioning against the Installation Registry and its
// zip-only, memory-mapped extraction contract (internal/archive).
package installer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pytoy/src/internal/archive"
	"pytoy/src/internal/cache"
	"pytoy/src/internal/model"
	"pytoy/src/internal/pkgerrors"
	"pytoy/src/internal/registry"
	"pytoy/src/internal/telemetry"
)

// DefaultMaxConcurrentInstalls matches the spec's MAX_CONCURRENT_INSTALLS
// default, governing both the download and extraction phases.
const DefaultMaxConcurrentInstalls = 16

// Installer materializes a resolved plan onto disk.
type Installer struct {
	Cache                 *cache.Store
	MaxConcurrentInstalls int
	http                  *http.Client
}

// New builds an Installer backed by store, with the default concurrency bound.
func New(store *cache.Store) *Installer {
	return &Installer{
		Cache:                 store,
		MaxConcurrentInstalls: DefaultMaxConcurrentInstalls,
		http:                  &http.Client{Timeout: 2 * time.Minute},
	}
}

// Install ensures installRoot exists, skips packages the registry already has
// at a satisfying version with an extant path, and installs the rest under a
// semaphore of MaxConcurrentInstalls. The plan is assumed dependency-first;
// that ordering is advisory here, not a serialization constraint, since the
// registry is the sole point of shared mutation and serializes its own writes.
func (i *Installer) Install(ctx context.Context, plan []model.Package, installRoot string, reg *registry.Registry) (retErr error) {
	done := telemetry.StartSpan("install.total", "packages", len(plan))
	defer func() {
		fields := []any{"status", "ok"}
		if retErr != nil {
			fields = []any{"status", "error", "error", retErr.Error()}
		}
		done(fields...)
	}()

	if len(plan) == 0 {
		return nil
	}
	if err := os.MkdirAll(installRoot, 0755); err != nil {
		return pkgerrors.Wrap(err, "create install root")
	}

	var do []model.Package
	skipped := 0
	for _, pkg := range plan {
		installed, err := reg.IsInstalled(pkg.Name, "=="+pkg.Version)
		if err != nil {
			return err
		}
		if installed {
			skipped++
			continue
		}
		do = append(do, pkg)
	}
	telemetry.Event("install.plan_partitioned", "skip", skipped, "do", len(do))
	if len(do) == 0 {
		return nil
	}

	workers := i.MaxConcurrentInstalls
	if workers < 1 {
		workers = DefaultMaxConcurrentInstalls
	}

	jobs := make(chan model.Package)
	errCh := make(chan error, len(do))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pkg := range jobs {
				if err := i.installOne(ctx, pkg, installRoot, reg); err != nil {
					errCh <- err
				}
			}
		}()
	}

	for _, pkg := range do {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- pkg:
		}
	}
	close(jobs)
	wg.Wait()
	close(errCh)

	if len(errCh) > 0 {
		return pkgerrors.Wrapf(<-errCh, "%v", pkgerrors.ErrInstallationFailed)
	}
	return nil
}

func (i *Installer) installOne(ctx context.Context, pkg model.Package, installRoot string, reg *registry.Registry) (retErr error) {
	done := telemetry.StartSpan("install.package", "name", pkg.Name, "version", pkg.Version)
	defer func() {
		fields := []any{"status", "ok"}
		if retErr != nil {
			fields = []any{"status", "error", "error", retErr.Error()}
		}
		done(fields...)
	}()

	cacheKey := "artifact:" + pkg.Name + ":" + pkg.Version
	blob, hit, err := i.Cache.Get(cacheKey)
	if err != nil {
		return err
	}
	if !hit {
		blob, err = i.download(ctx, pkg)
		if err != nil {
			return err
		}
		if err := i.Cache.Put(cacheKey, blob); err != nil {
			telemetry.Event("install.cache_put_failed", "name", pkg.Name, "error", err.Error())
		}
	}

	tmp, err := os.CreateTemp("", sanitizeName(pkg.Name)+".*.zip")
	if err != nil {
		return pkgerrors.Wrap(err, "create temp archive file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return pkgerrors.Wrap(err, "write temp archive file")
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.Wrap(err, "close temp archive file")
	}

	destDir := filepath.Join(installRoot, pkg.Name)
	if err := archive.Extract(tmpPath, destDir); err != nil {
		return err
	}

	return reg.Register(pkg, destDir)
}

func (i *Installer) download(ctx context.Context, pkg model.Package) ([]byte, error) {
	if pkg.DownloadURL == "" {
		return nil, pkgerrors.Of(pkgerrors.ErrPackageNotFound, "%s has no download url", pkg.Name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pkg.DownloadURL, nil)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "build download request for %s", pkg.Name)
	}
	resp, err := i.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Of(pkgerrors.ErrNetwork, "download %s", pkg.Name)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.Of(pkgerrors.ErrNetwork, "download %s: status %d", pkg.Name, resp.StatusCode)
	}

	hasher := sha256.New()
	body, err := io.ReadAll(io.TeeReader(resp.Body, hasher))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "read body for %s", pkg.Name)
	}

	if pkg.Hash != "" {
		actual := hex.EncodeToString(hasher.Sum(nil))
		if !strings.EqualFold(actual, pkg.Hash) {
			return nil, pkgerrors.Of(pkgerrors.ErrHashMismatch, "%s: expected %s got %s", pkg.Name, pkg.Hash, actual)
		}
	}
	return body, nil
}

func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '_'
		}
		return r
	}, name)
}
