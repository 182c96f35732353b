// Package resolver discovers a transitively closed, topologically ordered set
// of concrete packages from a project's direct dependencies. Grounded on the
// teacher's internal/engine.Installer.resolveParallel (concurrent per-requirement
// fan-out, mutex-guarded accumulator) for the fetch concurrency, and on
// glorpus-work-gotya's pkg/index/resolve.go resolver helper (visiting-set cycle
// detection, DFS postorder) for the graph/cycle-detection machinery, since the
// teacher's own resolver just shells out to a pip dry-run instead of building a
// graph in-process.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"pytoy/src/internal/cache"
	"pytoy/src/internal/index"
	"pytoy/src/internal/model"
	"pytoy/src/internal/pkgerrors"
	"pytoy/src/internal/telemetry"
)

// MetadataFetcher is the subset of index.Client the resolver depends on, so
// tests can supply a double instead of hitting the network.
type MetadataFetcher interface {
	FetchLatest(ctx context.Context, name string) (*model.Package, error)
	FetchVersion(ctx context.Context, name, version string) (*model.Package, error)
}

// Resolver builds a transitively closed package plan against an index, with a
// metadata cache read-through keyed "metadata:<name>:<spec>".
type Resolver struct {
	Index MetadataFetcher
	Cache *cache.Store
}

// New builds a Resolver over idx, caching metadata lookups in store.
func New(idx MetadataFetcher, store *cache.Store) *Resolver {
	return &Resolver{Index: idx, Cache: store}
}

// Resolve returns the transitive closure of direct in reverse topological order
// (every dependency appears before its dependents). An empty input yields an
// empty output. Any metadata fetch failure aborts the whole resolve; a cycle
// surfaces as pkgerrors.ErrResolutionFailed.
func (r *Resolver) Resolve(ctx context.Context, direct []model.Dependency) ([]model.Package, error) {
	done := telemetry.StartSpan("resolve.total", "direct", len(direct))
	if len(direct) == 0 {
		done("status", "ok", "resolved", 0)
		return nil, nil
	}

	g := newGraph()

	roots, err := r.fetchAll(ctx, direct)
	if err != nil {
		done("status", "error", "error", err.Error())
		return nil, err
	}
	for _, pkg := range roots {
		g.addNode(pkg)
	}

	frontier := roots
	for len(frontier) > 0 {
		expanded, err := r.expand(ctx, g, frontier)
		if err != nil {
			done("status", "error", "error", err.Error())
			return nil, err
		}
		frontier = expanded
	}

	order, err := g.topoOrder()
	if err != nil {
		done("status", "error", "error", err.Error())
		return nil, err
	}

	done("status", "ok", "resolved", len(order))
	return order, nil
}

// fetchAll resolves one Package per direct dependency, concurrently, aborting on
// the first failure.
func (r *Resolver) fetchAll(ctx context.Context, deps []model.Dependency) ([]model.Package, error) {
	type result struct {
		pkg model.Package
		err error
	}
	results := make([]result, len(deps))

	var wg sync.WaitGroup
	for i, dep := range deps {
		wg.Add(1)
		go func(i int, dep model.Dependency) {
			defer wg.Done()
			pkg, err := r.fetchCached(ctx, dep)
			if err != nil {
				results[i] = result{err: err}
				return
			}
			results[i] = result{pkg: *pkg}
		}(i, dep)
	}
	wg.Wait()

	out := make([]model.Package, 0, len(deps))
	for _, res := range results {
		if res.err != nil {
			return nil, res.err
		}
		out = append(out, res.pkg)
	}
	return out, nil
}

// expand fetches the dependencies of every package in frontier concurrently,
// wires parent->child edges into g, and returns the newly discovered packages
// (those not already present in g) to be expanded on the next round.
func (r *Resolver) expand(ctx context.Context, g *graph, frontier []model.Package) ([]model.Package, error) {
	type job struct {
		parentID string
		dep      model.Dependency
	}
	type edge struct {
		parentID string
		child    model.Package
		err      error
	}

	var jobs []job
	for _, parent := range frontier {
		for _, dep := range parent.Dependencies {
			jobs = append(jobs, job{parent.ID(), dep})
		}
	}
	if len(jobs) == 0 {
		return nil, nil
	}

	edges := make([]edge, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(i int, j job) {
			defer wg.Done()
			pkg, err := r.fetchCached(ctx, j.dep)
			if err != nil {
				edges[i] = edge{err: err}
				return
			}
			edges[i] = edge{parentID: j.parentID, child: *pkg}
		}(i, j)
	}
	wg.Wait()

	var discovered []model.Package
	for _, e := range edges {
		if e.err != nil {
			return nil, e.err
		}
		isNew := g.addNode(e.child)
		g.addEdge(e.parentID, e.child.ID())
		if isNew {
			discovered = append(discovered, e.child)
		}
	}
	return discovered, nil
}

// fetchCached resolves dep to a concrete Package, consulting the metadata cache
// first and writing back on a miss.
func (r *Resolver) fetchCached(ctx context.Context, dep model.Dependency) (*model.Package, error) {
	key := fmt.Sprintf("metadata:%s:%s", dep.Name, dep.VersionSpec)

	if raw, ok, err := r.Cache.Get(key); err == nil && ok {
		var pkg model.Package
		if jsonErr := json.Unmarshal(raw, &pkg); jsonErr == nil {
			return &pkg, nil
		}
	}

	version := index.StripOperator(dep.VersionSpec)
	var (
		pkg *model.Package
		err error
	)
	if version == "" {
		pkg, err = r.Index.FetchLatest(ctx, dep.Name)
	} else {
		pkg, err = r.Index.FetchVersion(ctx, dep.Name, version)
	}
	if err != nil {
		return nil, err
	}
	if pkg.DownloadURL == "" {
		return nil, pkgerrors.Of(pkgerrors.ErrPackageNotFound, "%s has no download url", dep.Name)
	}

	if encoded, jsonErr := json.Marshal(pkg); jsonErr == nil {
		_ = r.Cache.Put(key, encoded)
	}
	return pkg, nil
}
