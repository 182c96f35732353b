package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pytoy/src/internal/cache"
	"pytoy/src/internal/model"
)

type fakeFetcher struct {
	byName map[string]model.Package
}

func (f *fakeFetcher) FetchLatest(ctx context.Context, name string) (*model.Package, error) {
	pkg, ok := f.byName[name]
	if !ok {
		return nil, errNotFound(name)
	}
	return &pkg, nil
}

func (f *fakeFetcher) FetchVersion(ctx context.Context, name, version string) (*model.Package, error) {
	return f.FetchLatest(ctx, name)
}

type notFoundErr string

func (e notFoundErr) Error() string { return "not found: " + string(e) }

func errNotFound(name string) error { return notFoundErr(name) }

func newTestResolver(t *testing.T, fetcher MetadataFetcher) *Resolver {
	t.Helper()
	store, err := cache.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(fetcher, store)
}

func TestResolve_EmptyInput(t *testing.T) {
	r := newTestResolver(t, &fakeFetcher{})
	out, err := r.Resolve(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestResolve_CleanInstall(t *testing.T) {
	fetcher := &fakeFetcher{byName: map[string]model.Package{
		"alpha": {Name: "alpha", Version: "1.0", DownloadURL: "http://x/alpha.whl"},
	}}
	r := newTestResolver(t, fetcher)

	out, err := r.Resolve(context.Background(), []model.Dependency{{Name: "alpha", VersionSpec: "*"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "alpha", out[0].Name)
}

func TestResolve_Diamond(t *testing.T) {
	fetcher := &fakeFetcher{byName: map[string]model.Package{
		"a": {Name: "a", Version: "1.0", DownloadURL: "http://x/a.whl", Dependencies: []model.Dependency{{Name: "c", VersionSpec: "*"}}},
		"b": {Name: "b", Version: "1.0", DownloadURL: "http://x/b.whl", Dependencies: []model.Dependency{{Name: "c", VersionSpec: "*"}}},
		"c": {Name: "c", Version: "1.0", DownloadURL: "http://x/c.whl"},
	}}
	r := newTestResolver(t, fetcher)

	out, err := r.Resolve(context.Background(), []model.Dependency{
		{Name: "a", VersionSpec: "*"},
		{Name: "b", VersionSpec: "*"},
	})
	require.NoError(t, err)
	require.Len(t, out, 3)

	indexOf := func(name string) int {
		for i, p := range out {
			if p.Name == name {
				return i
			}
		}
		return -1
	}
	require.Less(t, indexOf("c"), indexOf("a"))
	require.Less(t, indexOf("c"), indexOf("b"))

	var cCount int
	for _, p := range out {
		if p.Name == "c" {
			cCount++
		}
	}
	require.Equal(t, 1, cCount)
}

func TestResolve_Cycle(t *testing.T) {
	fetcher := &fakeFetcher{byName: map[string]model.Package{
		"x": {Name: "x", Version: "1", DownloadURL: "http://x/x.whl", Dependencies: []model.Dependency{{Name: "y", VersionSpec: "*"}}},
		"y": {Name: "y", Version: "1", DownloadURL: "http://x/y.whl", Dependencies: []model.Dependency{{Name: "x", VersionSpec: "*"}}},
	}}
	r := newTestResolver(t, fetcher)

	_, err := r.Resolve(context.Background(), []model.Dependency{{Name: "x", VersionSpec: "*"}})
	require.Error(t, err)
}

// TestResolve_CallsFetcherExactlyOncePerName uses a generated mock instead of
// fakeFetcher to assert the metadata cache actually prevents a second network
// round-trip for the same direct dependency when it is resolved a second time.
func TestResolve_CallsFetcherExactlyOncePerName(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := NewMockMetadataFetcher(ctrl)
	fetcher.EXPECT().
		FetchLatest(gomock.Any(), "alpha").
		Return(&model.Package{Name: "alpha", Version: "1.0", DownloadURL: "http://x/alpha.whl"}, nil).
		Times(1)

	r := newTestResolver(t, fetcher)
	out, err := r.Resolve(context.Background(), []model.Dependency{{Name: "alpha", VersionSpec: "*"}})
	require.NoError(t, err)
	require.Len(t, out, 1)

	out, err = r.Resolve(context.Background(), []model.Dependency{{Name: "alpha", VersionSpec: "*"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestResolve_MissingPackageAbortsWhole(t *testing.T) {
	fetcher := &fakeFetcher{byName: map[string]model.Package{
		"alpha": {Name: "alpha", Version: "1.0", DownloadURL: "http://x/alpha.whl"},
	}}
	r := newTestResolver(t, fetcher)

	_, err := r.Resolve(context.Background(), []model.Dependency{
		{Name: "alpha", VersionSpec: "*"},
		{Name: "missing", VersionSpec: "*"},
	})
	require.Error(t, err)
}
