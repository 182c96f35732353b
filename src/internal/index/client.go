// Package index talks to the remote package index: fetches per-package JSON
// metadata and turns it into the resolver's model.Package records. Grounded on
// the teacher's internal/resolver/pypi.go (FetchMetadataFromPypi), upgraded from
// a bare http.Get to a configured client with a timeout, connection reuse, and an
// optional bearer token for authenticated mirrors.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pytoy/src/internal/model"
	"pytoy/src/internal/pkgerrors"
)

// DefaultBaseURL is the public package index, matching the teacher's hardcoded
// "https://pypi.org" endpoint.
const DefaultBaseURL = "https://pypi.org"

// indexResponse mirrors the teacher's PypiResponse JSON shape verbatim.
type indexResponse struct {
	Info struct {
		Name         string   `json:"name"`
		Version      string   `json:"version"`
		Summary      string   `json:"summary"`
		HomePage     string   `json:"home_page"`
		Author       string   `json:"author"`
		RequiresDist []string `json:"requires_dist"`
	} `json:"info"`
	Releases map[string][]releaseFile `json:"releases"`
}

type releaseFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Hashes   struct {
		Sha256 string `json:"sha256"`
	} `json:"hashes"`
	Packagetype string `json:"packagetype"`
}

// Client fetches package metadata from a PyPI-shaped JSON index.
type Client struct {
	BaseURL string
	Token   string
	http    *http.Client
}

// NewClient builds a Client with a pooled, timeout-bounded HTTP client.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 16,
			},
		},
	}
}

// FetchLatest fetches the most recent metadata for name, matching the teacher's
// GET /pypi/<name>/json.
func (c *Client) FetchLatest(ctx context.Context, name string) (*model.Package, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/pypi/%s/json", c.BaseURL, name), name, "")
}

// FetchVersion fetches metadata for a specific version, matching the teacher's
// GET /pypi/<name>/<version>/json.
func (c *Client) FetchVersion(ctx context.Context, name, version string) (*model.Package, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/pypi/%s/%s/json", c.BaseURL, name, version), name, version)
}

func (c *Client) fetch(ctx context.Context, url, name, wantVersion string) (*model.Package, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "build request for %s", name)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Of(pkgerrors.ErrNetwork, "fetch %s", name)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, pkgerrors.Of(pkgerrors.ErrPackageNotFound, "%s", name)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.Of(pkgerrors.ErrNetwork, "index returned %d for %s", resp.StatusCode, name)
	}

	var body indexResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, pkgerrors.Wrapf(err, "decode index response for %s", name)
	}

	version := wantVersion
	if version == "" {
		version = body.Info.Version
	}
	files, ok := body.Releases[version]
	if !ok || len(files) == 0 {
		return nil, pkgerrors.Of(pkgerrors.ErrPackageNotFound, "%s has no release artifacts for version %s", name, version)
	}
	file := selectArtifact(files)

	deps := make([]model.Dependency, 0, len(body.Info.RequiresDist))
	for _, raw := range body.Info.RequiresDist {
		dep, ok := ParseDependency(raw)
		if ok {
			deps = append(deps, dep)
		}
	}

	return &model.Package{
		Name:         body.Info.Name,
		Version:      version,
		Dependencies: deps,
		DownloadURL:  file.URL,
		Hash:         file.Hashes.Sha256,
		Description:  body.Info.Summary,
		Author:       body.Info.Author,
		Homepage:     body.Info.HomePage,
	}, nil
}

// selectArtifact prefers a built wheel (bdist_wheel) over a source distribution,
// since the installer's archive contract is zip-only.
func selectArtifact(files []releaseFile) releaseFile {
	for _, f := range files {
		if f.Packagetype == "bdist_wheel" {
			return f
		}
	}
	return files[0]
}
