package crates

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/crategraph/pkg/cache"
)

const (
	defaultBaseURL = "https://crates.io/api/v1"
	httpTimeout    = 10 * time.Second
	manifestName   = "Cargo.toml"

	// crates.io API policy requires an identifying User-Agent.
	userAgent = "crategraph/1.0 (https://github.com/matzehuels/crategraph)"
)

var (
	// ErrNotFound is returned when a crate or version doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
	// unexpected status codes).
	ErrNetwork = errors.New("network error")
)

// Client provides access to the crates.io registry: latest-version lookups
// and manifest downloads. Responses are cached through the configured
// backend. Every remote call is attempted exactly once; failures surface to
// the caller, who decides how to degrade.
//
// All methods are safe for concurrent use.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	baseURL string
}

// NewClient creates a crates.io client caching responses in backend for ttl.
// Pass [cache.NullCache] to disable caching.
func NewClient(backend cache.Cache, ttl time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache.NewScoped(backend, "crates:"),
		ttl:     ttl,
		baseURL: defaultBaseURL,
	}
}

// SetBaseURL overrides the registry endpoint. Used by tests and mirrors.
func (c *Client) SetBaseURL(u string) { c.baseURL = strings.TrimSuffix(u, "/") }

type crateResponse struct {
	Crate struct {
		Name       string `json:"name"`
		MaxVersion string `json:"max_version"`
	} `json:"crate"`
}

// MaxVersion returns the latest version known to the registry for a crate
// (the crate.max_version field). If refresh is true the cache is bypassed.
func (c *Client) MaxVersion(ctx context.Context, name string, refresh bool) (string, error) {
	version, err := c.cached(ctx, "latest:"+name, refresh, func() ([]byte, error) {
		body, err := c.get(ctx, fmt.Sprintf("%s/crates/%s", c.baseURL, name))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("%w: crate %s", err, name)
			}
			return nil, err
		}
		defer body.Close()

		var data crateResponse
		if err := json.NewDecoder(body).Decode(&data); err != nil {
			return nil, fmt.Errorf("decode crate %s: %w", name, err)
		}
		if data.Crate.MaxVersion == "" {
			return nil, fmt.Errorf("crate %s: empty max_version", name)
		}
		return []byte(data.Crate.MaxVersion), nil
	})
	if err != nil {
		return "", err
	}
	return string(version), nil
}

// Manifest downloads the crate archive for an exact version and returns the
// text of its Cargo.toml. The archive is a gzip-compressed tarball; a missing
// manifest entry is a fetch failure.
func (c *Client) Manifest(ctx context.Context, name, version string, refresh bool) (string, error) {
	text, err := c.cached(ctx, fmt.Sprintf("manifest:%s@%s", name, version), refresh, func() ([]byte, error) {
		body, err := c.get(ctx, fmt.Sprintf("%s/crates/%s/%s/download", c.baseURL, name, version))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("%w: crate %s@%s", err, name, version)
			}
			return nil, err
		}
		defer body.Close()
		return extractManifest(body)
	})
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// cached consults the cache before running fetch, and stores fetch results.
// Cache failures are ignored; the cache is an optimization, never a
// correctness dependency.
func (c *Client) cached(ctx context.Context, key string, refresh bool, fetch func() ([]byte, error)) ([]byte, error) {
	if !refresh {
		if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
			return data, nil
		}
	}
	data, err := fetch()
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, data, c.ttl)
	return data, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}
}

// extractManifest scans a gzip tarball for the entry whose path ends in
// Cargo.toml (crate archives nest it under "name-version/").
func extractManifest(r io.Reader) ([]byte, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: bad gzip archive: %v", ErrNetwork, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: bad tar archive: %v", ErrNetwork, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if hdr.Name == manifestName || strings.HasSuffix(hdr.Name, "/"+manifestName) {
			return io.ReadAll(tr)
		}
	}
	return nil, fmt.Errorf("%w: archive has no %s entry", ErrNotFound, manifestName)
}
