package crates

import "context"

// Source adapts a Client to the depgraph collaborator interfaces
// (ManifestSource and VersionSource), fixing the refresh policy for one run.
type Source struct {
	client  *Client
	refresh bool
}

// Source returns a depgraph-compatible view of the client.
func (c *Client) Source(refresh bool) *Source {
	return &Source{client: c, refresh: refresh}
}

// Manifest returns the Cargo.toml text for a pinned crate.
func (s *Source) Manifest(ctx context.Context, name, version string) (string, error) {
	return s.client.Manifest(ctx, name, version, s.refresh)
}

// LatestVersion returns the crate's max_version.
func (s *Source) LatestVersion(ctx context.Context, name string) (string, error) {
	return s.client.MaxVersion(ctx, name, s.refresh)
}
