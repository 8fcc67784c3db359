// Package crates is a minimal crates.io API client covering the two
// operations dependency traversal needs.
//
// # Endpoints
//
//   - GET /crates/{name} - crate metadata; only crate.max_version is consumed
//   - GET /crates/{name}/{version}/download - .crate archive (gzip tarball)
//     from which Cargo.toml is extracted
//
// # Caching
//
// Responses are cached through a [cache.Cache] backend under a "crates:"
// namespace. The manifest cache key pins name and version, so cached entries
// never go stale; latest-version lookups honor the backend TTL.
//
// # Errors
//
// [ErrNotFound] marks missing crates, versions, or manifest entries;
// [ErrNetwork] marks transport failures and unexpected statuses. Calls are
// single-shot - callers own any degradation policy.
//
// [cache.Cache]: github.com/matzehuels/crategraph/pkg/cache.Cache
package crates
