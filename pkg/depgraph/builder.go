package depgraph

import (
	"context"
	"strings"
)

// ManifestSource fetches manifest text for a pinned package from a registry.
type ManifestSource interface {
	// Manifest returns the manifest file contents for the package.
	Manifest(ctx context.Context, name, version string) (string, error)
}

// VersionSource resolves a bare dependency name to a concrete version.
type VersionSource interface {
	// LatestVersion returns the latest version known to the registry.
	LatestVersion(ctx context.Context, name string) (string, error)
}

// ParseFunc extracts the declared dependency names from manifest text.
type ParseFunc func(text string) ([]string, error)

// Policy is the immutable per-build traversal configuration.
type Policy struct {
	// MaxDepth bounds traversal distance from the root. Packages at exactly
	// MaxDepth are recorded as leaves without being expanded. Zero or
	// negative means unbounded.
	MaxDepth int

	// Exclude prunes expansion of any package whose name contains this
	// substring, case-insensitively. The package itself still appears in the
	// graph as a leaf. Empty means no filtering.
	Exclude string

	// Logger receives progress and degradation messages. Optional.
	Logger func(string, ...any)
}

func (p Policy) withDefaults() Policy {
	if p.Logger == nil {
		p.Logger = func(string, ...any) {}
	}
	return p
}

// Builder discovers the transitive dependency closure of a package.
// All traversal state lives inside a single Build call, so one Builder can
// serve any number of independent builds.
type Builder struct {
	Source   ManifestSource
	Versions VersionSource
	Parse    ParseFunc
}

type frontierItem struct {
	name    string
	version string
	depth   int
}

// Build walks the dependency graph breadth-first from root and returns the
// discovered closure. If root.Version is empty it is resolved to the latest
// known version first.
//
// Traversal is synchronous: one manifest fetch completes before the next
// frontier entry is processed. Per-package failures (fetch, parse, version
// resolution) degrade that package to a leaf and are logged through the
// policy logger; they never abort the build. The only fatal conditions are
// an empty root name and context cancellation.
func (b *Builder) Build(ctx context.Context, root PackageID, policy Policy) (*Graph, error) {
	if root.Name == "" {
		return nil, ErrEmptyName
	}
	policy = policy.withDefaults()

	g := NewGraph()
	if root.Version == "" {
		root.Version = b.resolveVersion(ctx, g, policy, root.Name)
	} else {
		g.SetVersion(root.Name, root.Version)
	}

	visited := map[PackageID]bool{root: true}
	queue := []frontierItem{{name: root.Name, version: root.Version}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item := queue[0]
		queue = queue[1:]

		id := PackageID{Name: item.name, Version: item.version}
		if g.Has(id) {
			// The visited set makes duplicate frontier entries impossible;
			// keep the guard anyway so Add stays idempotent by construction.
			continue
		}

		if policy.MaxDepth > 0 && item.depth >= policy.MaxDepth {
			g.Add(id, nil)
			continue
		}
		if excluded(item.name, policy.Exclude) {
			policy.Logger("excluded: %s", id)
			g.Add(id, nil)
			continue
		}

		names := b.dependencyNames(ctx, policy, item.name, item.version)
		g.Add(id, names)

		for _, dep := range names {
			depID := PackageID{Name: dep, Version: b.resolveVersion(ctx, g, policy, dep)}
			if !visited[depID] {
				visited[depID] = true
				queue = append(queue, frontierItem{name: depID.Name, version: depID.Version, depth: item.depth + 1})
			}
		}
	}

	return g, nil
}

// dependencyNames fetches and parses one manifest. Any failure degrades the
// package to an empty dependency list.
func (b *Builder) dependencyNames(ctx context.Context, policy Policy, name, version string) []string {
	text, err := b.Source.Manifest(ctx, name, version)
	if err != nil {
		policy.Logger("manifest fetch failed: %s@%s: %v", name, version, err)
		return nil
	}
	names, err := b.Parse(text)
	if err != nil {
		policy.Logger("manifest parse failed: %s@%s: %v", name, version, err)
		return nil
	}
	return names
}

// resolveVersion resolves name to its latest version, memoized on the graph's
// version table so each name hits the registry at most once per build.
// Lookup failures fall back to FallbackVersion.
func (b *Builder) resolveVersion(ctx context.Context, g *Graph, policy Policy, name string) string {
	if v, ok := g.Version(name); ok {
		return v
	}
	v, err := b.Versions.LatestVersion(ctx, name)
	if err != nil || v == "" {
		policy.Logger("version lookup failed: %s: %v", name, err)
		v = FallbackVersion
	}
	g.SetVersion(name, v)
	return v
}

func excluded(name, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(substr))
}
