// Package depgraph resolves and analyzes transitive dependency graphs.
//
// # Overview
//
// A [Builder] discovers the dependency closure of a root package breadth-first,
// fetching one manifest per package through a [ManifestSource] and recording
// each package's direct dependency names in a [Graph]. The finished graph is
// immutable by convention and feeds the analysis functions [TopoOrder] and
// [ReverseIndex] as well as external consumers (rendering, serving).
//
// # Version resolution
//
// Dependency names in manifests are unversioned. Every name is resolved to the
// latest version known to the registry, exactly once per build, and the result
// is recorded on the graph. This is a deliberate simplification - it is not
// semver constraint solving, and the resolved set can differ from what a real
// package manager would select.
//
// # Usage
//
//	b := &depgraph.Builder{Source: src, Versions: src, Parse: cargo.DependencyNames}
//	g, err := b.Build(ctx, depgraph.PackageID{Name: "serde"}, depgraph.Policy{MaxDepth: 5})
//	if err != nil {
//	    return err
//	}
//	order := depgraph.TopoOrder(g, g.Root())
package depgraph

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// FallbackVersion is recorded for a dependency whose latest-version lookup
// failed. Resolution failures never abort a build.
const FallbackVersion = "1.0.0"

var (
	// ErrEmptyName is returned when a package name is empty.
	ErrEmptyName = errors.New("package name must not be empty")

	// ErrInvalidID is returned by [ParsePackageID] for malformed identifiers.
	ErrInvalidID = errors.New("invalid package identifier")
)

// PackageID identifies a package at an exact version. Its canonical string
// form is "name@version"; two ids are equal iff their canonical forms are.
// The zero value is not a valid id.
type PackageID struct {
	Name    string
	Version string
}

// String returns the canonical "name@version" form.
func (id PackageID) String() string {
	return id.Name + "@" + id.Version
}

// ParsePackageID parses a canonical "name@version" string. A bare name
// without "@" yields an id with an empty Version, which callers typically
// resolve to the latest known version.
func ParsePackageID(s string) (PackageID, error) {
	name, version, found := strings.Cut(s, "@")
	if name == "" {
		return PackageID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	if found && version == "" {
		return PackageID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return PackageID{Name: name, Version: version}, nil
}

// Graph is an insertion-ordered mapping from a package to the dependency
// names its manifest declares, as recorded by a single [Builder.Build] run.
// Entries are only ever added, never mutated or removed; adding an existing
// key is a no-op. A node recorded with no dependencies is a leaf - either
// genuinely dependency-free or truncated by depth or filter policy.
//
// The graph also carries the name-to-version resolution table populated
// during discovery, so analyses resolve dependency names without going back
// to the registry.
//
// Graph is not safe for concurrent mutation; build first, then share
// read-only.
type Graph struct {
	order    []PackageID
	deps     map[PackageID][]string
	versions map[string]string
	root     PackageID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		deps:     make(map[PackageID][]string),
		versions: make(map[string]string),
	}
}

// Add records id with its direct dependency names. The first added id becomes
// the graph root. Returns false without modifying the graph if id is already
// present.
func (g *Graph) Add(id PackageID, deps []string) bool {
	if _, exists := g.deps[id]; exists {
		return false
	}
	if len(g.order) == 0 {
		g.root = id
	}
	g.order = append(g.order, id)
	g.deps[id] = slices.Clone(deps)
	return true
}

// Has reports whether id has been recorded.
func (g *Graph) Has(id PackageID) bool {
	_, ok := g.deps[id]
	return ok
}

// Deps returns the dependency names recorded for id, in manifest-parser
// order. Returns nil for unknown ids and for leaves.
func (g *Graph) Deps(id PackageID) []string {
	return slices.Clone(g.deps[id])
}

// IDs returns all recorded packages in insertion (discovery) order.
func (g *Graph) IDs() []PackageID {
	return slices.Clone(g.order)
}

// Len returns the number of recorded packages.
func (g *Graph) Len() int { return len(g.deps) }

// Root returns the first package added to the graph, the traversal root.
// Returns the zero id for an empty graph.
func (g *Graph) Root() PackageID { return g.root }

// SetVersion records the resolved version for a dependency name.
func (g *Graph) SetVersion(name, version string) {
	g.versions[name] = version
}

// Version returns the version recorded for name during discovery.
func (g *Graph) Version(name string) (string, bool) {
	v, ok := g.versions[name]
	return v, ok
}

// ResolveName converts a dependency name to a PackageID using the version
// table recorded at discovery time, falling back to [FallbackVersion] for
// names that were never resolved.
func (g *Graph) ResolveName(name string) PackageID {
	if v, ok := g.versions[name]; ok {
		return PackageID{Name: name, Version: v}
	}
	return PackageID{Name: name, Version: FallbackVersion}
}
