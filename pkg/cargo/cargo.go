// Package cargo extracts dependency declarations from Cargo.toml manifests.
//
// Only the sections a registry traversal cares about are consulted:
// [dependencies], [dev-dependencies], and every [target.*.dependencies]
// table. Entries marked optional are skipped. Names are deduplicated and
// returned sorted so downstream traversal order is deterministic.
package cargo

import (
	"maps"
	"slices"

	"github.com/BurntSushi/toml"
)

type manifest struct {
	Dependencies    map[string]any `toml:"dependencies"`
	DevDependencies map[string]any `toml:"dev-dependencies"`
	Target          map[string]struct {
		Dependencies map[string]any `toml:"dependencies"`
	} `toml:"target"`
}

// DependencyNames parses Cargo.toml text and returns the declared dependency
// names. Returns an error only for malformed TOML; a manifest with no
// dependency sections yields an empty result.
func DependencyNames(text string) ([]string, error) {
	var m manifest
	if _, err := toml.Decode(text, &m); err != nil {
		return nil, err
	}

	set := make(map[string]struct{})
	collect(set, m.Dependencies)
	collect(set, m.DevDependencies)
	for _, target := range m.Target {
		collect(set, target.Dependencies)
	}

	return slices.Sorted(maps.Keys(set)), nil
}

func collect(set map[string]struct{}, section map[string]any) {
	for name, spec := range section {
		if isOptional(spec) {
			continue
		}
		set[name] = struct{}{}
	}
}

// isOptional reports whether a dependency entry is a table with
// optional = true. Plain version strings are never optional.
func isOptional(spec any) bool {
	table, ok := spec.(map[string]any)
	if !ok {
		return false
	}
	opt, ok := table["optional"].(bool)
	return ok && opt
}
