package depgraph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
)

// The snapshot format is a JSON object keyed by canonical "name@version"
// strings, each value an array of raw dependency names:
//
//	{
//	  "serde@1.0.193": ["serde_derive"],
//	  "serde_derive@1.0.193": []
//	}
//
// Keys are written in sorted order for deterministic output. Reading a
// snapshot rebuilds the name-to-version table from the keys, so analyses
// work on loaded graphs without a registry.

// MarshalSnapshot converts a graph to snapshot JSON bytes.
func MarshalSnapshot(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSnapshot(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSnapshot writes a graph as snapshot JSON to w.
func WriteSnapshot(g *Graph, w io.Writer) error {
	out := make(map[string][]string, g.Len())
	for _, id := range g.IDs() {
		deps := g.Deps(id)
		if deps == nil {
			deps = []string{}
		}
		out[id.String()] = deps
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// WriteSnapshotFile writes a graph to a snapshot file with 0644 permissions.
func WriteSnapshotFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteSnapshot(g, f)
}

// ReadSnapshot decodes snapshot JSON into a graph. Entries are loaded in
// sorted key order; JSON objects carry no insertion order of their own.
func ReadSnapshot(r io.Reader) (*Graph, error) {
	var raw map[string][]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	g := NewGraph()
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		id, err := ParsePackageID(key)
		if err != nil {
			return nil, err
		}
		if id.Version == "" {
			return nil, fmt.Errorf("%w: %q: missing version", ErrInvalidID, key)
		}
		g.Add(id, raw[key])
		g.SetVersion(id.Name, id.Version)
	}
	return g, nil
}

// ReadSnapshotFile reads a snapshot file and returns the decoded graph.
func ReadSnapshotFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}
