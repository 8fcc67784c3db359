package depgraph

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	g := buildDemo(t, Policy{})

	data, err := MarshalSnapshot(g)
	if err != nil {
		t.Fatalf("MarshalSnapshot: %v", err)
	}

	loaded, err := ReadSnapshot(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}

	if loaded.Len() != g.Len() {
		t.Fatalf("loaded %d keys, want %d", loaded.Len(), g.Len())
	}
	for _, id := range g.IDs() {
		if !loaded.Has(id) {
			t.Errorf("key %s lost in round trip", id)
		}
		want := g.Deps(id)
		got := loaded.Deps(id)
		if len(got) != len(want) {
			t.Errorf("%s deps = %v, want %v", id, got, want)
		}
	}

	// Version table rebuilt from keys: analyses work without a registry.
	if dep := loaded.ResolveName("leaf"); dep.Version != "1.0" {
		t.Errorf("ResolveName(leaf) = %v after reload", dep)
	}
	if sources := Sources(loaded); len(sources) != 1 || sources[0].Name != "demo" {
		t.Errorf("Sources after reload = %v", sources)
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	g := buildDemo(t, Policy{})

	a, err := MarshalSnapshot(g)
	if err != nil {
		t.Fatal(err)
	}
	b, err := MarshalSnapshot(g)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("snapshot output should be deterministic")
	}
}

func TestSnapshotEmptyDepsShape(t *testing.T) {
	g := NewGraph()
	g.Add(PackageID{Name: "lone", Version: "0.1.0"}, nil)

	data, err := MarshalSnapshot(g)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[]") {
		t.Errorf("leaves must serialize as empty arrays, got %s", data)
	}
}

func TestReadSnapshotRejectsBadKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "MissingVersion", in: `{"serde": []}`},
		{name: "EmptyName", in: `{"@1.0": []}`},
		{name: "NotJSON", in: `digraph {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadSnapshot(strings.NewReader(tt.in)); err == nil {
				t.Errorf("ReadSnapshot(%q) should fail", tt.in)
			}
		})
	}
}

func TestSnapshotFile(t *testing.T) {
	g := buildDemo(t, Policy{})
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := WriteSnapshotFile(g, path); err != nil {
		t.Fatalf("WriteSnapshotFile: %v", err)
	}
	loaded, err := ReadSnapshotFile(path)
	if err != nil {
		t.Fatalf("ReadSnapshotFile: %v", err)
	}
	if loaded.Len() != g.Len() {
		t.Errorf("loaded %d keys, want %d", loaded.Len(), g.Len())
	}
}
