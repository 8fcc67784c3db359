package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSnapshotRecoversRoot(t *testing.T) {
	// "zzz" sorts last but is the only package nothing depends on.
	content := `{
		"aaa@1.0.0": [],
		"mmm@2.0.0": ["aaa"],
		"zzz@3.0.0": ["aaa", "mmm"]
	}`
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	g, root, err := loadSnapshot(path)
	if err != nil {
		t.Fatalf("loadSnapshot: %v", err)
	}
	if g.Len() != 3 {
		t.Errorf("Len = %d, want 3", g.Len())
	}
	if root.Name != "zzz" || root.Version != "3.0.0" {
		t.Errorf("root = %s, want zzz@3.0.0", root)
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, _, err := loadSnapshot(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error")
	}
}
