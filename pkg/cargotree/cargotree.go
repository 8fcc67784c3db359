// Package cargotree sanity-checks resolved graphs against cargo's own
// resolver. It is diagnostic glue: crate counts from the two resolvers are
// reported side by side, and differences are expected - this tool resolves
// every dependency to its latest version while cargo solves semver ranges.
package cargotree

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const scratchPackage = "crategraph-verify"

// Available reports whether the cargo binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("cargo")
	return err == nil
}

// Count resolves a crate with cargo in a scratch project and returns the
// number of distinct crates in its dependency tree, the root included.
func Count(ctx context.Context, name, version string) (int, error) {
	if _, err := exec.LookPath("cargo"); err != nil {
		return 0, fmt.Errorf("cargo not found in PATH: %w", err)
	}

	dir, err := os.MkdirTemp("", "crategraph-verify-*")
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(dir)

	if err := writeScratchProject(dir, name, version); err != nil {
		return 0, err
	}

	cmd := exec.CommandContext(ctx, "cargo", "tree", "--prefix", "none", "--edges", "normal,dev")
	cmd.Dir = dir
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("cargo tree: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return countCrates(out.String()), nil
}

// writeScratchProject lays out the minimal package cargo needs: a manifest
// pinning the crate under test and an empty lib.rs.
func writeScratchProject(dir, name, version string) error {
	manifest := fmt.Sprintf(`[package]
name = %q
version = "0.0.0"
edition = "2021"

[dependencies]
%q = "=%s"
`, scratchPackage, name, version)

	if err := os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(manifest), 0o644); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "src", "lib.rs"), nil, 0o644)
}

// countCrates counts distinct crate names in `cargo tree --prefix none`
// output. Lines look like "serde v1.0.193" or "serde v1.0.193 (*)"; the
// scratch package itself is excluded.
func countCrates(output string) int {
	seen := make(map[string]bool)
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.HasPrefix(fields[1], "v") {
			continue
		}
		if fields[0] == scratchPackage {
			continue
		}
		seen[fields[0]] = true
	}
	return len(seen)
}
