package cargo

import (
	"slices"
	"testing"
)

func TestDependencyNames(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []string
		wantErr bool
	}{
		{
			name: "Empty",
			text: `[package]
name = "demo"
version = "0.1.0"`,
			want: []string{},
		},
		{
			name: "VersionStrings",
			text: `[dependencies]
serde = "1.0"
anyhow = "1"`,
			want: []string{"anyhow", "serde"},
		},
		{
			name: "InlineTables",
			text: `[dependencies]
serde = { version = "1.0", features = ["derive"] }
tokio = { version = "1", default-features = false }`,
			want: []string{"serde", "tokio"},
		},
		{
			name: "SkipsOptional",
			text: `[dependencies]
serde = "1.0"
rayon = { version = "1.8", optional = true }

[dependencies.indexmap]
version = "2"
optional = true`,
			want: []string{"serde"},
		},
		{
			name: "MergesDevDependencies",
			text: `[dependencies]
serde = "1.0"

[dev-dependencies]
criterion = "0.5"`,
			want: []string{"criterion", "serde"},
		},
		{
			name: "MergesTargetTables",
			text: `[dependencies]
libc = "0.2"

[target.'cfg(windows)'.dependencies]
winapi = "0.3"

[target.'cfg(unix)'.dependencies]
nix = { version = "0.27" }
signal-hook = { version = "0.3", optional = true }`,
			want: []string{"libc", "nix", "winapi"},
		},
		{
			name: "CollapsesDuplicates",
			text: `[dependencies]
serde = "1.0"

[dev-dependencies]
serde = { version = "1.0", features = ["derive"] }`,
			want: []string{"serde"},
		},
		{
			name:    "Malformed",
			text:    `[dependencies`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DependencyNames(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DependencyNames = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DependencyNames: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("DependencyNames = %v, want %v", got, tt.want)
			}
		})
	}
}
