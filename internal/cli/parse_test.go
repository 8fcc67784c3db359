package cli

import (
	"testing"

	"github.com/matzehuels/crategraph/pkg/errors"
)

func TestParseCrateSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr bool
		pkg     string
		version string
	}{
		{name: "BareName", spec: "serde", pkg: "serde"},
		{name: "NameAndVersion", spec: "serde@1.0.193", pkg: "serde", version: "1.0.193"},
		{name: "Hyphenated", spec: "serde-json@1.0.0", pkg: "serde-json", version: "1.0.0"},
		{name: "Underscore", spec: "proc_macro2", pkg: "proc_macro2"},
		{name: "Empty", spec: "", wantErr: true},
		{name: "EmptyVersion", spec: "serde@", wantErr: true},
		{name: "EmptyName", spec: "@1.0.0", wantErr: true},
		{name: "Spaces", spec: "not a crate", wantErr: true},
		{name: "LeadingDash", spec: "-serde", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseCrateSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseCrateSpec(%q): expected error", tt.spec)
				}
				if got := errors.GetCode(err); got != errors.ErrCodeInvalidPackage {
					t.Errorf("code = %s, want %s", got, errors.ErrCodeInvalidPackage)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCrateSpec(%q): %v", tt.spec, err)
			}
			if id.Name != tt.pkg || id.Version != tt.version {
				t.Errorf("got %s@%s, want %s@%s", id.Name, id.Version, tt.pkg, tt.version)
			}
		})
	}
}
