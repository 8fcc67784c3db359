package cargotree

import "testing"

func TestCountCrates(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   int
	}{
		{name: "Empty", output: "", want: 0},
		{
			name: "Simple",
			output: `crategraph-verify v0.0.0 (/tmp/scratch)
serde v1.0.193
serde_derive v1.0.193 (proc-macro)
`,
			want: 2,
		},
		{
			name: "DeduplicatesRepeats",
			output: `crategraph-verify v0.0.0 (/tmp/scratch)
left v1.0.0
leaf v1.0.0
right v1.0.0
leaf v1.0.0 (*)
`,
			want: 3,
		},
		{
			name: "IgnoresNoise",
			output: `warning: something
crategraph-verify v0.0.0 (/tmp/scratch)

serde v1.0.193
`,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countCrates(tt.output); got != tt.want {
				t.Errorf("countCrates = %d, want %d", got, tt.want)
			}
		})
	}
}
