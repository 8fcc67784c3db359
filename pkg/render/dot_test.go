package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/crategraph/pkg/depgraph"
)

func demoGraph() *depgraph.Graph {
	g := depgraph.NewGraph()
	g.Add(depgraph.PackageID{Name: "demo", Version: "1.0"}, []string{"left", "right"})
	g.Add(depgraph.PackageID{Name: "left", Version: "1.0"}, []string{"leaf"})
	g.Add(depgraph.PackageID{Name: "right", Version: "1.0"}, []string{"leaf"})
	for _, name := range []string{"demo", "left", "right", "leaf"} {
		g.SetVersion(name, "1.0")
	}
	return g
}

func TestToDOT(t *testing.T) {
	g := demoGraph()
	g.Add(depgraph.PackageID{Name: "leaf", Version: "1.0"}, nil)

	dot := ToDOT(g)

	for _, want := range []string{
		`"demo@1.0" [fillcolor=lightblue];`,
		`"demo@1.0" -> "left@1.0";`,
		`"demo@1.0" -> "right@1.0";`,
		`"left@1.0" -> "leaf@1.0";`,
		`"right@1.0" -> "leaf@1.0";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTSkipsTruncatedTargets(t *testing.T) {
	// leaf was never recorded (depth cutoff), so no edge may point at it.
	dot := ToDOT(demoGraph())

	if strings.Contains(dot, "leaf@1.0") {
		t.Errorf("DOT references a package absent from the graph:\n%s", dot)
	}
}
