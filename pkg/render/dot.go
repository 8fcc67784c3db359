// Package render turns a finished dependency graph into Graphviz diagrams.
// It consumes the graph read-only; the diagram has no effect on analysis.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/crategraph/pkg/depgraph"
)

// ToDOT converts a graph to Graphviz DOT. Nodes are labeled "name@version"
// and the root is highlighted. Edges are drawn only between packages present
// in the graph, so depth- or filter-truncated targets don't appear as
// dangling nodes.
func ToDOT(g *depgraph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	root := g.Root()
	for _, id := range g.IDs() {
		if id == root {
			fmt.Fprintf(&buf, "  %q [fillcolor=lightblue];\n", id.String())
			continue
		}
		fmt.Fprintf(&buf, "  %q;\n", id.String())
	}

	buf.WriteString("\n")
	for _, id := range g.IDs() {
		for _, name := range g.Deps(id) {
			dep := g.ResolveName(name)
			if !g.Has(dep) {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", id.String(), dep.String())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// PNG renders a DOT graph to PNG using Graphviz.
func PNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
