// Package cli implements the crategraph command-line interface.
//
// Commands:
//   - resolve: build a dependency graph from crates.io and write a snapshot
//   - order: print the topological load order of a snapshot
//   - rdeps: print the packages depending on a crate
//   - render: produce DOT, SVG, or PNG diagrams from a snapshot
//   - verify: compare a snapshot's crate count against cargo tree
//   - serve: expose a snapshot over HTTP
//   - cache: manage the registry response cache
//
// All commands support --verbose (-v) for debug-level logging. Loggers travel
// through context.Context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/crategraph/pkg/buildinfo"
)

// Execute runs the crategraph CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "crategraph",
		Short:        "Crategraph resolves and analyzes crates.io dependency graphs",
		Long:         `Crategraph walks the transitive dependency graph of a Rust crate on crates.io, records it as a JSON snapshot, and derives analyses over it: topological load order, reverse dependency lookups, and Graphviz diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newResolveCmd())
	root.AddCommand(newOrderCmd())
	root.AddCommand(newRdepsCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
