package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crategraph/pkg/depgraph"
	"github.com/matzehuels/crategraph/pkg/errors"
)

func newOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order <snapshot.json>",
		Short: "Print the topological load order of a snapshot",
		Long: `Order prints the packages of a snapshot in dependency-first order: every
package appears after all of its dependencies, with the root last.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, root, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}

			order := depgraph.TopoOrder(g, root)
			for _, id := range order {
				fmt.Println(id)
			}
			printDetail("%s packages, root %s", styleNumber.Render(fmt.Sprint(len(order))), root)
			return nil
		},
	}
}

// loadSnapshot reads a snapshot file and recovers its root package.
func loadSnapshot(path string) (*depgraph.Graph, depgraph.PackageID, error) {
	g, err := depgraph.ReadSnapshotFile(path)
	if err != nil {
		return nil, depgraph.PackageID{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "load snapshot %s", path)
	}
	root := g.Root()
	if sources := depgraph.Sources(g); len(sources) > 0 {
		root = sources[0]
	}
	if root.Name == "" {
		return nil, depgraph.PackageID{}, errors.New(errors.ErrCodeInvalidInput, "%s: cannot determine root package", path)
	}
	return g, root, nil
}
