package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crategraph/pkg/depgraph"
	"github.com/matzehuels/crategraph/pkg/errors"
)

func newRdepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rdeps <snapshot.json> <crate>",
		Short: "Print the packages that depend on a crate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}

			target := g.ResolveName(args[1])
			if !g.Has(target) {
				return errors.New(errors.ErrCodePackageNotFound, "%q is not in the snapshot", args[1])
			}

			dependents := depgraph.ReverseIndex(g)[target]
			if len(dependents) == 0 {
				printInfo("Nothing depends on %s", target)
				return nil
			}
			for _, id := range dependents {
				fmt.Println(id)
			}
			printDetail("%s dependents of %s", styleNumber.Render(fmt.Sprint(len(dependents))), target)
			return nil
		},
	}
}
