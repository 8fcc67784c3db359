package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crategraph/pkg/cargotree"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <snapshot.json>",
		Short: "Compare a snapshot's crate count against cargo tree",
		Long: `Verify cross-checks a snapshot against the local cargo toolchain by pinning
the root crate in a scratch project and counting the crates cargo tree
reports. Counts rarely match exactly: the snapshot resolves every dependency
at its latest published version, while cargo applies semver requirements and
feature unification.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, root, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}

			if !cargotree.Available() {
				printWarning("cargo not found in PATH, skipping verification")
				return nil
			}

			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)
			spin := newSpinner(cmd.Context(), fmt.Sprintf("Running cargo tree for %s", root))
			spin.start()

			count, err := cargotree.Count(cmd.Context(), root.Name, root.Version)
			spin.stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("cargo tree finished for %s", root))

			printInfo("Snapshot: %s crates", styleNumber.Render(fmt.Sprint(g.Len())))
			printInfo("cargo tree: %s crates", styleNumber.Render(fmt.Sprint(count)))
			if count != g.Len() {
				printDetail("counts differ under latest-version resolution, this is expected")
			}
			return nil
		},
	}
}
