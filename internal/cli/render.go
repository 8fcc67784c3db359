package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crategraph/pkg/errors"
	"github.com/matzehuels/crategraph/pkg/render"
)

func newRenderCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "render <snapshot.json>",
		Short: "Produce a DOT, SVG, or PNG diagram from a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}

			dot := render.ToDOT(g)

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = render.SVG(cmd.Context(), dot)
			case "png":
				data, err = render.PNG(cmd.Context(), dot)
			default:
				return errors.New(errors.ErrCodeUnsupported, "unknown format %q (want dot, svg, or png)", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				if format != "dot" {
					return errors.New(errors.ErrCodeInvalidInput, "--output is required for %s", format)
				}
				fmt.Print(dot)
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered %d packages to %s", g.Len(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: dot, svg, or png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: stdout, dot only)")

	return cmd
}
