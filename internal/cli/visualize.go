package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bsptile/pkg/bsp"
	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
	"github.com/matzehuels/bsptile/pkg/render/dot"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// visualizeCommand creates the visualize command for rendering the split tree.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		out    outputFlags
		format string
		output string
		opts   dot.Options
	)

	cmd := &cobra.Command{
		Use:   "visualize <windows>",
		Short: "Render the split tree of a layout",
		Long: `Render the split tree of a layout.

Each split is drawn as a node labelled with its orientation, with a solid
edge to the window it places and a dashed edge to the space that remains.
Output is Graphviz DOT source or an SVG rendered in-process.`,
		Example: `  bsptile visualize 4 > tree.dot
  bsptile visualize 5 --format svg --output tree.svg --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDOT && format != formatSVG {
				return bsperrors.New(bsperrors.ErrCodeInvalidRequest, "unknown format %q (want %s or %s)", format, formatDOT, formatSVG)
			}
			n, err := parseWindowCount(args[0])
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			data := []byte(dot.ToDOT(bsp.Build(n, out.rect(), cfg), opts))
			if format == formatSVG {
				if data, err = dot.RenderSVG(cmd.Context(), string(data)); err != nil {
					return fmt.Errorf("render svg: %w", err)
				}
			}
			prog.done(fmt.Sprintf("Rendered split tree of %d windows", n))

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess(cmd.ErrOrStderr(), "Wrote %s", format)
			printFile(cmd.ErrOrStderr(), output)
			return nil
		},
	}

	out.register(cmd.Flags())
	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot, svg")
	cmd.Flags().StringVar(&output, "output", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "label nodes with regions and fractions")

	return cmd
}
