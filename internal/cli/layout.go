package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/bsptile/pkg/bsp"
	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
)

// outputFlags describes the output a one-shot command lays windows out on.
type outputFlags struct {
	width, height uint32
	x, y          int32
}

func (o *outputFlags) register(fs *pflag.FlagSet) {
	fs.Uint32Var(&o.width, "width", 1920, "output width in pixels")
	fs.Uint32Var(&o.height, "height", 1080, "output height in pixels")
	fs.Int32Var(&o.x, "x", 0, "output x origin")
	fs.Int32Var(&o.y, "y", 0, "output y origin")
}

func (o outputFlags) rect() bsp.Rect {
	return bsp.Rect{X: o.x, Y: o.y, Width: o.width, Height: o.height}
}

// parseWindowCount reads the <windows> argument.
func parseWindowCount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, bsperrors.New(bsperrors.ErrCodeInvalidRequest, "window count must be an integer, got %q", arg)
	}
	if err := bsperrors.ValidateWindowCount(n); err != nil {
		return 0, err
	}
	return n, nil
}

// layoutCommand creates the layout command for one-shot geometry output.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		out    outputFlags
		asJSON bool
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "layout <windows>",
		Short: "Print the geometry of a layout",
		Long: `Print the geometry of a layout.

The layout is computed once from the startup configuration (config file plus
any layout flags) and printed as a table. Use --plain for "x y width height"
lines in window order, or --json for machine-readable output.`,
		Example: `  bsptile layout 3
  bsptile layout 4 --width 2560 --height 1440 --outer-gap 10 --inner-gap 4
  bsptile layout 5 --start-hsplit --split-perc 0.6 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON && plain {
				return bsperrors.New(bsperrors.ErrCodeInvalidRequest, "--json and --plain are mutually exclusive")
			}
			n, err := parseWindowCount(args[0])
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			rects := bsp.Partition(n, out.rect(), cfg)
			w := cmd.OutOrStdout()
			switch {
			case asJSON:
				return writeLayoutJSON(w, out.rect(), rects)
			case plain:
				for _, r := range rects {
					fmt.Fprintf(w, "%d %d %d %d\n", r.X, r.Y, r.Width, r.Height)
				}
				return nil
			}
			fmt.Fprintln(w, rectTable(rects))
			return nil
		},
	}

	out.register(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&plain, "plain", false, `print "x y width height" lines`)

	return cmd
}

type layoutJSON struct {
	Output  bsp.Rect   `json:"output"`
	Windows []bsp.Rect `json:"windows"`
}

func writeLayoutJSON(w io.Writer, output bsp.Rect, rects []bsp.Rect) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(layoutJSON{Output: output, Windows: rects})
}
