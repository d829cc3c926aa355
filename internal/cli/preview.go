package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bsptile/pkg/bsp"
	bspterm "github.com/matzehuels/bsptile/pkg/render/term"
)

// previewCommand creates the preview command for drawing a layout in the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		out     outputFlags
		opts    bspterm.Options
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "preview <windows>",
		Short: "Draw a layout in the terminal",
		Long: `Draw a layout in the terminal.

Window geometry is scaled onto a character grid. Each window is drawn as a
box labelled with its index; dots mark space left by outer gaps.`,
		Example: `  bsptile preview 4
  bsptile preview 6 --outer-gap 20 --inner-gap 8 --columns 100 --rows 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseWindowCount(args[0])
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			opts.Color = !noColor
			rects := bsp.Partition(n, out.rect(), cfg)
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, bspterm.Render(rects, out.rect(), opts))
			fmt.Fprintln(w, StyleDim.Render(cfg.String()))
			return nil
		},
	}

	cols, rows := terminalGrid()
	out.register(cmd.Flags())
	cmd.Flags().IntVar(&opts.Columns, "columns", cols, "preview width in cells")
	cmd.Flags().IntVar(&opts.Rows, "rows", rows, "preview height in cells")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")

	return cmd
}

// terminalGrid picks a preview size that fits the current terminal, falling
// back to the renderer defaults when stdout is not a terminal.
func terminalGrid() (cols, rows int) {
	w, h, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 || h <= 0 {
		return bspterm.DefaultColumns, bspterm.DefaultRows
	}
	cols = min(w, 160)
	rows = min(h-4, cols*9/32)
	return cols, max(rows, 4)
}
