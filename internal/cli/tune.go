package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bsptile/pkg/bsp"
	"github.com/matzehuels/bsptile/pkg/command"
	"github.com/matzehuels/bsptile/pkg/config"
	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
	bspterm "github.com/matzehuels/bsptile/pkg/render/term"
)

const (
	tuneSplitStep = 0.05
	tuneGapStep   = 2
	tuneMaxWins   = 32
)

// tuneCommand creates the tune command for interactive layout adjustment.
func (c *CLI) tuneCommand() *cobra.Command {
	var (
		out     outputFlags
		windows int
		save    bool
	)

	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Adjust a layout interactively",
		Long: `Adjust a layout interactively.

Every key press is translated into a command and applied exactly as
'bsptile run' would apply it, so the preview shows what a running layout
would produce. On exit the resulting settings are printed as layout flags,
and written to the config file with --save.

Keys:
  h/l  decrease/increase the horizontal split    [ ]  inner gap
  j/k  decrease/increase the vertical split      { }  outer gap
  s    switch the first split orientation        r    reverse window order
  +/-  add/remove a window                       0    reset split fractions
  q    quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bsperrors.ValidateWindowCount(windows); err != nil {
				return err
			}
			store, err := c.newStore(cmd.Flags())
			if err != nil {
				return err
			}

			cols, rows := terminalGrid()
			m := newTuneModel(store, out.rect(), windows, cols, rows-6)
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("run tuner: %w", err)
			}
			return c.finishTune(cmd, final.(tuneModel).store.Snapshot(), save)
		},
	}

	out.register(cmd.Flags())
	cmd.Flags().IntVar(&windows, "windows", 3, "number of windows to preview")
	cmd.Flags().BoolVar(&save, "save", false, "write the result to the config file")

	return cmd
}

func (c *CLI) finishTune(cmd *cobra.Command, cfg config.Config, save bool) error {
	w := cmd.OutOrStdout()
	printSuccess(w, "Tuned layout")
	printKeyValue(w, "config", cfg.String())

	if flags := flagLine(command.Describe(cfg)); flags != "" {
		printNextStep(w, "Run with", "bsptile run "+flags)
	}
	if !save {
		return nil
	}

	path := c.configFile()
	if path == "" {
		return bsperrors.New(bsperrors.ErrCodeInvalidConfig, "cannot determine config directory")
	}
	if err := writeConfigFile(path, cfg); err != nil {
		return err
	}
	printSuccess(w, "Saved config")
	printFile(w, path)
	return nil
}

// flagLine renders b as command-line flags.
func flagLine(b command.Batch) string {
	parts := make([]string, len(b))
	for i, op := range b {
		parts[i] = "--" + op.String()
	}
	return strings.Join(parts, " ")
}

func writeConfigFile(path string, cfg config.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	if err := config.Encode(f, cfg); err != nil {
		f.Close()
		return fmt.Errorf("write config file: %w", err)
	}
	return f.Close()
}

// =============================================================================
// tuneModel - Interactive layout tuning
// =============================================================================

type tuneModel struct {
	store   *config.Store
	output  bsp.Rect
	windows int
	cols    int
	rows    int

	last string
	err  error
}

func newTuneModel(store *config.Store, output bsp.Rect, windows, cols, rows int) tuneModel {
	return tuneModel{
		store:   store,
		output:  output,
		windows: windows,
		cols:    cols,
		rows:    max(rows, 4),
	}
}

func (m tuneModel) Init() tea.Cmd {
	return nil
}

func (m tuneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.windows = min(m.windows+1, tuneMaxWins)
			return m, nil
		case "-":
			m.windows = max(m.windows-1, 1)
			return m, nil
		}
		if line := m.commandFor(key); line != "" {
			m.apply(line)
		}
	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = max(msg.Height-6, 4)
	}
	return m, nil
}

// commandFor translates a key into command text, or "" for unbound keys.
func (m tuneModel) commandFor(key string) string {
	cfg := m.store.Snapshot()
	switch key {
	case "h":
		return fmt.Sprintf("dec-hsplit-perc %g", tuneSplitStep)
	case "l":
		return fmt.Sprintf("inc-hsplit-perc %g", tuneSplitStep)
	case "j":
		return fmt.Sprintf("dec-vsplit-perc %g", tuneSplitStep)
	case "k":
		return fmt.Sprintf("inc-vsplit-perc %g", tuneSplitStep)
	case "[":
		return fmt.Sprintf("inner-gap %d", stepDown(cfg.InnerGap.Default))
	case "]":
		return fmt.Sprintf("inner-gap %d", cfg.InnerGap.Default+tuneGapStep)
	case "{":
		return fmt.Sprintf("outer-gap %d", stepDown(cfg.OuterGap.Default))
	case "}":
		return fmt.Sprintf("outer-gap %d", cfg.OuterGap.Default+tuneGapStep)
	case "s":
		if cfg.Split.Start == config.Horizontal {
			return "start-vsplit"
		}
		return "start-hsplit"
	case "r":
		return "reverse"
	case "0":
		return fmt.Sprintf("split-perc %g", config.DefaultFraction)
	}
	return ""
}

func stepDown(v uint32) uint32 {
	if v < tuneGapStep {
		return 0
	}
	return v - tuneGapStep
}

func (m *tuneModel) apply(line string) {
	m.last = line
	_, m.err = command.Apply(m.store, line)
}

func (m tuneModel) View() string {
	var b strings.Builder
	cfg := m.store.Snapshot()

	b.WriteString(StyleTitle.Render("bsptile tune"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d windows on %dx%d", m.windows, m.output.Width, m.output.Height)))
	b.WriteString("\n\n")

	rects := bsp.Partition(m.windows, m.output, cfg)
	b.WriteString(bspterm.Render(rects, m.output, bspterm.Options{Columns: m.cols, Rows: m.rows, Color: true}))
	b.WriteString("\n\n")

	b.WriteString(StyleNumber.Render(cfg.String()))
	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(StyleWarning.Render(m.last + ": " + m.err.Error()))
	case m.last != "":
		b.WriteString(StyleDim.Render("› " + m.last))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("h/l hsplit  j/k vsplit  [ ] inner  { } outer  s start  r reverse  +/- windows  q quit"))

	return b.String()
}
