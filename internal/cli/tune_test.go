package cli

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bsptile/pkg/bsp"
	"github.com/matzehuels/bsptile/pkg/command"
	"github.com/matzehuels/bsptile/pkg/config"
)

func newTestTuneModel(t *testing.T) tuneModel {
	t.Helper()
	store, err := config.NewStore(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	return newTuneModel(store, bsp.Rect{Width: 1920, Height: 1080}, 3, 40, 12)
}

func press(m tuneModel, keys string) tuneModel {
	for _, r := range keys {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(tuneModel)
	}
	return m
}

func TestTuneKeys(t *testing.T) {
	tests := []struct {
		keys    string
		want    string
		windows int
	}{
		{"", "inner=0,0,0,0 outer=0,0,0,0 hsplit=0.5 vsplit=0.5 start=vertical reverse=false", 3},
		{"l", "inner=0,0,0,0 outer=0,0,0,0 hsplit=0.55 vsplit=0.5 start=vertical reverse=false", 3},
		{"j", "inner=0,0,0,0 outer=0,0,0,0 hsplit=0.5 vsplit=0.45 start=vertical reverse=false", 3},
		{"]]}", "inner=4,4,4,4 outer=2,2,2,2 hsplit=0.5 vsplit=0.5 start=vertical reverse=false", 3},
		{"[", "inner=0,0,0,0 outer=0,0,0,0 hsplit=0.5 vsplit=0.5 start=vertical reverse=false", 3},
		{"sr", "inner=0,0,0,0 outer=0,0,0,0 hsplit=0.5 vsplit=0.5 start=horizontal reverse=true", 3},
		{"ss", "inner=0,0,0,0 outer=0,0,0,0 hsplit=0.5 vsplit=0.5 start=vertical reverse=false", 3},
		{"kk0", "inner=0,0,0,0 outer=0,0,0,0 hsplit=0.5 vsplit=0.5 start=vertical reverse=false", 3},
		{"++-", "inner=0,0,0,0 outer=0,0,0,0 hsplit=0.5 vsplit=0.5 start=vertical reverse=false", 4},
		{"----", "inner=0,0,0,0 outer=0,0,0,0 hsplit=0.5 vsplit=0.5 start=vertical reverse=false", 1},
		{"x", "inner=0,0,0,0 outer=0,0,0,0 hsplit=0.5 vsplit=0.5 start=vertical reverse=false", 3},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			m := press(newTestTuneModel(t), tt.keys)
			if got := m.store.Snapshot().String(); got != tt.want {
				t.Errorf("after %q config = %s, want %s", tt.keys, got, tt.want)
			}
			if m.windows != tt.windows {
				t.Errorf("after %q windows = %d, want %d", tt.keys, m.windows, tt.windows)
			}
			if m.err != nil {
				t.Errorf("after %q err = %v", tt.keys, m.err)
			}
		})
	}
}

func TestTuneQuit(t *testing.T) {
	m := newTestTuneModel(t)
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%s should quit", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not return tea.Quit", key)
		}
	}
}

func TestTuneView(t *testing.T) {
	m := press(newTestTuneModel(t), "l")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 50, Height: 20})
	m = next.(tuneModel)

	if m.cols != 50 || m.rows != 14 {
		t.Errorf("resize: cols=%d rows=%d, want 50, 14", m.cols, m.rows)
	}
	view := m.View()
	for _, want := range []string{"bsptile tune", "3 windows on 1920x1080", "hsplit=0.55", "inc-hsplit-perc 0.05"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestFinishTune(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	store, _ := config.NewStore(config.Default())
	if _, err := command.Apply(store, "outer-gap 6 start-hsplit"); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	c := New(&bytes.Buffer{}, LogInfo)
	if err := c.finishTune(cmd, store.Snapshot(), true); err != nil {
		t.Fatalf("finishTune() error = %v", err)
	}
	if !strings.Contains(out.String(), "bsptile run --start-hsplit --outer-gap 6") {
		t.Errorf("missing flag line:\n%s", out.String())
	}

	cfg, err := config.LoadFile(defaultConfigPath())
	if err != nil {
		t.Fatalf("saved config unreadable: %v", err)
	}
	if cfg.OuterGap.Default != 6 || cfg.Split.Start != config.Horizontal {
		t.Errorf("saved config = %s", cfg)
	}
}
