package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bsptile/pkg/bsp"
	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
)

// TestMain points the default config location at an empty directory so a
// config file in the developer's home never leaks into the tests.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "bsptile-cli-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("XDG_CONFIG_HOME", dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// execute runs the CLI with args and returns what it wrote to stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetIn(strings.NewReader(stdin))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeUserConfig(t *testing.T, content string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	path := filepath.Join(home, appName, configFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLayoutPlain(t *testing.T) {
	got, err := execute(t, "", "layout", "3", "--plain", "--outer-gap", "10", "--inner-gap", "5")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	want := "15 15 1890 520\n15 545 940 520\n965 545 940 520\n"
	if got != want {
		t.Errorf("layout output = %q, want %q", got, want)
	}
}

func TestLayoutJSON(t *testing.T) {
	got, err := execute(t, "", "-s", "0.25", "--start-hsplit", "layout", "2", "--json", "--width", "400", "--height", "100", "--x", "100")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}

	var resp layoutJSON
	if err := json.Unmarshal([]byte(got), &resp); err != nil {
		t.Fatalf("invalid JSON %q: %v", got, err)
	}
	want := layoutJSON{
		Output: bsp.Rect{X: 100, Width: 400, Height: 100},
		Windows: []bsp.Rect{
			{X: 100, Y: 0, Width: 100, Height: 100},
			{X: 200, Y: 0, Width: 300, Height: 100},
		},
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutTable(t *testing.T) {
	got, err := execute(t, "", "layout", "2")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	for _, want := range []string{"Window", "Height", "1920", "540"} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q:\n%s", want, got)
		}
	}
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code bsperrors.Code
	}{
		{"bad count", []string{"layout", "many"}, bsperrors.ErrCodeInvalidRequest},
		{"negative count", []string{"layout", "--", "-1"}, bsperrors.ErrCodeInvalidRequest},
		{"json and plain", []string{"layout", "2", "--json", "--plain"}, bsperrors.ErrCodeInvalidRequest},
		{"bad split", []string{"layout", "2", "--split-perc", "1"}, bsperrors.ErrCodeInvalidValue},
		{"conflicting start", []string{"layout", "2", "--start-hsplit", "--start-vsplit"}, bsperrors.ErrCodeInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			if !bsperrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestConfigFileSeedsLayout(t *testing.T) {
	writeUserConfig(t, "[outer_gap]\ndefault = 10\n")

	got, err := execute(t, "", "layout", "1", "--plain", "--width", "100", "--height", "100")
	if err != nil {
		t.Fatal(err)
	}
	if got != "10 10 80 80\n" {
		t.Errorf("with config file = %q, want %q", got, "10 10 80 80\n")
	}

	// Flags win over the file.
	got, err = execute(t, "", "layout", "1", "--plain", "--width", "100", "--height", "100", "--outer-gap", "0")
	if err != nil {
		t.Fatal(err)
	}
	if got != "0 0 100 100\n" {
		t.Errorf("with flag override = %q, want %q", got, "0 0 100 100\n")
	}
}

func TestReverseFlagOverridesFile(t *testing.T) {
	tests := []struct {
		name string
		file string
		args []string
		want string
	}{
		{"file true, flag set", "[split]\nreverse = true\n", []string{"--reverse"}, "reverse = true"},
		{"file false, flag set", "[split]\nreverse = false\n", []string{"--reverse"}, "reverse = true"},
		{"file true, flag false", "[split]\nreverse = true\n", []string{"--reverse=false"}, "reverse = false"},
		{"file true, no flag", "[split]\nreverse = true\n", nil, "reverse = true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeUserConfig(t, tt.file)
			got, err := execute(t, "", append(tt.args, "config")...)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("config output missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestConfigFileErrors(t *testing.T) {
	_, err := execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.toml"), "layout", "1")
	if !bsperrors.Is(err, bsperrors.ErrCodeInvalidConfig) {
		t.Errorf("explicit missing config error = %v, want INVALID_CONFIG", err)
	}

	writeUserConfig(t, "[split]\ndefault = 2.0\n")
	_, err = execute(t, "", "layout", "1")
	if !bsperrors.Is(err, bsperrors.ErrCodeInvalidConfig) {
		t.Errorf("invalid config file error = %v, want INVALID_CONFIG", err)
	}
}

func TestRunStdio(t *testing.T) {
	input := strings.Join([]string{
		"layout 3 1920 1080",
		"cmd inner-gap 5",
		"layout 2 100 100",
		"cmd split-perc 0",
		"config",
	}, "\n")

	got, err := execute(t, input, "run", "-o", "10")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	want := strings.Join([]string{
		"ok 3",
		"10 10 1900 530",
		"10 540 950 530",
		"960 540 950 530",
		"ok",
		"ok 2",
		"15 15 70 30",
		"15 55 70 30",
		"err INVALID_VALUE split-perc must be greater than 0 and less than 1, got 0",
		"ok inner=5,5,5,5 outer=10,10,10,10 hsplit=0.5 vsplit=0.5 start=vertical reverse=false",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("run transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestRunNeedsAChannel(t *testing.T) {
	_, err := execute(t, "", "run", "--no-stdio")
	if !bsperrors.Is(err, bsperrors.ErrCodeInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestConfigShow(t *testing.T) {
	got, err := execute(t, "", "--outer-gap", "7", "--reverse", "config")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[outer_gap]", "default = 7", `start = "vertical"`, "reverse = true"} {
		if !strings.Contains(got, want) {
			t.Errorf("config output missing %q:\n%s", want, got)
		}
	}
}

func TestConfigInit(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	path := filepath.Join(home, appName, configFileName)

	if _, err := execute(t, "", "--inner-gap", "3", "config", "init"); err != nil {
		t.Fatalf("config init error: %v", err)
	}
	got, err := execute(t, "", "layout", "1", "--plain", "--width", "10", "--height", "10")
	if err != nil {
		t.Fatal(err)
	}
	if got != "3 3 4 4\n" {
		t.Errorf("layout after init = %q, want %q", got, "3 3 4 4\n")
	}

	if _, err := execute(t, "", "config", "init"); err == nil {
		t.Errorf("second init should refuse to overwrite %s", path)
	}
	if _, err := execute(t, "", "config", "init", "--force"); err != nil {
		t.Errorf("init --force error: %v", err)
	}

	out, err := execute(t, "", "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}
}

func TestVisualizeDOT(t *testing.T) {
	got, err := execute(t, "", "visualize", "3")
	if err != nil {
		t.Fatalf("visualize error: %v", err)
	}
	if !strings.HasPrefix(got, "digraph G {") {
		t.Errorf("output is not DOT:\n%s", got)
	}
	if n := strings.Count(got, `label="window `); n != 3 {
		t.Errorf("DOT has %d leaves, want 3", n)
	}

	if _, err := execute(t, "", "visualize", "3", "--format", "png"); !bsperrors.Is(err, bsperrors.ErrCodeInvalidRequest) {
		t.Errorf("unknown format error = %v", err)
	}
}

func TestVisualizeToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.dot")
	if _, err := execute(t, "", "visualize", "2", "--output", path, "--detailed"); err != nil {
		t.Fatalf("visualize error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "1920x1080+0+0") {
		t.Errorf("detailed DOT missing root region:\n%s", data)
	}
}

func TestPreview(t *testing.T) {
	got, err := execute(t, "", "preview", "2", "--no-color", "--columns", "10", "--rows", "4", "--width", "100", "--height", "100")
	if err != nil {
		t.Fatalf("preview error: %v", err)
	}
	want := "0────────┐\n└────────┘\n1────────┐\n└────────┘\n"
	if !strings.HasPrefix(got, want) {
		t.Errorf("preview =\n%s\nwant prefix\n%s", got, want)
	}
}

func TestVersion(t *testing.T) {
	got, err := execute(t, "", "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "bsptile version ") {
		t.Errorf("version output = %q", got)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		got, err := execute(t, "", "completion", shell)
		if err != nil {
			t.Errorf("completion %s error: %v", shell, err)
		}
		if !strings.Contains(got, "bsptile") {
			t.Errorf("completion %s output does not mention bsptile", shell)
		}
	}
}
