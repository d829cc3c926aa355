package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
)

func TestDecode(t *testing.T) {
	data := []byte(`
[inner_gap]
default = 5
left = 2

[outer_gap]
default = 10
bottom = 0

[split]
default = 0.55
horizontal = 0.6
start = "horizontal"
reverse = true
`)

	cfg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got, want := cfg.InnerGap.Resolved(), (Edges[uint32]{Left: 2, Right: 5, Top: 5, Bottom: 5}); got != want {
		t.Errorf("inner = %+v, want %+v", got, want)
	}
	if got, want := cfg.OuterGap.Resolved(), (Edges[uint32]{Left: 10, Right: 10, Top: 10, Bottom: 0}); got != want {
		t.Errorf("outer = %+v, want %+v", got, want)
	}
	if got := cfg.Split.Resolve(Horizontal); got != 0.6 {
		t.Errorf("hsplit = %v, want 0.6", got)
	}
	if got := cfg.Split.Resolve(Vertical); got != 0.55 {
		t.Errorf("vsplit = %v, want 0.55", got)
	}
	if cfg.Split.Start != Horizontal {
		t.Errorf("start = %v, want horizontal", cfg.Split.Start)
	}
	if !cfg.Split.Reverse {
		t.Error("reverse = false, want true")
	}
}

func TestDecodeEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Decode(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[inner_gap\ndefault = 1"},
		{"negative gap", "[outer_gap]\ndefault = -4"},
		{"huge gap", "[outer_gap]\ndefault = 5000000000"},
		{"split out of range", "[split]\ndefault = 1.0"},
		{"override out of range", "[split]\nvertical = 0.0"},
		{"bad orientation", "[split]\nstart = \"diagonal\""},
		{"unknown key", "[split]\nratio = 0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if !bsperrors.Is(err, bsperrors.ErrCodeInvalidConfig) {
				t.Errorf("Decode() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.InnerGap.Set(EdgeAll, 4)
	cfg.InnerGap.Set(EdgeTop, 1)
	cfg.OuterGap.Set(EdgeAll, 12)
	cfg.Split.Default = 0.45
	cfg.Split.Vertical = ptr(0.7)
	cfg.Split.Start = Horizontal
	cfg.Split.Reverse = true

	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[outer_gap]\ndefault = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got := cfg.OuterGap.Resolve(EdgeRight); got != 3 {
		t.Errorf("outer right = %d, want 3", got)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); !bsperrors.Is(err, bsperrors.ErrCodeInvalidConfig) {
		t.Errorf("LoadFile(missing) error = %v, want INVALID_CONFIG", err)
	}
}
