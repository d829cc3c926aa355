package config

import (
	"io"
	"math"
	"os"

	"github.com/BurntSushi/toml"

	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
)

// fileConfig mirrors the TOML startup file. Every key is optional.
type fileConfig struct {
	InnerGap *edgeTable  `toml:"inner_gap,omitempty"`
	OuterGap *edgeTable  `toml:"outer_gap,omitempty"`
	Split    *splitTable `toml:"split,omitempty"`
}

type edgeTable struct {
	Default *int64 `toml:"default,omitempty"`
	Left    *int64 `toml:"left,omitempty"`
	Right   *int64 `toml:"right,omitempty"`
	Top     *int64 `toml:"top,omitempty"`
	Bottom  *int64 `toml:"bottom,omitempty"`
}

type splitTable struct {
	Default    *float64 `toml:"default,omitempty"`
	Horizontal *float64 `toml:"horizontal,omitempty"`
	Vertical   *float64 `toml:"vertical,omitempty"`
	Start      *string  `toml:"start,omitempty"`
	Reverse    *bool    `toml:"reverse,omitempty"`
}

// LoadFile reads a TOML config file on top of Default.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, bsperrors.Wrap(bsperrors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	cfg, err := Decode(data)
	if err != nil {
		return Config{}, bsperrors.Wrap(bsperrors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	return cfg, nil
}

// Decode parses TOML data on top of Default and validates the result.
func Decode(data []byte) (Config, error) {
	var fc fileConfig
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return Config{}, bsperrors.Wrap(bsperrors.ErrCodeInvalidConfig, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, bsperrors.New(bsperrors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}

	cfg := Default()
	if err := fc.InnerGap.applyTo(&cfg.InnerGap, "inner_gap"); err != nil {
		return Config{}, err
	}
	if err := fc.OuterGap.applyTo(&cfg.OuterGap, "outer_gap"); err != nil {
		return Config{}, err
	}
	if err := fc.Split.applyTo(&cfg.Split); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, bsperrors.Wrap(bsperrors.ErrCodeInvalidConfig, err, "validate")
	}
	return cfg, nil
}

// Encode writes cfg as TOML. Only overrides that are set are written.
func Encode(w io.Writer, cfg Config) error {
	start := cfg.Split.Start.String()
	fc := fileConfig{
		InnerGap: edgeTableOf(cfg.InnerGap),
		OuterGap: edgeTableOf(cfg.OuterGap),
		Split: &splitTable{
			Default:    &cfg.Split.Default,
			Horizontal: cfg.Split.Horizontal,
			Vertical:   cfg.Split.Vertical,
			Start:      &start,
			Reverse:    &cfg.Split.Reverse,
		},
	}
	return toml.NewEncoder(w).Encode(fc)
}

func edgeTableOf(e EdgeValues[uint32]) *edgeTable {
	widen := func(p *uint32) *int64 {
		if p == nil {
			return nil
		}
		v := int64(*p)
		return &v
	}
	d := int64(e.Default)
	return &edgeTable{
		Default: &d,
		Left:    widen(e.Left),
		Right:   widen(e.Right),
		Top:     widen(e.Top),
		Bottom:  widen(e.Bottom),
	}
}

func (t *edgeTable) applyTo(e *EdgeValues[uint32], table string) error {
	if t == nil {
		return nil
	}
	fields := []struct {
		edge Edge
		key  string
		v    *int64
	}{
		{EdgeAll, "default", t.Default},
		{EdgeLeft, "left", t.Left},
		{EdgeRight, "right", t.Right},
		{EdgeTop, "top", t.Top},
		{EdgeBottom, "bottom", t.Bottom},
	}
	for _, f := range fields {
		if f.v == nil {
			continue
		}
		if *f.v < 0 || *f.v > math.MaxUint32 {
			return bsperrors.New(bsperrors.ErrCodeInvalidConfig, "%s.%s out of range: %d", table, f.key, *f.v)
		}
		e.Set(f.edge, uint32(*f.v))
	}
	return nil
}

func (t *splitTable) applyTo(s *SplitConfig) error {
	if t == nil {
		return nil
	}
	if t.Default != nil {
		s.Default = *t.Default
	}
	s.Horizontal = clonePtr(t.Horizontal)
	s.Vertical = clonePtr(t.Vertical)
	if t.Start != nil {
		o, err := ParseOrientation(*t.Start)
		if err != nil {
			return bsperrors.Wrap(bsperrors.ErrCodeInvalidConfig, err, "split.start")
		}
		s.Start = o
	}
	if t.Reverse != nil {
		s.Reverse = *t.Reverse
	}
	return nil
}
