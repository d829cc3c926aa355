package config

import (
	"fmt"

	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
)

// GapKind selects between the two gap families.
type GapKind uint8

const (
	// GapInner pads every window inside its own region.
	GapInner GapKind = iota
	// GapOuter pads the whole layout inside the output.
	GapOuter
)

func (k GapKind) String() string {
	if k == GapOuter {
		return "outer"
	}
	return "inner"
}

// Config is the complete set of layout parameters.
type Config struct {
	InnerGap EdgeValues[uint32]
	OuterGap EdgeValues[uint32]
	Split    SplitConfig
}

// Default returns the startup configuration: no gaps, an even split,
// vertical first split and natural window order.
func Default() Config {
	return Config{
		InnerGap: Uniform[uint32](0),
		OuterGap: Uniform[uint32](0),
		Split: SplitConfig{
			Default: DefaultFraction,
			Start:   Vertical,
		},
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	return Config{
		InnerGap: c.InnerGap.Clone(),
		OuterGap: c.OuterGap.Clone(),
		Split:    c.Split.Clone(),
	}
}

// Gaps returns the gap values of the given kind.
func (c *Config) Gaps(kind GapKind) *EdgeValues[uint32] {
	if kind == GapOuter {
		return &c.OuterGap
	}
	return &c.InnerGap
}

// Validate checks every resolved split fraction lies in (0,1).
// Gaps are unsigned and need no check.
func (c Config) Validate() error {
	return c.Split.validate()
}

// String renders c in a compact single-line form for logs and the line protocol.
func (c Config) String() string {
	ig := c.InnerGap.Resolved()
	og := c.OuterGap.Resolved()
	return fmt.Sprintf(
		"inner=%d,%d,%d,%d outer=%d,%d,%d,%d hsplit=%s vsplit=%s start=%s reverse=%t",
		ig.Left, ig.Right, ig.Top, ig.Bottom,
		og.Left, og.Right, og.Top, og.Bottom,
		formatFraction(c.Split.Resolve(Horizontal)),
		formatFraction(c.Split.Resolve(Vertical)),
		c.Split.Start, c.Split.Reverse,
	)
}

func invalidValue(format string, args ...any) error {
	return bsperrors.New(bsperrors.ErrCodeInvalidValue, format, args...)
}
