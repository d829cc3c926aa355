package config

import (
	"fmt"

	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
)

// Op is a single typed mutation of a Config. The set of ops is closed: only
// this package can implement Op.
type Op interface {
	fmt.Stringer
	validate() error
	apply(*Config)
}

// SetGap assigns an absolute gap value. EdgeAll sets the default and clears
// the per-edge overrides of that gap kind.
type SetGap struct {
	Kind  GapKind
	Edge  Edge
	Value uint32
}

func (op SetGap) validate() error {
	if op.Edge > EdgeBottom {
		return invalidValue("invalid edge %d", op.Edge)
	}
	return nil
}

func (op SetGap) apply(c *Config) {
	c.Gaps(op.Kind).Set(op.Edge, op.Value)
}

func (op SetGap) String() string {
	if op.Edge == EdgeAll {
		return fmt.Sprintf("%s-gap %d", op.Kind, op.Value)
	}
	return fmt.Sprintf("%cg-%s %d", op.Kind.String()[0], op.Edge, op.Value)
}

// SplitTarget selects which split fraction a SetSplit assigns.
type SplitTarget uint8

const (
	// SplitBoth sets the default and clears both orientation overrides.
	SplitBoth SplitTarget = iota
	SplitHorizontal
	SplitVertical
)

// SetSplit assigns an absolute split fraction, which must lie in (0,1).
type SetSplit struct {
	Target SplitTarget
	Value  float64
}

func (op SetSplit) validate() error {
	return bsperrors.ValidateFraction(op.flag(), op.Value)
}

func (op SetSplit) apply(c *Config) {
	switch op.Target {
	case SplitHorizontal:
		c.Split.setOverride(Horizontal, op.Value)
	case SplitVertical:
		c.Split.setOverride(Vertical, op.Value)
	default:
		c.Split.Default = op.Value
		c.Split.Horizontal = nil
		c.Split.Vertical = nil
	}
}

func (op SetSplit) flag() string {
	switch op.Target {
	case SplitHorizontal:
		return "hsplit-perc"
	case SplitVertical:
		return "vsplit-perc"
	}
	return "split-perc"
}

func (op SetSplit) String() string {
	return op.flag() + " " + formatFraction(op.Value)
}

// AdjustSplit moves the resolved fraction of one orientation by Delta and
// stores the result as that orientation's override. The result saturates at
// MinSplit or MaxSplit instead of failing.
type AdjustSplit struct {
	Orientation Orientation
	Delta       float64
}

func (op AdjustSplit) validate() error {
	return bsperrors.ValidateFinite(op.flag(), op.Delta)
}

func (op AdjustSplit) apply(c *Config) {
	v := c.Split.Resolve(op.Orientation) + op.Delta
	c.Split.setOverride(op.Orientation, Saturate(v))
}

func (op AdjustSplit) flag() string {
	return "inc-" + flagPrefix(op.Orientation) + "split-perc"
}

func (op AdjustSplit) String() string {
	if op.Delta < 0 {
		return "dec-" + flagPrefix(op.Orientation) + "split-perc " + formatFraction(-op.Delta)
	}
	return op.flag() + " " + formatFraction(op.Delta)
}

// SetStart selects the orientation of the outermost split.
type SetStart struct {
	Orientation Orientation
}

func (op SetStart) validate() error {
	if op.Orientation != Horizontal && op.Orientation != Vertical {
		return invalidValue("invalid start orientation %d", op.Orientation)
	}
	return nil
}

func (op SetStart) apply(c *Config) {
	c.Split.Start = op.Orientation
}

func (op SetStart) String() string {
	return "start-" + flagPrefix(op.Orientation) + "split"
}

// ToggleReverse flips the window order flag.
type ToggleReverse struct{}

func (ToggleReverse) validate() error { return nil }

func (ToggleReverse) apply(c *Config) {
	c.Split.Reverse = !c.Split.Reverse
}

func (ToggleReverse) String() string { return "reverse" }
