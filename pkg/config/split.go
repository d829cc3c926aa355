package config

import (
	"fmt"
	"strings"

	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
)

// Split fraction bounds. Relative adjustments saturate at these values
// instead of reaching 0 or 1, which would collapse one side of a split.
const (
	DefaultFraction = 0.5
	MinSplit        = 0.0001
	MaxSplit        = 0.9999
)

// Orientation selects which axis a split divides.
//
// A Horizontal split divides the width: the primary region is on the left,
// the remaining region on the right, both spanning the full height. A
// Vertical split divides the height: primary on top, remaining below, both
// spanning the full width.
type Orientation uint8

const (
	Vertical Orientation = iota
	Horizontal
)

// Flip returns the other orientation.
func (o Orientation) Flip() Orientation {
	if o == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// ParseOrientation accepts "horizontal", "vertical", "h" or "v" in any case.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h", "hsplit":
		return Horizontal, nil
	case "vertical", "v", "vsplit":
		return Vertical, nil
	}
	return 0, bsperrors.New(bsperrors.ErrCodeInvalidValue, "unknown orientation %q (want horizontal or vertical)", s)
}

// SplitConfig holds the split fractions and ordering flags.
type SplitConfig struct {
	// Default is the primary region's share of the split axis.
	Default float64

	// Horizontal and Vertical override Default for one orientation.
	Horizontal *float64
	Vertical   *float64

	// Start is the orientation of the outermost split.
	Start Orientation

	// Reverse reverses window order before partitioning.
	Reverse bool
}

// Resolve returns the fraction used for splits of orientation o.
func (s SplitConfig) Resolve(o Orientation) float64 {
	if p := s.override(o); p != nil {
		return *p
	}
	return s.Default
}

// Clone returns a copy that shares no override pointers with s.
func (s SplitConfig) Clone() SplitConfig {
	s.Horizontal = clonePtr(s.Horizontal)
	s.Vertical = clonePtr(s.Vertical)
	return s
}

func (s SplitConfig) override(o Orientation) *float64 {
	if o == Horizontal {
		return s.Horizontal
	}
	return s.Vertical
}

func (s *SplitConfig) setOverride(o Orientation, v float64) {
	if o == Horizontal {
		s.Horizontal = &v
	} else {
		s.Vertical = &v
	}
}

func (s SplitConfig) validate() error {
	if err := bsperrors.ValidateFraction("split-perc", s.Default); err != nil {
		return err
	}
	for _, o := range []Orientation{Horizontal, Vertical} {
		if p := s.override(o); p != nil {
			if err := bsperrors.ValidateFraction(flagPrefix(o)+"split-perc", *p); err != nil {
				return err
			}
		}
	}
	if s.Start != Horizontal && s.Start != Vertical {
		return bsperrors.New(bsperrors.ErrCodeInvalidValue, "invalid start orientation %d", s.Start)
	}
	return nil
}

// Saturate keeps an adjusted fraction inside the open interval: values at or
// above 1 become MaxSplit, values at or below 0 become MinSplit.
func Saturate(v float64) float64 {
	switch {
	case v >= 1:
		return MaxSplit
	case v <= 0:
		return MinSplit
	}
	return v
}

func flagPrefix(o Orientation) string {
	if o == Horizontal {
		return "h"
	}
	return "v"
}

func formatFraction(v float64) string {
	return fmt.Sprintf("%g", v)
}
