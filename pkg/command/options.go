package command

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/bsptile/pkg/config"
	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
)

// Flag names.
const (
	FlagInnerGap = "inner-gap"
	FlagIGLeft   = "ig-left"
	FlagIGRight  = "ig-right"
	FlagIGBottom = "ig-bottom"
	FlagIGTop    = "ig-top"

	FlagOuterGap = "outer-gap"
	FlagOGLeft   = "og-left"
	FlagOGRight  = "og-right"
	FlagOGBottom = "og-bottom"
	FlagOGTop    = "og-top"

	FlagSplitPerc  = "split-perc"
	FlagHSplitPerc = "hsplit-perc"
	FlagVSplitPerc = "vsplit-perc"

	FlagIncHSplit = "inc-hsplit-perc"
	FlagIncVSplit = "inc-vsplit-perc"
	FlagDecHSplit = "dec-hsplit-perc"
	FlagDecVSplit = "dec-vsplit-perc"

	FlagStartHSplit = "start-hsplit"
	FlagStartVSplit = "start-vsplit"
	FlagReverse     = "reverse"
)

// legacyAliases maps the short adjustment names accepted by older releases
// to the canonical flags.
var legacyAliases = map[string]string{
	"inc-hsplit": FlagIncHSplit,
	"inc-vsplit": FlagIncVSplit,
	"dec-hsplit": FlagDecHSplit,
	"dec-vsplit": FlagDecVSplit,
}

// gapFlag describes one absolute gap flag.
type gapFlag struct {
	name      string
	shorthand string
	kind      config.GapKind
	edge      config.Edge
	usage     string
}

// gapFlags is ordered the way gap ops are applied: default first, then edges.
var gapFlags = []gapFlag{
	{FlagOuterGap, "o", config.GapOuter, config.EdgeAll, "gap between windows and the output edge, all sides"},
	{FlagOGTop, "T", config.GapOuter, config.EdgeTop, "outer gap on the top edge"},
	{FlagOGBottom, "B", config.GapOuter, config.EdgeBottom, "outer gap on the bottom edge"},
	{FlagOGRight, "R", config.GapOuter, config.EdgeRight, "outer gap on the right edge"},
	{FlagOGLeft, "L", config.GapOuter, config.EdgeLeft, "outer gap on the left edge"},
	{FlagInnerGap, "i", config.GapInner, config.EdgeAll, "padding inside every window region, all sides"},
	{FlagIGTop, "t", config.GapInner, config.EdgeTop, "inner gap on the top edge"},
	{FlagIGBottom, "b", config.GapInner, config.EdgeBottom, "inner gap on the bottom edge"},
	{FlagIGRight, "r", config.GapInner, config.EdgeRight, "inner gap on the right edge"},
	{FlagIGLeft, "l", config.GapInner, config.EdgeLeft, "inner gap on the left edge"},
}

// Options holds the values bound to the command flags. Only flags reported
// as changed by the flag set contribute ops.
type Options struct {
	gaps map[string]*uint32

	SplitPerc  float64
	HSplitPerc float64
	VSplitPerc float64

	IncHSplit float64
	IncVSplit float64
	DecHSplit float64
	DecVSplit float64

	StartHSplit bool
	StartVSplit bool
	Reverse     bool
}

// Register adds every command flag to fs, bound to o.
func (o *Options) Register(fs *pflag.FlagSet) {
	o.gaps = make(map[string]*uint32, len(gapFlags))
	for _, g := range gapFlags {
		v := new(uint32)
		o.gaps[g.name] = v
		fs.Uint32VarP(v, g.name, g.shorthand, 0, g.usage)
	}

	fs.Float64VarP(&o.SplitPerc, FlagSplitPerc, "s", config.DefaultFraction, "share of the split axis given to the primary window")
	fs.Float64VarP(&o.HSplitPerc, FlagHSplitPerc, "H", config.DefaultFraction, "split-perc override for horizontal splits")
	fs.Float64VarP(&o.VSplitPerc, FlagVSplitPerc, "v", config.DefaultFraction, "split-perc override for vertical splits")

	fs.Float64Var(&o.IncHSplit, FlagIncHSplit, 0, "increase the horizontal split fraction by a delta")
	fs.Float64Var(&o.IncVSplit, FlagIncVSplit, 0, "increase the vertical split fraction by a delta")
	fs.Float64Var(&o.DecHSplit, FlagDecHSplit, 0, "decrease the horizontal split fraction by a delta")
	fs.Float64Var(&o.DecVSplit, FlagDecVSplit, 0, "decrease the vertical split fraction by a delta")

	fs.BoolVar(&o.StartHSplit, FlagStartHSplit, false, "make the first split horizontal (left/right)")
	fs.BoolVar(&o.StartVSplit, FlagStartVSplit, false, "make the first split vertical (top/bottom)")
	fs.BoolVar(&o.Reverse, FlagReverse, false, "toggle reversed window order")

	for alias, name := range legacyAliases {
		fs.Float64Var(o.adjustTarget(name), alias, 0, "alias for --"+name)
		_ = fs.MarkHidden(alias)
	}
}

func (o *Options) adjustTarget(name string) *float64 {
	switch name {
	case FlagIncHSplit:
		return &o.IncHSplit
	case FlagIncVSplit:
		return &o.IncVSplit
	case FlagDecHSplit:
		return &o.DecHSplit
	default:
		return &o.DecVSplit
	}
}

// Batch converts the flags changed on fs into ops, in the order they are
// applied: orientation, reverse, absolute splits, outer gaps, inner gaps,
// then relative adjustments.
func (o *Options) Batch(fs *pflag.FlagSet) (Batch, error) {
	changed := func(name string) bool { return fs.Changed(name) }

	var b Batch

	startH, startV := changed(FlagStartHSplit) && o.StartHSplit, changed(FlagStartVSplit) && o.StartVSplit
	switch {
	case startH && startV:
		return nil, bsperrors.New(bsperrors.ErrCodeInvalidValue,
			"%s and %s are mutually exclusive, select only one", FlagStartHSplit, FlagStartVSplit)
	case startH:
		b = append(b, config.SetStart{Orientation: config.Horizontal})
	case startV:
		b = append(b, config.SetStart{Orientation: config.Vertical})
	}

	if changed(FlagReverse) && o.Reverse {
		b = append(b, config.ToggleReverse{})
	}

	splits := []struct {
		name   string
		target config.SplitTarget
		value  float64
	}{
		{FlagSplitPerc, config.SplitBoth, o.SplitPerc},
		{FlagVSplitPerc, config.SplitVertical, o.VSplitPerc},
		{FlagHSplitPerc, config.SplitHorizontal, o.HSplitPerc},
	}
	for _, s := range splits {
		if !changed(s.name) {
			continue
		}
		if err := bsperrors.ValidateFraction(s.name, s.value); err != nil {
			return nil, err
		}
		b = append(b, config.SetSplit{Target: s.target, Value: s.value})
	}

	for _, g := range gapFlags {
		if changed(g.name) {
			b = append(b, config.SetGap{Kind: g.kind, Edge: g.edge, Value: *o.gaps[g.name]})
		}
	}

	adjusts := []struct {
		name        string
		orientation config.Orientation
		sign        float64
	}{
		{FlagIncHSplit, config.Horizontal, 1},
		{FlagIncVSplit, config.Vertical, 1},
		{FlagDecHSplit, config.Horizontal, -1},
		{FlagDecVSplit, config.Vertical, -1},
	}
	for _, a := range adjusts {
		if !changed(a.name) && !aliasChanged(fs, a.name) {
			continue
		}
		delta := *o.adjustTarget(a.name)
		if err := bsperrors.ValidateFinite(a.name, delta); err != nil {
			return nil, bsperrors.New(bsperrors.ErrCodeInvalidCommand, "invalid argument for --%s: %v", a.name, delta)
		}
		b = append(b, config.AdjustSplit{Orientation: a.orientation, Delta: a.sign * delta})
	}

	return b, nil
}

func aliasChanged(fs *pflag.FlagSet, name string) bool {
	for alias, target := range legacyAliases {
		if target == name && fs.Changed(alias) {
			return true
		}
	}
	return false
}
