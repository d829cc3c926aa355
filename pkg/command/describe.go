package command

import "github.com/matzehuels/bsptile/pkg/config"

// Describe returns the batch that turns config.Default() into cfg, in the
// order Parse would produce it. Parsing Describe(cfg).String() and applying
// it to a default store yields cfg again.
func Describe(cfg config.Config) Batch {
	def := config.Default()
	var b Batch

	if cfg.Split.Start != def.Split.Start {
		b = append(b, config.SetStart{Orientation: cfg.Split.Start})
	}
	if cfg.Split.Reverse {
		b = append(b, config.ToggleReverse{})
	}

	if cfg.Split.Default != def.Split.Default {
		b = append(b, config.SetSplit{Target: config.SplitBoth, Value: cfg.Split.Default})
	}
	if p := cfg.Split.Vertical; p != nil {
		b = append(b, config.SetSplit{Target: config.SplitVertical, Value: *p})
	}
	if p := cfg.Split.Horizontal; p != nil {
		b = append(b, config.SetSplit{Target: config.SplitHorizontal, Value: *p})
	}

	b = appendGaps(b, config.GapOuter, cfg.OuterGap)
	b = appendGaps(b, config.GapInner, cfg.InnerGap)
	return b
}

func appendGaps(b Batch, kind config.GapKind, e config.EdgeValues[uint32]) Batch {
	if e.Default != 0 {
		b = append(b, config.SetGap{Kind: kind, Edge: config.EdgeAll, Value: e.Default})
	}
	for _, edge := range []config.Edge{config.EdgeTop, config.EdgeBottom, config.EdgeRight, config.EdgeLeft} {
		if e.Overridden(edge) {
			b = append(b, config.SetGap{Kind: kind, Edge: edge, Value: e.Resolve(edge)})
		}
	}
	return b
}
