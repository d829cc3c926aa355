package httpapi

import "github.com/matzehuels/bsptile/pkg/config"

// configView is the JSON form of a configuration, with every per-edge and
// per-orientation value resolved.
type configView struct {
	InnerGap edgesView `json:"inner_gap"`
	OuterGap edgesView `json:"outer_gap"`
	Split    splitView `json:"split"`
}

type edgesView struct {
	Left   uint32 `json:"left"`
	Right  uint32 `json:"right"`
	Top    uint32 `json:"top"`
	Bottom uint32 `json:"bottom"`
}

type splitView struct {
	Horizontal float64            `json:"horizontal"`
	Vertical   float64            `json:"vertical"`
	Start      config.Orientation `json:"start"`
	Reverse    bool               `json:"reverse"`
}

func newConfigView(cfg config.Config) configView {
	return configView{
		InnerGap: newEdgesView(cfg.InnerGap.Resolved()),
		OuterGap: newEdgesView(cfg.OuterGap.Resolved()),
		Split: splitView{
			Horizontal: cfg.Split.Resolve(config.Horizontal),
			Vertical:   cfg.Split.Resolve(config.Vertical),
			Start:      cfg.Split.Start,
			Reverse:    cfg.Split.Reverse,
		},
	}
}

func newEdgesView(e config.Edges[uint32]) edgesView {
	return edgesView{Left: e.Left, Right: e.Right, Top: e.Top, Bottom: e.Bottom}
}
