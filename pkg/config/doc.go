// Package config holds the layout parameters read by the BSP partitioner.
//
// A [Config] aggregates inner gaps, outer gaps and split settings. Gaps are
// [EdgeValues]: a shared default plus optional per-edge overrides that are
// resolved explicitly. Split fractions follow the same pattern per
// [Orientation].
//
// # Mutation
//
// A [Store] owns the live configuration. It is changed only through
// [Store.Apply], which takes a batch of [Op] values from a closed set
// ([SetGap], [SetSplit], [AdjustSplit], [SetStart], [ToggleReverse]). A batch
// is applied to a copy and committed only if every op and the resulting
// configuration validate, so a failed command never leaves a partially
// updated store behind.
//
//	store, _ := config.NewStore(config.Default())
//	err := store.Apply(
//	    config.SetGap{Kind: config.GapOuter, Edge: config.EdgeAll, Value: 10},
//	    config.ToggleReverse{},
//	)
//
// Readers take a [Store.Snapshot], an independent copy that later commands
// cannot alter.
//
// # Files
//
// [LoadFile] and [Decode] read the TOML startup file; [Encode] writes it back.
package config
