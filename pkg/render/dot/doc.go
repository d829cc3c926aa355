// Package dot renders BSP split trees as Graphviz diagrams.
//
// # Usage
//
// Build a tree, convert it to DOT and optionally render it in-process:
//
//	root := bsp.Build(3, output, cfg)
//	src := dot.ToDOT(root, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// Split nodes are labelled with their orientation (hsplit for a left/right
// cut, vsplit for a top/bottom cut); leaves with the window index they
// place. With [Options.Detailed] set, labels also carry the split fraction
// and the resulting rectangles.
//
// # Dependencies
//
// SVG output uses [github.com/goccy/go-graphviz], which bundles Graphviz as
// WebAssembly and needs no system installation.
package dot
