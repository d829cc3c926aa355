// Package pkg provides the libraries behind bsptile, a binary space partition
// layout generator for tiling window managers.
//
// # Overview
//
// Every window takes a share of the space that is left and the next split
// runs the other way, so n windows on an output produce a chain of
// alternating cuts. The pkg directory is organized into four areas:
//
//  1. Layout: [bsp] (geometry and the partition algorithm) and [config]
//     (gaps, split fractions and the ops that change them)
//  2. Commands: [command] (the flag language) and [engine] (the event loop
//     that serializes layouts and commands)
//  3. Adapters: [transport/lineproto], [control/httpapi] and
//     [control/redisctl], which feed the engine from stdio, HTTP and Redis
//  4. Rendering: [render/dot] and [render/term]
//
// # Data Flow
//
//	command text (stdio / HTTP / Redis / TUI)
//	         ↓
//	    [command] parses flags into config ops
//	         ↓
//	    [engine] applies them to a [config.Store]
//	         ↓
//	    [bsp.Partition] lays out n windows on an output
//	         ↓
//	    rectangles, DOT/SVG, terminal preview
//
// # Quick Start
//
//	cfg := config.Default()
//	cfg.OuterGap = config.Uniform[uint32](10)
//	rects := bsp.Partition(3, bsp.Rect{Width: 1920, Height: 1080}, cfg)
//
// # Supporting Packages
//
// [errors] carries the error codes shared by every adapter, [observability]
// exposes hooks for layout and command events, and [buildinfo] holds the
// version stamped in at link time.
package pkg
