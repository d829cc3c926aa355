// Package bsp computes binary-space-partition window layouts.
//
// [Partition] is a pure function of a window count, an output rectangle and a
// [config.Config] snapshot. It shrinks the output by the outer gaps, then
// repeatedly splits the remaining area in two: the primary part goes to the
// next window, the rest is split again with the orientation flipped. Every
// final region is shrunk by the inner gaps.
//
// Three windows, starting with a vertical split:
//
//	+-------------------------------+
//	|               0               |
//	+---------------+---------------+
//	|       1       |       2       |
//	+---------------+---------------+
//
// A Horizontal split produces a left (primary) and right (remaining) pair; a
// Vertical split produces a top (primary) and bottom (remaining) pair.
//
// The result is indexed by the caller's window index. With the reverse flag
// set, window n-1 takes the first primary region and window 0 the last, but
// result[i] still belongs to window i.
//
// [Build] exposes the split tree behind a partition for rendering and
// debugging.
package bsp
