// Package render groups the layout visualizations.
//
// The subpackages render the two views bsptile offers of a layout:
//
//   - [dot]: the split tree behind a layout as a Graphviz diagram, in DOT
//     source or as SVG
//   - [term]: the window rectangles of a layout as a box-drawing preview
//     scaled onto a character grid
//
// Both take the output of package bsp directly and hold no state.
package render

