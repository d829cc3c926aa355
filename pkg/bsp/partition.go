package bsp

import (
	"slices"

	"github.com/matzehuels/bsptile/pkg/config"
)

// Node is one step of a partition. Split nodes have a Primary leaf and a Rest
// subtree; leaves carry the window they were assigned to.
type Node struct {
	// Region is the area covered by this node before inner gaps.
	Region Rect

	// Window is the caller's window index for leaves, -1 for split nodes.
	Window int

	// Geometry is the final window rectangle (Region minus inner gaps).
	// Only set on leaves.
	Geometry Rect

	// Orientation and Fraction describe the split. Only set on split nodes.
	Orientation config.Orientation
	Fraction    float64

	Primary *Node
	Rest    *Node
}

// IsLeaf reports whether n is assigned to a window.
func (n *Node) IsLeaf() bool {
	return n.Window >= 0
}

// Walk visits n and its descendants depth first, primary before rest.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	n.Primary.Walk(fn)
	n.Rest.Walk(fn)
}

// Leaves returns the leaves of the tree in placement order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(m *Node) {
		if m.IsLeaf() {
			out = append(out, m)
		}
	})
	return out
}

// UsableArea returns output shrunk by the outer gaps of cfg.
func UsableArea(output Rect, cfg config.Config) Rect {
	return output.Inset(cfg.OuterGap.Resolved())
}

// Build returns the split tree for n windows, or nil when n <= 0.
func Build(n int, output Rect, cfg config.Config) *Node {
	if n <= 0 {
		return nil
	}

	inner := cfg.InnerGap.Resolved()
	leaf := func(region Rect, window int) *Node {
		return &Node{Region: region, Window: window, Geometry: region.Inset(inner)}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if cfg.Split.Reverse {
		slices.Reverse(order)
	}

	region := UsableArea(output, cfg)
	orientation := cfg.Split.Start

	var root *Node
	link := &root
	for j, window := range order {
		if j == n-1 {
			*link = leaf(region, window)
			break
		}
		fraction := cfg.Split.Resolve(orientation)
		primary, rest := region.Split(orientation, fraction)
		node := &Node{
			Region:      region,
			Window:      -1,
			Orientation: orientation,
			Fraction:    fraction,
			Primary:     leaf(primary, window),
		}
		*link = node
		link = &node.Rest
		region = rest
		orientation = orientation.Flip()
	}
	return root
}

// Partition returns one rectangle per window; result[i] is the geometry of
// window i. It returns an empty slice when n <= 0.
func Partition(n int, output Rect, cfg config.Config) []Rect {
	if n <= 0 {
		return []Rect{}
	}
	out := make([]Rect, n)
	for _, l := range Build(n, output, cfg).Leaves() {
		out[l.Window] = l.Geometry
	}
	return out
}
