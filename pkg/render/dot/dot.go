package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bsptile/pkg/bsp"
	"github.com/matzehuels/bsptile/pkg/config"
)

// Options configures split tree rendering.
type Options struct {
	// Detailed adds regions and split fractions to node labels.
	// When false, leaves show only the window index.
	Detailed bool
}

// ToDOT converts a split tree to Graphviz DOT format. A nil root yields an
// empty graph. The result can be rendered with [RenderSVG].
//
// Split nodes are drawn as ellipses, leaves as boxes. Each split has a
// solid edge to its primary child and a dashed edge to the remaining area.
func ToDOT(root *bsp.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")

	ids := make(map[*bsp.Node]string)
	root.Walk(func(n *bsp.Node) {
		ids[n] = "n" + strconv.Itoa(len(ids))
	})

	if len(ids) > 0 {
		buf.WriteString("\n")
	}
	root.Walk(func(n *bsp.Node) {
		fmt.Fprintf(&buf, "  %s [%s];\n", ids[n], strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	})

	var edges bytes.Buffer
	root.Walk(func(n *bsp.Node) {
		if n.Primary != nil {
			fmt.Fprintf(&edges, "  %s -> %s;\n", ids[n], ids[n.Primary])
		}
		if n.Rest != nil {
			fmt.Fprintf(&edges, "  %s -> %s [style=dashed];\n", ids[n], ids[n.Rest])
		}
	})
	if edges.Len() > 0 {
		buf.WriteString("\n")
		buf.Write(edges.Bytes())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *bsp.Node, detailed bool) string {
	if n.IsLeaf() {
		label := fmt.Sprintf("window %d", n.Window)
		if detailed {
			label += "\n" + n.Geometry.String()
		}
		return label
	}

	label := splitName(n.Orientation)
	if detailed {
		label += fmt.Sprintf(" %g\n%s", n.Fraction, n.Region)
	}
	return label
}

func fmtAttrs(n *bsp.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if !n.IsLeaf() {
		attrs = append(attrs, "shape=ellipse", "style=filled", "fillcolor=lightgrey")
	}
	return attrs
}

func splitName(o config.Orientation) string {
	if o == config.Horizontal {
		return "hsplit"
	}
	return "vsplit"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root element with one whose viewBox
// starts at the origin, so the SVG scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
