// Package term draws window layouts as character-cell previews.
//
// Geometry is scaled from output pixels onto a fixed grid, each window is
// drawn as a box with its index in the top left corner, and boxes are
// optionally coloured with lipgloss.
package term

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bsptile/pkg/bsp"
)

// Default grid size, roughly the aspect ratio of a 16:9 output in a
// terminal with 2:1 cells.
const (
	DefaultColumns = 64
	DefaultRows    = 18
)

var palette = []lipgloss.Color{
	lipgloss.Color("36"),  // teal
	lipgloss.Color("75"),  // light blue
	lipgloss.Color("35"),  // green
	lipgloss.Color("220"), // amber
	lipgloss.Color("167"), // soft red
	lipgloss.Color("141"), // violet
	lipgloss.Color("209"), // orange
	lipgloss.Color("250"), // light gray
}

var styleBackground = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// Options configures a preview.
type Options struct {
	Columns int
	Rows    int
	Color   bool
}

type cell struct {
	r     rune
	owner int
}

// Render returns a Rows-line preview of rects laid out on output. rects[i]
// is labelled i. Cells outside every window are drawn as dots.
func Render(rects []bsp.Rect, output bsp.Rect, opts Options) string {
	cols, rows := opts.Columns, opts.Rows
	if cols <= 0 {
		cols = DefaultColumns
	}
	if rows <= 0 {
		rows = DefaultRows
	}

	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			grid[y][x] = cell{r: '·', owner: -1}
		}
	}

	for i, r := range rects {
		if r.Empty() {
			continue
		}
		x0, x1 := scaleSpan(int64(r.X)-int64(output.X), int64(r.Width), int64(output.Width), cols)
		y0, y1 := scaleSpan(int64(r.Y)-int64(output.Y), int64(r.Height), int64(output.Height), rows)
		if x0 > x1 || y0 > y1 {
			continue
		}
		drawBox(grid, x0, y0, x1, y1, i)
	}

	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		writeRow(&b, row, opts.Color)
	}
	return b.String()
}

// scaleSpan maps the pixel span [pos, pos+size) of an axis of length total
// onto cells [0, n). It returns an inclusive cell range, empty (lo > hi)
// when nothing of the span is visible.
func scaleSpan(pos, size, total int64, n int) (lo, hi int) {
	if total <= 0 || size <= 0 {
		return 1, 0
	}
	lo = int(pos * int64(n) / total)
	hi = int((pos+size)*int64(n)/total) - 1
	if hi < lo {
		hi = lo
	}
	return max(lo, 0), min(hi, n-1)
}

func drawBox(grid [][]cell, x0, y0, x1, y1, owner int) {
	set := func(x, y int, r rune) { grid[y][x] = cell{r: r, owner: owner} }

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			set(x, y, ' ')
		}
	}

	if x1 > x0 && y1 > y0 {
		for x := x0 + 1; x < x1; x++ {
			set(x, y0, '─')
			set(x, y1, '─')
		}
		for y := y0 + 1; y < y1; y++ {
			set(x0, y, '│')
			set(x1, y, '│')
		}
		set(x0, y0, '┌')
		set(x1, y0, '┐')
		set(x0, y1, '└')
		set(x1, y1, '┘')
	}

	// Label inside the border when there is room, otherwise over it.
	lx, ly := x0, y0
	if x1-x0 >= 2 && y1-y0 >= 2 {
		lx, ly = x0+1, y0+1
	}
	for i, r := range strconv.Itoa(owner) {
		if lx+i > x1 {
			break
		}
		set(lx+i, ly, r)
	}
}

func writeRow(b *strings.Builder, row []cell, color bool) {
	if !color {
		for _, c := range row {
			b.WriteRune(c.r)
		}
		return
	}

	// Style runs of cells that share an owner together.
	for start := 0; start < len(row); {
		end := start
		var run strings.Builder
		for end < len(row) && row[end].owner == row[start].owner {
			run.WriteRune(row[end].r)
			end++
		}
		b.WriteString(styleFor(row[start].owner).Render(run.String()))
		start = end
	}
}

func styleFor(owner int) lipgloss.Style {
	if owner < 0 {
		return styleBackground
	}
	return lipgloss.NewStyle().Foreground(palette[owner%len(palette)])
}
