package bsp

import (
	"fmt"
	"math"

	"github.com/matzehuels/bsptile/pkg/config"
)

// Rect is an axis-aligned rectangle in pixels with its origin at the top left.
type Rect struct {
	X      int32  `json:"x"`
	Y      int32  `json:"y"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Inset shrinks r by e on each side. Dimensions that would go negative are
// clamped to zero.
func (r Rect) Inset(e config.Edges[uint32]) Rect {
	return Rect{
		X:      clampInt32(int64(r.X) + int64(e.Left)),
		Y:      clampInt32(int64(r.Y) + int64(e.Top)),
		Width:  shrink(r.Width, e.Left, e.Right),
		Height: shrink(r.Height, e.Top, e.Bottom),
	}
}

// Split divides r along the axis selected by o. The primary part receives
// floor(extent*fraction) pixels, kept within [1, extent-1] when the extent
// allows it, and the remaining part receives the rest, so the two always add
// up to the original extent.
func (r Rect) Split(o config.Orientation, fraction float64) (primary, rest Rect) {
	if o == config.Horizontal {
		p := splitExtent(r.Width, fraction)
		primary = Rect{X: r.X, Y: r.Y, Width: p, Height: r.Height}
		rest = Rect{X: clampInt32(int64(r.X) + int64(p)), Y: r.Y, Width: r.Width - p, Height: r.Height}
		return primary, rest
	}
	p := splitExtent(r.Height, fraction)
	primary = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: p}
	rest = Rect{X: r.X, Y: clampInt32(int64(r.Y) + int64(p)), Width: r.Width, Height: r.Height - p}
	return primary, rest
}

func splitExtent(extent uint32, fraction float64) uint32 {
	if extent == 0 {
		return 0
	}
	f := math.Floor(float64(extent) * fraction)
	switch {
	case extent >= 2 && f < 1:
		return 1
	case extent >= 2 && f > float64(extent-1):
		return extent - 1
	case f < 0:
		return 0
	case f > float64(extent):
		return extent
	}
	return uint32(f)
}

func shrink(v, a, b uint32) uint32 {
	d := int64(v) - int64(a) - int64(b)
	if d < 0 {
		return 0
	}
	return uint32(d)
}

func clampInt32(v int64) int32 {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}
