package bsp

import (
	"math"
	"testing"

	"github.com/matzehuels/bsptile/pkg/config"
)

func TestRectInset(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		e    config.Edges[uint32]
		want Rect
	}{
		{"uniform", Rect{0, 0, 100, 50}, config.Edges[uint32]{Left: 5, Right: 5, Top: 5, Bottom: 5}, Rect{5, 5, 90, 40}},
		{"asymmetric", Rect{10, 20, 100, 50}, config.Edges[uint32]{Left: 1, Right: 2, Top: 3, Bottom: 4}, Rect{11, 23, 97, 43}},
		{"clamped", Rect{0, 0, 10, 10}, config.Edges[uint32]{Left: 8, Right: 8, Top: 8, Bottom: 8}, Rect{8, 8, 0, 0}},
		{"origin saturates", Rect{math.MaxInt32 - 1, 0, 10, 10}, config.Edges[uint32]{Left: 9}, Rect{math.MaxInt32, 0, 1, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Inset(tt.e); got != tt.want {
				t.Errorf("Inset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectSplit(t *testing.T) {
	tests := []struct {
		name          string
		r             Rect
		o             config.Orientation
		f             float64
		primary, rest Rect
	}{
		{"horizontal half", Rect{0, 0, 1900, 530}, config.Horizontal, 0.5, Rect{0, 0, 950, 530}, Rect{950, 0, 950, 530}},
		{"vertical half", Rect{10, 10, 1900, 1060}, config.Vertical, 0.5, Rect{10, 10, 1900, 530}, Rect{10, 540, 1900, 530}},
		{"odd extent floors", Rect{0, 0, 101, 10}, config.Horizontal, 0.5, Rect{0, 0, 50, 10}, Rect{50, 0, 51, 10}},
		{"tiny fraction keeps a pixel", Rect{0, 0, 100, 10}, config.Horizontal, config.MinSplit, Rect{0, 0, 1, 10}, Rect{1, 0, 99, 10}},
		{"large fraction keeps a pixel", Rect{0, 0, 10, 100}, config.Vertical, config.MaxSplit, Rect{0, 0, 10, 99}, Rect{0, 99, 10, 1}},
		{"one pixel", Rect{0, 0, 1, 1}, config.Horizontal, 0.5, Rect{0, 0, 0, 1}, Rect{0, 0, 1, 1}},
		{"zero extent", Rect{5, 5, 0, 0}, config.Vertical, 0.5, Rect{5, 5, 0, 0}, Rect{5, 5, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, r := tt.r.Split(tt.o, tt.f)
			if p != tt.primary || r != tt.rest {
				t.Errorf("Split() = %v, %v; want %v, %v", p, r, tt.primary, tt.rest)
			}
		})
	}
}

func TestRectString(t *testing.T) {
	r := Rect{X: -5, Y: 10, Width: 640, Height: 480}
	if got := r.String(); got != "640x480+-5+10" {
		t.Errorf("String() = %q", got)
	}
	if !(Rect{Width: 0, Height: 5}).Empty() {
		t.Error("zero width should be empty")
	}
}
