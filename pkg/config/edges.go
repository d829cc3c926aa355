package config

// Edge names one side of a rectangle. EdgeAll addresses the shared default.
type Edge uint8

const (
	EdgeAll Edge = iota
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
)

// String returns the edge name as used in command flags.
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "all"
	}
}

// Edges holds one resolved value per side.
type Edges[T any] struct {
	Left, Right, Top, Bottom T
}

// EdgeValues is a default value with optional per-edge overrides.
// A nil override falls back to Default.
type EdgeValues[T any] struct {
	Default T
	Left    *T
	Right   *T
	Top     *T
	Bottom  *T
}

// Uniform returns EdgeValues with v as default and no overrides.
func Uniform[T any](v T) EdgeValues[T] {
	return EdgeValues[T]{Default: v}
}

// Resolve returns the override for edge, or Default when none is set.
// EdgeAll always resolves to Default.
func (e EdgeValues[T]) Resolve(edge Edge) T {
	if p := e.slot(edge); p != nil && *p != nil {
		return **p
	}
	return e.Default
}

// Resolved returns the effective value on every side.
func (e EdgeValues[T]) Resolved() Edges[T] {
	return Edges[T]{
		Left:   e.Resolve(EdgeLeft),
		Right:  e.Resolve(EdgeRight),
		Top:    e.Resolve(EdgeTop),
		Bottom: e.Resolve(EdgeBottom),
	}
}

// Overridden reports whether edge carries its own value.
func (e EdgeValues[T]) Overridden(edge Edge) bool {
	p := e.slot(edge)
	return p != nil && *p != nil
}

// Set assigns v to a single edge. EdgeAll replaces the default and drops
// every override so all four sides take v.
func (e *EdgeValues[T]) Set(edge Edge, v T) {
	if edge == EdgeAll {
		*e = Uniform(v)
		return
	}
	*e.slot(edge) = &v
}

// Clone returns a copy that shares no override pointers with e.
func (e EdgeValues[T]) Clone() EdgeValues[T] {
	return EdgeValues[T]{
		Default: e.Default,
		Left:    clonePtr(e.Left),
		Right:   clonePtr(e.Right),
		Top:     clonePtr(e.Top),
		Bottom:  clonePtr(e.Bottom),
	}
}

func (e *EdgeValues[T]) slot(edge Edge) **T {
	switch edge {
	case EdgeLeft:
		return &e.Left
	case EdgeRight:
		return &e.Right
	case EdgeTop:
		return &e.Top
	case EdgeBottom:
		return &e.Bottom
	}
	return nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
