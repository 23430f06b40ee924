package dimfield

// Navigator is the narrow capability surface the engine needs from the
// rendering/animation layer: viewport bookkeeping only, no computational
// dependency. The engine holds it as a non-owning handle and tolerates its
// absence.
type Navigator interface {
	Width() int
	Height() int
	Mode() int
}

// ViewState is the last navigator reading captured during a compute pass.
type ViewState struct {
	Width  int
	Height int
	Mode   int
}

// navHandle wraps an optional Navigator with nil-safe reads.
type navHandle struct {
	nav Navigator
}

func (h navHandle) view() ViewState {
	if h.nav == nil {
		return ViewState{}
	}
	return ViewState{Width: h.nav.Width(), Height: h.nav.Height(), Mode: h.nav.Mode()}
}

// StaticNavigator is a fixed-viewport Navigator for CLI use and tests.
type StaticNavigator struct {
	W, H, M int
}

func (n *StaticNavigator) Width() int  { return n.W }
func (n *StaticNavigator) Height() int { return n.H }
func (n *StaticNavigator) Mode() int   { return n.M }
