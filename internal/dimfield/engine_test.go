package dimfield

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, maxDim int) *Engine {
	t.Helper()
	e, err := New(Options{MaxDimensions: maxDim, VertexCap: DefaultVertexCap})
	require.NoError(t, err)
	return e
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(Options{MaxDimensions: 0})
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = New(Options{MaxDimensions: -3})
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = New(Options{MaxDimensions: MaxDimensionsCap + 1})
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = New(Options{MaxDimensions: 5, StartDimension: 9})
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = New(Options{MaxDimensions: 5, VertexCap: -1})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestInteractionLengthPerDimension(t *testing.T) {
	e := newTestEngine(t, 8)
	for d := 1; d <= 8; d++ {
		require.NoError(t, e.SetCurrentDimension(d))
		inter := e.Interactions()
		want := vertexCount(d, DefaultVertexCap) - 1
		if d == 3 {
			assert.GreaterOrEqual(t, len(inter), want)
			assert.LessOrEqual(t, len(inter), want+2)
		} else {
			assert.Len(t, inter, want, "dimension %d", d)
		}
	}
}

// A parameter write landing while a refresh is already in flight must be
// picked up by the next refresh, not silently dropped. The allocation hook
// fires inside the lattice rebuild, which is the middle of refresh, so the
// injected setter is a deterministic mid-refresh write.
func TestSetterDuringRefreshReflectedOnNextRead(t *testing.T) {
	var eng *Engine
	opts := Options{MaxDimensions: 6, StartDimension: 2, VertexCap: 64}
	opts.alloc = func(n int) ([]Real, error) {
		if eng != nil {
			eng.SetInfluence(0)
		}
		return make([]Real, n), nil
	}
	e, err := New(opts)
	require.NoError(t, err)
	eng = e

	first := e.Compute()
	assert.NotZero(t, first.Observable)

	// dimension change forces a lattice rebuild on the next refresh; the
	// hook writes influence=0 while that refresh is running
	require.NoError(t, e.SetCurrentDimension(4))
	e.Compute()

	assert.Zero(t, e.Influence())
	for _, it := range e.Interactions() {
		assert.Zero(t, it.Strength,
			"tables read after the mid-refresh write must use the new influence")
	}
}

func TestDirtyThenRefreshContract(t *testing.T) {
	e := newTestEngine(t, 6)
	require.NoError(t, e.SetCurrentDimension(2))

	before := e.Compute()
	e.SetInfluence(before.Observable + 3) // any setter dirties the cache
	after := e.Compute()
	assert.NotEqual(t, before.Observable, after.Observable,
		"the very next read must reflect the new parameter value")

	// interactions refresh too
	e.SetInfluence(0)
	for _, it := range e.Interactions() {
		assert.Zero(t, it.Strength)
	}
}

func TestComputeIdempotent(t *testing.T) {
	e := newTestEngine(t, 6)
	require.NoError(t, e.SetCurrentDimension(4))
	a := e.Compute()
	b := e.Compute()
	assert.Equal(t, a, b)
}

func TestAdvanceCycleWraps(t *testing.T) {
	e := newTestEngine(t, 5)
	require.NoError(t, e.SetCurrentDimension(2))
	start := e.CurrentDimension()
	for i := 0; i < 5; i++ {
		e.AdvanceCycle()
	}
	assert.Equal(t, start, e.CurrentDimension(),
		"maxDimensions advances must return to the starting dimension")

	require.NoError(t, e.SetCurrentDimension(5))
	assert.Equal(t, 1, e.AdvanceCycle(), "advance past the ceiling wraps to 1")
}

func TestSetCurrentDimensionValidates(t *testing.T) {
	e := newTestEngine(t, 4)
	assert.ErrorIs(t, e.SetCurrentDimension(0), ErrConfiguration)
	assert.ErrorIs(t, e.SetCurrentDimension(5), ErrConfiguration)
	assert.NoError(t, e.SetCurrentDimension(4))
}

func TestVertexAccessBounds(t *testing.T) {
	e := newTestEngine(t, 4)
	require.NoError(t, e.SetCurrentDimension(2))

	v, err := e.Vertex(0)
	require.NoError(t, err)
	assert.Equal(t, []Real{-1, -1}, v)

	_, err = e.Vertex(4)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = e.Vertex(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestThreeDResonanceContribution(t *testing.T) {
	// maxDimensions=5, influence=1, dimension 3: rows whose (index % 5)+1
	// is 2 carry the threeDInfluence multiplier, and indices 1 and 3 are
	// present regardless of loop stride.
	p := DefaultParameters()
	p.Influence = 1
	e, err := New(Options{MaxDimensions: 5, VertexCap: DefaultVertexCap, Params: &p})
	require.NoError(t, err)
	require.NoError(t, e.SetCurrentDimension(3))
	e.Compute()

	seen := map[int]DimensionInteraction{}
	for _, it := range e.Interactions() {
		seen[it.VertexIndex] = it
	}
	require.Contains(t, seen, 1)
	require.Contains(t, seen, 3)

	e.SetThreeDInfluence(e.ThreeDInfluence() * 2)
	boosted := map[int]DimensionInteraction{}
	for _, it := range e.Interactions() {
		boosted[it.VertexIndex] = it
	}
	assert.InDelta(t, 2.0, boosted[1].Strength/seen[1].Strength, 1e-12)
	assert.InDelta(t, 1.0, boosted[2].Strength/seen[2].Strength, 1e-12)
}

func TestInjectedAllocationFailureDegrades(t *testing.T) {
	// allocation failure at dimension 10 with cap 2^20 must settle at a
	// stable dimension <= 9 without crashing
	opts := Options{MaxDimensions: 12, StartDimension: 10, VertexCap: 1 << 20}
	opts.alloc = failAbove(1024*10 - 1)
	e, err := New(opts)
	require.NoError(t, err)
	assert.LessOrEqual(t, e.CurrentDimension(), 9)
	assert.Equal(t, Degraded, e.Sizing().State)

	r := e.Compute()
	assert.True(t, isFinite(r.Observable))
}

func TestConstructionFailsWhenNothingFits(t *testing.T) {
	opts := Options{MaxDimensions: 5, StartDimension: 2, VertexCap: 4}
	opts.alloc = func(n int) ([]Real, error) { return nil, errors.New("oom") }
	_, err := New(opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceExhaustion)
}

func TestProjectionAndInteractionsShareSnapshot(t *testing.T) {
	e := newTestEngine(t, 6)
	require.NoError(t, e.SetCurrentDimension(3))
	assert.Len(t, e.ProjectedVertices(), 8)
	assert.Equal(t, 8, e.VertexCount())

	require.NoError(t, e.SetCurrentDimension(4))
	assert.Len(t, e.ProjectedVertices(), 16)
}

func TestEvolveMomentumDeterministic(t *testing.T) {
	run := func() []Real {
		e := newTestEngine(t, 6)
		require.NoError(t, e.SetCurrentDimension(3))
		e.EvolveMomentum(0.1)
		e.EvolveMomentum(0.1)
		m, err := e.Momentum(1)
		require.NoError(t, err)
		return m
	}
	assert.Equal(t, run(), run())
}

func TestEvolveMomentumMoves(t *testing.T) {
	e := newTestEngine(t, 6)
	require.NoError(t, e.SetCurrentDimension(2))
	before, err := e.Momentum(1)
	require.NoError(t, err)
	assert.Equal(t, []Real{0, 0}, before)

	e.EvolveMomentum(0.5)
	after, err := e.Momentum(1)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestViewStateFromNavigator(t *testing.T) {
	nav := &StaticNavigator{W: 640, H: 480, M: 2}
	e, err := New(Options{MaxDimensions: 4, Navigator: nav})
	require.NoError(t, err)
	e.Compute()
	assert.Equal(t, ViewState{Width: 640, Height: 480, Mode: 2}, e.ViewState())

	// nil navigator reads as zeros, never panics
	e2 := newTestEngine(t, 4)
	e2.Compute()
	assert.Equal(t, ViewState{}, e2.ViewState())
}

func TestSweepCoversRange(t *testing.T) {
	e := newTestEngine(t, 6)
	snaps, err := e.Sweep(1, 6)
	require.NoError(t, err)
	require.Len(t, snaps, 6)
	for i, s := range snaps {
		assert.Equal(t, i+1, s.Dimension)
	}
	_, err = e.Sweep(3, 2)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = e.Sweep(0, 4)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestConcurrentParameterWritesDuringReads(t *testing.T) {
	e := newTestEngine(t, 6)
	require.NoError(t, e.SetCurrentDimension(4))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
				e.SetInfluence(Real(i%10) + 0.5)
			}
		}
	}()
	for i := 0; i < 100; i++ {
		r := e.Compute()
		assert.True(t, isFinite(r.Observable))
		_ = e.Interactions()
	}
	close(stop)
	wg.Wait()

	// a refresh after the writer stops reflects the final value
	e.SetInfluence(1)
	fresh := newTestEngine(t, 6)
	require.NoError(t, fresh.SetCurrentDimension(4))
	fresh.SetInfluence(1)
	assert.Equal(t, fresh.Compute(), e.Compute())
}

func TestEngineIDsAreUnique(t *testing.T) {
	a := newTestEngine(t, 4)
	b := newTestEngine(t, 4)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestModeBookkeeping(t *testing.T) {
	e := newTestEngine(t, 4)
	e.SetMode(3)
	assert.Equal(t, 3, e.Mode())
}
