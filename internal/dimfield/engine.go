package dimfield

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/google/uuid"
)

// Options configures a new Engine. Zero values for StartDimension and
// VertexCap fall back to defaults; MaxDimensions must be set explicitly.
type Options struct {
	MaxDimensions  int
	StartDimension int
	VertexCap      int
	Navigator      Navigator
	Params         *ParameterSet // nil means DefaultParameters

	alloc allocFunc // test hook for injected allocation failures
}

// DefaultOptions returns a ready-to-use configuration.
func DefaultOptions() Options {
	return Options{
		MaxDimensions:  DefaultMaxDimensions,
		StartDimension: DefaultStartDimension,
		VertexCap:      DefaultVertexCap,
	}
}

// derived is one refresh's worth of published tables. It is built off a
// single lattice and parameter snapshot and swapped in whole, so clean
// readers never observe a half-updated view.
type derived struct {
	dimension    int
	interactions []DimensionInteraction
	projected    []Point3
	energy       EnergyResult
}

// Engine is the dimensional interaction/energy core. It is an explicit
// simulation context owned by the caller; multiple independent engines can
// coexist. Parameter writes are lock-free; derived-table reads take no lock
// when the cache is clean.
type Engine struct {
	id        uuid.UUID
	maxDim    int
	nav       navHandle
	params    *paramStore
	cache     *cacheController
	curve     *nurbsCurve
	collapse  []Real
	alloc     allocFunc
	curDim    atomic.Int64
	mode      atomic.Int64
	vertexCap atomic.Int64
	lat       *lattice // guarded by cache.mu during refresh
	out       atomic.Pointer[derived]
	sizing    atomic.Pointer[SizingReport]
	view      atomic.Pointer[ViewState]
}

// New validates the options, builds the initial lattice (degrading through
// the sizing state machine if allocation fails), and returns an engine whose
// cache starts dirty. Construction failure aborts the engine entirely.
func New(opts Options) (*Engine, error) {
	if opts.MaxDimensions < 1 || opts.MaxDimensions > MaxDimensionsCap {
		return nil, fmt.Errorf("%w: maxDimensions %d outside [1,%d]",
			ErrConfiguration, opts.MaxDimensions, MaxDimensionsCap)
	}
	if opts.StartDimension == 0 {
		opts.StartDimension = DefaultStartDimension
	}
	if opts.StartDimension < 1 || opts.StartDimension > opts.MaxDimensions {
		return nil, fmt.Errorf("%w: startDimension %d outside [1,%d]",
			ErrConfiguration, opts.StartDimension, opts.MaxDimensions)
	}
	if opts.VertexCap == 0 {
		opts.VertexCap = DefaultVertexCap
	}
	if opts.VertexCap < 1 {
		return nil, fmt.Errorf("%w: vertexCap %d", ErrConfiguration, opts.VertexCap)
	}
	params := DefaultParameters()
	if opts.Params != nil {
		params = *opts.Params
	}

	e := &Engine{
		id:       uuid.New(),
		maxDim:   opts.MaxDimensions,
		nav:      navHandle{nav: opts.Navigator},
		params:   newParamStore(params),
		cache:    newCacheController(),
		curve:    newMatterCurve(),
		collapse: collapseTable(opts.MaxDimensions),
		alloc:    opts.alloc,
	}
	e.curDim.Store(int64(opts.StartDimension))
	e.vertexCap.Store(int64(opts.VertexCap))

	lat, rep := buildWithRetry(opts.StartDimension, opts.VertexCap, e.alloc)
	e.sizing.Store(&rep)
	if rep.State == Fatal {
		return nil, rep.Err
	}
	e.lat = lat
	e.curDim.Store(int64(rep.Dimension))
	e.vertexCap.Store(int64(rep.VertexCap))
	e.view.Store(&ViewState{})

	logw().Info("engine created", "id", e.id,
		"maxDimensions", e.maxDim, "dimension", rep.Dimension,
		"vertexCap", rep.VertexCap, "sizing", rep.State.String())
	return e, nil
}

// ID returns the engine instance identifier used in logs and run metadata.
func (e *Engine) ID() uuid.UUID { return e.id }

// MaxDimensions returns the fixed dimension ceiling.
func (e *Engine) MaxDimensions() int { return e.maxDim }

// CurrentDimension returns the active lattice dimension.
func (e *Engine) CurrentDimension() int { return int(e.curDim.Load()) }

// VertexCap returns the active vertex cap, which may have been degraded by
// the sizing machinery.
func (e *Engine) VertexCap() int { return int(e.vertexCap.Load()) }

// Sizing returns the outcome of the most recent lattice construction.
func (e *Engine) Sizing() SizingReport { return *e.sizing.Load() }

// SetCurrentDimension switches the lattice dimension and dirties the cache.
func (e *Engine) SetCurrentDimension(d int) error {
	if d < 1 || d > e.maxDim {
		return fmt.Errorf("%w: dimension %d outside [1,%d]", ErrConfiguration, d, e.maxDim)
	}
	e.curDim.Store(int64(d))
	e.cache.invalidate()
	return nil
}

// AdvanceCycle bumps the dimension by one, wrapping to 1 past the ceiling,
// and returns the new dimension.
func (e *Engine) AdvanceCycle() int {
	for {
		old := e.curDim.Load()
		next := old + 1
		if next > int64(e.maxDim) {
			next = 1
		}
		if e.curDim.CompareAndSwap(old, next) {
			e.cache.invalidate()
			return int(next)
		}
	}
}

// SetMode records the render-layer mode. Kept as plain bookkeeping; the
// computation does not depend on it.
func (e *Engine) SetMode(m int) {
	e.mode.Store(int64(m))
	e.cache.invalidate()
}

// Mode returns the last recorded mode.
func (e *Engine) Mode() int { return int(e.mode.Load()) }

// ViewState returns the navigator reading captured by the latest Compute.
func (e *Engine) ViewState() ViewState { return *e.view.Load() }

// Compute returns the energy snapshot for the current dimension and
// parameters, refreshing the derived tables first if anything changed.
func (e *Engine) Compute() EnergyResult {
	v := e.nav.view()
	e.view.Store(&v)
	e.cache.ensure(e.refresh)
	return e.out.Load().energy
}

// Interactions returns the cached interaction table, refreshing if dirty.
// The returned slice is the published snapshot; callers must not mutate it.
func (e *Engine) Interactions() []DimensionInteraction {
	e.cache.ensure(e.refresh)
	return e.out.Load().interactions
}

// ProjectedVertices returns the 3D projection of the current vertex
// snapshot, refreshing if dirty.
func (e *Engine) ProjectedVertices() []Point3 {
	e.cache.ensure(e.refresh)
	return e.out.Load().projected
}

// Vertex returns a copy of vertex i's coordinates.
func (e *Engine) Vertex(i int) ([]Real, error) {
	e.cache.ensure(e.refresh)
	e.cache.mu.Lock()
	defer e.cache.mu.Unlock()
	if i < 0 || i >= e.lat.count {
		return nil, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, e.lat.count)
	}
	out := make([]Real, e.lat.dim)
	copy(out, e.lat.vertex(i))
	return out, nil
}

// VertexCount returns the size of the current vertex table.
func (e *Engine) VertexCount() int {
	e.cache.ensure(e.refresh)
	return len(e.out.Load().projected)
}

// EvolveMomentum advances the per-vertex momentum table by dt: each row is
// pulled toward its vertex's interaction strength along the vertex
// coordinates, with the momentum coupling acting as damping. This is the
// only mutation the momentum storage ever sees.
func (e *Engine) EvolveMomentum(dt Real) {
	e.cache.ensure(e.refresh)
	ps := e.params.load()
	inter := e.out.Load().interactions

	e.cache.mu.Lock()
	defer e.cache.mu.Unlock()
	for _, it := range inter {
		if it.VertexIndex >= e.lat.count {
			continue
		}
		v := e.lat.vertex(it.VertexIndex)
		m := e.lat.momentumRow(it.VertexIndex)
		for j := range m {
			m[j] += dt * (it.Strength*v[j] - ps.MomentumCoupling*m[j])
			m[j] = safeTerm(m[j], "momentum")
		}
	}
}

// Momentum returns a copy of vertex i's momentum row.
func (e *Engine) Momentum(i int) ([]Real, error) {
	e.cache.ensure(e.refresh)
	e.cache.mu.Lock()
	defer e.cache.mu.Unlock()
	if i < 0 || i >= e.lat.count {
		return nil, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, e.lat.count)
	}
	out := make([]Real, e.lat.dim)
	copy(out, e.lat.momentumRow(i))
	return out, nil
}

// refresh rebuilds the derived tables off one parameter snapshot. Runs with
// cache.mu held. The lattice is only reconstructed when the dimension
// changed; interactions, energy, and projection always rebuild together so
// rendering-space points and interaction distances derive from the same
// vertex snapshot.
func (e *Engine) refresh() {
	debugLogOnce("Parallel paths engage above %d units across %d workers",
		ParallelThreshold, runtime.GOMAXPROCS(0))
	ps := e.params.load()
	d := int(e.curDim.Load())

	if e.lat == nil || e.lat.dim != d {
		lat, rep := buildWithRetry(d, int(e.vertexCap.Load()), e.alloc)
		e.sizing.Store(&rep)
		if rep.State == Fatal {
			// Keep the last good lattice; the engine stays operating at its
			// previous dimension.
			logw().Error("lattice rebuild failed, keeping previous table",
				"id", e.id, "wanted", d, "kept", e.lat.dim, "err", rep.Err)
			e.curDim.Store(int64(e.lat.dim))
		} else {
			e.lat = lat
			e.curDim.Store(int64(rep.Dimension))
			e.vertexCap.Store(int64(rep.VertexCap))
			if rep.State == Degraded {
				logw().Warn("lattice degraded during rebuild", "id", e.id,
					"dimension", rep.Dimension, "vertexCap", rep.VertexCap)
			}
		}
	}

	inter := computeInteractions(e.lat, ps, e.maxDim, e.curve)
	energy := aggregateEnergy(e.lat.dim, ps, inter, e.collapse)
	proj := projectVertices(e.lat, ps)

	e.out.Store(&derived{
		dimension:    e.lat.dim,
		interactions: inter,
		projected:    proj,
		energy:       energy,
	})
	debugLog("Refreshed: dim=%d, interactions=%d, vertices=%d", e.lat.dim, len(inter), e.lat.count)
}
