package dimfield

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// lattice stores the corners of a d-dimensional hypercube in a flat
// coordinate buffer, one row of dim values per vertex. Coordinate j of
// vertex i is +1 when bit j of i is set, else -1. The table is immutable
// once published; a dimension change replaces it wholesale. The parallel
// momentum buffer shares the table's lifetime and is only touched by the
// explicit evolve pass.
type lattice struct {
	dim      int
	count    int
	coords   []Real // flat: i*dim + j
	momentum []Real // flat, same layout
}

// allocFunc allocates the flat coordinate buffer. Injectable so tests can
// force allocation failures into the sizing loop.
type allocFunc func(n int) ([]Real, error)

func defaultAlloc(n int) ([]Real, error) {
	return make([]Real, n), nil
}

// vertexCount is min(2^dim, cap).
func vertexCount(dim, cap int) int {
	if dim >= 63 {
		return cap
	}
	return imin(1<<uint(dim), cap)
}

// buildLattice constructs the full vertex table into fresh buffers and
// returns it only when complete; a partial table is never visible. Above
// ParallelThreshold vertices the fill fans out across workers, each writing
// a private slab that is merged into the table at the errgroup barrier.
func buildLattice(dim, cap int, alloc allocFunc) (*lattice, error) {
	if dim < 1 || dim > MaxDimensionsCap {
		return nil, fmt.Errorf("%w: dimension %d outside [1,%d]", ErrConfiguration, dim, MaxDimensionsCap)
	}
	if cap < 1 {
		return nil, fmt.Errorf("%w: vertex cap %d", ErrConfiguration, cap)
	}
	if alloc == nil {
		alloc = defaultAlloc
	}
	n := vertexCount(dim, cap)

	coords, err := alloc(n * dim)
	if err != nil {
		return nil, fmt.Errorf("%w: %d vertices of dimension %d: %v", ErrResourceExhaustion, n, dim, err)
	}
	momentum, err := alloc(n * dim)
	if err != nil {
		return nil, fmt.Errorf("%w: momentum table for %d vertices: %v", ErrResourceExhaustion, n, err)
	}

	if n > ParallelThreshold {
		if err := fillCornersParallel(coords, n, dim); err != nil {
			return nil, err
		}
	} else {
		fillCorners(coords, 0, n, dim)
	}

	l := &lattice{dim: dim, count: n, coords: coords, momentum: momentum}
	debugLog("Built lattice: dim=%d, cap=%d, vertices=%d", dim, cap, n)
	return l, nil
}

// fillCorners writes the signed unit coordinates for vertices [lo,hi).
func fillCorners(coords []Real, lo, hi, dim int) {
	for i := lo; i < hi; i++ {
		base := i * dim
		for j := 0; j < dim; j++ {
			if i&(1<<uint(j)) != 0 {
				coords[base+j] = 1
			} else {
				coords[base+j] = -1
			}
		}
	}
}

// fillCornersParallel splits the vertex range across GOMAXPROCS workers.
// Each worker fills a private slab; slabs are copied into the shared buffer
// after the single barrier so no partially written row is ever shared.
func fillCornersParallel(coords []Real, n, dim int) error {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	per, rem := n/workers, n%workers

	type slab struct {
		lo, hi int
		buf    []Real
	}
	slabs := make([]slab, workers)

	var g errgroup.Group
	lo := 0
	for w := 0; w < workers; w++ {
		cnt := per
		if w < rem {
			cnt++
		}
		s := slab{lo: lo, hi: lo + cnt, buf: make([]Real, cnt*dim)}
		slabs[w] = s
		lo += cnt
		g.Go(func() error {
			for i := s.lo; i < s.hi; i++ {
				base := (i - s.lo) * dim
				for j := 0; j < dim; j++ {
					if i&(1<<uint(j)) != 0 {
						s.buf[base+j] = 1
					} else {
						s.buf[base+j] = -1
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, s := range slabs {
		copy(coords[s.lo*dim:s.hi*dim], s.buf)
	}
	return nil
}

// vertex returns the coordinate row of vertex i. Callers must not mutate it.
func (l *lattice) vertex(i int) []Real {
	return l.coords[i*l.dim : (i+1)*l.dim]
}

func (l *lattice) momentumRow(i int) []Real {
	return l.momentum[i*l.dim : (i+1)*l.dim]
}

// vertexNorm is the Euclidean norm of vertex i over its first dim coords.
func (l *lattice) vertexNorm(i int) Real {
	v := l.vertex(i)
	sum := Real(0)
	for _, c := range v {
		sum += c * c
	}
	return math.Sqrt(sum)
}

// distanceTo returns the distance from the reference vertex (index 0) to
// vertex i. At dim==1 this is the raw scalar coordinate difference rather
// than any projected distance; higher dimensions use the Euclidean norm.
func (l *lattice) distanceTo(i int) Real {
	ref := l.vertex(0)
	v := l.vertex(i)
	if l.dim == 1 {
		return v[0] - ref[0]
	}
	sum := Real(0)
	for j := 0; j < l.dim; j++ {
		d := v[j] - ref[j]
		sum += d * d
	}
	return math.Sqrt(sum)
}
