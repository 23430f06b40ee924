package dimfield

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DimensionInteraction is one row of the interaction table: the signals a
// single vertex contributes relative to the reference vertex (index 0). The
// table is rebuilt wholesale on every refresh and never mutated in place.
type DimensionInteraction struct {
	VertexIndex     int
	Distance        Real
	Strength        Real
	VectorPotential [3]Real
	Matter          Real // NURBS matter/energy profile at u = distance/matterSpan
	Permeation      Real
	WaveAmplitude   Real
}

// axisOf maps a vertex index to its dimensional axis, 1-based.
func axisOf(i, maxDim int) int { return (i % maxDim) + 1 }

// interactionAt computes the full signal row for vertex i.
func interactionAt(l *lattice, ps *ParameterSet, maxDim int, curve *nurbsCurve, i int) DimensionInteraction {
	d := l.dim
	axis := axisOf(i, maxDim)
	dist := l.distanceTo(i)

	// dimensional denominator d^axis, floored away from zero
	denom := math.Pow(Real(d), clamp(Real(axis), expClampLo, expClampHi))
	if denom < epsDenom {
		denom = epsDenom
	}

	modifier := Real(1)
	if d > 3 && axis > 3 {
		modifier = ps.Weak
	}
	if d == 3 && (axis == 2 || axis == 4) {
		modifier *= ps.ThreeDInfluence
	}
	strength := ps.Influence * safeDiv(1, denom*(1+dist)) * modifier
	strength = safeTerm(strength, "strength")

	var perm Real
	switch {
	case d == 1:
		perm = ps.OneDPermeation
	case d == 2 && axis > 2:
		perm = ps.TwoDPermeation
	case d == 3 && (axis == 2 || axis == 4):
		perm = ps.ThreeDPermeation
	default:
		perm = 1 + ps.Beta*safeDiv(l.vertexNorm(i), Real(d))
	}
	perm = safeFactor(perm, "permeation")

	// vector potential: pseudo-charge spread over the first three axes,
	// attenuated by distance
	q := ps.Charge
	if i&1 == 1 {
		q = -q
	}
	var vp [3]Real
	v := l.vertex(i)
	for k := 0; k < imin(3, d); k++ {
		vp[k] = safeTerm(q*safeDiv(v[k], 1+dist), "vectorPotential")
	}

	matter := curve.eval(clamp(dist/matterSpan, 0, 1))

	amp := ps.Amplitude * (1 + Real(axis)/Real(maxDim))
	wave := safeTerm(amp*math.Cos(ps.Frequency*dist+ps.Omega*Real(i)), "waveAmplitude")

	return DimensionInteraction{
		VertexIndex:     i,
		Distance:        dist,
		Strength:        strength,
		VectorPotential: vp,
		Matter:          matter,
		Permeation:      perm,
		WaveAmplitude:   wave,
	}
}

// computeInteractions builds the interaction table for every vertex except
// the reference. The parallel path fans out across GOMAXPROCS workers, each
// striding through the index range with a private destination slab; slabs
// meet at a single barrier and the table is published whole.
func computeInteractions(l *lattice, ps *ParameterSet, maxDim int, curve *nurbsCurve) []DimensionInteraction {
	n := l.count - 1
	if n <= 0 {
		return nil
	}
	out := make([]DimensionInteraction, n)

	if n > ParallelThreshold {
		workers := runtime.GOMAXPROCS(0)
		if workers < 1 {
			workers = 1
		}
		var g errgroup.Group
		for w := 0; w < workers; w++ {
			w := w
			g.Go(func() error {
				for i := 1 + w; i <= n; i += workers {
					out[i-1] = interactionAt(l, ps, maxDim, curve, i)
				}
				return nil
			})
		}
		_ = g.Wait() // workers never fail; barrier only
	} else {
		for i := 1; i <= n; i++ {
			out[i-1] = interactionAt(l, ps, maxDim, curve, i)
		}
	}

	if l.dim == 3 {
		out = ensureResonantEntries(out, l, ps, maxDim, curve)
	}
	return out
}

// ensureResonantEntries guarantees that at d==3 every index whose axis is 2
// or 4 appears in the table, synthesizing any entry the primary loop's
// stride skipped. The low-dimension resonance terms depend on these rows
// being present, so their absence is treated as a table defect rather than
// an acceptable gap.
func ensureResonantEntries(table []DimensionInteraction, l *lattice, ps *ParameterSet, maxDim int, curve *nurbsCurve) []DimensionInteraction {
	present := make(map[int]bool, len(table))
	for _, it := range table {
		present[it.VertexIndex] = true
	}
	for i := 1; i < l.count; i++ {
		axis := axisOf(i, maxDim)
		if (axis == 2 || axis == 4) && !present[i] {
			table = append(table, interactionAt(l, ps, maxDim, curve, i))
			debugLog("Synthesized resonant interaction for vertex %d (axis %d)", i, axis)
		}
	}
	return table
}
