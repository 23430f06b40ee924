package dimfield

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// EnergyResult is the immutable multi-channel snapshot produced by one
// compute pass. Observable and Potential carry the collapse split; the
// remaining channels are renormalized so their sum equals the conserved
// total charge.
type EnergyResult struct {
	Observable Real
	Potential  Real
	Matter     Real
	Energy     Real
	Spin       Real
	Momentum   Real
	Field      Real
	Wave       Real
	Collapse   Real
}

// channel indices into the renormalized totals slice
const (
	chMatter = iota
	chEnergy
	chSpin
	chMomentum
	chField
	chWave
	numChannels
)

// collapseTable precomputes the oscillatory collapse profile for every
// dimension 1..maxDim. Index 0 is unused.
func collapseTable(maxDim int) []Real {
	t := make([]Real, maxDim+1)
	for d := 1; d <= maxDim; d++ {
		t[d] = math.Cos(2 * math.Pi * Real(d) / Real(maxDim))
	}
	return t
}

// partial carries one accumulator's running sums.
type partial struct {
	interaction Real
	ch          [numChannels]Real
}

// accumulate folds interactions [lo,hi) into p. The per-interaction weight
// is strength * exp(-alpha*distance) * permeation * matterScale; every
// channel total uses the same weighting.
func (p *partial) accumulate(inter []DimensionInteraction, ps *ParameterSet, lo, hi int) {
	for k := lo; k < hi; k++ {
		it := &inter[k]
		w := it.Strength * safeExp(-ps.Alpha*it.Distance) * it.Permeation * ps.MatterScale
		w = safeTerm(w, "interactionWeight")

		p.interaction += w
		p.ch[chMatter] += w * it.Matter
		p.ch[chEnergy] += w * it.Matter * ps.EnergyScale
		spinSign := Real(1)
		if it.VertexIndex&1 == 1 {
			spinSign = -1
		}
		p.ch[chSpin] += w * ps.SpinCoupling * spinSign
		p.ch[chMomentum] += w * ps.MomentumCoupling * it.Distance
		p.ch[chField] += w * ps.FieldStrength * vecPotentialNorm(it)
		p.ch[chWave] += w * it.WaveAmplitude
	}
}

func (p *partial) merge(q *partial) {
	p.interaction += q.interaction
	for c := 0; c < numChannels; c++ {
		p.ch[c] += q.ch[c]
	}
}

func vecPotentialNorm(it *DimensionInteraction) Real {
	v := it.VectorPotential
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// aggregateEnergy reduces the interaction table into an EnergyResult for
// dimension d. Above ParallelThreshold interactions the reduction runs with
// independent accumulators over contiguous chunks, merged in chunk order so
// the result is deterministic; below the threshold it runs serially. Both
// paths agree within floating-point tolerance.
func aggregateEnergy(d int, ps *ParameterSet, inter []DimensionInteraction, collapse []Real) EnergyResult {
	base := ps.Influence
	if d >= 2 {
		base += ps.TwoD * math.Cos(ps.Omega*Real(d))
	}
	if d == 3 {
		base += ps.ThreeDInfluence
	}

	var total partial
	if len(inter) > ParallelThreshold {
		total = reduceParallel(inter, ps)
	} else {
		total.accumulate(inter, ps, 0, len(inter))
	}

	// Renormalize channel totals so their combined magnitude equals the
	// conserved total charge; keeps channel growth bounded as the vertex
	// count scales. A near-zero sum skips the pass.
	ch := total.ch[:]
	mass := Real(0)
	for _, v := range ch {
		mass += math.Abs(v)
	}
	if mass > epsDenom {
		floats.Scale(ps.TotalCharge/mass, ch)
	}

	c := Real(0)
	if d >= 1 && d < len(collapse) {
		c = ps.Collapse * collapse[d]
	}

	obs := safeTerm(base+total.interaction+c, "observable")
	pot := math.Max(0, safeTerm(base+total.interaction-c, "potential"))

	return EnergyResult{
		Observable: obs,
		Potential:  pot,
		Matter:     safeTerm(ch[chMatter], "matter"),
		Energy:     safeTerm(ch[chEnergy], "energy"),
		Spin:       safeTerm(ch[chSpin], "spin"),
		Momentum:   safeTerm(ch[chMomentum], "momentum"),
		Field:      safeTerm(ch[chField], "field"),
		Wave:       safeTerm(ch[chWave], "wave"),
		Collapse:   c,
	}
}

// reduceParallel splits the table into at least MinAccumulators contiguous
// chunks, one independent accumulator each, and merges partials in chunk
// order after the barrier.
func reduceParallel(inter []DimensionInteraction, ps *ParameterSet) partial {
	nacc := imax(MinAccumulators, runtime.GOMAXPROCS(0))
	if nacc > len(inter) {
		nacc = len(inter)
	}
	parts := make([]partial, nacc)
	per, rem := len(inter)/nacc, len(inter)%nacc

	var g errgroup.Group
	next := 0
	for a := 0; a < nacc; a++ {
		cnt := per
		if a < rem {
			cnt++
		}
		a, lo, hi := a, next, next+cnt
		g.Go(func() error {
			parts[a].accumulate(inter, ps, lo, hi)
			return nil
		})
		next = hi
	}
	_ = g.Wait() // accumulators never fail; barrier only

	var total partial
	for a := range parts {
		total.merge(&parts[a])
	}
	return total
}
