package dimfield

import "sync/atomic"

// ParameterSet holds every tunable scalar of the engine. Each field is
// independently clamped to its valid range on every write; there are no
// cross-field invariants. A ParameterSet is immutable once published: the
// store swaps whole snapshots, so a refresh always sees one consistent view.
type ParameterSet struct {
	Influence        Real // [0,10] overall interaction scale
	Weak             Real // [0,1] attenuation for axes past 3 when d>3
	Collapse         Real // [0,5] oscillatory collapse magnitude
	TwoD             Real // [0,5] 2D base-energy oscillation
	ThreeDInfluence  Real // [0,5] resonance boost at d==3, axes {2,4}
	OneDPermeation   Real // [0,10] permeation constant at d==1
	TwoDPermeation   Real // [0,10] permeation boost at d==2, axis>2
	ThreeDPermeation Real // [0,10] permeation boost at d==3, axes {2,4}
	Alpha            Real // [0,10] distance decay rate
	Beta             Real // [0,1] permeation norm scaling
	Omega            Real // [0,10] per-index angular frequency
	Frequency        Real // [0,10] spatial wave frequency
	Amplitude        Real // [0,1] base wave amplitude
	Charge           Real // [0,1] pseudo-charge scale for vector potential
	MatterScale      Real // [0,5] per-interaction matter multiplier
	EnergyScale      Real // [0,5] energy channel coupling
	SpinCoupling     Real // [0,1] spin channel coupling
	MomentumCoupling Real // [0,1] momentum channel coupling
	FieldStrength    Real // [0,5] field channel coupling
	TotalCharge      Real // [0.1,100] conserved renormalization target
	FocalLength      Real // [0.5,100] projection focal length
	Translation      Real // [0,10] projection depth translation
}

// DefaultParameters returns the stock parameter snapshot.
func DefaultParameters() ParameterSet {
	return ParameterSet{
		Influence:        1,
		Weak:             0.01,
		Collapse:         0.5,
		TwoD:             0.5,
		ThreeDInfluence:  1.5,
		OneDPermeation:   2,
		TwoDPermeation:   3,
		ThreeDPermeation: 4,
		Alpha:            0.1,
		Beta:             0.2,
		Omega:            1,
		Frequency:        1,
		Amplitude:        0.1,
		Charge:           0.1,
		MatterScale:      1,
		EnergyScale:      1,
		SpinCoupling:     0.05,
		MomentumCoupling: 0.05,
		FieldStrength:    1,
		TotalCharge:      10,
		FocalLength:      4,
		Translation:      2.5,
	}
}

// Clamped returns a copy with every field forced into its valid range.
func (p ParameterSet) Clamped() ParameterSet {
	p.Influence = clamp(p.Influence, 0, 10)
	p.Weak = clamp(p.Weak, 0, 1)
	p.Collapse = clamp(p.Collapse, 0, 5)
	p.TwoD = clamp(p.TwoD, 0, 5)
	p.ThreeDInfluence = clamp(p.ThreeDInfluence, 0, 5)
	p.OneDPermeation = clamp(p.OneDPermeation, 0, 10)
	p.TwoDPermeation = clamp(p.TwoDPermeation, 0, 10)
	p.ThreeDPermeation = clamp(p.ThreeDPermeation, 0, 10)
	p.Alpha = clamp(p.Alpha, 0, 10)
	p.Beta = clamp(p.Beta, 0, 1)
	p.Omega = clamp(p.Omega, 0, 10)
	p.Frequency = clamp(p.Frequency, 0, 10)
	p.Amplitude = clamp(p.Amplitude, 0, 1)
	p.Charge = clamp(p.Charge, 0, 1)
	p.MatterScale = clamp(p.MatterScale, 0, 5)
	p.EnergyScale = clamp(p.EnergyScale, 0, 5)
	p.SpinCoupling = clamp(p.SpinCoupling, 0, 1)
	p.MomentumCoupling = clamp(p.MomentumCoupling, 0, 1)
	p.FieldStrength = clamp(p.FieldStrength, 0, 5)
	p.TotalCharge = clamp(p.TotalCharge, 0.1, 100)
	p.FocalLength = clamp(p.FocalLength, 0.5, 100)
	p.Translation = clamp(p.Translation, 0, 10)
	return p
}

// paramStore publishes ParameterSet snapshots through a single atomic
// pointer. Writers copy-mutate-clamp-swap; a refresh loads exactly once and
// works off that snapshot for its entire duration, so parameter writes that
// land mid-refresh are picked up by the next refresh.
type paramStore struct {
	cur atomic.Pointer[ParameterSet]
}

func newParamStore(p ParameterSet) *paramStore {
	s := &paramStore{}
	p = p.Clamped()
	s.cur.Store(&p)
	return s
}

func (s *paramStore) load() *ParameterSet { return s.cur.Load() }

func (s *paramStore) update(mut func(*ParameterSet)) {
	for {
		old := s.cur.Load()
		next := *old
		mut(&next)
		next = next.Clamped()
		if s.cur.CompareAndSwap(old, &next) {
			return
		}
	}
}
