package dimfield

// Parameters returns the current parameter snapshot.
func (e *Engine) Parameters() ParameterSet { return *e.params.load() }

// UpdateParameters applies mut to a copy of the current snapshot, clamps
// every field, publishes the result, and dirties the cache. All named
// setters below route through here.
func (e *Engine) UpdateParameters(mut func(*ParameterSet)) {
	e.params.update(mut)
	e.cache.invalidate()
}

func (e *Engine) SetInfluence(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.Influence = v })
}
func (e *Engine) Influence() Real { return e.params.load().Influence }

func (e *Engine) SetWeak(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.Weak = v })
}
func (e *Engine) Weak() Real { return e.params.load().Weak }

func (e *Engine) SetCollapse(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.Collapse = v })
}
func (e *Engine) Collapse() Real { return e.params.load().Collapse }

func (e *Engine) SetTwoD(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.TwoD = v })
}
func (e *Engine) TwoD() Real { return e.params.load().TwoD }

func (e *Engine) SetThreeDInfluence(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.ThreeDInfluence = v })
}
func (e *Engine) ThreeDInfluence() Real { return e.params.load().ThreeDInfluence }

func (e *Engine) SetOneDPermeation(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.OneDPermeation = v })
}
func (e *Engine) OneDPermeation() Real { return e.params.load().OneDPermeation }

func (e *Engine) SetTwoDPermeation(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.TwoDPermeation = v })
}
func (e *Engine) TwoDPermeation() Real { return e.params.load().TwoDPermeation }

func (e *Engine) SetThreeDPermeation(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.ThreeDPermeation = v })
}
func (e *Engine) ThreeDPermeation() Real { return e.params.load().ThreeDPermeation }

func (e *Engine) SetAlpha(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.Alpha = v })
}
func (e *Engine) Alpha() Real { return e.params.load().Alpha }

func (e *Engine) SetBeta(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.Beta = v })
}
func (e *Engine) Beta() Real { return e.params.load().Beta }

func (e *Engine) SetOmega(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.Omega = v })
}
func (e *Engine) Omega() Real { return e.params.load().Omega }

func (e *Engine) SetFrequency(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.Frequency = v })
}
func (e *Engine) Frequency() Real { return e.params.load().Frequency }

func (e *Engine) SetAmplitude(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.Amplitude = v })
}
func (e *Engine) Amplitude() Real { return e.params.load().Amplitude }

func (e *Engine) SetCharge(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.Charge = v })
}
func (e *Engine) Charge() Real { return e.params.load().Charge }

func (e *Engine) SetMatterScale(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.MatterScale = v })
}
func (e *Engine) MatterScale() Real { return e.params.load().MatterScale }

func (e *Engine) SetEnergyScale(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.EnergyScale = v })
}
func (e *Engine) EnergyScale() Real { return e.params.load().EnergyScale }

func (e *Engine) SetSpinCoupling(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.SpinCoupling = v })
}
func (e *Engine) SpinCoupling() Real { return e.params.load().SpinCoupling }

func (e *Engine) SetMomentumCoupling(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.MomentumCoupling = v })
}
func (e *Engine) MomentumCoupling() Real { return e.params.load().MomentumCoupling }

func (e *Engine) SetFieldStrength(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.FieldStrength = v })
}
func (e *Engine) FieldStrength() Real { return e.params.load().FieldStrength }

func (e *Engine) SetTotalCharge(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.TotalCharge = v })
}
func (e *Engine) TotalCharge() Real { return e.params.load().TotalCharge }

func (e *Engine) SetFocalLength(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.FocalLength = v })
}
func (e *Engine) FocalLength() Real { return e.params.load().FocalLength }

func (e *Engine) SetTranslation(v Real) {
	e.UpdateParameters(func(p *ParameterSet) { p.Translation = v })
}
func (e *Engine) Translation() Real { return e.params.load().Translation }
