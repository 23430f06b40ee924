package dimfield

import "fmt"

// Snapshot pairs one dimension with its computed energy result; the batch
// feed consumed by the CSV export and the chart renderer.
type Snapshot struct {
	Dimension int
	Result    EnergyResult
}

// Sweep computes one snapshot per dimension in [from, to]. The engine is
// left at dimension `to`; callers that care should restore it afterwards.
func (e *Engine) Sweep(from, to int) ([]Snapshot, error) {
	if from < 1 || to > e.maxDim || from > to {
		return nil, fmt.Errorf("%w: sweep range [%d,%d] outside [1,%d]",
			ErrConfiguration, from, to, e.maxDim)
	}
	out := make([]Snapshot, 0, to-from+1)
	for d := from; d <= to; d++ {
		if err := e.SetCurrentDimension(d); err != nil {
			return nil, err
		}
		out = append(out, Snapshot{Dimension: e.CurrentDimension(), Result: e.Compute()})
	}
	return out, nil
}
