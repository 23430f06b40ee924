package dimfield

import (
	"errors"
	"fmt"
)

// SizingState tracks the degrade-and-retry machinery around lattice
// construction: Sizing while attempts are in flight, Stable when the first
// attempt succeeded, Degraded when a smaller cap or dimension had to be
// accepted, Fatal when the dimension would have to fall below 1.
type SizingState uint8

const (
	Sizing SizingState = iota
	Stable
	Degraded
	Fatal
)

func (s SizingState) String() string {
	switch s {
	case Sizing:
		return "sizing"
	case Stable:
		return "stable"
	case Degraded:
		return "degraded"
	case Fatal:
		return "fatal"
	}
	return "unknown"
}

// SizingReport is the observable outcome of a lattice construction attempt.
// Callers see degradation as data instead of a hidden side effect.
type SizingReport struct {
	State     SizingState
	Dimension int // dimension actually built
	VertexCap int // cap actually used
	Attempts  int
	Err       error // set only when State == Fatal
}

// buildWithRetry runs the sizing state machine: on allocation failure it
// halves the vertex cap while the cap is the binding constraint, otherwise
// decrements the dimension, warns, and retries, bounded by
// MaxSizingAttempts. Allocation failure is the only retried failure mode;
// configuration errors surface immediately.
func buildWithRetry(dim, cap int, alloc allocFunc) (*lattice, SizingReport) {
	rep := SizingReport{State: Sizing, Dimension: dim, VertexCap: cap}

	for rep.Attempts = 1; rep.Attempts <= MaxSizingAttempts; rep.Attempts++ {
		l, err := buildLattice(rep.Dimension, rep.VertexCap, alloc)
		if err == nil {
			if rep.Attempts == 1 {
				rep.State = Stable
			} else {
				rep.State = Degraded
			}
			return l, rep
		}
		if !isRetryable(err) {
			rep.State = Fatal
			rep.Err = err
			return nil, rep
		}

		// Halving the cap only helps while it actually bounds the table.
		if rep.VertexCap > 2 && rep.VertexCap <= vertexCount(rep.Dimension, rep.VertexCap)*2 {
			rep.VertexCap /= 2
			logw().Warn("lattice allocation failed, halving vertex cap",
				"dimension", rep.Dimension, "cap", rep.VertexCap, "attempt", rep.Attempts)
			continue
		}
		if rep.Dimension <= 1 {
			rep.State = Fatal
			rep.Err = fmt.Errorf("%w: cannot degrade below dimension 1", ErrResourceExhaustion)
			return nil, rep
		}
		rep.Dimension--
		logw().Warn("lattice allocation failed, degrading dimension",
			"dimension", rep.Dimension, "cap", rep.VertexCap, "attempt", rep.Attempts)
	}

	rep.Attempts = MaxSizingAttempts
	rep.State = Fatal
	rep.Err = fmt.Errorf("%w: gave up after %d attempts", ErrResourceExhaustion, MaxSizingAttempts)
	return nil, rep
}

func isRetryable(err error) bool {
	// ErrConfiguration is never retried; only resource exhaustion is.
	return err != nil && !errors.Is(err, ErrConfiguration)
}
