package dimfield

import "math"

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func imin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clamp(x, lo, hi Real) Real {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// safeExp exponentiates with the argument clamped to the finite float64 range.
func safeExp(x Real) Real {
	return math.Exp(clamp(x, expClampLo, expClampHi))
}

// safeDiv guards against near-zero denominators, defaulting to 0.
func safeDiv(num, den Real) Real {
	if math.Abs(den) < epsDenom {
		return 0
	}
	return num / den
}

// safeTerm substitutes 0 for a non-finite additive term and logs the recovery.
func safeTerm(x Real, what string) Real {
	if isFinite(x) {
		return x
	}
	logw().Warn("non-finite term recovered", "term", what, "substitute", 0.0)
	return 0
}

// safeFactor substitutes 1 for a non-finite multiplicative factor and logs
// the recovery.
func safeFactor(x Real, what string) Real {
	if isFinite(x) {
		return x
	}
	logw().Warn("non-finite factor recovered", "factor", what, "substitute", 1.0)
	return 1
}
