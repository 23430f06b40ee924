package dimfield

import "gonum.org/v1/gonum/floats"

// nurbsCurve is a one-dimensional non-uniform rational B-spline used as the
// smooth matter/energy profile. The curve is evaluated at a distance-derived
// parameter u in [0,1]; control values and weights are fixed at construction.
type nurbsCurve struct {
	degree  int
	ctrl    []Real
	weights []Real
	knots   []Real
}

// newMatterCurve returns the stock quadratic matter profile: a hump that
// peaks at mid-range distances and decays toward the far end.
func newMatterCurve() *nurbsCurve {
	return newNURBS(2,
		[]Real{0, 0.6, 1, 0.4, 0.1},
		[]Real{1, 0.8, 1.2, 0.9, 1},
	)
}

// newNURBS builds a clamped curve with a uniform interior knot layout.
func newNURBS(degree int, ctrl, weights []Real) *nurbsCurve {
	n := len(ctrl)
	if n < degree+1 || len(weights) != n {
		panic("nurbs: need at least degree+1 control values and matching weights")
	}
	interior := make([]Real, n-degree+1)
	floats.Span(interior, 0, 1)
	knots := make([]Real, 0, n+degree+1)
	for i := 0; i < degree; i++ {
		knots = append(knots, 0)
	}
	knots = append(knots, interior...)
	for i := 0; i < degree; i++ {
		knots = append(knots, 1)
	}
	return &nurbsCurve{degree: degree, ctrl: ctrl, weights: weights, knots: knots}
}

// eval computes the rational curve value at u, clamped to [0,1].
func (c *nurbsCurve) eval(u Real) Real {
	u = clamp(u, 0, 1)
	span := c.findSpan(u)
	basis := c.basisFuncs(span, u)

	num, den := Real(0), Real(0)
	for j := 0; j <= c.degree; j++ {
		i := span - c.degree + j
		wb := basis[j] * c.weights[i]
		num += wb * c.ctrl[i]
		den += wb
	}
	v := safeDiv(num, den)
	return safeTerm(v, "nurbs")
}

// findSpan locates the knot span containing u (the last span at u==1).
func (c *nurbsCurve) findSpan(u Real) int {
	n := len(c.ctrl) - 1
	if u >= c.knots[n+1] {
		return n
	}
	lo, hi := c.degree, n+1
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if u < c.knots[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// basisFuncs evaluates the degree+1 nonzero B-spline basis functions at u
// (Cox-de Boor, iterative form).
func (c *nurbsCurve) basisFuncs(span int, u Real) []Real {
	p := c.degree
	basis := make([]Real, p+1)
	left := make([]Real, p+1)
	right := make([]Real, p+1)
	basis[0] = 1
	for j := 1; j <= p; j++ {
		left[j] = u - c.knots[span+1-j]
		right[j] = c.knots[span+j] - u
		saved := Real(0)
		for r := 0; r < j; r++ {
			den := right[r+1] + left[j-r]
			var tmp Real
			if den != 0 {
				tmp = basis[r] / den
			}
			basis[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		basis[j] = saved
	}
	return basis
}
