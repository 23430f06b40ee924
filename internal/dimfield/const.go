package dimfield

// Real is the scalar type used across the engine.
type Real = float64

const (
	// MaxDimensionsCap is the hard upper bound for the lattice dimension.
	// 2^20 vertices is already past what the animation layer can consume.
	MaxDimensionsCap = 20

	DefaultMaxDimensions  = 9
	DefaultStartDimension = 1
	DefaultVertexCap      = 1 << 20

	// ParallelThreshold is the unit-of-work size above which lattice
	// construction and energy reduction fan out to workers.
	ParallelThreshold = 1000

	// MinAccumulators is the minimum number of independent partial sums
	// used by the parallel energy reduction.
	MinAccumulators = 4

	// MaxSizingAttempts bounds the degrade-and-retry loop on allocation failure.
	MaxSizingAttempts = 8

	// CSVHeader is the flat-file export schema. Append-only, no versioning.
	CSVHeader = "Dimension,Observable,Potential,Matter,Energy,Spin,Momentum,Field,Wave,Collapse"

	// hot-loop numeric guards
	epsDenom   = 1e-9
	expClampLo = -709.0
	expClampHi = 709.0

	// matterSpan maps interaction distance to the NURBS parameter:
	// u = clamp(distance/matterSpan, 0, 1).
	matterSpan = 10.0
)
