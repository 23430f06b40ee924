package dimfield

import "errors"

var (
	// ErrConfiguration reports an invalid constructor or setter argument.
	// Construction fails entirely; nothing is retried.
	ErrConfiguration = errors.New("dimfield: invalid configuration")

	// ErrOutOfRange reports a vertex index outside the current table bounds.
	ErrOutOfRange = errors.New("dimfield: vertex index out of range")

	// ErrResourceExhaustion reports a lattice allocation failure. The sizing
	// loop retries with a degraded cap or dimension; the error only surfaces
	// once the dimension would have to fall below 1.
	ErrResourceExhaustion = errors.New("dimfield: lattice allocation failed")
)
