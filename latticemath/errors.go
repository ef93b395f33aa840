package latticemath

import "errors"

// Sentinel errors for the latticemath package. Callers should match with
// errors.Is; messages are prefixed "latticemath: " for consistency.
var (
	// ErrDegenerateCell indicates a unit cell whose basis vectors are
	// (near-)coplanar, so lattice<->real conversion and Miller-plane
	// properties are undefined.
	ErrDegenerateCell = errors.New("latticemath: degenerate unit cell")

	// ErrZeroMiller indicates a Miller index triple (0,0,0), which names no
	// plane family.
	ErrZeroMiller = errors.New("latticemath: zero miller index")

	// ErrZeroVector indicates an operation (e.g. quaternion axis-angle
	// construction, normalisation) that requires a non-zero vector.
	ErrZeroVector = errors.New("latticemath: zero-length vector")
)
