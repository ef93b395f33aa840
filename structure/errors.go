package structure

import "errors"

// Sentinel errors for the structure package.
var (
	// ErrAtomNotFound indicates a reference to an atom id not present in
	// the structure.
	ErrAtomNotFound = errors.New("structure: atom not found")

	// ErrBondNotFound indicates a reference to a bond id not present in
	// the structure.
	ErrBondNotFound = errors.New("structure: bond not found")

	// ErrClusterNotFound indicates a reference to a cluster id not present
	// in the structure.
	ErrClusterNotFound = errors.New("structure: cluster not found")

	// ErrAtomHasBonds indicates DeleteAtom was called on an atom that
	// still has live bonds; callers must delete the bonds first.
	ErrAtomHasBonds = errors.New("structure: atom still has bonds")

	// ErrBondAlreadyExists indicates AddBond was called for an atom pair
	// that already share a live bond.
	ErrBondAlreadyExists = errors.New("structure: bond already exists between atoms")
)
