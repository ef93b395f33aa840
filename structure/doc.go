// Package structure implements the atomic structure model: a map of atoms
// and bonds grouped into clusters, a spatial hash for neighbourhood
// queries, a per-structure dirty set for renderer synchronisation, and the
// diff/patch algebra used by atom-edit nodes.
//
// A structure is either materialised (every atom has a real atomic number)
// or a diff (some atoms carry a sentinel atomic number marking deletion,
// and carry an anchor position distinguishing addition/replacement/move).
package structure
