// Package gadget implements the 3D manipulators (§4.7) that let a user
// drag a node's continuous parameters in the viewport instead of typing
// them: a half-space gadget (shift along normal, direction sphere), a
// drawing-plane gadget (half-space plus a subdivision grid), an xyz
// gadget (three axis handles snapping to a lattice multiplier), and a
// lattice-rotation gadget contract.
//
// Every gadget implements the same small Gadget interface: hit-test a
// ray against its handles, start/continue/end a drag, and sync the
// dragged continuous state back into the node's discrete NodeData field
// on drag end. Gadgets hold their own continuous drag state (e.g. an
// un-quantised direction vector) separately from the NodeData they
// read from and write to, so a drag in progress never corrupts the
// network's stored state until it completes.
package gadget
