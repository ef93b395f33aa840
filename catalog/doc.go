// Package catalog registers the concrete node types the evaluator and
// gadgets are generic over: scalar constants, the unit cell, the CSG
// primitives and combinators, and the atomic-structure editing nodes. It
// is the bridge between the domain-agnostic node/eval machinery and the
// geonode/csg/structure/motif packages that give those node types their
// meaning.
//
// RegisterAll installs every built-in NodeType into a node.Registry and
// its matching eval.BuiltinFunc into an Evaluator; a host only needs to
// call it once per registry/evaluator pair before building networks.
package catalog
