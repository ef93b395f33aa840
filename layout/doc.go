// Package layout serialises node networks to and from the §4.8 text
// grammar and computes node positions with two deterministic algorithms
// (topological-grid and Sugiyama-style barycentre), plus molecular
// topology enumeration (bonds/angles/torsions/inversions/non-bonded
// pairs) over an AtomicStructure.
package layout
