package latticemath

// QuantizeMillerDirection rounds a real-world direction vector to the
// nearest integer Miller index triple and reduces it by GCD. This is the
// policy used by gadgets (§4.7/§8 scenario 4): dragging a direction handle
// to (1.02, 0.99, 0.01) quantises to (1,1,0).
func QuantizeMillerDirection(v DVec3) IVec3 {
	return v.ToIVec3().Simplify()
}
