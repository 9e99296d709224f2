package mps

// Simplifier approximates a state by another one with smaller bond dimensions.
// Simplify returns the approximation, the truncation error, and the largest
// bond dimension of the result. A negative maxBondDimension means unbounded.
type Simplifier interface {
	Simplify(psi *MPS, maxBondDimension int, tolerance float64) (*MPS, float64, int, error)
}
