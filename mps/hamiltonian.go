package mps

import (
	"github.com/pkg/errors"

	"github.com/PaulaGarciaMolina/seemps/mat"
)

// NNHamiltonian is a nearest neighbor Hamiltonian, a sum of interaction
// terms each acting on a pair of adjacent sites.
type NNHamiltonian interface {
	// Size returns the number of sites.
	Size() int
	// Dimension returns the physical dimension of site i.
	Dimension(i int) int
	// InteractionTerm returns the term coupling sites i and i+1 at time t.
	InteractionTerm(i int, t float64) *mat.COO
}

// ConstantNNHamiltonian is a time independent nearest neighbor Hamiltonian.
type ConstantNNHamiltonian struct {
	dims         []int
	interactions []*mat.COO
}

// NewConstantNNHamiltonian creates a zero Hamiltonian over sites with the given physical dimensions.
func NewConstantNNHamiltonian(dims []int) (*ConstantNNHamiltonian, error) {
	if len(dims) < 2 {
		return nil, errors.Errorf("%d sites", len(dims))
	}
	for i, d := range dims {
		if d < 1 {
			return nil, errors.Errorf("site %d: dimension %d", i, d)
		}
	}

	h := &ConstantNNHamiltonian{dims: dims}
	for i := range len(dims) - 1 {
		d := dims[i] * dims[i+1]
		h.interactions = append(h.interactions, mat.COOZeros(d, d))
	}
	return h, nil
}

// AddInteractionTerm adds op to the term coupling sites i and i+1.
func (h *ConstantNNHamiltonian) AddInteractionTerm(i int, op *mat.COO) error {
	if i < 0 || i >= len(h.interactions) {
		return errors.Errorf("bond %d of %d", i, len(h.interactions))
	}
	d := h.dims[i] * h.dims[i+1]
	if op.Rows() != d || op.Cols() != d {
		return errors.Errorf("bond %d: %dx%d, expected %d", i, op.Rows(), op.Cols(), d)
	}
	h.interactions[i].Add(1, op)
	return nil
}

// AddLocalTerm adds the one-site operator op acting on site.
// Interior sites split the term evenly between their two adjacent bonds.
func (h *ConstantNNHamiltonian) AddLocalTerm(site int, op *mat.COO) error {
	n := len(h.dims)
	if site < 0 || site >= n {
		return errors.Errorf("site %d of %d", site, n)
	}
	if op.Rows() != h.dims[site] || op.Cols() != h.dims[site] {
		return errors.Errorf("site %d: %dx%d, expected %d", site, op.Rows(), op.Cols(), h.dims[site])
	}

	var leftW, rightW complex64
	switch {
	case site == 0:
		rightW = 1
	case site == n-1:
		leftW = 1
	default:
		leftW, rightW = 0.5, 0.5
	}

	if leftW != 0 {
		t := mat.COOIdentity(h.dims[site-1])
		t.Kron(op)
		h.interactions[site-1].Add(leftW, t)
	}
	if rightW != 0 {
		t := op.Copy()
		t.Kron(mat.COOIdentity(h.dims[site+1]))
		h.interactions[site].Add(rightW, t)
	}
	return nil
}

// Size returns the number of sites.
func (h *ConstantNNHamiltonian) Size() int {
	return len(h.dims)
}

// Dimension returns the physical dimension of site i.
func (h *ConstantNNHamiltonian) Dimension(i int) int {
	return h.dims[i]
}

// InteractionTerm returns the term coupling sites i and i+1.
// The returned matrix is shared and must not be modified.
func (h *ConstantNNHamiltonian) InteractionTerm(i int, t float64) *mat.COO {
	return h.interactions[i]
}

// TimeDependentNNHamiltonian scales a base Hamiltonian by a time dependent envelope.
type TimeDependentNNHamiltonian struct {
	Base     NNHamiltonian
	Envelope func(t float64) complex64
}

// Size returns the number of sites.
func (h *TimeDependentNNHamiltonian) Size() int {
	return h.Base.Size()
}

// Dimension returns the physical dimension of site i.
func (h *TimeDependentNNHamiltonian) Dimension(i int) int {
	return h.Base.Dimension(i)
}

// InteractionTerm returns the term coupling sites i and i+1 at time t.
func (h *TimeDependentNNHamiltonian) InteractionTerm(i int, t float64) *mat.COO {
	term := h.Base.InteractionTerm(i, t).Copy()
	term.Scale(h.Envelope(t))
	return term
}

// ToMatrix writes the full matrix of h at time t into m,
// using buf as scratch space.
func ToMatrix(m, buf mat.Matrix, h NNHamiltonian, t float64) {
	dim := 1
	for i := range h.Size() {
		dim *= h.Dimension(i)
	}
	m.Zeros(dim, dim)

	for i := range h.Size() - 1 {
		buf.Scalar(1)
		for j := 0; j < h.Size(); {
			if j == i {
				buf.Kron(h.InteractionTerm(i, t))
				j += 2
				continue
			}
			buf.Kron(mat.COOIdentity(h.Dimension(j)))
			j++
		}
		m.Add(1, buf)
	}
}
