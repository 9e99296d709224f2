// Package register synthesizes matrix product operators acting on quantum registers.
//
// Operators are built directly in matrix product form by folding a finite
// automaton over the register bits into the bond indices, so that the full
// matrix is never materialized.
package register

import (
	"math/cmplx"

	"github.com/fumin/tensor"
	"github.com/pkg/errors"

	"github.com/PaulaGarciaMolina/seemps/mps"
)

// QUBOMPO creates the matrix product operator of the diagonal Hamiltonian
//
//	H = sum_ij J[i][j] n_i n_j + sum_i h[i] n_i
//
// where n is the binary projector diag(0, 1).
// Either J or h may be nil, but not both.
func QUBOMPO(j [][]complex64, h []complex64) (*mps.MPO, error) {
	n, err := quboSize(j, h)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if j == nil {
		return fieldMPO(h)
	}

	// c and w fold both triangles of J and the field into
	// one diagonal and one strictly upper triangular weight.
	c := func(i int) complex64 {
		ci := j[i][i]
		if h != nil {
			ci += h[i]
		}
		return ci
	}
	w := func(i, k int) complex64 {
		return j[i][k] + j[k][i]
	}

	if n == 1 {
		t := tensor.Zeros(1, 2, 2, 1)
		t.SetAt([]int{0, 1, 1, 0}, c(0))
		return mps.NewMPO([]*tensor.Dense{t})
	}

	// The bond indices form an automaton over the sites scanned left to right.
	// State 0 means no term has been placed yet, state 1 means a term is
	// complete, and state 2+k means a pair term opened at site k awaits its
	// second factor.
	tensors := make([]*tensor.Dense, 0, n)

	first := tensor.Zeros(1, 2, 2, 3)
	for s := range 2 {
		first.SetAt([]int{0, s, s, 0}, 1)
	}
	first.SetAt([]int{0, 1, 1, 1}, c(0))
	first.SetAt([]int{0, 1, 1, 2}, 1)
	tensors = append(tensors, first)

	for i := 1; i < n-1; i++ {
		t := tensor.Zeros(i+2, 2, 2, i+3)
		for s := range 2 {
			t.SetAt([]int{0, s, s, 0}, 1)
			t.SetAt([]int{1, s, s, 1}, 1)
		}
		t.SetAt([]int{0, 1, 1, 1}, c(i))
		t.SetAt([]int{0, 1, 1, i + 2}, 1)
		for k := range i {
			for s := range 2 {
				t.SetAt([]int{2 + k, s, s, 2 + k}, 1)
			}
			t.SetAt([]int{2 + k, 1, 1, 1}, w(k, i))
		}
		tensors = append(tensors, t)
	}

	last := tensor.Zeros(n+1, 2, 2, 1)
	last.SetAt([]int{0, 1, 1, 0}, c(n-1))
	for s := range 2 {
		last.SetAt([]int{1, s, s, 0}, 1)
	}
	for k := range n - 1 {
		last.SetAt([]int{2 + k, 1, 1, 0}, w(k, n-1))
	}
	tensors = append(tensors, last)

	return mps.NewMPO(tensors)
}

// QUBOExponential creates the operator pipeline of exp(beta*H), with H the
// diagonal Hamiltonian of QUBOMPO. The pipeline holds one bond dimension one
// stage for the diagonal of H, and one bond dimension two stage per nonzero
// pair weight.
func QUBOExponential(beta complex64, j [][]complex64, h []complex64) (*mps.MPOList, error) {
	n, err := quboSize(j, h)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	diag := make([]*tensor.Dense, 0, n)
	for i := range n {
		var ci complex64
		if j != nil {
			ci = j[i][i]
		}
		if h != nil {
			ci += h[i]
		}
		t := tensor.Zeros(1, 2, 2, 1)
		t.SetAt([]int{0, 0, 0, 0}, 1)
		t.SetAt([]int{0, 1, 1, 0}, cexp(beta*ci))
		diag = append(diag, t)
	}
	diagMPO, err := mps.NewMPO(diag)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	mpos := []*mps.MPO{diagMPO}
	for i := range n {
		for k := i + 1; k < n; k++ {
			var w complex64
			if j != nil {
				w = j[i][k] + j[k][i]
			}
			if w == 0 {
				continue
			}
			pair, err := pairExponential(n, i, k, beta*w)
			if err != nil {
				return nil, errors.Wrap(err, "")
			}
			mpos = append(mpos, pair)
		}
	}
	return mps.NewMPOList(mpos)
}

// pairExponential creates the MPO of exp(w n_i n_k), i < k.
func pairExponential(n, i, k int, w complex64) (*mps.MPO, error) {
	tensors := make([]*tensor.Dense, 0, n)
	for site := range n {
		var t *tensor.Dense
		switch {
		case site == i:
			t = tensor.Zeros(1, 2, 2, 2)
			t.SetAt([]int{0, 0, 0, 0}, 1)
			t.SetAt([]int{0, 1, 1, 1}, 1)
		case site > i && site < k:
			t = tensor.Zeros(2, 2, 2, 2)
			for b := range 2 {
				for s := range 2 {
					t.SetAt([]int{b, s, s, b}, 1)
				}
			}
		case site == k:
			t = tensor.Zeros(2, 2, 2, 1)
			for s := range 2 {
				t.SetAt([]int{0, s, s, 0}, 1)
			}
			t.SetAt([]int{1, 0, 0, 0}, 1)
			t.SetAt([]int{1, 1, 1, 0}, cexp(w))
		default:
			t = tensor.Zeros(1, 2, 2, 1)
			for s := range 2 {
				t.SetAt([]int{0, s, s, 0}, 1)
			}
		}
		tensors = append(tensors, t)
	}
	return mps.NewMPO(tensors)
}

// fieldMPO creates the MPO of sum_i h[i] n_i.
func fieldMPO(h []complex64) (*mps.MPO, error) {
	n := len(h)
	if n == 1 {
		t := tensor.Zeros(1, 2, 2, 1)
		t.SetAt([]int{0, 1, 1, 0}, h[0])
		return mps.NewMPO([]*tensor.Dense{t})
	}

	// State 0 means the field term has not been placed yet, state 1 means it has.
	tensors := make([]*tensor.Dense, 0, n)
	for i := range n {
		t := tensor.Zeros(2, 2, 2, 2)
		for s := range 2 {
			t.SetAt([]int{0, s, s, 0}, 1)
			t.SetAt([]int{1, s, s, 1}, 1)
		}
		t.SetAt([]int{0, 1, 1, 1}, h[i])

		switch i {
		case 0:
			t = t.Slice([][2]int{{0, 1}, {0, 2}, {0, 2}, {0, 2}})
		case n - 1:
			t = t.Slice([][2]int{{0, 2}, {0, 2}, {0, 2}, {1, 2}})
		}
		tensors = append(tensors, t)
	}
	return mps.NewMPO(tensors)
}

func quboSize(j [][]complex64, h []complex64) (int, error) {
	if j == nil && h == nil {
		return 0, errors.Errorf("either J or h is required")
	}
	n := len(h)
	if j != nil {
		n = len(j)
	}
	if n == 0 {
		return 0, errors.Errorf("empty problem")
	}
	for i, row := range j {
		if len(row) != n {
			return 0, errors.Errorf("row %d: %d columns, expected %d", i, len(row), n)
		}
	}
	if j != nil && h != nil && len(h) != n {
		return 0, errors.Errorf("%d fields for %d sites", len(h), n)
	}
	return n, nil
}

func cexp(x complex64) complex64 {
	return complex64(cmplx.Exp(complex128(x)))
}
