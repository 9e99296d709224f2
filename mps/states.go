package mps

import (
	"math"
	"math/rand/v2"

	"github.com/fumin/tensor"
	"github.com/pkg/errors"
)

// ProductState creates the state whose i-th site is in the state vectors[i].
func ProductState(vectors [][]complex64) (*MPS, error) {
	if len(vectors) == 0 {
		return nil, errors.Errorf("empty state")
	}

	tensors := make([]*tensor.Dense, 0, len(vectors))
	for i, v := range vectors {
		if len(v) == 0 {
			return nil, errors.Errorf("site %d is empty", i)
		}
		t := tensor.Zeros(1, len(v), 1)
		for s, a := range v {
			t.SetAt([]int{0, s, 0}, a)
		}
		tensors = append(tensors, t)
	}
	return NewMPS(tensors)
}

// PlusState creates the uniform superposition over all n-qubit basis states.
func PlusState(n int) (*MPS, error) {
	c := complex64(complex(1/math.Sqrt2, 0))
	vectors := make([][]complex64, 0, n)
	for range n {
		vectors = append(vectors, []complex64{c, c})
	}
	return ProductState(vectors)
}

// GHZ creates the n-qubit Greenberger-Horne-Zeilinger state (|0...0> + |1...1>)/sqrt(2).
func GHZ(n int) (*MPS, error) {
	if n < 1 {
		return nil, errors.Errorf("%d sites", n)
	}
	c := complex64(complex(1/math.Sqrt2, 0))
	if n == 1 {
		t := tensor.Zeros(1, 2, 1)
		t.SetAt([]int{0, 0, 0}, c)
		t.SetAt([]int{0, 1, 0}, c)
		return NewMPS([]*tensor.Dense{t})
	}

	tensors := make([]*tensor.Dense, 0, n)
	first := tensor.Zeros(1, 2, 2)
	for s := range 2 {
		first.SetAt([]int{0, s, s}, c)
	}
	tensors = append(tensors, first)
	for range n - 2 {
		mid := tensor.Zeros(2, 2, 2)
		for s := range 2 {
			mid.SetAt([]int{s, s, s}, 1)
		}
		tensors = append(tensors, mid)
	}
	last := tensor.Zeros(2, 2, 1)
	for s := range 2 {
		last.SetAt([]int{s, s, 0}, 1)
	}
	tensors = append(tensors, last)
	return NewMPS(tensors)
}

// W creates the n-qubit W state, the uniform superposition over all
// basis states with exactly one excitation.
func W(n int) (*MPS, error) {
	if n < 1 {
		return nil, errors.Errorf("%d sites", n)
	}
	c := complex64(complex(1/math.Sqrt(float64(n)), 0))
	if n == 1 {
		t := tensor.Zeros(1, 2, 1)
		t.SetAt([]int{0, 1, 0}, 1)
		return NewMPS([]*tensor.Dense{t})
	}

	// Bond index 0 means no excitation so far, 1 means the excitation is placed.
	tensors := make([]*tensor.Dense, 0, n)
	first := tensor.Zeros(1, 2, 2)
	first.SetAt([]int{0, 0, 0}, 1)
	first.SetAt([]int{0, 1, 1}, c)
	tensors = append(tensors, first)
	for range n - 2 {
		mid := tensor.Zeros(2, 2, 2)
		mid.SetAt([]int{0, 0, 0}, 1)
		mid.SetAt([]int{0, 1, 1}, c)
		mid.SetAt([]int{1, 0, 1}, 1)
		tensors = append(tensors, mid)
	}
	last := tensor.Zeros(2, 2, 1)
	last.SetAt([]int{0, 1, 0}, c)
	last.SetAt([]int{1, 0, 0}, 1)
	tensors = append(tensors, last)
	return NewMPS(tensors)
}

// AKLT creates the unnormalized n-site spin-1 Affleck-Kennedy-Lieb-Tasaki
// ground state with open boundaries.
func AKLT(n int) (*MPS, error) {
	if n < 2 {
		return nil, errors.Errorf("%d sites", n)
	}

	// a[s] is the 2x2 matrix of the physical state s in {+1, 0, -1}.
	g := complex64(complex(math.Sqrt(2.0/3.0), 0))
	u := complex64(complex(1/math.Sqrt(3), 0))
	a := [3][2][2]complex64{
		{{0, g}, {0, 0}},
		{{-u, 0}, {0, u}},
		{{0, 0}, {-g, 0}},
	}

	tensors := make([]*tensor.Dense, 0, n)
	first := tensor.Zeros(1, 3, 2)
	for s := range 3 {
		for b := range 2 {
			first.SetAt([]int{0, s, b}, a[s][0][b])
		}
	}
	tensors = append(tensors, first)
	for range n - 2 {
		mid := tensor.Zeros(2, 3, 2)
		for s := range 3 {
			for bl := range 2 {
				for br := range 2 {
					mid.SetAt([]int{bl, s, br}, a[s][bl][br])
				}
			}
		}
		tensors = append(tensors, mid)
	}
	last := tensor.Zeros(2, 3, 1)
	for s := range 3 {
		for b := range 2 {
			last.SetAt([]int{b, s, 0}, a[s][b][0])
		}
	}
	tensors = append(tensors, last)
	return NewMPS(tensors)
}

// RandomMPS creates an n-site random state with physical dimension d.
// maxD is the maximum bond dimension, which is D in the discussion below
// equation 71 in section 4.1.4, Ulrich Schollwock.
func RandomMPS(n, d, maxD int) (*MPS, error) {
	if n < 1 || d < 1 || maxD < 1 {
		return nil, errors.Errorf("%d %d %d", n, d, maxD)
	}

	tensors := make([]*tensor.Dense, 0, n)
	leftD := 1
	for i := range n {
		// The exact bond dimension grows geometrically from both boundaries.
		rightD := 1
		for k := i + 1; k < n; k++ {
			rightD *= d
			if rightD >= maxD {
				rightD = maxD
				break
			}
		}
		rightD = min(rightD, leftD*d, maxD)

		tensors = append(tensors, randTensor(leftD, d, rightD))
		leftD = rightD
	}
	return NewMPS(tensors)
}

func randTensor(shape ...int) *tensor.Dense {
	t := tensor.Zeros(shape...)
	for ijk := range t.All() {
		v := complex(rand.Float32()*2-1, rand.Float32()*2-1)
		t.SetAt(ijk, v)
	}
	return t
}
