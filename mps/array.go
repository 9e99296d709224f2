// Package mps implements Matrix Product States and Operators for
// open-boundary one dimensional quantum registers.
//
// A state is a chain of rank-3 tensors with axes (left bond, physical, right
// bond), an operator a chain of rank-4 tensors with axes (left bond, physical
// out, physical in, right bond). The bond dimension of the first tensor's
// left axis and the last tensor's right axis is always 1.
//
// References:
//   - The density-matrix renormalization group in the age of matrix product states, Ulrich Schollwock
package mps

import (
	"slices"

	"github.com/fumin/tensor"
	"github.com/pkg/errors"
)

const (
	// mpsLeftAxis is the axis of a_{l-1} in Figure 6, Ulrich Schollwock.
	mpsLeftAxis  = 0
	mpsUpAxis    = 1
	mpsRightAxis = 2
	// mpoLeftAxis is the axis of b_{l-1} in Figure 35, Ulrich Schollwock.
	mpoLeftAxis  = 0
	mpoUpAxis    = 1
	mpoDownAxis  = 2
	mpoRightAxis = 3
)

// A TensorArray is an ordered chain of tensors.
// The array owns its spine: replacing a tensor at one position never affects
// any other array, even one obtained by cloning. Cloned arrays share the
// tensor objects themselves until one of them performs a replacement.
// Tensors are never mutated in place.
type TensorArray struct {
	tensors []*tensor.Dense
}

func newTensorArray(tensors []*tensor.Dense) (TensorArray, error) {
	if len(tensors) == 0 {
		return TensorArray{}, errors.Errorf("empty chain")
	}
	for i, t := range tensors {
		if t == nil {
			return TensorArray{}, errors.Errorf("site %d: nil tensor", i)
		}
	}
	return TensorArray{tensors: slices.Clone(tensors)}, nil
}

// Len returns the number of sites in the chain.
func (a *TensorArray) Len() int {
	return len(a.tensors)
}

// Tensor returns the tensor at site i without copying.
func (a *TensorArray) Tensor(i int) *tensor.Dense {
	return a.tensors[i]
}

// SetTensor replaces the tensor at site i and returns it.
// Only this array's spine is affected.
func (a *TensorArray) SetTensor(i int, t *tensor.Dense) *tensor.Dense {
	a.tensors[i] = t
	return t
}

func (a *TensorArray) clone() TensorArray {
	return TensorArray{tensors: slices.Clone(a.tensors)}
}
