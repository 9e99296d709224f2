package mps

import (
	"fmt"
	"math/cmplx"

	"github.com/fumin/tensor"
	"github.com/pkg/errors"
)

// Machine precision.
const epsilon = 0x1p-23

// MPS is a matrix product state over an open-boundary register.
// Site tensors are rank-3, with the boundary bond dimensions equal to one.
type MPS struct {
	TensorArray
}

// NewMPS creates a matrix product state from rank-3 site tensors.
func NewMPS(tensors []*tensor.Dense) (*MPS, error) {
	arr, err := newTensorArray(tensors)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	for i, t := range tensors {
		if len(t.Shape()) != 3 {
			return nil, errors.Errorf("site %d: %#v", i, t.Shape())
		}
	}
	if d := tensors[0].Shape()[mpsLeftAxis]; d != 1 {
		return nil, errors.Errorf("left boundary bond %d", d)
	}
	if d := tensors[len(tensors)-1].Shape()[mpsRightAxis]; d != 1 {
		return nil, errors.Errorf("right boundary bond %d", d)
	}
	return &MPS{TensorArray: arr}, nil
}

// Clone returns a state sharing this state's site tensors but owning its own spine.
func (m *MPS) Clone() *MPS {
	return &MPS{TensorArray: m.clone()}
}

// Dimension returns the size of the Hilbert space the state lives in.
func (m *MPS) Dimension() int {
	d := 1
	for _, t := range m.tensors {
		d *= t.Shape()[mpsUpAxis]
	}
	return d
}

// ToVector contracts the state into its full amplitude vector.
// Amplitudes are ordered with the leftmost site most significant.
func (m *MPS) ToVector() *tensor.Dense {
	buf := tensor.Zeros(1)
	v := ones(tensor.Zeros(1), 1, 1)
	for i := range m.Len() {
		// va is of shape {prefix, mpsUp, mpsRight}.
		va := tensor.Contract(buf, v, m.Tensor(i), [][2]int{{1, mpsLeftAxis}})
		s := va.Shape()
		va = va.Reshape(s[0]*s[1], s[2])
		v, buf = va, v
	}
	if v.Shape()[1] != 1 {
		panic(fmt.Sprintf("%#v", v.Shape()))
	}
	return resetCopy(tensor.Zeros(1), v).Reshape(-1)
}

// NormSquared returns the squared norm of the state.
func (m *MPS) NormSquared() float32 {
	bufs := [2]*tensor.Dense{tensor.Zeros(1), tensor.Zeros(1)}
	return real(ScalarProduct(m, m, bufs))
}

// ExpectationOne returns the expectation value of op acting on site.
func (m *MPS) ExpectationOne(op *tensor.Dense, site int) complex64 {
	return Expectation1(m, op, site, newBufs())
}

// ExpectationTwo returns the expectation value of opI acting on site i and opJ on site j.
func (m *MPS) ExpectationTwo(opI, opJ *tensor.Dense, i, j int) complex64 {
	return Expectation2(m, opI, opJ, i, j, newBufs())
}

// ExpectationAll returns the one-site expectation values at every site.
func (m *MPS) ExpectationAll(ops SiteOperators) []complex64 {
	rhos := make([]*tensor.Dense, 0, m.Len())
	for range m.Len() {
		rhos = append(rhos, tensor.Zeros(1))
	}
	return AllExpectations1(m, ops, rhos, newBufs())
}

func newBufs() [4]*tensor.Dense {
	var bufs [4]*tensor.Dense
	for i := range bufs {
		bufs[i] = tensor.Zeros(1)
	}
	return bufs
}

func resetCopy(dst, src *tensor.Dense) *tensor.Dense {
	shape := src.Shape()
	zeroDigit := make([]int, len(shape))
	dst.Reset(shape...).Set(zeroDigit, src)
	return dst
}

func ones(t *tensor.Dense, shape ...int) *tensor.Dense {
	t.Reset(shape...)
	for ijk := range t.All() {
		t.SetAt(ijk, 1)
	}
	return t
}

func abs(x complex64) float32 {
	return float32(cmplx.Abs(complex128(x)))
}
