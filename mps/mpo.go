package mps

import (
	"fmt"

	"github.com/fumin/tensor"
	"github.com/pkg/errors"
)

// MPO is a matrix product operator over an open-boundary register.
// Site tensors are rank-4, with the boundary bond dimensions equal to one.
type MPO struct {
	TensorArray
}

// NewMPO creates a matrix product operator from rank-4 site tensors.
func NewMPO(tensors []*tensor.Dense) (*MPO, error) {
	arr, err := newTensorArray(tensors)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	for i, t := range tensors {
		if len(t.Shape()) != 4 {
			return nil, errors.Errorf("site %d: %#v", i, t.Shape())
		}
	}
	if d := tensors[0].Shape()[mpoLeftAxis]; d != 1 {
		return nil, errors.Errorf("left boundary bond %d", d)
	}
	if d := tensors[len(tensors)-1].Shape()[mpoRightAxis]; d != 1 {
		return nil, errors.Errorf("right boundary bond %d", d)
	}
	return &MPO{TensorArray: arr}, nil
}

// Clone returns an operator sharing this operator's site tensors but owning its own spine.
func (m *MPO) Clone() *MPO {
	return &MPO{TensorArray: m.clone()}
}

// Dimension returns the size of the Hilbert space the operator acts on.
func (m *MPO) Dimension() int {
	d := 1
	for _, t := range m.tensors {
		d *= t.Shape()[mpoUpAxis]
	}
	return d
}

// Apply contracts the operator with a state, site by site.
// The bond dimensions of the result are the products of the operator and state bond dimensions.
func (m *MPO) Apply(psi *MPS) (*MPS, error) {
	if m.Len() != psi.Len() {
		return nil, errors.Errorf("%d %d", m.Len(), psi.Len())
	}

	buf := tensor.Zeros(1)
	tensors := make([]*tensor.Dense, 0, m.Len())
	for i := range m.Len() {
		w, a := m.Tensor(i), psi.Tensor(i)
		if w.Shape()[mpoDownAxis] != a.Shape()[mpsUpAxis] {
			return nil, errors.Errorf("site %d: %#v %#v", i, w.Shape(), a.Shape())
		}

		// wa is of shape {mpoLeft, mpoUp, mpoRight, mpsLeft, mpsRight}.
		wa := tensor.Contract(buf, w, a, [][2]int{{mpoDownAxis, mpsUpAxis}})

		// b is of shape {mpoLeft, mpsLeft, mpoUp, mpoRight, mpsRight}.
		b := resetCopy(tensor.Zeros(1), wa.Transpose(0, 3, 1, 2, 4))
		s := b.Shape()
		tensors = append(tensors, b.Reshape(s[0]*s[1], s[2], s[3]*s[4]))
	}
	phi, err := NewMPS(tensors)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return phi, nil
}

// ToMatrix contracts the operator into its full matrix.
// Rows and columns are ordered with the leftmost site most significant.
func (m *MPO) ToMatrix() *tensor.Dense {
	buf := tensor.Zeros(1)
	v := ones(tensor.Zeros(1), 1, 1, 1)
	for i := range m.Len() {
		// vw is of shape {rows, cols, mpoUp, mpoDown, mpoRight}.
		vw := tensor.Contract(buf, v, m.Tensor(i), [][2]int{{2, mpoLeftAxis}})

		// v is of shape {rows, mpoUp, cols, mpoDown, mpoRight}.
		v = resetCopy(v, vw.Transpose(0, 2, 1, 3, 4))
		s := v.Shape()
		v = v.Reshape(s[0]*s[1], s[2]*s[3], s[4])
	}
	if v.Shape()[2] != 1 {
		panic(fmt.Sprintf("%#v", v.Shape()))
	}
	s := v.Shape()
	return resetCopy(tensor.Zeros(1), v).Reshape(s[0], s[1])
}

// Extend embeds the operator into a larger n-site register,
// placing its tensors at the given sites and identities elsewhere.
// sites must be strictly increasing, and dims gives the physical dimension of every site.
func (m *MPO) Extend(n int, sites []int, dims []int) (*MPO, error) {
	if len(sites) != m.Len() {
		return nil, errors.Errorf("%d sites for %d tensors", len(sites), m.Len())
	}
	if len(dims) != n {
		return nil, errors.Errorf("%d dims for %d sites", len(dims), n)
	}
	for j, site := range sites {
		if site < 0 || site >= n {
			return nil, errors.Errorf("site %d out of %d", site, n)
		}
		if j > 0 && site <= sites[j-1] {
			return nil, errors.Errorf("%v", sites)
		}
	}

	tensors := make([]*tensor.Dense, 0, n)
	leftD, j := 1, 0
	for k := range n {
		if j < len(sites) && sites[j] == k {
			t := m.Tensor(j)
			if t.Shape()[mpoDownAxis] != dims[k] {
				return nil, errors.Errorf("site %d: %#v %d", k, t.Shape(), dims[k])
			}
			tensors = append(tensors, t)
			leftD = t.Shape()[mpoRightAxis]
			j++
			continue
		}

		pad := tensor.Zeros(leftD, dims[k], dims[k], leftD)
		for a := range leftD {
			for s := range dims[k] {
				pad.SetAt([]int{a, s, s, a}, 1)
			}
		}
		tensors = append(tensors, pad)
	}

	ext, err := NewMPO(tensors)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return ext, nil
}

// MPOList is a pipeline of operators applied in sequence, first element first.
type MPOList struct {
	mpos []*MPO
}

// NewMPOList creates an operator pipeline.
func NewMPOList(mpos []*MPO) (*MPOList, error) {
	if len(mpos) == 0 {
		return nil, errors.Errorf("empty list")
	}
	for i, m := range mpos {
		if m == nil {
			return nil, errors.Errorf("stage %d is nil", i)
		}
		if m.Len() != mpos[0].Len() {
			return nil, errors.Errorf("stage %d: %d sites, expected %d", i, m.Len(), mpos[0].Len())
		}
	}
	return &MPOList{mpos: mpos}, nil
}

// Len returns the number of stages.
func (l *MPOList) Len() int {
	return len(l.mpos)
}

// MPO returns the i-th stage.
func (l *MPOList) MPO(i int) *MPO {
	return l.mpos[i]
}

// ApplyOptions are options for applying an operator pipeline to a state.
type ApplyOptions struct {
	simplifier       Simplifier
	eachStage        bool
	maxBondDimension int
	tolerance        float64
}

// NewApplyOptions returns the default apply options.
func NewApplyOptions() ApplyOptions {
	opt := ApplyOptions{}
	opt.maxBondDimension = -1
	opt.tolerance = epsilon
	return opt
}

// Simplifier sets the state simplifier run after applying the pipeline.
func (opt ApplyOptions) Simplifier(s Simplifier) ApplyOptions {
	opt.simplifier = s
	return opt
}

// EachStage makes the simplifier run after every stage instead of only at the end.
func (opt ApplyOptions) EachStage(b bool) ApplyOptions {
	opt.eachStage = b
	return opt
}

// MaxBondDimension sets the bond dimension cap passed to the simplifier.
// A negative cap means unbounded.
func (opt ApplyOptions) MaxBondDimension(d int) ApplyOptions {
	opt.maxBondDimension = d
	return opt
}

// Tolerance sets the truncation tolerance passed to the simplifier.
func (opt ApplyOptions) Tolerance(tol float64) ApplyOptions {
	opt.tolerance = tol
	return opt
}

// Apply runs the pipeline over a state, threading the result of each stage into the next.
// Without a simplifier in the options, bond dimensions grow multiplicatively with every stage.
func (l *MPOList) Apply(psi *MPS, options ...ApplyOptions) (*MPS, error) {
	opt := NewApplyOptions()
	if len(options) > 0 {
		opt = options[0]
	}

	var err error
	for i, m := range l.mpos {
		psi, err = m.Apply(psi)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("%d", i))
		}

		if opt.simplifier == nil {
			continue
		}
		if !opt.eachStage && i != len(l.mpos)-1 {
			continue
		}
		psi, _, _, err = opt.simplifier.Simplify(psi, opt.maxBondDimension, opt.tolerance)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("%d", i))
		}
	}
	return psi, nil
}

// ToMatrix contracts the whole pipeline into its full matrix.
func (l *MPOList) ToMatrix() *tensor.Dense {
	m := l.mpos[0].ToMatrix()
	for _, mi := range l.mpos[1:] {
		m = tensor.Contract(tensor.Zeros(1), mi.ToMatrix(), m, [][2]int{{1, 0}})
	}
	return m
}
