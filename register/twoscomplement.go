package register

import (
	"slices"

	"github.com/fumin/tensor"
	"github.com/pkg/errors"

	"github.com/PaulaGarciaMolina/seemps/mps"
)

// TwosComplement creates the MPO that negates a register in two's complement
// arithmetic, conditioned on a control qubit. Basis states with the control
// set have their remaining bits mapped to the two's complement negation of
// their value, leftmost bit most significant. Basis states with the control
// clear pass through unchanged.
//
// With a nil sites, the operator acts on all n qubits and control indexes the
// full register. Otherwise the operator acts on the listed qubits, of which
// control must be one, and identities fill the rest of the register.
func TwosComplement(n, control int, sites []int) (*mps.MPO, error) {
	if n < 1 {
		return nil, errors.Errorf("%d qubits", n)
	}
	if sites != nil {
		sorted := slices.Clone(sites)
		slices.Sort(sorted)
		for i, site := range sorted {
			if site < 0 || site >= n {
				return nil, errors.Errorf("site %d out of %d", site, n)
			}
			if i > 0 && site == sorted[i-1] {
				return nil, errors.Errorf("duplicate site %d", site)
			}
		}
		pos := slices.Index(sorted, control)
		if pos < 0 {
			return nil, errors.Errorf("control %d not among %v", control, sites)
		}

		inner, err := TwosComplement(len(sorted), pos, nil)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		dims := make([]int, n)
		for i := range dims {
			dims[i] = 2
		}
		return inner.Extend(n, sorted, dims)
	}

	if control < 0 || control >= n {
		return nil, errors.Errorf("control %d out of %d", control, n)
	}
	if n == 1 {
		t := tensor.Zeros(1, 2, 2, 1)
		for s := range 2 {
			t.SetAt([]int{0, s, s, 0}, 1)
		}
		return mps.NewMPO([]*tensor.Dense{t})
	}

	// The bond indices form a carry automaton over the bits scanned left to
	// right. State 0 passes everything through for a clear control. With the
	// control set, state 2 negates bits above the lowest set bit, the lowest
	// set bit itself switches to state 1, and state 1 passes the trailing
	// zeros. Only states 0 and 1 are accepted at the right boundary, which
	// kills the all-negating path on the all-zero input.
	tensors := make([]*tensor.Dense, 0, n)
	for k := range n {
		t := tensor.Zeros(3, 2, 2, 3)
		if k == control {
			t.SetAt([]int{0, 0, 0, 0}, 1)
			t.SetAt([]int{1, 1, 1, 1}, 1)
			t.SetAt([]int{2, 1, 1, 2}, 1)
		} else {
			for s := range 2 {
				t.SetAt([]int{0, s, s, 0}, 1)
			}
			t.SetAt([]int{1, 0, 0, 1}, 1)
			t.SetAt([]int{2, 1, 1, 1}, 1)
			t.SetAt([]int{2, 1, 0, 2}, 1)
			t.SetAt([]int{2, 0, 1, 2}, 1)
		}

		switch k {
		case 0:
			t = sumRows(t)
		case n - 1:
			t = sumCols(t, 2)
		}
		tensors = append(tensors, t)
	}
	return mps.NewMPO(tensors)
}

// sumRows collapses the left bond of t by summing over all its values.
func sumRows(t *tensor.Dense) *tensor.Dense {
	s := t.Shape()
	out := tensor.Zeros(1, s[1], s[2], s[3])
	for ix, v := range t.All() {
		if v == 0 {
			continue
		}
		jx := []int{0, ix[1], ix[2], ix[3]}
		out.SetAt(jx, out.At(jx...)+v)
	}
	return out
}

// sumCols collapses the right bond of t by summing over its first m values.
func sumCols(t *tensor.Dense, m int) *tensor.Dense {
	s := t.Shape()
	out := tensor.Zeros(s[0], s[1], s[2], 1)
	for ix, v := range t.All() {
		if v == 0 || ix[3] >= m {
			continue
		}
		jx := []int{ix[0], ix[1], ix[2], 0}
		out.SetAt(jx, out.At(jx...)+v)
	}
	return out
}
