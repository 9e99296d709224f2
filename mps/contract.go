package mps

import (
	"fmt"
	"slices"

	"github.com/fumin/tensor"
	"github.com/pkg/errors"
)

// beginEnvironment resets rho to the d-dimensional identity environment.
func beginEnvironment(rho *tensor.Dense, d int) *tensor.Dense {
	rho.Reset(d, d)
	for i := range d {
		rho.SetAt([]int{i, i}, 1)
	}
	return rho
}

// updateLeftEnvironment absorbs one bra-ket site pair into the left environment rho.
// rho is of shape {bra bond, ket bond}.
func updateLeftEnvironment(rho, bra, ket, buf *tensor.Dense) *tensor.Dense {
	// rk is of shape {bra bond, mpsUp, mpsRight}.
	rk := tensor.Contract(buf, rho, ket, [][2]int{{1, mpsLeftAxis}})

	// rho is of shape {mpsRight.conj, mpsRight}.
	tensor.Contract(rho, bra.Conj(), rk, [][2]int{{mpsLeftAxis, 0}, {mpsUpAxis, 1}})

	return rho
}

// updateLeftEnvironmentOp absorbs one bra-ket site pair with the one-site operator op inserted.
func updateLeftEnvironmentOp(rho, op, bra, ket *tensor.Dense, bufs [2]*tensor.Dense) *tensor.Dense {
	// rk is of shape {bra bond, mpsUp, mpsRight}.
	rk := tensor.Contract(bufs[0], rho, ket, [][2]int{{1, mpsLeftAxis}})

	// ork is of shape {opRow, bra bond, mpsRight}.
	ork := tensor.Contract(bufs[1], op, rk, [][2]int{{1, 1}})

	// rho is of shape {mpsRight.conj, mpsRight}.
	tensor.Contract(rho, bra.Conj(), ork, [][2]int{{mpsLeftAxis, 1}, {mpsUpAxis, 0}})

	return rho
}

// updateRightEnvironment absorbs one bra-ket site pair into the right environment rho.
// rho is of shape {bra bond, ket bond}.
func updateRightEnvironment(rho, bra, ket, buf *tensor.Dense) *tensor.Dense {
	// rk is of shape {bra bond, mpsLeft, mpsUp}.
	rk := tensor.Contract(buf, rho, ket, [][2]int{{1, mpsRightAxis}})

	// rho is of shape {mpsLeft.conj, mpsLeft}.
	tensor.Contract(rho, bra.Conj(), rk, [][2]int{{mpsRightAxis, 0}, {mpsUpAxis, 2}})

	return rho
}

// endEnvironment extracts the scalar from a fully contracted environment.
func endEnvironment(rho *tensor.Dense) complex64 {
	if !slices.Equal(rho.Shape(), []int{1, 1}) {
		panic(fmt.Sprintf("%#v", rho.Shape()))
	}
	return rho.At(0, 0)
}

// joinEnvironments contracts a left against a right environment.
func joinEnvironments(left, right *tensor.Dense) complex64 {
	if !slices.Equal(left.Shape(), right.Shape()) {
		panic(fmt.Sprintf("%#v %#v", left.Shape(), right.Shape()))
	}
	var sum complex64
	for ij, v := range left.All() {
		sum += v * right.At(ij...)
	}
	return sum
}

// ScalarProduct computes <phi|psi>.
// See Section 4.2.1 Efficient evaluation of contractions, Ulrich Schollwock.
func ScalarProduct(phi, psi *MPS, bufs [2]*tensor.Dense) complex64 {
	if phi.Len() != psi.Len() {
		panic(fmt.Sprintf("%d %d", phi.Len(), psi.Len()))
	}

	rho := beginEnvironment(bufs[0], 1)
	for i := range psi.Len() {
		rho = updateLeftEnvironment(rho, phi.Tensor(i), psi.Tensor(i), bufs[1])
	}
	return endEnvironment(rho)
}

// Expectation1 computes <psi|op|psi> with op acting on the given site.
func Expectation1(psi *MPS, op *tensor.Dense, site int, bufs [4]*tensor.Dense) complex64 {
	n := psi.Len()
	if site < 0 || site >= n {
		panic(fmt.Sprintf("%d %d", site, n))
	}

	// sigma is the environment of the sites to the right of site.
	sigma := beginEnvironment(bufs[2], psi.Tensor(n-1).Shape()[mpsRightAxis])
	for i := n - 1; i > site; i-- {
		sigma = updateRightEnvironment(sigma, psi.Tensor(i), psi.Tensor(i), bufs[3])
	}

	rho := beginEnvironment(bufs[0], psi.Tensor(0).Shape()[mpsLeftAxis])
	for i := range site {
		rho = updateLeftEnvironment(rho, psi.Tensor(i), psi.Tensor(i), bufs[1])
	}
	rho = updateLeftEnvironmentOp(rho, op, psi.Tensor(site), psi.Tensor(site), [2]*tensor.Dense{bufs[1], bufs[3]})

	return joinEnvironments(rho, sigma)
}

// Expectation2 computes <psi|opI opJ|psi> with opI acting on site i and opJ on site j.
// When both operators act on the same site, their matrix product is taken.
func Expectation2(psi *MPS, opI, opJ *tensor.Dense, i, j int, bufs [4]*tensor.Dense) complex64 {
	if j < i {
		opI, opJ = opJ, opI
		i, j = j, i
	}
	if i == j {
		op := tensor.Contract(bufs[0], opI, opJ, [][2]int{{1, 0}})
		return Expectation1(psi, resetCopy(bufs[3], op), i, [4]*tensor.Dense{bufs[0], bufs[1], bufs[2], tensor.Zeros(1)})
	}
	n := psi.Len()
	if i < 0 || j >= n {
		panic(fmt.Sprintf("%d %d %d", i, j, n))
	}

	// sigma is the environment of the sites to the right of j.
	sigma := beginEnvironment(bufs[2], psi.Tensor(n-1).Shape()[mpsRightAxis])
	for k := n - 1; k > j; k-- {
		sigma = updateRightEnvironment(sigma, psi.Tensor(k), psi.Tensor(k), bufs[3])
	}

	rho := beginEnvironment(bufs[0], psi.Tensor(0).Shape()[mpsLeftAxis])
	for k := range i {
		rho = updateLeftEnvironment(rho, psi.Tensor(k), psi.Tensor(k), bufs[1])
	}
	opBufs := [2]*tensor.Dense{bufs[1], bufs[3]}
	rho = updateLeftEnvironmentOp(rho, opI, psi.Tensor(i), psi.Tensor(i), opBufs)
	for k := i + 1; k < j; k++ {
		rho = updateLeftEnvironment(rho, psi.Tensor(k), psi.Tensor(k), bufs[1])
	}
	rho = updateLeftEnvironmentOp(rho, opJ, psi.Tensor(j), psi.Tensor(j), opBufs)

	return joinEnvironments(rho, sigma)
}

// SiteOperators assigns a one-site operator to every site of a state,
// either the same operator everywhere or one per site.
type SiteOperators struct {
	uniform *tensor.Dense
	perSite []*tensor.Dense
}

// Uniform assigns op to every site.
func Uniform(op *tensor.Dense) SiteOperators {
	return SiteOperators{uniform: op}
}

// PerSite assigns ops[i] to site i.
func PerSite(ops []*tensor.Dense) SiteOperators {
	return SiteOperators{perSite: ops}
}

func (so SiteOperators) validate(n int) error {
	switch {
	case so.uniform != nil:
		return nil
	case len(so.perSite) != n:
		return errors.Errorf("%d operators for %d sites", len(so.perSite), n)
	}
	return nil
}

func (so SiteOperators) at(i int) *tensor.Dense {
	if so.uniform != nil {
		return so.uniform
	}
	return so.perSite[i]
}

// AllExpectations1 computes the expectation value of a one-site operator at every site,
// reusing partial environments so that the whole sweep costs the same as a handful of scalar products.
// rhos must hold one scratch tensor per site.
func AllExpectations1(psi *MPS, ops SiteOperators, rhos []*tensor.Dense, bufs [4]*tensor.Dense) []complex64 {
	n := psi.Len()
	if len(rhos) != n {
		panic(fmt.Sprintf("%d %d", len(rhos), n))
	}
	if err := ops.validate(n); err != nil {
		panic(fmt.Sprintf("%v", err))
	}

	// rhos[i] becomes the environment of the sites to the right of i.
	beginEnvironment(rhos[n-1], psi.Tensor(n-1).Shape()[mpsRightAxis])
	for i := n - 1; i >= 1; i-- {
		resetCopy(rhos[i-1], rhos[i])
		updateRightEnvironment(rhos[i-1], psi.Tensor(i), psi.Tensor(i), bufs[0])
	}

	values := make([]complex64, 0, n)
	rho := beginEnvironment(bufs[0], psi.Tensor(0).Shape()[mpsLeftAxis])
	for i := range n {
		lop := resetCopy(bufs[1], rho)
		lop = updateLeftEnvironmentOp(lop, ops.at(i), psi.Tensor(i), psi.Tensor(i), [2]*tensor.Dense{bufs[2], bufs[3]})
		values = append(values, joinEnvironments(lop, rhos[i]))

		rho = updateLeftEnvironment(rho, psi.Tensor(i), psi.Tensor(i), bufs[2])
	}
	return values
}
