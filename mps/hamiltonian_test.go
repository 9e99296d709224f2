package mps

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/PaulaGarciaMolina/seemps/mat"
)

// transverseIsing builds the Hamiltonian -sum ZZ - h sum X over an n-site chain.
func transverseIsing(t *testing.T, n int, h complex64) *ConstantNNHamiltonian {
	dims := make([]int, n)
	for i := range dims {
		dims[i] = 2
	}
	ham, err := NewConstantNNHamiltonian(dims)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	for i := range n - 1 {
		zz := mat.M(mat.PauliZ)
		zz.Kron(mat.M(mat.PauliZ))
		zz.Scale(-1)
		if err := ham.AddInteractionTerm(i, zz); err != nil {
			t.Fatalf("%+v", err)
		}
	}
	for i := range n {
		x := mat.M(mat.PauliX)
		x.Scale(-h)
		if err := ham.AddLocalTerm(i, x); err != nil {
			t.Fatalf("%+v", err)
		}
	}
	return ham
}

func TestConstantNNHamiltonian(t *testing.T) {
	t.Parallel()
	ham := transverseIsing(t, 8, 1)
	m, buf := mat.M([][]complex64{{0}}), mat.M([][]complex64{{0}})
	ToMatrix(m, buf, ham, 0)
	if m.Rows() != 256 || m.Cols() != 256 {
		t.Fatalf("%d %d", m.Rows(), m.Cols())
	}
	vvs := m.COO().Eigen()

	// Values are from https://juliaphysics.github.io/PhysicsTutorials.jl/tutorials/general/quantum_ising/quantum_ising.html
	vals := []float64{-9.837951447459426, -9.46887800960621, -8.7432994871710, -8.374226049317867, -8.054998024353266, -7.685924586500063, -7.427412901942416, -7.058339464089192, -6.960346064064927, -6.881915778576785}
	for i, v := range vvs[0:10] {
		if math.Abs(real(v.Val)-vals[i]) > 1e-6 {
			t.Fatalf("%d %v %f", i, v.Val, vals[i])
		}
	}
}

func TestAddLocalTerm(t *testing.T) {
	t.Parallel()
	dims := []int{2, 2, 2}
	ham, err := NewConstantNNHamiltonian(dims)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	// An interior local term is split between its two bonds,
	// but the full matrix carries it exactly once.
	if err := ham.AddLocalTerm(1, mat.M(mat.PauliZ)); err != nil {
		t.Fatalf("%+v", err)
	}

	m, buf := mat.M([][]complex64{{0}}), mat.M([][]complex64{{0}})
	ToMatrix(m, buf, ham, 0)

	expected := mat.COOIdentity(2)
	expected.Kron(mat.M(mat.PauliZ))
	expected.Kron(mat.COOIdentity(2))
	if !m.COO().Equal(expected) {
		t.Fatalf("%s, expected %s", m.COO(), expected)
	}
}

func TestHamiltonianErrors(t *testing.T) {
	t.Parallel()
	if _, err := NewConstantNNHamiltonian([]int{2}); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := NewConstantNNHamiltonian([]int{2, 0}); err == nil {
		t.Fatalf("expected error")
	}

	ham, err := NewConstantNNHamiltonian([]int{2, 2})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if err := ham.AddInteractionTerm(1, mat.COOIdentity(4)); err == nil {
		t.Fatalf("expected error")
	}
	if err := ham.AddInteractionTerm(0, mat.COOIdentity(2)); err == nil {
		t.Fatalf("expected error")
	}
	if err := ham.AddLocalTerm(2, mat.M(mat.PauliZ)); err == nil {
		t.Fatalf("expected error")
	}
	if err := ham.AddLocalTerm(0, mat.COOIdentity(4)); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTimeDependentNNHamiltonian(t *testing.T) {
	t.Parallel()
	base := transverseIsing(t, 3, 1)
	td := &TimeDependentNNHamiltonian{
		Base:     base,
		Envelope: func(time float64) complex64 { return complex(float32(time), 0) },
	}

	term := td.InteractionTerm(0, 2)
	baseTerm := base.InteractionTerm(0, 2)
	for i := range 4 {
		for j := range 4 {
			got, e := term.At(i, j), 2*baseTerm.At(i, j)
			if abs(got-e) > 1e-6 {
				t.Fatalf("%d %d: %v, expected %v", i, j, got, e)
			}
		}
	}

	m, buf := mat.M([][]complex64{{0}}), mat.M([][]complex64{{0}})
	ToMatrix(m, buf, td, 0.5)
	mBase, bufBase := mat.M([][]complex64{{0}}), mat.M([][]complex64{{0}})
	ToMatrix(mBase, bufBase, base, 0.5)
	half := mBase.COO()
	half.Scale(0.5)
	if !m.COO().Equal(half) {
		t.Fatalf("%s, expected %s", m.COO(), half)
	}
}

func TestToMatrixDisk(t *testing.T) {
	t.Parallel()
	dir, err := os.MkdirTemp("", "")
	if err != nil {
		t.Fatalf("%+v", err)
	}
	defer os.RemoveAll(dir)

	ham := transverseIsing(t, 3, 0.5)
	m := mat.DiskM(filepath.Join(dir, "h.db"), [][]complex64{{0}})
	defer m.Close()
	buf := mat.DiskM(filepath.Join(dir, "buf.db"), [][]complex64{{0}})
	defer buf.Close()
	ToMatrix(m, buf, ham, 0)

	mem, memBuf := mat.M([][]complex64{{0}}), mat.M([][]complex64{{0}})
	ToMatrix(mem, memBuf, ham, 0)
	if !m.COO().Equal(mem.COO()) {
		t.Fatalf("%s, expected %s", m.COO(), mem.COO())
	}
}
