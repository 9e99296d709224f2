// Package seemps defines quadratic unconstrained binary optimization problems
// and dense reference oracles for the operators synthesized from them.
package seemps

import (
	"math/rand/v2"
	"strconv"

	"github.com/pkg/errors"

	"github.com/PaulaGarciaMolina/seemps/mat"
)

var (
	identity = mat.COOIdentity(2)
	// projector is |1><1|, the binary variable as an operator.
	projector = mat.COOProjector(2, 1)
)

// QUBO is the quadratic unconstrained binary optimization problem
//
//	E(x) = sum_ij J[i][j] x_i x_j + sum_i H[i] x_i
//
// over binary variables x in {0, 1}. Either J or H may be nil, but not both.
type QUBO struct {
	J [][]complex64
	H []complex64
}

// NewQUBO creates a QUBO problem from its quadratic and linear coefficients.
func NewQUBO(j [][]complex64, h []complex64) (*QUBO, error) {
	if j == nil && h == nil {
		return nil, errors.Errorf("either J or h is required")
	}
	n := len(h)
	if j != nil {
		n = len(j)
	}
	if n == 0 {
		return nil, errors.Errorf("empty problem")
	}
	for i, row := range j {
		if len(row) != n {
			return nil, errors.Errorf("row %d: %d columns, expected %d", i, len(row), n)
		}
	}
	if j != nil && h != nil && len(h) != n {
		return nil, errors.Errorf("%d fields for %d variables", len(h), n)
	}
	return &QUBO{J: j, H: h}, nil
}

// RandomQUBO creates a problem with coefficients drawn uniformly from [-1, 1].
func RandomQUBO(n int) *QUBO {
	j := make([][]complex64, 0, n)
	h := make([]complex64, 0, n)
	for range n {
		row := make([]complex64, 0, n)
		for range n {
			row = append(row, complex(rand.Float32()*2-1, 0))
		}
		j = append(j, row)
		h = append(h, complex(rand.Float32()*2-1, 0))
	}
	return &QUBO{J: j, H: h}
}

// Size returns the number of binary variables.
func (q *QUBO) Size() int {
	if q.J != nil {
		return len(q.J)
	}
	return len(q.H)
}

// Energy evaluates the problem on an assignment of its variables.
func (q *QUBO) Energy(state []byte) complex64 {
	var e complex64
	for i, row := range q.J {
		if state[i] == 0 {
			continue
		}
		for k, jik := range row {
			if state[k] == 1 {
				e += jik
			}
		}
	}
	for i, hi := range q.H {
		if state[i] == 1 {
			e += hi
		}
	}
	return e
}

// Matrix writes the full diagonal Hamiltonian of the problem into m,
// using buf as scratch space.
func (q *QUBO) Matrix(m, buf mat.Matrix) {
	n := q.Size()
	m.Zeros(1<<n, 1<<n)
	for i, row := range q.J {
		for k, jik := range row {
			if jik == 0 {
				continue
			}

			buf.Scalar(1)
			for site := range n {
				switch {
				case site == i || site == k:
					buf.Kron(projector)
				default:
					buf.Kron(identity)
				}
			}
			m.Add(jik, buf)
		}
	}
	for i, hi := range q.H {
		if hi == 0 {
			continue
		}

		buf.Scalar(1)
		for site := range n {
			switch {
			case site == i:
				buf.Kron(projector)
			default:
				buf.Kron(identity)
			}
		}
		m.Add(hi, buf)
	}
}

// Minimum finds the assignment with the lowest energy by enumeration.
func (q *QUBO) Minimum() ([]byte, complex64) {
	n := q.Size()
	best := make([]byte, n)
	bestE := q.Energy(best)
	for _, state := range Bits(n) {
		if e := q.Energy(state); real(e) < real(bestE) {
			bestE = e
			copy(best, state)
		}
	}
	return best, bestE
}

// Bits iterates over all length n bit strings in increasing numeric order,
// most significant bit first. The yielded slice is reused across iterations.
func Bits(n int) func(yield func(int, []byte) bool) {
	state := make([]byte, n)
	return func(yield func(int, []byte) bool) {
		numStates := 1 << n
		for i := range numStates {
			indexBit(state, n, i)
			if !yield(i, state) {
				return
			}
		}
	}
}

// BitIndex returns the numeric value of a bit string, most significant bit first.
func BitIndex(state []byte) int {
	idx := 0
	for i := len(state) - 1; i >= 0; i-- {
		if state[i] == 1 {
			idx += 1 << (len(state) - 1 - i)
		}
	}
	return idx
}

func indexBit(state []byte, n, i int) {
	stateStr := strconv.FormatInt(int64(i), 2)

	for j := range n - len(stateStr) {
		state[j] = 0
	}
	for j, bit := range []byte(stateStr) {
		state[n-len(stateStr)+j] = bit - '0'
	}
}
