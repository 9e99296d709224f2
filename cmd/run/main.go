// Command run synthesizes matrix product operators for random QUBO problems
// and cross-checks them against brute force enumeration.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/cmplx"
	"strings"

	"github.com/fumin/tensor"
	"github.com/pkg/errors"

	"github.com/PaulaGarciaMolina/seemps"
	"github.com/PaulaGarciaMolina/seemps/mps"
	"github.com/PaulaGarciaMolina/seemps/register"
)

var (
	maxVariables = flag.Int("n", 10, "largest problem size")
	beta         = flag.Float64("beta", -1, "inverse temperature of the exponential")
)

type result struct {
	n int
	// mean is <+|H|+>, the energy averaged over all assignments.
	mean      complex64
	meanExact complex64
	// z is <+|exp(beta*H)|+>, the partition function over 2^n.
	z      complex64
	zExact complex64
	// minEnergy and minState are the brute force optimum.
	minEnergy complex64
	minState  string
}

func solve(n int, beta complex64) (result, error) {
	q := seemps.RandomQUBO(n)

	psi, err := mps.PlusState(n)
	if err != nil {
		return result{}, errors.Wrap(err, "")
	}
	bufs := [2]*tensor.Dense{tensor.Zeros(1), tensor.Zeros(1)}

	// Mean energy from the Hamiltonian MPO.
	op, err := register.QUBOMPO(q.J, q.H)
	if err != nil {
		return result{}, errors.Wrap(err, "")
	}
	hpsi, err := op.Apply(psi)
	if err != nil {
		return result{}, errors.Wrap(err, "")
	}
	res := result{n: n}
	res.mean = mps.ScalarProduct(psi, hpsi, bufs)

	// Partition function from the exponential pipeline.
	exp, err := register.QUBOExponential(beta, q.J, q.H)
	if err != nil {
		return result{}, errors.Wrap(err, "")
	}
	epsi, err := exp.Apply(psi)
	if err != nil {
		return result{}, errors.Wrap(err, "")
	}
	res.z = mps.ScalarProduct(psi, epsi, bufs)

	// Brute force reference.
	dim := complex(float32(int(1)<<n), 0)
	for _, state := range seemps.Bits(n) {
		e := q.Energy(state)
		res.meanExact += e / dim
		res.zExact += cexp(beta*e) / dim
	}
	state, minE := q.Minimum()
	res.minEnergy = minE
	var sb strings.Builder
	for _, b := range state {
		sb.WriteByte('0' + b)
	}
	res.minState = sb.String()

	return res, nil
}

func cexp(x complex64) complex64 {
	return complex64(cmplx.Exp(complex128(x)))
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	if err := mainWithErr(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func mainWithErr() error {
	b := complex(float32(*beta), 0)

	results := make([]result, 0)
	for n := 2; n <= *maxVariables; n++ {
		res, err := solve(n, b)
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("%d", n))
		}
		log.Printf("%d %f %f", n, real(res.mean), real(res.z))
		results = append(results, res)
	}

	fmt.Printf("n,e_mean,e_mean_exact,z,z_exact,e_min,x_min\n")
	for _, r := range results {
		fmt.Printf("%d,%f,%f,%f,%f,%f,%s\n", r.n, real(r.mean), real(r.meanExact), real(r.z), real(r.zExact), real(r.minEnergy), r.minState)
	}
	return nil
}
