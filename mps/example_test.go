package mps_test

import (
	"fmt"
	"log"

	"github.com/fumin/tensor"

	"github.com/PaulaGarciaMolina/seemps/mat"
	"github.com/PaulaGarciaMolina/seemps/mps"
)

func Example() {
	// Create a Greenberger-Horne-Zeilinger state over 8 qubits.
	state, err := mps.GHZ(8)
	if err != nil {
		log.Fatalf("%+v", err)
	}

	// Single site magnetizations vanish, while distant sites are perfectly correlated.
	z := tensor.T2(mat.PauliZ)
	fmt.Printf("<Z3> = %.4f\n", real(state.ExpectationOne(z, 3)))
	fmt.Printf("<Z2 Z5> = %.4f\n", real(state.ExpectationTwo(z, z, 2, 5)))
	fmt.Printf("norm2 = %.4f\n", state.NormSquared())

	// Output:
	// <Z3> = 0.0000
	// <Z2 Z5> = 1.0000
	// norm2 = 1.0000
}
