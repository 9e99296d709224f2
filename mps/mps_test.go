package mps

import (
	"fmt"
	"testing"

	"github.com/fumin/tensor"
)

func TestNewMPS(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		tensors []*tensor.Dense
	}{
		{name: "empty", tensors: nil},
		{name: "nil site", tensors: []*tensor.Dense{nil}},
		{name: "rank", tensors: []*tensor.Dense{tensor.Zeros(1, 2)}},
		{name: "left bond", tensors: []*tensor.Dense{tensor.Zeros(2, 2, 1)}},
		{name: "right bond", tensors: []*tensor.Dense{tensor.Zeros(1, 2, 3)}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewMPS(test.tensors); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDimension(t *testing.T) {
	t.Parallel()
	psi, err := RandomMPS(5, 3, 4)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if d := psi.Dimension(); d != 243 {
		t.Fatalf("%d, expected %d", d, 243)
	}
	if d := psi.ToVector().Shape()[0]; d != 243 {
		t.Fatalf("%d, expected %d", d, 243)
	}
}

func TestToVector(t *testing.T) {
	t.Parallel()
	tests := []struct {
		vectors [][]complex64
	}{
		{vectors: [][]complex64{{1, 2}, {3, 4}}},
		{vectors: [][]complex64{{1i, 2}, {0, 1}, {5, -1i}}},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%v", test.vectors), func(t *testing.T) {
			t.Parallel()
			psi, err := ProductState(test.vectors)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			v := psi.ToVector()

			n := len(test.vectors)
			for i := range 1 << n {
				var expected complex64 = 1
				for k, vk := range test.vectors {
					expected *= vk[(i>>(n-1-k))&1]
				}
				if got := v.At(i); abs(got-expected) > 1e-6 {
					t.Fatalf("%d: %v, expected %v", i, got, expected)
				}
			}
		})
	}
}

func TestNormSquared(t *testing.T) {
	t.Parallel()
	psi, err := RandomMPS(4, 2, 3)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	v := psi.ToVector()
	var expected float32
	for _, a := range v.All() {
		expected += real(a)*real(a) + imag(a)*imag(a)
	}
	got := psi.NormSquared()
	if abs(complex(got-expected, 0)) > 1e-3*(1+expected) {
		t.Fatalf("%f, expected %f", got, expected)
	}
}

func TestClone(t *testing.T) {
	t.Parallel()
	psi, err := GHZ(3)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	phi := psi.Clone()
	if phi.Tensor(1) != psi.Tensor(1) {
		t.Fatalf("tensors not shared")
	}

	phi.SetTensor(0, tensor.Zeros(1, 2, 2))
	if psi.Tensor(0) == phi.Tensor(0) {
		t.Fatalf("spine shared")
	}
}
