package mps

import (
	"fmt"
	"math"
	"testing"
)

func TestGHZ(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n int
	}{
		{n: 1},
		{n: 2},
		{n: 5},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d", test.n), func(t *testing.T) {
			t.Parallel()
			psi, err := GHZ(test.n)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			v := psi.ToVector()

			c := complex(float32(1/math.Sqrt2), 0)
			dim := 1 << test.n
			for i := range dim {
				var expected complex64
				if i == 0 || i == dim-1 {
					expected = c
				}
				if got := v.At(i); abs(got-expected) > 1e-6 {
					t.Fatalf("%d: %v, expected %v", i, got, expected)
				}
			}
		})
	}
}

func TestW(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n int
	}{
		{n: 1},
		{n: 2},
		{n: 3},
		{n: 6},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d", test.n), func(t *testing.T) {
			t.Parallel()
			psi, err := W(test.n)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			v := psi.ToVector()

			c := complex(float32(1/math.Sqrt(float64(test.n))), 0)
			for i := range 1 << test.n {
				var expected complex64
				// Exactly one bit set.
				if i != 0 && i&(i-1) == 0 {
					expected = c
				}
				if got := v.At(i); abs(got-expected) > 1e-6 {
					t.Fatalf("%d: %v, expected %v", i, got, expected)
				}
			}
		})
	}
}

func TestAKLT(t *testing.T) {
	t.Parallel()
	psi, err := AKLT(2)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	v := psi.ToVector()

	// Basis order per site is {+1, 0, -1}.
	tests := []struct {
		i        int
		expected float64
	}{
		{i: 0, expected: 0},        // |++>
		{i: 2, expected: -2.0 / 3}, // |+->
		{i: 4, expected: 1.0 / 3},  // |00>
		{i: 6, expected: 0},        // |-+>
		{i: 8, expected: 0},        // |-->
	}
	for _, test := range tests {
		got := v.At(test.i)
		if abs(got-complex(float32(test.expected), 0)) > 1e-6 {
			t.Fatalf("%d: %v, expected %f", test.i, got, test.expected)
		}
	}
}

func TestRandomMPS(t *testing.T) {
	t.Parallel()
	psi, err := RandomMPS(6, 2, 3)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	for i := range psi.Len() {
		s := psi.Tensor(i).Shape()
		if s[mpsUpAxis] != 2 {
			t.Fatalf("site %d: %#v", i, s)
		}
		if s[mpsLeftAxis] > 3 || s[mpsRightAxis] > 3 {
			t.Fatalf("site %d: %#v", i, s)
		}
	}
	s0 := psi.Tensor(0).Shape()
	sn := psi.Tensor(psi.Len() - 1).Shape()
	if s0[mpsLeftAxis] != 1 || sn[mpsRightAxis] != 1 {
		t.Fatalf("%#v %#v", s0, sn)
	}
}

func TestProductStateError(t *testing.T) {
	t.Parallel()
	if _, err := ProductState(nil); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := ProductState([][]complex64{{1, 0}, {}}); err == nil {
		t.Fatalf("expected error")
	}
}
