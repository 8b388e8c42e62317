// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/nnstat/matrix"
)

// ------------------------------
// Add / Sub
// ------------------------------

func TestAddSub_SmallExact(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	b := NewFilledDense(t, 2, 2, []float64{10, 20, 30, 40})

	sum, err := matrix.Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	CompareExact(t, [][]float64{{11, 22}, {33, 44}}, sum)

	diff, err := matrix.Sub(b, a)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	CompareExact(t, [][]float64{{9, 18}, {27, 36}}, diff)

	// Inputs are never mutated.
	CompareExact(t, [][]float64{{1, 2}, {3, 4}}, a)
}

func TestAddSub_ShapeAndNilErrors(t *testing.T) {
	t.Parallel()

	a := MustDense(t, 2, 2)
	b := MustDense(t, 2, 3)

	_, err := matrix.Add(a, b)
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Sub(nil, a)
	AssertErrorIs(t, err, matrix.ErrNilMatrix)

	var typedNil *matrix.Dense
	_, err = matrix.Add(a, typedNil)
	AssertErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestAdd_FastAndFallbackAgree(t *testing.T) {
	t.Parallel()

	a := RandFilledDense(t, 5, 7, 1)
	b := RandFilledDense(t, 5, 7, 2)

	fast, err := matrix.Add(a, b)
	if err != nil {
		t.Fatalf("fast: %v", err)
	}
	slow, err := matrix.Add(hide{a}, hide{b})
	if err != nil {
		t.Fatalf("slow: %v", err)
	}
	CompareClose(t, fast, slow, 0, 0)
}

// ------------------------------
// Mul
// ------------------------------

func TestMul_SmallExact(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := NewFilledDense(t, 3, 2, []float64{7, 8, 9, 10, 11, 12})

	p, err := matrix.Mul(a, b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	CompareExact(t, [][]float64{{58, 64}, {139, 154}}, p)
}

func TestMul_IdentityNeutral(t *testing.T) {
	t.Parallel()

	a := RandFilledDense(t, 4, 4, 3)
	eye := MustDense(t, 4, 4)
	for i := 0; i < 4; i++ {
		MustSet(t, eye, i, i, 1)
	}

	left, err := matrix.Mul(eye, a)
	if err != nil {
		t.Fatalf("Mul(I,a): %v", err)
	}
	right, err := matrix.Mul(a, eye)
	if err != nil {
		t.Fatalf("Mul(a,I): %v", err)
	}
	CompareClose(t, left, a, 0, 0)
	CompareClose(t, right, a, 0, 0)
}

func TestMul_InnerDimMismatch(t *testing.T) {
	t.Parallel()

	a := MustDense(t, 2, 3)
	b := MustDense(t, 2, 3) // 3 != 2

	_, err := matrix.Mul(a, b)
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMul_FastAndFallbackAgree(t *testing.T) {
	t.Parallel()

	a := RandFilledDense(t, 6, 4, 4)
	b := RandFilledDense(t, 4, 5, 5)

	fast, err := matrix.Mul(a, b)
	if err != nil {
		t.Fatalf("fast: %v", err)
	}
	slow, err := matrix.Mul(hide{a}, hide{b})
	if err != nil {
		t.Fatalf("slow: %v", err)
	}
	// Same accumulation order on both paths: results are bitwise equal.
	CompareClose(t, fast, slow, 0, 0)
}

// ------------------------------
// Transpose / Scale / Hadamard
// ------------------------------

func TestTranspose_SmallAndInvolution(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})

	at, err := matrix.Transpose(a)
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	CompareExact(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, at)

	back, err := matrix.Transpose(at)
	if err != nil {
		t.Fatalf("Transpose²: %v", err)
	}
	CompareClose(t, back, a, 0, 0)

	slow, err := matrix.Transpose(hide{a})
	if err != nil {
		t.Fatalf("slow: %v", err)
	}
	CompareClose(t, at, slow, 0, 0)
}

func TestScale_SmallExact(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{1, -2, 3, -4})

	s, err := matrix.Scale(a, -0.5)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	CompareExact(t, [][]float64{{-0.5, 1}, {-1.5, 2}}, s)

	_, err = matrix.Scale(nil, 2)
	AssertErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestHadamard_SmallExact(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	b := NewFilledDense(t, 2, 2, []float64{5, 6, 7, 8})

	h, err := matrix.Hadamard(a, b)
	if err != nil {
		t.Fatalf("Hadamard: %v", err)
	}
	CompareExact(t, [][]float64{{5, 12}, {21, 32}}, h)

	c := MustDense(t, 2, 3)
	_, err = matrix.Hadamard(a, c)
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// ------------------------------
// MatVec
// ------------------------------

func TestMatVec_SmallExact(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})

	y, err := matrix.MatVec(a, []float64{1, 0, -1})
	if err != nil {
		t.Fatalf("MatVec: %v", err)
	}
	sliceClose(t, y, []float64{-2, -2}, 0, 0)

	_, err = matrix.MatVec(a, []float64{1, 2})
	AssertErrorIs(t, err, matrix.ErrVectorLength)

	slow, err := matrix.MatVec(hide{a}, []float64{1, 0, -1})
	if err != nil {
		t.Fatalf("slow: %v", err)
	}
	sliceClose(t, slow, y, 0, 0)
}
