// SPDX-License-Identifier: MIT
// Package matrix: canonical linear-algebra kernels.
//
// Purpose:
//   - Provide the deterministic dense kernels every other package in this
//     module composes: Add/Sub/Mul/Transpose/Scale/Hadamard/MatVec.
//   - Keep a single validation + error-wrapping discipline (matrixErrorf).
//
// Determinism & Performance:
//   - Fixed i→k→j (Mul) and i→j (element-wise) traversal for all loops.
//   - Dense fast-paths avoid At/Set and operate on row-major flat buffers.
//   - Inputs are never mutated; every kernel allocates its result.

package matrix

import "fmt"

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opHadamard  = "Hadamard"
	opMatVec    = "MatVec"
)

// matrixErrorf wraps err with the operation tag for stable, greppable context.
// Sentinels stay matchable via errors.Is after wrapping.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("matrix: %s: %w", tag, err)
}

// addSub implements a + sign*b for sign ∈ {+1, -1}.
// Stage 1 (Validate): same shape via central validator.
// Stage 2 (Execute): Dense fast path over flat buffers; At/Set fallback.
// Complexity: O(r*c), Space O(r*c).
func addSub(a, b Matrix, sign float64, opTag string) (Matrix, error) {
	// Stage 1 (Validate): both operands present and same shape.
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	r, c := a.Rows(), a.Cols()

	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Stage 2 (Execute): flat fast path when both operands are *Dense.
	da, aOK := a.(*Dense)
	db, bOK := b.(*Dense)
	if aOK && bOK {
		for i := range out.data { // single flat loop, deterministic
			out.data[i] = da.data[i] + sign*db.data[i]
		}

		return out, nil
	}

	// Stage 2 (Fallback): interface access with full error propagation.
	var i, j int
	var va, vb float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if va, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			if vb, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			out.data[i*c+j] = va + sign*vb
		}
	}

	return out, nil
}

// Add returns the element-wise sum a + b.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Add(a, b Matrix) (Matrix, error) { return addSub(a, b, +1, opAdd) }

// Sub returns the element-wise difference a − b.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Sub(a, b Matrix) (Matrix, error) { return addSub(a, b, -1, opSub) }

// Mul returns the matrix product a × b.
// Stage 1 (Validate): a.Cols == b.Rows via central validator.
// Stage 2 (Execute): i→k→j accumulation (cache-friendly over b's rows) on
// the Dense fast path; At fallback otherwise.
//
// Determinism:
//   - Fixed i→k→j order; bitwise-reproducible accumulation.
//
// Complexity: O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	// Stage 1 (Validate): inner dimensions must agree.
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	r, n, c := a.Rows(), a.Cols(), b.Cols()

	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, k, j int
	// Stage 2 (Execute): flat fast path when both operands are *Dense.
	da, aOK := a.(*Dense)
	db, bOK := b.(*Dense)
	if aOK && bOK {
		for i = 0; i < r; i++ {
			outBase := i * c
			aBase := i * n
			for k = 0; k < n; k++ {
				av := da.data[aBase+k]
				if av == 0 {
					continue // skip zero contributions, result unchanged
				}
				bBase := k * c
				for j = 0; j < c; j++ {
					out.data[outBase+j] += av * db.data[bBase+j]
				}
			}
		}

		return out, nil
	}

	// Stage 2 (Fallback): interface access with full error propagation.
	var av, bv float64
	for i = 0; i < r; i++ {
		for k = 0; k < n; k++ {
			if av, err = a.At(i, k); err != nil {
				return nil, matrixErrorf(opMul, err)
			}
			if av == 0 {
				continue
			}
			for j = 0; j < c; j++ {
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				out.data[i*c+j] += av * bv
			}
		}
	}

	return out, nil
}

// Transpose returns mᵀ.
// Errors: ErrNilMatrix.
// Complexity: O(r*c), Space O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	r, c := m.Rows(), m.Cols()

	out, err := NewDense(c, r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if d, ok := m.(*Dense); ok {
		for i = 0; i < r; i++ { // deterministic row order
			base := i * c
			for j = 0; j < c; j++ {
				out.data[j*r+i] = d.data[base+j]
			}
		}

		return out, nil
	}

	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			out.data[j*r+i] = v
		}
	}

	return out, nil
}

// Scale returns alpha * m.
// Errors: ErrNilMatrix.
// Complexity: O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	r, c := m.Rows(), m.Cols()

	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	if d, ok := m.(*Dense); ok {
		for i := range out.data { // single flat loop
			out.data[i] = alpha * d.data[i]
		}

		return out, nil
	}

	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opScale, err)
			}
			out.data[i*c+j] = alpha * v
		}
	}

	return out, nil
}

// Hadamard returns the element-wise product a ⊙ b.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Hadamard(a, b Matrix) (Matrix, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	r, c := a.Rows(), a.Cols()

	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}

	da, aOK := a.(*Dense)
	db, bOK := b.(*Dense)
	if aOK && bOK {
		for i := range out.data {
			out.data[i] = da.data[i] * db.data[i]
		}

		return out, nil
	}

	var i, j int
	var va, vb float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if va, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opHadamard, err)
			}
			if vb, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opHadamard, err)
			}
			out.data[i*c+j] = va * vb
		}
	}

	return out, nil
}

// MatVec returns y = m·x as a fresh slice.
// Stage 1 (Validate): len(x) == m.Cols via central validator.
// Stage 2 (Execute): row-major dot products, deterministic i→j order.
// Errors: ErrNilMatrix, ErrVectorLength.
// Complexity: O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	r, c := m.Rows(), m.Cols()
	if err := ValidateVecLen(x, c); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, r)
	var i, j int
	var s float64

	if d, ok := m.(*Dense); ok {
		for i = 0; i < r; i++ {
			s = 0.0
			base := i * c
			for j = 0; j < c; j++ {
				s += d.data[base+j] * x[j]
			}
			y[i] = s
		}

		return y, nil
	}

	var v float64
	var err error
	for i = 0; i < r; i++ {
		s = 0.0
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			s += v * x[j]
		}
		y[i] = s
	}

	return y, nil
}
