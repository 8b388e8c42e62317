// SPDX-License-Identifier: MIT
// Package matrix — public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication — each facade delegates to the canonical implementation.
//   - Keep function names explicit and intention-revealing to improve discoverability.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

import "math"

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
// Complexity: O(r*c) zero-init.
func NewZeros(rows, cols int) (*Dense, error) {
	// Delegate directly to the strict constructor (single allocation).
	return NewDense(rows, cols)
}

// ZerosLike returns a new zero matrix with the same shape as m.
// Handy to preallocate staging buffers for accumulation.
// Complexity: O(1) alloc + O(r*c) zeroing.
func ZerosLike(m Matrix) (*Dense, error) {
	// Read shape once and call NewDense with the same dimensions.
	return NewDense(m.Rows(), m.Cols()) // errors (if any) bubble up
}

// CloneMatrix returns a structural clone of m (same type if m is *Dense).
// Thin wrapper over Matrix.Clone for API discoverability.
// Complexity: O(r*c) copy for dense; implementation-defined otherwise.
func CloneMatrix(m Matrix) Matrix {
	// Delegate to polymorphic clone on the concrete implementation.
	return m.Clone()
}

// ---------- Aggregation helpers ----------

// RowSums returns the per-row sums of m.
// Deterministic i→j traversal; Dense fast path.
// Complexity: O(r*c), Space O(r).
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("RowSums", err)
	}
	r, c := m.Rows(), m.Cols()
	sums := make([]float64, r)

	var i, j int
	if d, ok := m.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				sums[i] += d.data[base+j]
			}
		}

		return sums, nil
	}

	var v float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf("RowSums", err)
			}
			sums[i] += v
		}
	}

	return sums, nil
}

// ColSums returns the per-column sums of m.
// Deterministic i→j traversal; Dense fast path.
// Complexity: O(r*c), Space O(c).
func ColSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ColSums", err)
	}
	r, c := m.Rows(), m.Cols()
	sums := make([]float64, c)

	var i, j int
	if d, ok := m.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				sums[j] += d.data[base+j]
			}
		}

		return sums, nil
	}

	var v float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf("ColSums", err)
			}
			sums[j] += v
		}
	}

	return sums, nil
}

// AllClose reports whether |a−b| ≤ atol + rtol*|b| element-wise.
// Shapes must match exactly; comparison order is fixed i→j.
// Errors: ErrNilMatrix, ErrDimensionMismatch, wrapped At errors.
// Complexity: O(r*c).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	r, c := a.Rows(), a.Cols()

	var i, j int
	var va, vb float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if va, err = a.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if vb, err = b.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if math.Abs(va-vb) > atol+rtol*math.Abs(vb) {
				return false, nil
			}
		}
	}

	return true, nil
}

// EqualApprox reports whether a and b agree element-wise within the
// configured absolute tolerance (DefaultEpsilon unless WithEpsilon is given).
// A thin policy-driven wrapper over AllClose for callers that prefer the
// package-wide tolerance to explicit (rtol, atol) pairs.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func EqualApprox(a, b Matrix, opts ...Option) (bool, error) {
	o := gatherOptions(opts...)

	return AllClose(a, b, 0, o.Epsilon())
}

// ---------- Statistics-facing facades (delegate to kernels) ----------

// CenterColumns subtracts the per-column mean from every element.
// Returns the centered copy and the means used (reusable to un-center).
// Two-pass method: means first, then broadcast subtraction.
// Errors: ErrNilMatrix, ErrBadShape.
// Complexity: O(r*c).
func CenterColumns(X Matrix) (Matrix, []float64, error) { return centerColumns(X) }

// ColMeans returns the per-column arithmetic means of X.
// Errors: ErrNilMatrix, ErrBadShape (zero rows/cols).
// Complexity: O(r*c), Space O(c).
func ColMeans(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("ColMeans", err)
	}
	if X.Rows() == 0 || X.Cols() == 0 {
		return nil, matrixErrorf("ColMeans", ErrBadShape)
	}

	return colMeans(X)
}

// ScaleColumns returns Y with column j multiplied by scale[j].
// Errors: ErrNilMatrix, ErrVectorLength.
// Complexity: O(r*c).
func ScaleColumns(X Matrix, scale []float64) (Matrix, error) {
	Y, err := ewScaleCols(X, scale)
	if err != nil {
		return nil, matrixErrorf("ScaleColumns", err)
	}

	return Y, nil
}

// ScaleRows returns Y with row i multiplied by scale[i].
// Errors: ErrNilMatrix, ErrVectorLength.
// Complexity: O(r*c).
func ScaleRows(X Matrix, scale []float64) (Matrix, error) {
	Y, err := ewScaleRows(X, scale)
	if err != nil {
		return nil, matrixErrorf("ScaleRows", err)
	}

	return Y, nil
}
