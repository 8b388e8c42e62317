// SPDX-License-Identifier: MIT
// Package matrix: centralized input validators.
//
// Purpose:
//   - Keep every precondition check in exactly one place so kernels never
//     duplicate (and never drift on) validation logic.
//   - Validators return bare sentinels; kernels add the op tag via
//     matrixErrorf at the call site.
//
// Determinism:
//   - All validators are pure and side-effect free.

package matrix

import "fmt"

// validatorErrorf wraps a sentinel with validator context.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("matrix: %s: %w", tag, err)
}

// ValidateNotNil ensures m is a usable, non-nil Matrix.
// Errors: ErrNilMatrix.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return ErrNilMatrix
	}
	// Guard against a typed-nil *Dense smuggled behind the interface.
	if d, ok := m.(*Dense); ok && d == nil {
		return ErrNilMatrix
	}

	return nil
}

// ValidateSameShape ensures a and b share dimensions exactly.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return ErrDimensionMismatch
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols == b.Rows for a matrix product.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Cols() != b.Rows() {
		return ErrDimensionMismatch
	}

	return nil
}

// ValidateVecLen ensures len(x) == n for a broadcast/product argument.
// Errors: ErrVectorLength.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return ErrVectorLength
	}

	return nil
}

// ValidateFinite scans m and rejects the first NaN/±Inf entry found.
// Deterministic i→j scan; Dense fast path on the flat buffer.
// Errors: ErrNilMatrix, ErrNaNInf (wrapped with the offending position).
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	r, c := m.Rows(), m.Cols()

	var i, j int
	if d, ok := m.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				if isNonFinite(d.data[base+j]) {
					return validatorErrorf(fmt.Sprintf("ValidateFinite(%d,%d)", i, j), ErrNaNInf)
				}
			}
		}

		return nil
	}

	var v float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return err
			}
			if isNonFinite(v) {
				return validatorErrorf(fmt.Sprintf("ValidateFinite(%d,%d)", i, j), ErrNaNInf)
			}
		}
	}

	return nil
}
