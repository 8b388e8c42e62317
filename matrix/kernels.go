// SPDX-License-Identifier: MIT
// Package matrix: broadcast micro-kernels (ew*).
//
// Purpose:
//   - Centralize the tight broadcast loops (subtract-per-column,
//     scale-per-column, scale-per-row) reused by centering and statistics.
//   - Keep one deterministic traversal (i→j) and one error discipline.
//
// Notes:
//   - Kernels allocate their result; inputs are never mutated.
//   - Dense fast path reads the flat buffer; fallback uses At with
//     propagation of wrapped errors.

package matrix

// ewBroadcastSubCols returns Y with Y[i,j] = X[i,j] − sub[j].
// Errors: ErrNilMatrix, ErrVectorLength, wrapped At errors.
// Complexity: O(r*c), Space O(r*c).
func ewBroadcastSubCols(X Matrix, sub []float64) (Matrix, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, err
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(sub, c); err != nil {
		return nil, err
	}

	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}

	var i, j int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ { // deterministic row order
			base := i * c
			for j = 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] - sub[j]
			}
		}

		return out, nil
	}

	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*c+j] = v - sub[j]
		}
	}

	return out, nil
}

// ewScaleCols returns Y with Y[i,j] = X[i,j] * scale[j].
// Errors: ErrNilMatrix, ErrVectorLength, wrapped At errors.
// Complexity: O(r*c), Space O(r*c).
func ewScaleCols(X Matrix, scale []float64) (Matrix, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, err
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(scale, c); err != nil {
		return nil, err
	}

	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}

	var i, j int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] * scale[j]
			}
		}

		return out, nil
	}

	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*c+j] = v * scale[j]
		}
	}

	return out, nil
}

// ewScaleRows returns Y with Y[i,j] = X[i,j] * scale[i].
// Errors: ErrNilMatrix, ErrVectorLength, wrapped At errors.
// Complexity: O(r*c), Space O(r*c).
func ewScaleRows(X Matrix, scale []float64) (Matrix, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, err
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(scale, r); err != nil {
		return nil, err
	}

	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}

	var i, j int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			s := scale[i] // hoist row factor
			for j = 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] * s
			}
		}

		return out, nil
	}

	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*c+j] = v * scale[i]
		}
	}

	return out, nil
}

// colMeans computes per-column arithmetic means in a single deterministic pass.
// Contract: r > 0 (callers validate shape first).
// Complexity: O(r*c), Space O(c).
func colMeans(X Matrix) ([]float64, error) {
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)

	var i, j int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ { // deterministic row order
			base := i * c // cache row base offset
			for j = 0; j < c; j++ {
				means[j] += d.data[base+j] // accumulate sum for column j
			}
		}
	} else {
		var v float64
		var err error
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, err
				}
				means[j] += v
			}
		}
	}

	// Convert sums to averages.
	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= invR
	}

	return means, nil
}

// centerColumns subtracts the per-column mean from every element.
// Two-pass by construction: means first, then broadcast subtraction —
// the numerically stable alternative to a sum-of-products shortcut.
//
// Returns:
//   - Matrix: centered copy (r×c).
//   - []float64: column means (len=c).
//
// Errors: ErrNilMatrix, ErrBadShape (empty), wrapped At errors.
// Complexity: O(r*c), Space O(r*c) (+ O(c) means).
func centerColumns(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, err
	}
	if X.Rows() == 0 || X.Cols() == 0 {
		return nil, nil, ErrBadShape
	}

	means, err := colMeans(X)
	if err != nil {
		return nil, nil, err
	}

	Xc, err := ewBroadcastSubCols(X, means)
	if err != nil {
		return nil, nil, err
	}

	return Xc, means, nil
}
