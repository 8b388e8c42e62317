// SPDX-License-Identifier: MIT
// Package batchstats: the batch covariance/correlation computer.
//
// Purpose:
//   - Derive means, sample covariance, Pearson correlation and decorrelation
//     penalties from a batch of activation row-vectors, as deterministic
//     compositions over the canonical matrix kernels.
//
// Determinism & Performance:
//   - Fixed traversal orders inherited from matrix kernels.
//   - Two-pass centering everywhere; no sum-of-products shortcut.
//   - Pure functions of their input; the batch is never mutated.

package batchstats

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nnstat/matrix"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMoments     = "Moments"
	opCovariance  = "Covariance"
	opCorrelation = "Correlation"
	opCovCorr     = "CovCorr"
	opOffDiag     = "OffDiagSquaredSum"
	opCovPenalty  = "CovPenalty"
	opCorrPenalty = "CorrPenalty"
)

// statErrorf wraps err with the operation tag for stable, greppable context.
// Sentinels stay matchable via errors.Is after wrapping.
func statErrorf(tag string, err error) error {
	return fmt.Errorf("batchstats: %s: %w", tag, err)
}

// validateBatch enforces the component contract: A non-nil, t ≥ minRows, d ≥ 1.
// Complexity: O(1).
func validateBatch(A matrix.Matrix, minRows int) error {
	if err := matrix.ValidateNotNil(A); err != nil {
		return err
	}
	if A.Rows() < minRows || A.Cols() < 1 {
		return ErrInvalidShape
	}

	return nil
}

// Moments computes the per-unit mean activations ō[j] = (1/t) Σ_i A[i][j].
//
// Inputs:
//   - A: batch (t×d), t ≥ 1, d ≥ 1.
//
// Returns:
//   - []float64: column means (len d).
//
// Errors: ErrInvalidShape (empty batch), wrapped matrix errors.
// Complexity: O(t*d), Space O(d).
func Moments(A matrix.Matrix) ([]float64, error) {
	if err := validateBatch(A, 1); err != nil {
		return nil, statErrorf(opMoments, err)
	}

	means, err := matrix.ColMeans(A)
	if err != nil {
		return nil, statErrorf(opMoments, err)
	}

	return means, nil
}

// Covariance computes the unbiased sample covariance of units (columns):
//
//	Σ = (Cᵀ C)/(t−1),  C = A − broadcast(ō)
//
// Implementation:
//   - Stage 1: Validate A (non-nil, t ≥ 2, d ≥ 1).
//   - Stage 2: Center columns once (two-pass; reusable means).
//   - Stage 3: Compose Σ from canonical kernels Transpose/Mul/Scale.
//
// Behavior highlights:
//   - Symmetric output; diagonal equals per-unit sample variances.
//   - Result is positive semi-definite on well-formed data (modulo numeric noise).
//
// Inputs:
//   - A: batch (t×d), t ≥ 2, d ≥ 1.
//
// Returns:
//   - matrix.Matrix: Σ (d×d).
//   - []float64: column means used for centering (len d).
//
// Errors: ErrInvalidShape, wrapped matrix errors.
// Complexity: O(t*d + t*d²), Space O(t*d + d²).
func Covariance(A matrix.Matrix) (matrix.Matrix, []float64, error) {
	// Stage 1 (Validate): sample covariance needs at least two observations.
	if err := validateBatch(A, 2); err != nil {
		return nil, nil, statErrorf(opCovariance, err)
	}

	// Stage 2 (Center): two-pass mean-then-center.
	C, means, err := matrix.CenterColumns(A)
	if err != nil {
		return nil, nil, statErrorf(opCovariance, err)
	}

	// Stage 3 (Compute): Σ = (Cᵀ C)/(t−1) via canonical kernels.
	Ct, err := matrix.Transpose(C)
	if err != nil {
		return nil, nil, statErrorf(opCovariance, err)
	}
	G, err := matrix.Mul(Ct, C)
	if err != nil {
		return nil, nil, statErrorf(opCovariance, err)
	}
	Cov, err := matrix.Scale(G, 1.0/float64(A.Rows()-1))
	if err != nil {
		return nil, nil, statErrorf(opCovariance, err)
	}

	return Cov, means, nil
}

// stdsFromCov extracts s[j] = sqrt(Σ[j][j]) from a covariance matrix.
// Contract: Cov is square (guaranteed by Covariance).
// Complexity: O(d).
func stdsFromCov(Cov matrix.Matrix) ([]float64, error) {
	d := Cov.Cols()
	stds := make([]float64, d)
	for j := 0; j < d; j++ {
		v, err := Cov.At(j, j)
		if err != nil {
			return nil, err
		}
		if v < 0 {
			v = 0 // clamp numeric noise on the diagonal
		}
		stds[j] = math.Sqrt(v)
	}

	return stds, nil
}

// Correlation computes the Pearson correlation of units (columns):
//
//	ρ[j][k] = Σ[j][k] / (s[j]·s[k]),  s[j] = sqrt(Σ[j][j])
//
// Implementation:
//   - Stage 1: Covariance (validates shape, centers two-pass).
//   - Stage 2: Extract stds from diag(Σ); resolve the degenerate policy.
//   - Stage 3: ρ = diag(1/s) · Σ · diag(1/s) via ScaleColumns/ScaleRows.
//
// Behavior highlights:
//   - Symmetric; diagonal is 1 for units with s[j] > 0.
//   - Degenerate units (s[j] == 0): ErrDegenerateUnit by default, or an
//     all-zero row/column under WithDegenerateZero (diagonal 0).
//   - Scale-invariant: Correlation(α·A) == Correlation(A) for α > 0.
//
// Inputs:
//   - A: batch (t×d), t ≥ 2, d ≥ 1.
//   - opts: WithDegenerateZero to zero-fill instead of failing.
//
// Returns:
//   - matrix.Matrix: ρ (d×d).
//   - []float64: column means (len d).
//   - []float64: column standard deviations (len d).
//
// Errors: ErrInvalidShape, ErrDegenerateUnit, wrapped matrix errors.
// Complexity: O(t*d + t*d²), Space O(d²).
func Correlation(A matrix.Matrix, opts ...Option) (matrix.Matrix, []float64, []float64, error) {
	o := gatherOptions(opts...)

	// Stage 1 (Covariance): shape validation and centering live there.
	Cov, means, err := Covariance(A)
	if err != nil {
		return nil, nil, nil, statErrorf(opCorrelation, err)
	}

	// Stage 2 (Stds + policy): detect zero-variance units.
	stds, err := stdsFromCov(Cov)
	if err != nil {
		return nil, nil, nil, statErrorf(opCorrelation, err)
	}
	d := len(stds)
	invStd := make([]float64, d)
	for j := 0; j < d; j++ {
		if stds[j] > 0 {
			invStd[j] = 1.0 / stds[j]
			continue
		}
		if !o.degenerateZero {
			return nil, nil, nil, statErrorf(opCorrelation, fmt.Errorf("unit %d: %w", j, ErrDegenerateUnit))
		}
		invStd[j] = 0.0 // zero-fill policy: row/column j of ρ becomes 0
	}

	// Stage 3 (Normalize): ρ = diag(invStd) · Σ · diag(invStd).
	scaledCols, err := matrix.ScaleColumns(Cov, invStd)
	if err != nil {
		return nil, nil, nil, statErrorf(opCorrelation, err)
	}
	Corr, err := matrix.ScaleRows(scaledCols, invStd)
	if err != nil {
		return nil, nil, nil, statErrorf(opCorrelation, err)
	}

	return Corr, means, stds, nil
}

// CovCorr is the single-call interface of the component: it always returns
// the covariance Σ and, when wantCorrelation is true, the correlation ρ.
//
// Inputs:
//   - A: batch (t×d), t ≥ 2, d ≥ 1.
//   - wantCorrelation: request ρ in addition to Σ.
//   - opts: degenerate-unit policy (only consulted when ρ is requested).
//
// Returns:
//   - *Result: Cov + Means always; Corr + Stds only when requested.
//
// Errors: ErrInvalidShape, ErrDegenerateUnit.
// Complexity: O(t*d + t*d²).
func CovCorr(A matrix.Matrix, wantCorrelation bool, opts ...Option) (*Result, error) {
	if !wantCorrelation {
		Cov, means, err := Covariance(A)
		if err != nil {
			return nil, statErrorf(opCovCorr, err)
		}

		return &Result{Cov: Cov, Means: means}, nil
	}

	// Correlation recomputes Σ internally; derive both from one pass here.
	Cov, means, err := Covariance(A)
	if err != nil {
		return nil, statErrorf(opCovCorr, err)
	}
	stds, err := stdsFromCov(Cov)
	if err != nil {
		return nil, statErrorf(opCovCorr, err)
	}
	o := gatherOptions(opts...)
	d := len(stds)
	invStd := make([]float64, d)
	for j := 0; j < d; j++ {
		if stds[j] > 0 {
			invStd[j] = 1.0 / stds[j]
			continue
		}
		if !o.degenerateZero {
			return nil, statErrorf(opCovCorr, fmt.Errorf("unit %d: %w", j, ErrDegenerateUnit))
		}
		invStd[j] = 0.0
	}
	scaledCols, err := matrix.ScaleColumns(Cov, invStd)
	if err != nil {
		return nil, statErrorf(opCovCorr, err)
	}
	Corr, err := matrix.ScaleRows(scaledCols, invStd)
	if err != nil {
		return nil, statErrorf(opCovCorr, err)
	}

	return &Result{Cov: Cov, Corr: Corr, Means: means, Stds: stds}, nil
}

// OffDiagSquaredSum returns Σ_{j≠k} M[j][k]² for a square matrix M,
// evaluated as (Σ M²) − (Σ diag(M)²) in one deterministic pass.
//
// Errors: ErrInvalidShape (non-square), wrapped matrix errors.
// Complexity: O(d²).
func OffDiagSquaredSum(M matrix.Matrix) (float64, error) {
	if err := matrix.ValidateNotNil(M); err != nil {
		return 0, statErrorf(opOffDiag, err)
	}
	d := M.Rows()
	if d != M.Cols() || d < 1 {
		return 0, statErrorf(opOffDiag, ErrInvalidShape)
	}

	var total, diag, v float64
	var err error
	var j, k int
	for j = 0; j < d; j++ { // deterministic j→k order
		for k = 0; k < d; k++ {
			if v, err = M.At(j, k); err != nil {
				return 0, statErrorf(opOffDiag, err)
			}
			total += v * v
			if j == k {
				diag += v * v
			}
		}
	}

	return total - diag, nil
}

// CovPenalty returns the off-diagonal squared sum of the batch covariance:
// the decorrelation penalty that preserves activation magnitudes.
// Errors: ErrInvalidShape.
// Complexity: O(t*d + t*d²).
func CovPenalty(A matrix.Matrix) (float64, error) {
	Cov, _, err := Covariance(A)
	if err != nil {
		return 0, statErrorf(opCovPenalty, err)
	}
	p, err := OffDiagSquaredSum(Cov)
	if err != nil {
		return 0, statErrorf(opCovPenalty, err)
	}

	return p, nil
}

// CorrPenalty returns the off-diagonal squared sum of the batch correlation:
// the scale-free decorrelation penalty.
// Errors: ErrInvalidShape, ErrDegenerateUnit (policy-dependent).
// Complexity: O(t*d + t*d²).
func CorrPenalty(A matrix.Matrix, opts ...Option) (float64, error) {
	Corr, _, _, err := Correlation(A, opts...)
	if err != nil {
		return 0, statErrorf(opCorrPenalty, err)
	}
	p, err := OffDiagSquaredSum(Corr)
	if err != nil {
		return 0, statErrorf(opCorrPenalty, err)
	}

	return p, nil
}
