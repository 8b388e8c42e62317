// Package batchstats computes second-order statistics of activation batches:
// column means, sample covariance, Pearson correlation and the off-diagonal
// squared penalties used to decorrelate hidden units during training.
//
// 🚀 What is batchstats?
//
//	Given a batch A (t observations × d units), batchstats derives:
//	  • ō[j]    — per-unit mean activation
//	  • Σ[j][k] — unbiased sample covariance, Σ = CᵀC/(t−1), C = A − ō
//	  • s[j]    — per-unit standard deviation, s[j] = sqrt(Σ[j][j])
//	  • ρ[j][k] — Pearson correlation, ρ[j][k] = Σ[j][k]/(s[j]·s[k])
//	  • off-diagonal squared sums of Σ or ρ (decorrelation penalties)
//
// ✨ Key guarantees:
//   - two-pass (mean-then-center) evaluation — no catastrophic cancellation
//     from a naive sum-of-products shortcut
//   - Σ and ρ are symmetric; diag(ρ) = 1 for every unit with s[j] > 0
//   - pure functions: inputs are never mutated, nothing persists across calls
//   - shift invariance: adding a constant to a unit changes neither Σ nor ρ
//   - scale behavior: scaling unit j by c>0 scales Σ[j][k] (k≠j) by c and
//     Σ[j][j] by c²; ρ is unchanged
//
// ⚙️ Degenerate units (s[j] == 0):
//
//	Correlation is undefined for a constant unit. The default policy rejects
//	the batch with ErrDegenerateUnit; WithDegenerateZero() switches to the
//	documented alternative of zeroing the unit's row and column in ρ (its
//	diagonal entry becomes 0 rather than 1).
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/nnstat/batchstats"
//
//	A, _ := matrix.NewDenseFromRows([][]float64{{1, 2}, {2, 4}, {3, 6}})
//	res, err := batchstats.CovCorr(A, true)
//	// res.Cov  = [[1,2],[2,4]]
//	// res.Corr = [[1,1],[1,1]]
//
// Performance:
//
//   - Time:   O(t·d + t·d²)
//   - Memory: O(t·d) centered copy + O(d²) outputs
//
// See example_test.go for complete walkthroughs.
package batchstats
