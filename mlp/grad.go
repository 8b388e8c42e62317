// SPDX-License-Identifier: MIT
// Package mlp: closed-form gradients of the training objective.
//
// Derivation sketch (hidden batch H, t rows, d units):
//
//	C = H − 1·ōᵀ           (centering; a linear projection of H)
//	Σ = CᵀC/(t−1)          (sample covariance)
//	ρ = D⁻¹ Σ D⁻¹          (D = diag(s), s_j = sqrt(Σ_jj))
//
// For P_cov = Σ_{j≠k} Σ_jk²:
//
//	∂P/∂Σ = 2Σ with a zeroed diagonal =: G
//	∂P/∂C = 2·C·G/(t−1)
//	∂P/∂H = ∂P/∂C − column-mean(∂P/∂C)   (adjoint of centering)
//
// For P_corr = Σ_{j≠k} ρ_jk², with G = 2ρ (zero diagonal):
//
//	∂P/∂Σ_jk = G_jk/(s_j·s_k)                       (j ≠ k)
//	∂P/∂Σ_jj = −(1/Σ_jj)·Σ_{k≠j} G_jk·ρ_jk          (through s_j)
//	then the same C-chain and centering adjoint as above.
//
// Every formula here is covered by central-difference checks in grad_test.go.

package mlp

import (
	"fmt"

	"github.com/katalvlaran/nnstat/batchstats"
	"github.com/katalvlaran/nnstat/matrix"
)

// gradients carries one minibatch worth of parameter gradients.
type gradients struct {
	dW1 *matrix.Dense // ∂Loss/∂Hidden.W
	dB1 []float64     // ∂Loss/∂Hidden.B
	dW2 *matrix.Dense // ∂Loss/∂Output.W
	dB2 []float64     // ∂Loss/∂Output.B
}

// backward computes the full objective gradient on one batch.
//
// Implementation:
//   - Stage 1: Forward pass (H, P).
//   - Stage 2: softmax-NLL gradient dZ2 = (P − onehot(y))/t.
//   - Stage 3: output-layer grads; pull dH back through W2.
//   - Stage 4: add the configured activation-penalty gradient to dH.
//   - Stage 5: hidden nonlinearity backward; input-layer grads.
//   - L1 subgradient (sign) and L2 (2w) terms are added to both dW.
//
// Errors: ErrDatasetShape, batchstats sentinels (penalty path).
// Complexity: O(t·NIn·NHidden + t·NHidden·NOut + t·NHidden²).
func (m *MLP) backward(X *matrix.Dense, y []int) (*gradients, error) {
	// Stage 1: forward.
	H, P, err := m.Forward(X)
	if err != nil {
		return nil, err
	}
	t := X.Rows()
	if len(y) != t {
		return nil, fmt.Errorf("mlp: backward: %w", ErrDatasetShape)
	}

	// Stage 2: dZ2 = (P − onehot)/t. P is a fresh matrix; mutate in place.
	dZ2 := P
	invT := 1.0 / float64(t)
	var i int
	for i = 0; i < t; i++ {
		row, _ := dZ2.RowView(i)
		if y[i] < 0 || y[i] >= len(row) {
			return nil, fmt.Errorf("mlp: backward: label %d at row %d: %w", y[i], i, ErrDatasetShape)
		}
		row[y[i]] -= 1.0
		for j := range row {
			row[j] *= invT
		}
	}

	// Stage 3: output layer.
	Ht, err := matrix.Transpose(H)
	if err != nil {
		return nil, fmt.Errorf("mlp: backward: %w", err)
	}
	dW2m, err := matrix.Mul(Ht, dZ2)
	if err != nil {
		return nil, fmt.Errorf("mlp: backward: %w", err)
	}
	dW2 := dW2m.(*matrix.Dense)
	addRegInPlace(dW2, m.Output.W, m.cfg.L1Reg, m.cfg.L2Reg)

	dB2, err := matrix.ColSums(dZ2)
	if err != nil {
		return nil, fmt.Errorf("mlp: backward: %w", err)
	}

	W2t, err := matrix.Transpose(m.Output.W)
	if err != nil {
		return nil, fmt.Errorf("mlp: backward: %w", err)
	}
	dHm, err := matrix.Mul(dZ2, W2t)
	if err != nil {
		return nil, fmt.Errorf("mlp: backward: %w", err)
	}
	dH := dHm.(*matrix.Dense)

	// Stage 4: activation penalty contribution.
	switch {
	case m.cfg.CovReg != 0:
		pg, perr := covPenaltyGradH(H)
		if perr != nil {
			return nil, fmt.Errorf("mlp: backward: %w", perr)
		}
		axpyInPlace(dH, pg, m.cfg.CovReg)
	case m.cfg.CorrReg != 0:
		pg, perr := corrPenaltyGradH(H)
		if perr != nil {
			return nil, fmt.Errorf("mlp: backward: %w", perr)
		}
		axpyInPlace(dH, pg, m.cfg.CorrReg)
	}

	// Stage 5: hidden nonlinearity backward: dZ1 = dH ⊙ s'(H).
	dZ1 := dH
	for i = 0; i < t; i++ {
		dRow, _ := dZ1.RowView(i)
		hRow, _ := H.RowView(i)
		for j := range dRow {
			dRow[j] *= m.cfg.Activation.DerivFromOutput(hRow[j])
		}
	}

	Xt, err := matrix.Transpose(X)
	if err != nil {
		return nil, fmt.Errorf("mlp: backward: %w", err)
	}
	dW1m, err := matrix.Mul(Xt, dZ1)
	if err != nil {
		return nil, fmt.Errorf("mlp: backward: %w", err)
	}
	dW1 := dW1m.(*matrix.Dense)
	addRegInPlace(dW1, m.Hidden.W, m.cfg.L1Reg, m.cfg.L2Reg)

	dB1, err := matrix.ColSums(dZ1)
	if err != nil {
		return nil, fmt.Errorf("mlp: backward: %w", err)
	}

	return &gradients{dW1: dW1, dB1: dB1, dW2: dW2, dB2: dB2}, nil
}

// covPenaltyGradH returns ∂P_cov/∂H for the covariance penalty.
// Errors: batchstats.ErrInvalidShape (t < 2).
// Complexity: O(t·d²), Space O(t·d + d²).
func covPenaltyGradH(H *matrix.Dense) (*matrix.Dense, error) {
	t := H.Rows()
	if t < 2 {
		return nil, batchstats.ErrInvalidShape
	}

	C, _, err := matrix.CenterColumns(H)
	if err != nil {
		return nil, err
	}
	Ct, err := matrix.Transpose(C)
	if err != nil {
		return nil, err
	}
	Gm, err := matrix.Mul(Ct, C)
	if err != nil {
		return nil, err
	}
	Cov, err := matrix.Scale(Gm, 1.0/float64(t-1))
	if err != nil {
		return nil, err
	}

	// G = ∂P/∂Σ = 2Σ with zero diagonal.
	G, err := offDiagDoubled(Cov)
	if err != nil {
		return nil, err
	}

	// ∂P/∂C = 2·C·G/(t−1)  (G symmetric).
	CG, err := matrix.Mul(C, G)
	if err != nil {
		return nil, err
	}
	dC, err := matrix.Scale(CG, 2.0/float64(t-1))
	if err != nil {
		return nil, err
	}

	// Adjoint of centering: subtract column means of dC.
	dH, _, err := matrix.CenterColumns(dC)
	if err != nil {
		return nil, err
	}

	return dH.(*matrix.Dense), nil
}

// corrPenaltyGradH returns ∂P_corr/∂H for the correlation penalty.
// Errors: batchstats.ErrInvalidShape, batchstats.ErrDegenerateUnit.
// Complexity: O(t·d²), Space O(t·d + d²).
func corrPenaltyGradH(H *matrix.Dense) (*matrix.Dense, error) {
	R, _, stds, err := batchstats.Correlation(H)
	if err != nil {
		return nil, err
	}
	d := len(stds)

	// G = ∂P/∂ρ = 2ρ with zero diagonal.
	G, err := offDiagDoubled(R)
	if err != nil {
		return nil, err
	}

	// M = ∂P/∂Σ: off-diagonal G_jk/(s_j·s_k); diagonal pulls the s-chain.
	M, err := matrix.NewDense(d, d)
	if err != nil {
		return nil, err
	}
	var j, k int
	var gjk, rjk, diag float64
	for j = 0; j < d; j++ {
		gRow, _ := G.(*matrix.Dense).RowView(j)
		mRow, _ := M.RowView(j)
		diag = 0.0
		for k = 0; k < d; k++ {
			if k == j {
				continue
			}
			gjk = gRow[k]
			mRow[k] = gjk / (stds[j] * stds[k])
			if rjk, err = R.At(j, k); err != nil {
				return nil, err
			}
			diag += gjk * rjk
		}
		mRow[j] = -diag / (stds[j] * stds[j]) // −(1/Σ_jj)·Σ_{k≠j} G_jk·ρ_jk
	}

	C, _, err := matrix.CenterColumns(H)
	if err != nil {
		return nil, err
	}

	// ∂P/∂C = 2·C·M/(t−1)  (M symmetric).
	CM, err := matrix.Mul(C, M)
	if err != nil {
		return nil, err
	}
	dC, err := matrix.Scale(CM, 2.0/float64(H.Rows()-1))
	if err != nil {
		return nil, err
	}

	dH, _, err := matrix.CenterColumns(dC)
	if err != nil {
		return nil, err
	}

	return dH.(*matrix.Dense), nil
}

// offDiagDoubled returns 2·M with a zeroed diagonal (∂/∂M of the
// off-diagonal squared sum).
// Complexity: O(d²).
func offDiagDoubled(M matrix.Matrix) (matrix.Matrix, error) {
	G, err := matrix.Scale(M, 2.0)
	if err != nil {
		return nil, err
	}
	d := G.Rows()
	for j := 0; j < d; j++ {
		if err = G.Set(j, j, 0); err != nil {
			return nil, err
		}
	}

	return G, nil
}

// addRegInPlace adds the weight-regularizer gradient l1·sign(W) + 2·l2·W
// to dW, entry by entry (sign(0) = 0: the standard L1 subgradient choice).
// Complexity: O(r*c).
func addRegInPlace(dW, W *matrix.Dense, l1, l2 float64) {
	if l1 == 0 && l2 == 0 {
		return
	}
	r := W.Rows()
	for i := 0; i < r; i++ {
		dRow, _ := dW.RowView(i)
		wRow, _ := W.RowView(i)
		for j, w := range wRow {
			if l1 != 0 {
				switch {
				case w > 0:
					dRow[j] += l1
				case w < 0:
					dRow[j] -= l1
				}
			}
			if l2 != 0 {
				dRow[j] += 2.0 * l2 * w
			}
		}
	}
}

// axpyInPlace adds alpha·src to dst element-wise (shapes already agree by
// construction on every call site).
// Complexity: O(r*c).
func axpyInPlace(dst, src *matrix.Dense, alpha float64) {
	r := dst.Rows()
	for i := 0; i < r; i++ {
		dRow, _ := dst.RowView(i)
		sRow, _ := src.RowView(i)
		for j := range dRow {
			dRow[j] += alpha * sRow[j]
		}
	}
}
