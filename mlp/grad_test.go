// SPDX-License-Identifier: MIT
// White-box gradient verification: every closed-form formula in grad.go is
// compared against a central finite difference of the scalar it claims to
// differentiate.

package mlp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nnstat/batchstats"
	"github.com/katalvlaran/nnstat/matrix"
)

const (
	fdStep = 1e-6
	fdTol  = 1e-6
)

// randDense returns an r×c Dense of seeded U(-1,1) noise.
func randDense(t *testing.T, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDense(r, c)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.NoError(t, d.Set(i, j, rng.Float64()*2-1))
		}
	}

	return d
}

// fdMatrix computes the central finite difference of f with respect to every
// entry of X, in place: X is restored after each probe.
func fdMatrix(t *testing.T, X *matrix.Dense, f func() float64) *matrix.Dense {
	t.Helper()
	r, c := X.Rows(), X.Cols()
	out, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	for i := 0; i < r; i++ {
		row, rerr := X.RowView(i)
		require.NoError(t, rerr)
		outRow, oerr := out.RowView(i)
		require.NoError(t, oerr)
		for j := 0; j < c; j++ {
			v := row[j]
			row[j] = v + fdStep
			plus := f()
			row[j] = v - fdStep
			minus := f()
			row[j] = v
			outRow[j] = (plus - minus) / (2 * fdStep)
		}
	}

	return out
}

// requireCloseMat asserts element-wise agreement within tol.
func requireCloseMat(t *testing.T, want, got *matrix.Dense, tol float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows())
	require.Equal(t, want.Cols(), got.Cols())
	for i := 0; i < want.Rows(); i++ {
		wr, err := want.RowView(i)
		require.NoError(t, err)
		gr, err := got.RowView(i)
		require.NoError(t, err)
		for j := range wr {
			require.InDelta(t, wr[j], gr[j], tol, "(%d,%d)", i, j)
		}
	}
}

// ------------------------------
// Penalty gradients (direct)
// ------------------------------

func TestCovPenaltyGradH_MatchesFiniteDifference(t *testing.T) {
	H := randDense(t, 8, 5, 101)

	grad, err := covPenaltyGradH(H)
	require.NoError(t, err)

	fd := fdMatrix(t, H, func() float64 {
		p, perr := batchstats.CovPenalty(H)
		require.NoError(t, perr)

		return p
	})
	requireCloseMat(t, fd, grad, fdTol)
}

func TestCorrPenaltyGradH_MatchesFiniteDifference(t *testing.T) {
	H := randDense(t, 8, 5, 102)

	grad, err := corrPenaltyGradH(H)
	require.NoError(t, err)

	fd := fdMatrix(t, H, func() float64 {
		p, perr := batchstats.CorrPenalty(H)
		require.NoError(t, perr)

		return p
	})
	requireCloseMat(t, fd, grad, fdTol)
}

func TestCovPenaltyGradH_TooFewRows(t *testing.T) {
	H := randDense(t, 1, 3, 103)

	_, err := covPenaltyGradH(H)
	require.ErrorIs(t, err, batchstats.ErrInvalidShape)
}

// ------------------------------
// Full objective gradient (backward vs Loss)
// ------------------------------

// checkBackwardAgainstLoss verifies backward's four gradient blocks against
// finite differences of Loss on the same batch.
func checkBackwardAgainstLoss(t *testing.T, cfg Config, seed int64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m, err := New(cfg, rng)
	require.NoError(t, err)

	// Nudge the output layer off its zero init so its gradient paths carry
	// nonzero signal (and |w| stays clear of the L1 kink at 0).
	for i := 0; i < cfg.NHidden; i++ {
		row, rerr := m.Output.W.RowView(i)
		require.NoError(t, rerr)
		for j := range row {
			row[j] = 0.3 * float64(1+i+j)
			if (i+j)%2 == 1 {
				row[j] = -row[j]
			}
		}
	}

	X := randDense(t, 6, cfg.NIn, seed+1000)
	y := make([]int, 6)
	for i := range y {
		y[i] = i % cfg.NOut
	}

	loss := func() float64 {
		l, lerr := m.Loss(X, y)
		require.NoError(t, lerr)

		return l
	}

	grads, err := m.backward(X, y)
	require.NoError(t, err)

	requireCloseMat(t, fdMatrix(t, m.Hidden.W, loss), grads.dW1, fdTol)
	requireCloseMat(t, fdMatrix(t, m.Output.W, loss), grads.dW2, fdTol)

	// Bias gradients via scalar probes.
	for j := range m.Hidden.B {
		v := m.Hidden.B[j]
		m.Hidden.B[j] = v + fdStep
		plus := loss()
		m.Hidden.B[j] = v - fdStep
		minus := loss()
		m.Hidden.B[j] = v
		require.InDelta(t, (plus-minus)/(2*fdStep), grads.dB1[j], fdTol, "dB1[%d]", j)
	}
	for j := range m.Output.B {
		v := m.Output.B[j]
		m.Output.B[j] = v + fdStep
		plus := loss()
		m.Output.B[j] = v - fdStep
		minus := loss()
		m.Output.B[j] = v
		require.InDelta(t, (plus-minus)/(2*fdStep), grads.dB2[j], fdTol, "dB2[%d]", j)
	}
}

func TestBackward_PlainObjective(t *testing.T) {
	cfg := Config{NIn: 3, NHidden: 4, NOut: 2, Activation: Tanh}
	checkBackwardAgainstLoss(t, cfg, 1)
}

func TestBackward_WithWeightRegularizers(t *testing.T) {
	cfg := Config{NIn: 3, NHidden: 4, NOut: 2, Activation: Tanh, L1Reg: 0.01, L2Reg: 0.005}
	checkBackwardAgainstLoss(t, cfg, 2)
}

func TestBackward_WithCovPenalty(t *testing.T) {
	cfg := Config{NIn: 3, NHidden: 5, NOut: 2, Activation: Tanh, L2Reg: 0.001, CovReg: 0.5}
	checkBackwardAgainstLoss(t, cfg, 3)
}

func TestBackward_WithCorrPenalty(t *testing.T) {
	cfg := Config{NIn: 3, NHidden: 5, NOut: 2, Activation: Tanh, L2Reg: 0.001, CorrReg: 0.5}
	checkBackwardAgainstLoss(t, cfg, 4)
}

func TestBackward_SigmoidHidden(t *testing.T) {
	cfg := Config{NIn: 3, NHidden: 4, NOut: 3, Activation: Sigmoid, CovReg: 0.25}
	checkBackwardAgainstLoss(t, cfg, 5)
}
