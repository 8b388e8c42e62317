// SPDX-License-Identifier: MIT
// Package mlp: model composition and training objective.
//
// Loss = NLL + L1Reg·L1 + L2Reg·L2² + CovReg·CovPenalty(H) | CorrReg·CorrPenalty(H)
//
// The activation penalties are computed on the hidden batch H of the
// minibatch at hand, exactly as the statistics in batchstats define them.

package mlp

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/nnstat/batchstats"
	"github.com/katalvlaran/nnstat/matrix"
)

// MLP is a one-hidden-layer perceptron with a softmax output.
type MLP struct {
	Hidden *HiddenLayer
	Output *LogisticRegression

	cfg Config
}

// validateConfig enforces the Config contract.
// Errors: ErrBadConfig, ErrPenaltyConflict.
func validateConfig(cfg Config) error {
	if cfg.NIn <= 0 || cfg.NHidden <= 0 || cfg.NOut <= 0 || !cfg.Activation.valid() {
		return ErrBadConfig
	}
	if cfg.L1Reg < 0 || cfg.L2Reg < 0 || cfg.CovReg < 0 || cfg.CorrReg < 0 {
		return ErrBadConfig
	}
	if cfg.CovReg != 0 && cfg.CorrReg != 0 {
		return ErrPenaltyConflict
	}

	return nil
}

// New builds an MLP from cfg, drawing the hidden init from rng.
//
// Behavior highlights:
//   - Hidden weights: U(−r, r), r = sqrt(6/(fanIn+fanOut)) (×4 sigmoid).
//   - Output weights and all biases: zero.
//
// Errors: ErrBadConfig, ErrPenaltyConflict.
// Complexity: O(NIn*NHidden + NHidden*NOut).
func New(cfg Config, rng *rand.Rand) (*MLP, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("mlp: New: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("mlp: New: %w", ErrBadConfig)
	}

	hidden, err := NewHiddenLayer(rng, cfg.NIn, cfg.NHidden, cfg.Activation)
	if err != nil {
		return nil, err
	}
	output, err := NewLogisticRegression(cfg.NHidden, cfg.NOut)
	if err != nil {
		return nil, err
	}

	return &MLP{Hidden: hidden, Output: output, cfg: cfg}, nil
}

// Config returns a copy of the model configuration.
func (m *MLP) Config() Config { return m.cfg }

// Forward runs the batch X (t×NIn) through the network.
//
// Returns:
//   - H: hidden activations (t×NHidden) — the batch the penalties see.
//   - P: class probabilities (t×NOut), each row summing to 1.
//
// Errors: ErrNilModel, matrix.ErrDimensionMismatch.
// Complexity: O(t*NIn*NHidden + t*NHidden*NOut).
func (m *MLP) Forward(X *matrix.Dense) (H, P *matrix.Dense, err error) {
	if m == nil {
		return nil, nil, fmt.Errorf("mlp: Forward: %w", ErrNilModel)
	}

	if H, err = m.Hidden.Forward(X); err != nil {
		return nil, nil, err
	}
	if P, err = m.Output.Probabilities(H); err != nil {
		return nil, nil, err
	}

	return H, P, nil
}

// Predict returns the argmax class per row of X.
// Errors: as Forward.
// Complexity: O(t*NIn*NHidden + t*NHidden*NOut).
func (m *MLP) Predict(X *matrix.Dense) ([]int, error) {
	_, P, err := m.Forward(X)
	if err != nil {
		return nil, err
	}

	t := P.Rows()
	out := make([]int, t)
	var i, j int
	for i = 0; i < t; i++ {
		row, _ := P.RowView(i)
		best := 0
		for j = 1; j < len(row); j++ {
			if row[j] > row[best] {
				best = j
			}
		}
		out[i] = best
	}

	return out, nil
}

// L1 returns the sum of absolute weights of both layers.
// Complexity: O(weights).
func (m *MLP) L1() float64 {
	return sumWeights(m.Hidden.W, math.Abs) + sumWeights(m.Output.W, math.Abs)
}

// L2Sqr returns the sum of squared weights of both layers.
// Complexity: O(weights).
func (m *MLP) L2Sqr() float64 {
	sq := func(v float64) float64 { return v * v }

	return sumWeights(m.Hidden.W, sq) + sumWeights(m.Output.W, sq)
}

// sumWeights folds f over every entry of W in deterministic row order.
func sumWeights(W *matrix.Dense, f func(float64) float64) float64 {
	var s float64
	r := W.Rows()
	for i := 0; i < r; i++ {
		row, _ := W.RowView(i)
		for _, v := range row {
			s += f(v)
		}
	}

	return s
}

// Loss evaluates the full training objective on one batch.
//
// Implementation:
//   - Stage 1: Forward — hidden batch H and probabilities P.
//   - Stage 2: mean NLL of y under P.
//   - Stage 3: add L1/L2 weight terms and the configured activation penalty.
//
// Behavior highlights:
//   - With CovReg/CorrReg active the batch must have t ≥ 2 rows (the sample
//     covariance is undefined otherwise) — batchstats.ErrInvalidShape
//     surfaces unchanged.
//   - A constant hidden unit under CorrReg fails with
//     batchstats.ErrDegenerateUnit (strict policy: a silent zero would hide
//     a dead unit from the experimenter).
//
// Errors: ErrNilModel, ErrDatasetShape, batchstats sentinels.
// Complexity: O(forward + t*NHidden²) when a penalty is active.
func (m *MLP) Loss(X *matrix.Dense, y []int) (float64, error) {
	if m == nil {
		return 0, fmt.Errorf("mlp: Loss: %w", ErrNilModel)
	}

	H, P, err := m.Forward(X)
	if err != nil {
		return 0, err
	}

	loss, err := m.Output.NLL(P, y)
	if err != nil {
		return 0, err
	}

	if m.cfg.L1Reg != 0 {
		loss += m.cfg.L1Reg * m.L1()
	}
	if m.cfg.L2Reg != 0 {
		loss += m.cfg.L2Reg * m.L2Sqr()
	}

	switch {
	case m.cfg.CovReg != 0:
		p, perr := batchstats.CovPenalty(H)
		if perr != nil {
			return 0, fmt.Errorf("mlp: Loss: %w", perr)
		}
		loss += m.cfg.CovReg * p
	case m.cfg.CorrReg != 0:
		p, perr := batchstats.CorrPenalty(H)
		if perr != nil {
			return 0, fmt.Errorf("mlp: Loss: %w", perr)
		}
		loss += m.cfg.CorrReg * p
	}

	return loss, nil
}
