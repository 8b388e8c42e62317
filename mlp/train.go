// SPDX-License-Identifier: MIT
// Package mlp: minibatch SGD training loop.
//
// The loop mirrors the classical recipe: a fresh index permutation each
// epoch, fixed-size minibatches (the remainder that cannot fill a batch is
// dropped), plain SGD updates, and a zero-one validation error recorded
// after every epoch with best-epoch tracking.

package mlp

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/nnstat/matrix"
)

// validateDataset checks X/y consistency against the architecture.
// Errors: ErrDatasetShape.
func validateDataset(cfg Config, X *matrix.Dense, y []int) error {
	if err := matrix.ValidateNotNil(X); err != nil {
		return err
	}
	if X.Rows() != len(y) || X.Cols() != cfg.NIn {
		return ErrDatasetShape
	}
	for i, label := range y {
		if label < 0 || label >= cfg.NOut {
			return fmt.Errorf("label %d at row %d: %w", label, i, ErrDatasetShape)
		}
	}

	return nil
}

// Train fits a fresh MLP on (Xtrain, yTrain) and evaluates on
// (Xvalid, yValid) after every epoch.
//
// Implementation:
//   - Stage 1: validate configs and both datasets.
//   - Stage 2: build the model from a rand.Rand seeded with tc.Seed (the
//     same stream then drives the per-epoch permutations, so a run is
//     fully reproducible from the seed).
//   - Stage 3: for each epoch — permute indices, walk fixed-size
//     minibatches, backward + SGD step per batch.
//   - Stage 4: record the validation zero-one error; keep the best
//     (strictly smaller) error and its epoch.
//
// Behavior highlights:
//   - nTrain/tc.BatchSize batches per epoch; the remainder is dropped, so
//     every gradient sees exactly BatchSize rows (and activation penalties
//     never meet a one-row batch).
//   - With CovReg/CorrReg active, BatchSize must be ≥ 2 (ErrBadConfig).
//
// Returns:
//   - *MLP: the trained model (final-epoch parameters).
//   - *TrainReport: per-epoch validation errors, best error and epoch.
//
// Errors: ErrBadConfig, ErrPenaltyConflict, ErrDatasetShape, and
// batchstats sentinels surfaced from the penalty path.
// Complexity: O(Epochs · nTrain · cost(backward)/BatchSize).
func Train(cfg Config, tc TrainConfig, Xtrain *matrix.Dense, yTrain []int, Xvalid *matrix.Dense, yValid []int) (*MLP, *TrainReport, error) {
	// Stage 1: configuration.
	if err := validateConfig(cfg); err != nil {
		return nil, nil, fmt.Errorf("mlp: Train: %w", err)
	}
	if tc.LearningRate <= 0 || tc.Epochs <= 0 || tc.BatchSize <= 0 {
		return nil, nil, fmt.Errorf("mlp: Train: %w", ErrBadConfig)
	}
	if (cfg.CovReg != 0 || cfg.CorrReg != 0) && tc.BatchSize < 2 {
		return nil, nil, fmt.Errorf("mlp: Train: penalty needs batches of ≥ 2 rows: %w", ErrBadConfig)
	}

	// Stage 1: datasets.
	if err := validateDataset(cfg, Xtrain, yTrain); err != nil {
		return nil, nil, fmt.Errorf("mlp: Train: train set: %w", err)
	}
	if err := validateDataset(cfg, Xvalid, yValid); err != nil {
		return nil, nil, fmt.Errorf("mlp: Train: validation set: %w", err)
	}
	nTrain := Xtrain.Rows()
	if nTrain < tc.BatchSize {
		return nil, nil, fmt.Errorf("mlp: Train: fewer rows than one batch: %w", ErrBadConfig)
	}

	// Stage 2: model + reproducible stream.
	rng := rand.New(rand.NewSource(tc.Seed))
	model, err := New(cfg, rng)
	if err != nil {
		return nil, nil, err
	}

	nBatches := nTrain / tc.BatchSize
	report := &TrainReport{
		BestValidationErr: 1.0 + 1e-12, // any real error rate beats this
		ValidationErrs:    make([]float64, 0, tc.Epochs),
	}

	batchY := make([]int, tc.BatchSize)
	for epoch := 1; epoch <= tc.Epochs; epoch++ {
		// Stage 3: fresh permutation, fixed-size minibatches.
		perm := rng.Perm(nTrain)
		for b := 0; b < nBatches; b++ {
			idx := perm[b*tc.BatchSize : (b+1)*tc.BatchSize]
			batchX, berr := subsetRows(Xtrain, idx)
			if berr != nil {
				return nil, nil, fmt.Errorf("mlp: Train: %w", berr)
			}
			for i, id := range idx {
				batchY[i] = yTrain[id]
			}

			grads, gerr := model.backward(batchX, batchY)
			if gerr != nil {
				return nil, nil, gerr
			}
			model.step(grads, tc.LearningRate)
		}

		// Stage 4: validation error + best tracking.
		_, P, ferr := model.Forward(Xvalid)
		if ferr != nil {
			return nil, nil, ferr
		}
		validErr, verr := model.Output.ZeroOneError(P, yValid)
		if verr != nil {
			return nil, nil, verr
		}
		report.ValidationErrs = append(report.ValidationErrs, validErr)
		if validErr < report.BestValidationErr {
			report.BestValidationErr = validErr
			report.BestEpoch = epoch
		}
	}

	return model, report, nil
}

// step applies one SGD update: θ ← θ − lr·∂Loss/∂θ.
// Complexity: O(weights).
func (m *MLP) step(g *gradients, lr float64) {
	axpyInPlace(m.Hidden.W, g.dW1, -lr)
	axpyInPlace(m.Output.W, g.dW2, -lr)
	for j := range m.Hidden.B {
		m.Hidden.B[j] -= lr * g.dB1[j]
	}
	for j := range m.Output.B {
		m.Output.B[j] -= lr * g.dB2[j]
	}
}

// subsetRows copies the selected rows of X into a fresh len(idx)×cols batch.
// Errors: matrix.ErrOutOfRange for a bad index.
// Complexity: O(len(idx)·cols).
func subsetRows(X *matrix.Dense, idx []int) (*matrix.Dense, error) {
	out, err := matrix.NewDense(len(idx), X.Cols())
	if err != nil {
		return nil, err
	}
	for i, id := range idx {
		src, serr := X.RowView(id)
		if serr != nil {
			return nil, serr
		}
		dst, _ := out.RowView(i)
		copy(dst, src)
	}

	return out, nil
}
