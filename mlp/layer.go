// SPDX-License-Identifier: MIT
// Package mlp: hidden layer.

package mlp

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/nnstat/matrix"
)

// HiddenLayer is a fully connected layer H = s(X·W + b) with a nonlinear
// activation s applied element-wise.
//
// W is NIn×NOut (inputs down the rows, units across the columns), B has one
// bias per unit.
type HiddenLayer struct {
	W   *matrix.Dense // nIn×nOut weights
	B   []float64     // per-unit bias, len nOut
	Act Activation
}

// NewHiddenLayer builds a hidden layer with the classical symmetric-breaking
// init: W[i][j] ~ U(−r, r) with r = sqrt(6/(fanIn+fanOut)), scaled ×4 for
// sigmoid units; biases start at zero.
//
// Inputs:
//   - rng: caller-seeded source (determinism is the caller's choice).
//   - nIn, nOut: fan-in and fan-out, both > 0.
//   - act: hidden nonlinearity.
//
// Errors: ErrBadConfig (non-positive dims, unknown activation, nil rng).
// Complexity: O(nIn*nOut).
func NewHiddenLayer(rng *rand.Rand, nIn, nOut int, act Activation) (*HiddenLayer, error) {
	if rng == nil || nIn <= 0 || nOut <= 0 || !act.valid() {
		return nil, fmt.Errorf("mlp: NewHiddenLayer: %w", ErrBadConfig)
	}

	W, err := matrix.NewDense(nIn, nOut)
	if err != nil {
		return nil, fmt.Errorf("mlp: NewHiddenLayer: %w", err)
	}

	bound := math.Sqrt(6.0 / float64(nIn+nOut))
	if act == Sigmoid {
		bound *= 4.0
	}

	// Deterministic i→j fill order: one rng draw per weight.
	var i, j int
	for i = 0; i < nIn; i++ {
		row, _ := W.RowView(i) // bounds are valid by construction
		for j = 0; j < nOut; j++ {
			row[j] = (rng.Float64()*2.0 - 1.0) * bound
		}
	}

	return &HiddenLayer{W: W, B: make([]float64, nOut), Act: act}, nil
}

// Forward computes H = s(X·W + b) for a batch X (t×nIn).
//
// Returns a fresh t×nOut matrix; X is never mutated.
// Errors: ErrNilModel, matrix.ErrDimensionMismatch (feature count).
// Complexity: O(t*nIn*nOut).
func (l *HiddenLayer) Forward(X *matrix.Dense) (*matrix.Dense, error) {
	if l == nil {
		return nil, fmt.Errorf("mlp: HiddenLayer.Forward: %w", ErrNilModel)
	}

	Z, err := matrix.Mul(X, l.W)
	if err != nil {
		return nil, fmt.Errorf("mlp: HiddenLayer.Forward: %w", err)
	}
	H := Z.(*matrix.Dense) // Mul over *Dense operands yields *Dense

	// Bias + activation in one pass over the rows.
	t := H.Rows()
	var i, j int
	for i = 0; i < t; i++ {
		row, _ := H.RowView(i)
		for j = range row {
			row[j] = l.Act.Apply(row[j] + l.B[j])
		}
	}

	return H, nil
}
