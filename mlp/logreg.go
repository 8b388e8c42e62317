// SPDX-License-Identifier: MIT
// Package mlp: softmax output layer (multiclass logistic regression).

package mlp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nnstat/matrix"
)

// LogisticRegression is the softmax output layer P = softmax(H·W + b).
//
// W is NIn×NOut and starts at zero together with B: with a zero output
// layer every class begins equally likely, which keeps the first gradient
// steps well-scaled regardless of the hidden init.
type LogisticRegression struct {
	W *matrix.Dense // nIn×nOut weights, zero-initialized
	B []float64     // per-class bias, len nOut
}

// NewLogisticRegression builds a zero-initialized softmax layer.
// Errors: ErrBadConfig (non-positive dims).
// Complexity: O(nIn*nOut).
func NewLogisticRegression(nIn, nOut int) (*LogisticRegression, error) {
	if nIn <= 0 || nOut <= 0 {
		return nil, fmt.Errorf("mlp: NewLogisticRegression: %w", ErrBadConfig)
	}

	W, err := matrix.NewDense(nIn, nOut)
	if err != nil {
		return nil, fmt.Errorf("mlp: NewLogisticRegression: %w", err)
	}

	return &LogisticRegression{W: W, B: make([]float64, nOut)}, nil
}

// Probabilities computes class probabilities P (t×nOut) for hidden batch H.
// Each row of P sums to 1 (softmax with max-shift).
// Errors: ErrNilModel, matrix.ErrDimensionMismatch.
// Complexity: O(t*nIn*nOut).
func (l *LogisticRegression) Probabilities(H *matrix.Dense) (*matrix.Dense, error) {
	if l == nil {
		return nil, fmt.Errorf("mlp: LogisticRegression.Probabilities: %w", ErrNilModel)
	}

	Z, err := matrix.Mul(H, l.W)
	if err != nil {
		return nil, fmt.Errorf("mlp: LogisticRegression.Probabilities: %w", err)
	}
	P := Z.(*matrix.Dense)

	t := P.Rows()
	var i, j int
	for i = 0; i < t; i++ {
		row, _ := P.RowView(i)
		for j = range row {
			row[j] += l.B[j]
		}
		copy(row, Softmax(row))
	}

	return P, nil
}

// NLL returns the mean negative log-likelihood of labels y under P:
//
//	NLL = −(1/t) Σ_i log P[i][y[i]]
//
// Errors: ErrDatasetShape (row/label mismatch or label out of range).
// Complexity: O(t).
func (l *LogisticRegression) NLL(P *matrix.Dense, y []int) (float64, error) {
	t := P.Rows()
	if len(y) != t {
		return 0, fmt.Errorf("mlp: NLL: %w", ErrDatasetShape)
	}

	var sum float64
	for i := 0; i < t; i++ {
		if y[i] < 0 || y[i] >= P.Cols() {
			return 0, fmt.Errorf("mlp: NLL: label %d at row %d: %w", y[i], i, ErrDatasetShape)
		}
		p, err := P.At(i, y[i])
		if err != nil {
			return 0, fmt.Errorf("mlp: NLL: %w", err)
		}
		sum += math.Log(p)
	}

	return -sum / float64(t), nil
}

// ZeroOneError returns the fraction of rows whose argmax class differs from
// the label (ties resolve to the lowest index, deterministically).
// Errors: ErrDatasetShape.
// Complexity: O(t*nOut).
func (l *LogisticRegression) ZeroOneError(P *matrix.Dense, y []int) (float64, error) {
	t := P.Rows()
	if len(y) != t {
		return 0, fmt.Errorf("mlp: ZeroOneError: %w", ErrDatasetShape)
	}

	var wrong int
	var i, j int
	for i = 0; i < t; i++ {
		row, err := P.RowView(i)
		if err != nil {
			return 0, fmt.Errorf("mlp: ZeroOneError: %w", err)
		}
		best := 0
		for j = 1; j < len(row); j++ {
			if row[j] > row[best] {
				best = j
			}
		}
		if y[i] < 0 || y[i] >= len(row) {
			return 0, fmt.Errorf("mlp: ZeroOneError: label %d at row %d: %w", y[i], i, ErrDatasetShape)
		}
		if best != y[i] {
			wrong++
		}
	}

	return float64(wrong) / float64(t), nil
}
