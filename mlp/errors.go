// SPDX-License-Identifier: MIT
// Package mlp: sentinel error set.
// All entry points MUST return these sentinels (possibly wrapped with an op
// tag) and tests MUST check them via errors.Is.

package mlp

import "errors"

var (
	// ErrBadConfig indicates a nonsensical model or training configuration:
	// non-positive layer sizes, negative regularization weights,
	// non-positive learning rate, epochs or batch size, or a batch size too
	// small for the requested activation penalty (covariance needs ≥ 2 rows).
	ErrBadConfig = errors.New("mlp: invalid configuration")

	// ErrPenaltyConflict indicates that both the covariance and the
	// correlation penalty were requested; they are mutually exclusive.
	ErrPenaltyConflict = errors.New("mlp: covariance and correlation penalties are mutually exclusive")

	// ErrDatasetShape indicates inconsistent data: X rows != len(y),
	// feature count != NIn, or a label outside [0, NOut).
	ErrDatasetShape = errors.New("mlp: dataset shape mismatch")

	// ErrNilModel indicates a nil *MLP receiver or argument.
	ErrNilModel = errors.New("mlp: nil model")
)
