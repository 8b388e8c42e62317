// SPDX-License-Identifier: MIT
// Package batchstats: sentinel error set.
// All operations MUST return these sentinels (possibly wrapped with an op
// tag) and tests MUST check them via errors.Is. No operation panics on
// user-triggered conditions.

package batchstats

import "errors"

var (
	// ErrInvalidShape is returned when the batch cannot support the
	// requested statistic: fewer than two observations (sample covariance
	// needs t ≥ 2), no units (d < 1), or a non-square penalty input.
	ErrInvalidShape = errors.New("batchstats: invalid shape")

	// ErrDegenerateUnit is returned when correlation is requested and some
	// unit has zero variance (s[j] == 0), under the default policy.
	// Use WithDegenerateZero to zero the unit's row/column instead.
	ErrDegenerateUnit = errors.New("batchstats: zero-variance unit")
)
