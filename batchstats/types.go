// SPDX-License-Identifier: MIT

// Package batchstats: options and result types.
package batchstats

import "github.com/katalvlaran/nnstat/matrix"

// DefaultDegenerateZero documents the default degenerate-unit policy:
// false ⇒ a zero-variance unit makes Correlation fail with ErrDegenerateUnit.
const DefaultDegenerateZero = false

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	degenerateZero bool // DefaultDegenerateZero
}

// WithDegenerateZero switches the degenerate-unit policy from erroring to
// zero-filling: a unit with s[j] == 0 gets its entire row and column in ρ
// set to 0 (including the diagonal), and Correlation succeeds.
//
// Behavior highlights:
//   - Only affects correlation; covariance never needs the policy.
//   - The returned stds still report 0 for the degenerate unit, so callers
//     can detect and handle it downstream.
//
// Complexity: O(1).
func WithDegenerateZero() Option {
	return func(o *Options) { o.degenerateZero = true }
}

// gatherOptions applies user setters on top of documented defaults.
// Last-writer-wins; pure. Complexity: O(k).
func gatherOptions(user ...Option) Options {
	o := Options{degenerateZero: DefaultDegenerateZero}
	for _, set := range user {
		set(&o)
	}

	return o
}

// Result bundles the outputs of CovCorr.
//
// Fields:
//   - Cov   — d×d unbiased sample covariance Σ (always present).
//   - Corr  — d×d Pearson correlation ρ (nil unless requested).
//   - Means — per-unit means ō (len d).
//   - Stds  — per-unit standard deviations s (len d; nil unless correlation
//     was requested, since they are derived on that path).
type Result struct {
	Cov   matrix.Matrix
	Corr  matrix.Matrix
	Means []float64
	Stds  []float64
}
