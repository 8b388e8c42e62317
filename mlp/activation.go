// SPDX-License-Identifier: MIT
// Package mlp: activation kernels.
//
// Notes:
//   - Derivatives are expressed in terms of the activation OUTPUT, which is
//     what backprop has at hand (tanh' = 1−y², sigmoid' = y(1−y)).
//   - Softmax uses the max-shift form so large logits cannot overflow.

package mlp

import "math"

// Apply evaluates the activation at z.
// Unknown values fall back to Tanh (the zero value), keeping the method
// total; constructors validate the enum before any training starts.
// Complexity: O(1).
func (a Activation) Apply(z float64) float64 {
	if a == Sigmoid {
		return 1.0 / (1.0 + math.Exp(-z))
	}

	return math.Tanh(z)
}

// DerivFromOutput evaluates the activation derivative at the point whose
// OUTPUT is y (not the pre-activation).
// Complexity: O(1).
func (a Activation) DerivFromOutput(y float64) float64 {
	if a == Sigmoid {
		return y * (1.0 - y)
	}

	return 1.0 - y*y
}

// valid reports whether a names a known activation.
func (a Activation) valid() bool {
	return a == Tanh || a == Sigmoid
}

// Softmax returns the softmax of z as a fresh slice.
//
// Implementation:
//   - Stage 1: find the row maximum (single pass).
//   - Stage 2: exponentiate shifted logits and accumulate the partition sum.
//   - Stage 3: normalize.
//
// The max-shift keeps every exponent ≤ 0, so the largest term is exactly 1
// and the sum can never overflow; underflow of distant logits is harmless.
//
// Contract: len(z) ≥ 1 (callers validate class counts).
// Complexity: O(n), Space O(n).
func Softmax(z []float64) []float64 {
	out := make([]float64, len(z))

	// Stage 1: row maximum.
	maxZ := z[0]
	for _, v := range z[1:] {
		if v > maxZ {
			maxZ = v
		}
	}

	// Stage 2: shifted exponentials + partition sum.
	var sum float64
	for i, v := range z {
		e := math.Exp(v - maxZ)
		out[i] = e
		sum += e
	}

	// Stage 3: normalize (sum ≥ 1 because the max term contributes exactly 1).
	inv := 1.0 / sum
	for i := range out {
		out[i] *= inv
	}

	return out
}
