// Package nnstat is your in-memory toolkit for measuring and shaping how
// the hidden units of a neural network co-activate — from dense matrix
// primitives to covariance/correlation penalties and a trainable MLP.
//
// 🚀 What is nnstat?
//
//	A modern, deterministic library that brings together:
//		• Matrix primitives: dense row-major storage, kernels with strict validation
//		• Batch statistics: column means, sample covariance, Pearson correlation
//		• Decorrelation penalties: off-diagonal squared covariance & correlation
//		• A one-hidden-layer MLP: tanh/sigmoid hidden units, softmax output,
//		  minibatch SGD with L1/L2 and activation-decorrelation regularizers
//
// ✨ Why choose nnstat?
//
//   - Beginner-friendly – minimal API, clear, intuitive naming
//   - Rock-solid guarantees – sentinel errors, fixed loop orders, in-code docs
//   - Pure Go – no cgo, no hidden deps in the library body
//   - Honest numerics – two-pass centering everywhere, documented degenerate policies
//
// Under the hood, everything is organized under three subpackages:
//
//	matrix/     — dense float64 matrices, linear algebra & broadcast kernels
//	batchstats/ — covariance/correlation of activation batches + penalties
//	mlp/        — correlation-penalized multilayer perceptron & SGD trainer
//
// Quick ASCII example:
//
//	observations (t rows)        units (d cols)
//	    ┌ a11 a12 … a1d ┐            Σ  (d×d)  covariance
//	A = │ a21 a22 … a2d │   ───►     ρ  (d×d)  correlation
//	    └ at1 at2 … atd ┘
//
// Dive into each package's doc.go for formulas, guarantees and examples.
//
//	go get github.com/katalvlaran/nnstat
package nnstat
