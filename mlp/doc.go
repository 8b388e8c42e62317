// Package mlp implements a one-hidden-layer perceptron whose hidden units
// can be decorrelated during training via covariance or correlation
// penalties on their batch activations.
//
// 🚀 What is mlp?
//
//	A feedforward classifier
//
//	  f(x) = softmax( b² + W²·s( b¹ + W¹·x ) )
//
//	with a nonlinear hidden layer (tanh or sigmoid) and a softmax output,
//	trained by minibatch SGD on the negative log-likelihood plus optional
//	regularizers:
//	  • L1    — sum of absolute weights (sparsity)
//	  • L2    — sum of squared weights (shrinkage)
//	  • Cov   — off-diagonal squared sum of the hidden activation covariance
//	  • Corr  — off-diagonal squared sum of the hidden activation correlation
//
//	The Cov and Corr penalties push hidden units toward pairwise
//	decorrelation; they are mutually exclusive (setting both is
//	ErrPenaltyConflict). Covariance preserves activation magnitudes in the
//	penalty; correlation is scale-free. Pick per experiment.
//
// ✨ Key features:
//   - deterministic training: caller-seeded RNG drives init and shuffling
//   - closed-form gradients for both penalties (through centering and
//     z-scoring), finite-difference tested
//   - per-epoch validation with best-epoch tracking
//   - sentinel errors, no panics on user input
//
// ⚙️ Usage:
//
//	cfg := mlp.DefaultConfig(nIn, nHidden, nOut)
//	cfg.CorrReg = 1e-4
//	tc := mlp.DefaultTrainConfig()
//	tc.Epochs, tc.BatchSize = 10, 20
//
//	model, report, err := mlp.Train(cfg, tc, Xtrain, yTrain, Xvalid, yValid)
//	// report.BestValidationErr, report.BestEpoch
//
// Performance (per minibatch of t rows):
//
//   - Time:   O(t·nIn·nHidden + t·nHidden·nOut + t·nHidden²) with penalties
//   - Memory: O(t·nHidden + nHidden²)
//
// See example_test.go and the gradient checks in grad_test.go.
package mlp
