// Package mlp: configuration types and documented defaults.
package mlp

// Activation selects the hidden-layer nonlinearity.
//
//   - Tanh    — s(z) = tanh(z), range (−1, 1). The classical default;
//     weight init bound sqrt(6/(fanIn+fanOut)).
//   - Sigmoid — s(z) = 1/(1+e^(−z)), range (0, 1); weight init bound is
//     4× the tanh bound.
type Activation int

const (
	// Tanh hidden units (default).
	Tanh Activation = iota

	// Sigmoid hidden units.
	Sigmoid
)

// Documented defaults — single source of truth for zero-value behavior.
const (
	// DefaultL2Reg is the default weight-decay strength.
	DefaultL2Reg = 0.0001

	// DefaultLearningRate is the default SGD step size.
	DefaultLearningRate = 0.01

	// DefaultEpochs bounds the training loop.
	DefaultEpochs = 1000

	// DefaultBatchSize is the default minibatch size.
	DefaultBatchSize = 20

	// DefaultSeed seeds the RNG driving weight init and epoch shuffling.
	DefaultSeed = 1234
)

// Config describes the model architecture and its training objective.
//
// Exactly one of CovReg/CorrReg may be nonzero: the covariance penalty
// keeps activation magnitudes in the objective, the correlation penalty is
// scale-free. Setting both is rejected with ErrPenaltyConflict (whether the
// trade-off between the two is worth it is a modeling question this package
// leaves to the caller).
type Config struct {
	NIn     int // input features, > 0
	NHidden int // hidden units, > 0
	NOut    int // classes, > 0

	Activation Activation // hidden nonlinearity

	L1Reg   float64 // ≥ 0; weight sparsity
	L2Reg   float64 // ≥ 0; weight shrinkage
	CovReg  float64 // ≥ 0; off-diagonal squared covariance of hidden activations
	CorrReg float64 // ≥ 0; off-diagonal squared correlation of hidden activations
}

// DefaultConfig returns a Config with the documented defaults for the given
// architecture: tanh hidden units, L2 = DefaultL2Reg, no other penalties.
func DefaultConfig(nIn, nHidden, nOut int) Config {
	return Config{
		NIn:        nIn,
		NHidden:    nHidden,
		NOut:       nOut,
		Activation: Tanh,
		L2Reg:      DefaultL2Reg,
	}
}

// TrainConfig describes the SGD loop.
type TrainConfig struct {
	LearningRate float64 // > 0
	Epochs       int     // > 0
	BatchSize    int     // > 0; ≥ 2 when an activation penalty is active
	Seed         int64   // RNG seed (weight init + per-epoch permutation)
}

// DefaultTrainConfig returns the documented training defaults.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		LearningRate: DefaultLearningRate,
		Epochs:       DefaultEpochs,
		BatchSize:    DefaultBatchSize,
		Seed:         DefaultSeed,
	}
}

// TrainReport summarizes a training run.
//
// ValidationErrs[e] is the zero-one validation error after epoch e+1;
// BestEpoch is 1-based and marks the first epoch achieving
// BestValidationErr.
type TrainReport struct {
	BestValidationErr float64
	BestEpoch         int
	ValidationErrs    []float64
}
