// SPDX-License-Identifier: MIT

package batchstats_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/nnstat/batchstats"
	"github.com/katalvlaran/nnstat/matrix"
)

// benchBatch builds a t×d batch of seeded noise for benchmarking.
func benchBatch(b *testing.B, rows, cols int, seed int64) *matrix.Dense {
	d, err := matrix.NewDense(rows, cols)
	if err != nil {
		b.Fatalf("NewDense(%d,%d): %v", rows, cols, err)
	}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			_ = d.Set(i, j, rng.Float64()*2-1)
		}
	}

	return d
}

// benchmarkCovariance runs Covariance on a t×d batch.
func benchmarkCovariance(b *testing.B, rows, cols int) {
	A := benchBatch(b, rows, cols, 1)

	b.ResetTimer() // ignore setup time
	for i := 0; i < b.N; i++ {
		if _, _, err := batchstats.Covariance(A); err != nil {
			b.Fatalf("Covariance: %v", err)
		}
	}
}

func BenchmarkCovariance_Small(b *testing.B)  { benchmarkCovariance(b, 64, 32) }
func BenchmarkCovariance_Medium(b *testing.B) { benchmarkCovariance(b, 512, 128) }

// benchmarkCorrelation runs the full Correlation pipeline on a t×d batch.
func benchmarkCorrelation(b *testing.B, rows, cols int) {
	A := benchBatch(b, rows, cols, 2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, _, err := batchstats.Correlation(A); err != nil {
			b.Fatalf("Correlation: %v", err)
		}
	}
}

func BenchmarkCorrelation_Small(b *testing.B)  { benchmarkCorrelation(b, 64, 32) }
func BenchmarkCorrelation_Medium(b *testing.B) { benchmarkCorrelation(b, 512, 128) }

// BenchmarkCorrPenalty_Minibatch mirrors a typical training minibatch shape.
func BenchmarkCorrPenalty_Minibatch(b *testing.B) {
	A := benchBatch(b, 20, 500, 3)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := batchstats.CorrPenalty(A); err != nil {
			b.Fatalf("CorrPenalty: %v", err)
		}
	}
}
