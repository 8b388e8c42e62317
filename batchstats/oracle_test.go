// SPDX-License-Identifier: MIT
// Cross-checks against the gonum reference implementations: both sides
// compute the unbiased sample covariance and the Pearson correlation, so on
// identical input they must agree to numerical precision.

package batchstats_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/nnstat/batchstats"
	"github.com/katalvlaran/nnstat/matrix"
)

// toGonum copies a *matrix.Dense batch into a gonum *mat.Dense.
func toGonum(t *testing.T, d *matrix.Dense) *mat.Dense {
	t.Helper()
	r, c := d.Rows(), d.Cols()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		row, err := d.RowView(i)
		require.NoError(t, err)
		data = append(data, row...)
	}

	return mat.NewDense(r, c, data)
}

func TestCovariance_AgreesWithGonum(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		A := randBatch(t, 40, 7, seed)

		Cov, _, err := batchstats.Covariance(A)
		require.NoError(t, err)

		var want mat.SymDense
		stat.CovarianceMatrix(&want, toGonum(t, A), nil)

		for j := 0; j < 7; j++ {
			for k := 0; k < 7; k++ {
				require.InDelta(t, want.At(j, k), at(t, Cov, j, k), 1e-12,
					"seed=%d (%d,%d)", seed, j, k)
			}
		}
	}
}

func TestCorrelation_AgreesWithGonum(t *testing.T) {
	for _, seed := range []int64{4, 5, 6} {
		A := randBatch(t, 40, 7, seed)

		Corr, _, _, err := batchstats.Correlation(A)
		require.NoError(t, err)

		var want mat.SymDense
		stat.CorrelationMatrix(&want, toGonum(t, A), nil)

		for j := 0; j < 7; j++ {
			for k := 0; k < 7; k++ {
				require.InDelta(t, want.At(j, k), at(t, Corr, j, k), 1e-12,
					"seed=%d (%d,%d)", seed, j, k)
			}
		}
	}
}

func TestMoments_AgreeWithGonumMean(t *testing.T) {
	A := randBatch(t, 25, 4, 8)

	means, err := batchstats.Moments(A)
	require.NoError(t, err)

	g := toGonum(t, A)
	col := make([]float64, 25)
	for j := 0; j < 4; j++ {
		mat.Col(col, j, g)
		require.InDelta(t, stat.Mean(col, nil), means[j], 1e-13, "column %d", j)
	}
}
