package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

// tableWithR2 builds a minimal metrics table carrying the given R2 values.
func tableWithR2(values ...float64) study.Table {
	table := make(study.Table, 0, len(values))
	for _, v := range values {
		table = append(table, study.MetricsRow{R2: study.Some(v), Included: true})
	}
	return table
}

func TestPoolContinuousEqualWeightsIsUnweightedMean(t *testing.T) {
	t.Parallel()

	// All variances equal under the shared-variance proxy, so pooling
	// must reduce to the unweighted mean.
	res := PoolContinuous(tableWithR2(0.80, 0.85, 0.90), study.MetricR2)

	require.Equal(t, 3, res.K)
	require.False(t, res.Insufficient())
	assert.Equal(t, ModelDerSimonianLaird, res.Model)
	assert.InDelta(t, 0.85, res.Effect, 1e-12)
	assert.Contains(t, res.Note, "variance")
}

func TestPoolContinuousIntervalOrdering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
	}{
		{"tight_cluster", []float64{0.80, 0.85, 0.90}},
		{"wide_spread", []float64{0.10, 0.55, 0.70, 0.95}},
		{"identical_values", []float64{0.75, 0.75, 0.75}},
		{"many_studies", []float64{0.62, 0.68, 0.71, 0.74, 0.77, 0.81, 0.84, 0.90}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := PoolContinuous(tableWithR2(tt.values...), study.MetricR2)
			require.False(t, res.Insufficient())

			// Confidence interval brackets the effect.
			assert.LessOrEqual(t, res.CILow, res.Effect)
			assert.LessOrEqual(t, res.Effect, res.CIHigh)
			// Prediction interval always contains the confidence interval.
			assert.LessOrEqual(t, res.PILow, res.CILow)
			assert.GreaterOrEqual(t, res.PIHigh, res.CIHigh)

			assert.GreaterOrEqual(t, res.I2, 0.0)
			assert.LessOrEqual(t, res.I2, 100.0)
			assert.GreaterOrEqual(t, res.Tau2, 0.0)
			assert.GreaterOrEqual(t, res.PHet, 0.0)
			assert.LessOrEqual(t, res.PHet, 1.0)
		})
	}
}

func TestPoolContinuousInsufficientData(t *testing.T) {
	t.Parallel()

	for _, k := range []int{0, 1, 2} {
		values := make([]float64, k)
		for i := range values {
			values[i] = 0.8
		}
		res := PoolContinuous(tableWithR2(values...), study.MetricR2)

		assert.Equal(t, k, res.K)
		assert.True(t, res.Insufficient())
		assert.Equal(t, "Insufficient data", res.Note)
		assert.False(t, IsDefined(res.Effect))
		assert.False(t, IsDefined(res.SE))
		assert.False(t, IsDefined(res.CILow))
		assert.False(t, IsDefined(res.PIHigh))
		assert.False(t, IsDefined(res.Tau2))
		assert.False(t, IsDefined(res.I2))
	}
}

func TestPoolContinuousZeroVarianceFloor(t *testing.T) {
	t.Parallel()

	// Identical values have zero sample variance; the 0.01 floor keeps the
	// weights finite and the heterogeneity statistics at their boundary.
	res := PoolContinuous(tableWithR2(0.8, 0.8, 0.8), study.MetricR2)

	require.False(t, res.Insufficient())
	assert.InDelta(t, 0.8, res.Effect, 1e-12)
	assert.InDelta(t, 0.0, res.Q, 1e-12)
	assert.InDelta(t, 0.0, res.I2, 1e-12)
	assert.InDelta(t, 0.0, res.Tau2, 1e-12)
	assert.InDelta(t, 1.0, res.PHet, 1e-12)
}

func TestPoolContinuousDropsMissingRows(t *testing.T) {
	t.Parallel()

	table := study.Table{
		{R2: study.Some(0.80), Included: true},
		{RMSE: study.Some(0.12), Included: true}, // no R2, must be dropped
		{R2: study.Some(0.85), Included: true},
		{R2: study.Some(0.90), Included: true},
	}
	res := PoolContinuous(table, study.MetricR2)
	assert.Equal(t, 3, res.K)
}

func TestPoolContinuousIdempotent(t *testing.T) {
	t.Parallel()

	table := tableWithR2(0.62, 0.68, 0.71, 0.74, 0.77)
	first := PoolContinuous(table, study.MetricR2)
	second := PoolContinuous(table, study.MetricR2)
	assert.Equal(t, first, second)
}

func TestPoolContinuousSkipsRowsNotFlaggedForPooling(t *testing.T) {
	t.Parallel()

	table := append(tableWithR2(0.80, 0.85, 0.90),
		study.MetricsRow{R2: study.Some(0.10), Included: false})

	res := PoolContinuous(table, study.MetricR2)
	require.Equal(t, 3, res.K)
	assert.InDelta(t, 0.85, res.Effect, 1e-12)
}
