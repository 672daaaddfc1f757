package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

func diagnosticTable(sens, spec []float64) study.Table {
	table := make(study.Table, 0, len(sens))
	for i := range sens {
		table = append(table, study.MetricsRow{
			Sens:     study.Some(sens[i]),
			Spec:     study.Some(spec[i]),
			Included: true,
		})
	}
	return table
}

func TestPoolDiagnosticPooledWithinInputRange(t *testing.T) {
	t.Parallel()

	sens := []float64{0.90, 0.85, 0.88}
	spec := []float64{0.80, 0.75, 0.82}
	res := PoolDiagnostic(diagnosticTable(sens, spec))

	require.Equal(t, 3, res.K)
	require.False(t, res.Insufficient())

	assert.GreaterOrEqual(t, res.Sens, 0.85)
	assert.LessOrEqual(t, res.Sens, 0.90)
	assert.GreaterOrEqual(t, res.Spec, 0.75)
	assert.LessOrEqual(t, res.Spec, 0.82)

	// AUC is exactly the mean of the pooled proportions.
	assert.InDelta(t, (res.Sens+res.Spec)/2, res.AUC, 1e-12)

	// Pooled proportions and their CIs stay inside (0,1); AUC CI inside [0,1].
	for _, v := range []float64{res.Sens, res.SensCILow, res.SensCIHigh, res.Spec, res.SpecCILow, res.SpecCIHigh} {
		assert.Greater(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
	assert.GreaterOrEqual(t, res.AUCCILow, 0.0)
	assert.LessOrEqual(t, res.AUCCIHigh, 1.0)
}

func TestPoolDiagnosticAsymmetricCI(t *testing.T) {
	t.Parallel()

	// Back-transforming a symmetric logit interval yields an asymmetric
	// interval on the probability scale; near 1 the upper arm is shorter.
	res := PoolDiagnostic(diagnosticTable(
		[]float64{0.95, 0.93, 0.96},
		[]float64{0.90, 0.91, 0.89},
	))
	require.False(t, res.Insufficient())
	assert.Less(t, res.SensCIHigh-res.Sens, res.Sens-res.SensCILow)
}

func TestPoolDiagnosticClampsBoundaryProportions(t *testing.T) {
	t.Parallel()

	// Proportions at exactly 0 or 1 must be clamped before the logit
	// transform, not propagated as infinities.
	res := PoolDiagnostic(diagnosticTable(
		[]float64{1.0, 0.92, 0.95},
		[]float64{0.0, 0.85, 0.88},
	))
	require.False(t, res.Insufficient())
	for _, v := range []float64{res.Sens, res.Spec, res.AUC} {
		assert.True(t, IsDefined(v))
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestPoolDiagnosticRequiresPairedRows(t *testing.T) {
	t.Parallel()

	table := study.Table{
		{Sens: study.Some(0.9), Spec: study.Some(0.8), Included: true},
		{Sens: study.Some(0.85), Included: true}, // missing Spec, excluded
		{Spec: study.Some(0.75), Included: true}, // missing Sens, excluded
		{Sens: study.Some(0.88), Spec: study.Some(0.82), Included: true},
	}
	res := PoolDiagnostic(table)

	assert.Equal(t, 2, res.K)
	assert.True(t, res.Insufficient())
	assert.Equal(t, "Insufficient data", res.Note)
	assert.False(t, IsDefined(res.Sens))
	assert.False(t, IsDefined(res.AUC))
}

func TestPoolDiagnosticSkipsRowsNotFlaggedForPooling(t *testing.T) {
	t.Parallel()

	table := study.Table{
		{Sens: study.Some(0.90), Spec: study.Some(0.85), Included: true},
		{Sens: study.Some(0.88), Spec: study.Some(0.90), Included: true},
		{Sens: study.Some(0.92), Spec: study.Some(0.80), Included: true},
		{Sens: study.Some(0.10), Spec: study.Some(0.10), Included: false},
	}

	res := PoolDiagnostic(table)
	require.Equal(t, 3, res.K)
	assert.Greater(t, res.Sens, 0.8)
}
