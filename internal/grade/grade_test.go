package grade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/meta"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

func continuous(k int, i2 float64) meta.ContinuousResult {
	return meta.ContinuousResult{Metric: study.MetricR2, K: k, I2: i2}
}

func TestAssessContinuous(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cont  meta.ContinuousResult
		bias  meta.BiasResult
		level Level
		steps int
	}{
		{
			name:  "no_concerns",
			cont:  continuous(12, 10),
			bias:  meta.BiasResult{K: 12, EggerP: 0.6},
			level: High,
			steps: 0,
		},
		{
			name:  "few_studies",
			cont:  continuous(4, 10),
			bias:  meta.BiasResult{K: 4, EggerP: 0.6},
			level: Moderate,
			steps: 1,
		},
		{
			name:  "serious_inconsistency",
			cont:  continuous(12, 60),
			bias:  meta.BiasResult{K: 12, EggerP: 0.6},
			level: Moderate,
			steps: 1,
		},
		{
			name:  "very_serious_inconsistency",
			cont:  continuous(12, 90),
			bias:  meta.BiasResult{K: 12, EggerP: 0.6},
			level: Low,
			steps: 2,
		},
		{
			name:  "bias_and_imprecision",
			cont:  continuous(4, 10),
			bias:  meta.BiasResult{K: 4, EggerP: 0.01},
			level: Low,
			steps: 2,
		},
		{
			name:  "everything_wrong",
			cont:  continuous(4, 90),
			bias:  meta.BiasResult{K: 4, EggerP: 0.01},
			level: VeryLow,
			steps: 4,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := AssessContinuous(tt.cont, tt.bias)
			assert.Equal(t, tt.level, a.Level)
			assert.Equal(t, tt.steps, a.Downgrade)
			assert.NotEmpty(t, a.Reasons)
		})
	}
}

func TestAssessContinuousInsufficient(t *testing.T) {
	t.Parallel()

	a := AssessContinuous(continuous(2, meta.Undefined), meta.BiasResult{K: 2})
	assert.Equal(t, VeryLow, a.Level)
	require.Len(t, a.Reasons, 1)
	assert.Contains(t, a.Reasons[0], "too few studies")
}

func TestAssessContinuousIgnoresUndefinedBiasP(t *testing.T) {
	t.Parallel()

	a := AssessContinuous(continuous(12, 10), meta.BiasResult{K: 12, EggerP: meta.Undefined})
	assert.Equal(t, High, a.Level)
}

func TestAssessDiagnosticAlwaysFlagsIndirectness(t *testing.T) {
	t.Parallel()

	a := AssessDiagnostic(meta.DiagnosticResult{K: 10, Sens: 0.9, Spec: 0.85})
	assert.Equal(t, Moderate, a.Level)
	assert.Contains(t, a.Reasons[len(a.Reasons)-1], "indirectness")

	small := AssessDiagnostic(meta.DiagnosticResult{K: 3, Sens: 0.9, Spec: 0.85})
	assert.Equal(t, Low, small.Level)
}
