package descriptive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

func row(method, domain, scale string, year float64, r2 study.Measure) study.MetricsRow {
	return study.MetricsRow{
		AIMethod: method,
		Domain:   domain,
		Scale:    scale,
		Year:     study.Some(year),
		R2:       r2,
		Included: true,
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	table := study.Table{
		row("ann", "beer", "laboratory", 2020, study.Some(0.9)),
		row("ann", "wine", "pilot", 2021, study.Some(0.8)),
		row("svm", "beer", "laboratory", 2020, study.None()),
		{AIMethod: "pls", Domain: "dairy", Scale: "pilot", Included: false}, // not eligible
	}

	s := Summarize(table)
	assert.Equal(t, 4, s.Studies)
	assert.Equal(t, 3, s.Eligible)

	require.Len(t, s.Methods, 2)
	assert.Equal(t, Count{Label: "ann", N: 2}, s.Methods[0])
	assert.Equal(t, Count{Label: "svm", N: 1}, s.Methods[1])

	require.Len(t, s.Domains, 2)
	assert.Equal(t, Count{Label: "beer", N: 2}, s.Domains[0])

	require.Len(t, s.Years, 2)
	assert.Equal(t, Count{Label: "2020", N: 2}, s.Years[0])
	assert.Equal(t, Count{Label: "2021", N: 1}, s.Years[1])

	assert.Equal(t, 2, s.Reported[study.MetricR2])
}

func TestSummarizeTiesBreakAlphabetically(t *testing.T) {
	t.Parallel()

	table := study.Table{
		row("svm", "wine", "pilot", 2020, study.Some(0.9)),
		row("ann", "beer", "pilot", 2020, study.Some(0.9)),
	}
	s := Summarize(table)
	require.Len(t, s.Methods, 2)
	assert.Equal(t, "ann", s.Methods[0].Label)
	assert.Equal(t, "svm", s.Methods[1].Label)
}

func TestSummarizeEmptyTable(t *testing.T) {
	t.Parallel()

	s := Summarize(nil)
	assert.Zero(t, s.Studies)
	assert.Zero(t, s.Eligible)
	assert.Empty(t, s.Methods)
}
