package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

func subgroupTable(groups map[string][]float64, order []string) study.Table {
	var table study.Table
	for _, g := range order {
		for _, v := range groups[g] {
			table = append(table, study.MetricsRow{
				R2:       study.Some(v),
				AIMethod: g,
				Included: true,
			})
		}
	}
	return table
}

func TestAnalyzeSubgroupsSkipsSmallGroupsButCountsThem(t *testing.T) {
	t.Parallel()

	// Three labels with sizes 5, 1 and 4: the singleton is excluded from
	// pooling yet still occupies a slot in NGroups and DFBetween.
	table := subgroupTable(map[string][]float64{
		"ANN": {0.80, 0.82, 0.85, 0.79, 0.83},
		"SVM": {0.60},
		"RF":  {0.70, 0.74, 0.72, 0.75},
	}, []string{"ANN", "SVM", "RF"})

	res := AnalyzeSubgroups(table, study.MetricR2, study.ModeratorAIMethod)

	assert.Equal(t, 3, res.NGroups)
	assert.Equal(t, 2, res.DFBetween)
	require.Len(t, res.Subgroups, 2)
	assert.Equal(t, "ANN", res.Subgroups[0].Group)
	assert.Equal(t, "RF", res.Subgroups[1].Group)
	assert.Equal(t, 5, res.Subgroups[0].K)
	assert.Equal(t, 4, res.Subgroups[1].K)
}

func TestAnalyzeSubgroupsHeterogeneityIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		groups map[string][]float64
		order  []string
	}{
		{
			name: "two_balanced_groups",
			groups: map[string][]float64{
				"lab":        {0.81, 0.84, 0.86},
				"industrial": {0.60, 0.65, 0.58},
			},
			order: []string{"lab", "industrial"},
		},
		{
			name: "skipped_singleton",
			groups: map[string][]float64{
				"ANN": {0.80, 0.82, 0.85, 0.79, 0.83},
				"SVM": {0.60},
				"RF":  {0.70, 0.74, 0.72, 0.75},
			},
			order: []string{"ANN", "SVM", "RF"},
		},
		{
			name: "single_group",
			groups: map[string][]float64{
				"ANN": {0.5, 0.6, 0.7, 0.8},
			},
			order: []string{"ANN"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := AnalyzeSubgroups(subgroupTable(tt.groups, tt.order), study.MetricR2, study.ModeratorAIMethod)

			// The decomposition identity holds exactly, by construction.
			assert.Equal(t, res.QTotal, res.QWithin+res.QBetween)
			assert.InDelta(t, res.QTotal, res.QWithin+res.QBetween, 1e-9)
			assert.GreaterOrEqual(t, res.QBetween, -1e-9)
		})
	}
}

func TestAnalyzeSubgroupsGroupStats(t *testing.T) {
	t.Parallel()

	table := subgroupTable(map[string][]float64{
		"beer": {0.70, 0.80},
		"wine": {0.50, 0.60, 0.70},
	}, []string{"beer", "wine"})

	res := AnalyzeSubgroups(table, study.MetricR2, study.ModeratorAIMethod)
	require.Len(t, res.Subgroups, 2)

	beer := res.Subgroups[0]
	assert.InDelta(t, 0.75, beer.Mean, 1e-12)
	// Sample variance of {0.70, 0.80} is 0.005; Q_grp = (k-1) * var.
	assert.InDelta(t, 0.005, beer.Q, 1e-12)
	assert.LessOrEqual(t, beer.CILow, beer.Mean)
	assert.GreaterOrEqual(t, beer.CIHigh, beer.Mean)
}

func TestAnalyzeSubgroupsSingleGroupHasUndefinedP(t *testing.T) {
	t.Parallel()

	table := subgroupTable(map[string][]float64{"ANN": {0.5, 0.6, 0.7}}, []string{"ANN"})
	res := AnalyzeSubgroups(table, study.MetricR2, study.ModeratorAIMethod)

	assert.Equal(t, 1, res.NGroups)
	assert.Equal(t, 0, res.DFBetween)
	assert.False(t, IsDefined(res.PBetween))
}

func TestAnalyzeSubgroupsDropsMissingValues(t *testing.T) {
	t.Parallel()

	table := study.Table{
		{R2: study.Some(0.8), AIMethod: "ANN", Included: true},
		{AIMethod: "ANN", Included: true}, // missing R2: dropped entirely
		{R2: study.Some(0.7), AIMethod: "ANN", Included: true},
	}
	res := AnalyzeSubgroups(table, study.MetricR2, study.ModeratorAIMethod)
	require.Len(t, res.Subgroups, 1)
	assert.Equal(t, 2, res.Subgroups[0].K)
}

func TestAnalyzeSubgroupsSkipsRowsNotFlaggedForPooling(t *testing.T) {
	t.Parallel()

	table := study.Table{
		{R2: study.Some(0.80), AIMethod: "ANN", Included: true},
		{R2: study.Some(0.85), AIMethod: "ANN", Included: true},
		{R2: study.Some(0.70), AIMethod: "SVM", Included: true},
		{R2: study.Some(0.75), AIMethod: "SVM", Included: true},
		{R2: study.Some(0.50), AIMethod: "Fuzzy", Included: false},
	}

	res := AnalyzeSubgroups(table, study.MetricR2, study.ModeratorAIMethod)
	assert.Equal(t, 2, res.NGroups)
	require.Len(t, res.Subgroups, 2)
	assert.Equal(t, "ANN", res.Subgroups[0].Group)
	assert.Equal(t, "SVM", res.Subgroups[1].Group)
}
