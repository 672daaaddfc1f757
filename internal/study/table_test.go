package study

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRoundTrip(t *testing.T) {
	t.Parallel()

	table := Table{
		{
			StudyID:  "10.1/a",
			Title:    "Neural network beer model",
			Year:     Some(2021),
			R2:       Some(0.91),
			RMSE:     Some(0.12),
			Acc:      Some(0.87),
			N:        Some(120),
			AIMethod: "ann",
			Domain:   "beer",
			Scale:    "pilot",
			Included: true,
		},
		{
			StudyID:  "title:svm wine",
			Title:    "SVM wine study, with a comma",
			Year:     Some(2019),
			AIMethod: "svm",
			Domain:   "wine",
			Scale:    "unspecified",
			Included: false,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, table))

	got, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestWriteTableMissingCellsEmpty(t *testing.T) {
	t.Parallel()

	table := Table{{StudyID: "a", AIMethod: "ann", Domain: "beer", Scale: "pilot", Included: true}}
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, table))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.Contains(lines[1], ",,"), "missing measures should render as empty cells")
}

func TestReadTableRejectsBadHeader(t *testing.T) {
	t.Parallel()

	_, err := ReadTable(strings.NewReader("study_id,title\nx,y\n"))
	assert.Error(t, err)
}

func TestLoadTableRoundTrip(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/metrics.csv"
	table := Table{{StudyID: "a", R2: Some(0.8), AIMethod: "ann", Domain: "beer", Scale: "pilot", Included: true}}
	require.NoError(t, SaveTable(path, table))

	got, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestMetricValuesPairsIndices(t *testing.T) {
	t.Parallel()

	table := Table{
		{R2: Some(0.8)},
		{},
		{R2: Some(0.9)},
	}
	vals, idx := table.MetricValues(MetricR2)
	assert.Equal(t, []float64{0.8, 0.9}, vals)
	assert.Equal(t, []int{0, 2}, idx)
}

func TestParseModerator(t *testing.T) {
	t.Parallel()

	m, ok := ParseModerator("scale")
	require.True(t, ok)
	assert.Equal(t, ModeratorScale, m)

	_, ok = ParseModerator("bogus")
	assert.False(t, ok)
}
