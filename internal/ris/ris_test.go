package ris

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRIS = `TY  - JOUR
TI  - Machine learning prediction of ethanol yield in beer fermentation
AU  - Kowalski, A.
AU  - Smith, B.
PY  - 2021/03//
DO  - https://doi.org/10.1000/ferm.2021.001
JO  - Journal of Fermentation Science
AB  - We trained an artificial neural network on pilot-scale data.
  The model achieved R2 = 0.91 and RMSE of 0.12.
KW  - fermentation
KW  - neural network
ER  -
TY  - JOUR
TI  - Support vector machines for wine quality
PY  - 2019
AB  - <p>An SVM classifier reached <b>accuracy of 87%</b>.</p>
ER  -
`

func TestParseRecords(t *testing.T) {
	t.Parallel()

	records, err := Parse(strings.NewReader(sampleRIS), "sample.ris")
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Machine learning prediction of ethanol yield in beer fermentation", first.Title)
	assert.Equal(t, []string{"Kowalski, A.", "Smith, B."}, first.Authors)
	assert.Equal(t, 2021, first.Year)
	assert.Equal(t, "10.1000/ferm.2021.001", first.DOI)
	assert.Equal(t, "Journal of Fermentation Science", first.Journal)
	assert.Equal(t, []string{"fermentation", "neural network"}, first.Keywords)
	assert.Equal(t, "sample.ris", first.Source)

	// The continuation line is folded into the abstract.
	assert.Contains(t, first.Abstract, "R2 = 0.91")
	assert.Contains(t, first.Abstract, "neural network on pilot-scale data. The model")
}

func TestParseStripsHTMLFromAbstract(t *testing.T) {
	t.Parallel()

	records, err := Parse(strings.NewReader(sampleRIS), "sample.ris")
	require.NoError(t, err)

	second := records[1]
	assert.NotContains(t, second.Abstract, "<p>")
	assert.NotContains(t, second.Abstract, "<b>")
	assert.Contains(t, second.Abstract, "accuracy of 87%")
}

func TestParseSkipsEmptyRecords(t *testing.T) {
	t.Parallel()

	input := "TY  - JOUR\nER  -\nTY  - JOUR\nTI  - Kept\nER  -\n"
	records, err := Parse(strings.NewReader(input), "x.ris")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Kept", records[0].Title)
}

func TestParseToleratesMissingOpener(t *testing.T) {
	t.Parallel()

	input := "TI  - No TY tag here\nPY  - 2020\nER  -\n"
	records, err := Parse(strings.NewReader(input), "x.ris")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2020, records[0].Year)
}
