package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilderMetadata(t *testing.T) {
	t.Parallel()

	base := stderrors.New("metrics table file missing")
	err := New(base).
		Component("analysis.pipeline").
		Category(CategoryFileIO).
		Context("path", "studies.csv").
		Build()

	assert.Equal(t, "metrics table file missing", err.Error())
	assert.Equal(t, "analysis.pipeline", err.Component)
	assert.Equal(t, CategoryFileIO, err.Category)
	assert.Equal(t, "studies.csv", err.GetContext()["path"])
	assert.True(t, Is(err, base))
}

func TestErrorBuilderDefaults(t *testing.T) {
	t.Parallel()

	err := Newf("bad year range %d-%d", 2030, 2010).Build()
	assert.Equal(t, ComponentUnknown, err.Component)
	assert.Equal(t, CategoryGeneric, err.Category)
	assert.Nil(t, err.GetContext())
}

func TestEnhancedErrorMatchesByCategory(t *testing.T) {
	t.Parallel()

	a := Newf("a").Category(CategoryDatabase).Build()
	b := Newf("b").Category(CategoryDatabase).Build()
	c := Newf("c").Category(CategoryValidation).Build()

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestContextCopyIsIndependent(t *testing.T) {
	t.Parallel()

	err := Newf("x").Context("k", 1).Build()
	ctx := err.GetContext()
	require.NotNil(t, ctx)
	ctx["k"] = 2
	assert.Equal(t, 1, err.GetContext()["k"])
}
