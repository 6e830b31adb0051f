package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nql-lang/nqlsem/semantic"
)

func TestContextRenameTableIdentityMapping(t *testing.T) {
	cat := newCatalog()
	ctx := semantic.NewContext(cat)
	ctx.RenameTable("t", "t")
	actual, ok := ctx.GetActualTableName("t")
	require.True(t, ok)
	assert.Equal(t, "t", actual)
	assert.Equal(t, []string{"t"}, ctx.GetInputTables())
}

func TestContextRenameTableAlias(t *testing.T) {
	cat := newCatalog()
	ctx := semantic.NewContext(cat)
	ctx.RenameTable("t1j", "a")
	ctx.RenameTable("t2j", "b")
	assert.ElementsMatch(t, []string{"a", "b"}, ctx.GetInputTables())
	actual, ok := ctx.GetActualTableName("a")
	require.True(t, ok)
	assert.Equal(t, "t1j", actual)
}

// TestMergeContextUnionsAndOrsAggregation covers spec §6's MergeContext
// contract used by the set-operation analyzer (§4.7).
func TestMergeContextUnionsAndOrsAggregation(t *testing.T) {
	cat := newCatalog()
	parent := semantic.NewContext(cat)
	child := semantic.NewContext(cat)
	child.RenameTable("t", "t")
	child.Aggregation = true

	parent.MergeContext(child)
	assert.Equal(t, []string{"t"}, parent.GetInputTables())
	assert.True(t, parent.Aggregation)
}

func TestMergeContextDoesNotDuplicateInputTables(t *testing.T) {
	cat := newCatalog()
	parent := semantic.NewContext(cat)
	parent.RenameTable("t", "t")
	child := semantic.NewContext(cat)
	child.RenameTable("t", "t")

	parent.MergeContext(child)
	assert.Equal(t, []string{"t"}, parent.GetInputTables())
}
