package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/qbt"
	"github.com/nql-lang/nqlsem/semantic"
)

// TestEmptyGroupingSet is spec §8's boundary case: EMPTY_GROUPING_SET marks
// the clause empty with no group elements.
func TestEmptyGroupingSet(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", ast.New(ast.ColumnAll, "*")),
		ast.New(ast.GroupBy, "", ast.New(ast.EmptyGroupingSet, "")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	require.NotNil(t, block.GroupBy)
	assert.True(t, block.GroupBy.EmptyGroupingSet)
	assert.Empty(t, block.GroupBy.Groups)
}

func TestGroupByTrailingFields(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", ast.New(ast.ColumnAll, "*")),
		ast.New(ast.GroupBy, "", col("a"), col("b")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	require.Len(t, block.GroupBy.Groups, 1)
	g := block.GroupBy.Groups[0]
	assert.Equal(t, qbt.GroupBy, g.Kind)
	require.Len(t, g.Columns, 2)
	assert.Equal(t, "t.a", g.Columns[0].Qualified())
	assert.Equal(t, "t.b", g.Columns[1].Qualified())
}

func TestGroupByCubeAndRollup(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", ast.New(ast.ColumnAll, "*")),
		ast.New(ast.GroupBy, "",
			ast.New(ast.Cube, "", col("a")),
			ast.New(ast.Rollup, "", col("b"))),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	require.Len(t, block.GroupBy.Groups, 2)
	assert.Equal(t, qbt.GroupCube, block.GroupBy.Groups[0].Kind)
	assert.Equal(t, qbt.GroupRollup, block.GroupBy.Groups[1].Kind)
}

// TestHavingSetsAggregationFlag checks IsAggregation derives from HAVING
// too, not just the select list (spec §3's invariant).
func TestHavingSetsAggregationFlag(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", selectItem(col("a"), "")),
		ast.New(ast.GroupBy, "", col("a")),
		ast.New(ast.Having, "", ast.New(ast.Gth, "", ast.New(ast.CountRows, ""), ast.New(ast.Digit, "1"))),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	assert.True(t, block.IsAggregation)
}

func TestOrderByDefaultsAscNullsLast(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", ast.New(ast.ColumnAll, "*")),
		ast.New(ast.OrderBy, "", ast.New(ast.SortKey, "", col("a"))),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	require.Len(t, block.SortKeys, 1)
	assert.False(t, block.SortKeys[0].Descending)
	assert.False(t, block.SortKeys[0].NullsFirst)
}

func TestOrderByExplicitDescNullsFirst(t *testing.T) {
	cat := newCatalog()
	sortKey := ast.New(ast.SortKey, "", col("a"),
		ast.New(ast.Order, "", ast.New(ast.Desc, "")),
		ast.New(ast.NullOrder, "", ast.New(ast.First, "")))
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", ast.New(ast.ColumnAll, "*")),
		ast.New(ast.OrderBy, "", sortKey),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	assert.True(t, block.SortKeys[0].Descending)
	assert.True(t, block.SortKeys[0].NullsFirst)
}

// TestClauseOrderIndependence verifies spec §4.2: WHERE appearing before
// FROM in AST order still resolves correctly, because FROM is always
// analyzed first regardless of position.
func TestClauseOrderIndependence(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.Where, "", ast.New(ast.Equal, "", col("a"), ast.New(ast.Digit, "1"))),
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", selectItem(col("a"), "")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	require.NotNil(t, block.Where)
}
