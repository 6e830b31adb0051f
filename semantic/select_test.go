package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/diag"
	"github.com/nql-lang/nqlsem/qbt"
	"github.com/nql-lang/nqlsem/semantic"
)

func col(name string) *ast.Node { return ast.New(ast.FieldName, name) }

func ident(text string) *ast.Node { return ast.New(ast.String, text) }

func selectItem(expr *ast.Node, alias string) *ast.Node {
	if alias == "" {
		return ast.New(ast.Column, "", expr)
	}
	return ast.New(ast.Column, "", expr, ast.New(ast.Alias, "", ident(alias)))
}

func table(name string, alias string) *ast.Node {
	if alias == "" {
		return ast.New(ast.Table, name)
	}
	return ast.New(ast.Table, name, ast.New(ast.Alias, "", ident(alias)))
}

// TestBareColumnResolves is spec §8 scenario 1: SELECT a FROM t.
func TestBareColumnResolves(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", selectItem(col("a"), "")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block, ok := result.(*qbt.QueryBlock)
	require.True(t, ok)
	require.Len(t, block.Targets, 1)
	field, ok := block.Targets[0].Expr.(*qbt.Field)
	require.True(t, ok)
	assert.Equal(t, "t.a", field.Col.Qualified())
	require.Len(t, block.FromTables, 1)
	assert.Equal(t, "t", block.FromTables[0].EffectiveName())
}

// TestAmbiguousBareColumn is spec §8 scenario 2: SELECT x FROM t1, t2 where
// both tables have a column x.
func TestAmbiguousBareColumn(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t1", ""), table("t2", "")),
		ast.New(ast.SelList, "", selectItem(col("x"), "")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	_, err := a.Analyze(tree)
	require.Error(t, err)
	var amb *diag.AmbiguousField
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, "x", amb.Name)
}

func TestSelectStar(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", ast.New(ast.ColumnAll, "*")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	assert.True(t, block.ProjectAll)
	assert.Empty(t, block.Targets)
}

func TestSelectListAlias(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", selectItem(col("a"), "a_renamed")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	require.Len(t, block.Targets, 1)
	assert.Equal(t, "a_renamed", block.Targets[0].Alias)
}

func TestUnknownTableIsInvalidQuery(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("nope", "")),
		ast.New(ast.SelList, "", ast.New(ast.ColumnAll, "*")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	_, err := a.Analyze(tree)
	require.Error(t, err)
	var iq *diag.InvalidQuery
	require.ErrorAs(t, err, &iq)
}

func TestAliasedTableEffectiveName(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "tt")),
		ast.New(ast.SelList, "", selectItem(col("tt.a"), "")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	require.Len(t, block.FromTables, 1)
	assert.Equal(t, "tt", block.FromTables[0].EffectiveName())
	field := block.Targets[0].Expr.(*qbt.Field)
	assert.Equal(t, "t.a", field.Col.Qualified())
}

// TestIdempotentAnalysis exercises spec §8's "Analyzing the same (AST,
// Catalog) twice produces structurally equal QBTs" by re-resolving the
// same column twice in independently analyzed trees.
func TestIdempotentAnalysis(t *testing.T) {
	cat := newCatalog()
	build := func() *ast.Node {
		return ast.New(ast.Select, "",
			ast.New(ast.From, "", table("t", "")),
			ast.New(ast.SelList, "", selectItem(col("a"), "")),
		)
	}
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	r1, err := a.Analyze(build())
	require.NoError(t, err)
	r2, err := a.Analyze(build())
	require.NoError(t, err)
	b1, b2 := r1.(*qbt.QueryBlock), r2.(*qbt.QueryBlock)
	f1 := b1.Targets[0].Expr.(*qbt.Field).Col
	f2 := b2.Targets[0].Expr.(*qbt.Field).Col
	assert.True(t, f1.Equal(f2))
}
