package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/datum"
	"github.com/nql-lang/nqlsem/diag"
	"github.com/nql-lang/nqlsem/qbt"
	"github.com/nql-lang/nqlsem/semantic"
)

// TestTypeInferredComparison is spec §8 scenario 3: the RHS literal in
// `a = 3` against a LONG column is built as Const(Long(3)), not Int, and
// operand order (Field on the left) is preserved.
func TestTypeInferredComparison(t *testing.T) {
	cat := newCatalog()
	where := ast.New(ast.Where, "", ast.New(ast.Equal, "", col("a"), ast.New(ast.Digit, "3")))
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("tlong", "")),
		ast.New(ast.SelList, "", selectItem(col("a"), "")),
		where,
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	bin, ok := block.Where.(*qbt.Binary)
	require.True(t, ok)
	assert.Equal(t, qbt.OpEq, bin.Op)
	_, lhsIsField := bin.LHS.(*qbt.Field)
	assert.True(t, lhsIsField, "lhs should remain the field")
	rhs, ok := bin.RHS.(*qbt.Const)
	require.True(t, ok)
	assert.Equal(t, datum.Long, rhs.Value.Type())
	assert.EqualValues(t, 3, rhs.Value.Value())
}

func TestLiteralOnLeftPreservesOrder(t *testing.T) {
	cat := newCatalog()
	where := ast.New(ast.Where, "", ast.New(ast.Lth, "", ast.New(ast.Digit, "5"), col("a")))
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", ast.New(ast.ColumnAll, "*")),
		where,
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	bin := block.Where.(*qbt.Binary)
	_, lhsIsConst := bin.LHS.(*qbt.Const)
	assert.True(t, lhsIsConst, "literal should stay on the left")
	_, rhsIsField := bin.RHS.(*qbt.Field)
	assert.True(t, rhsIsField)
}

func TestLikeBuildsFieldAndPattern(t *testing.T) {
	cat := newCatalog()
	where := ast.New(ast.Where, "", ast.New(ast.Like, "", col("b"), ast.New(ast.String, "foo%")))
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", ast.New(ast.ColumnAll, "*")),
		where,
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	like, ok := block.Where.(*qbt.Like)
	require.True(t, ok)
	assert.False(t, like.Not)
	assert.Equal(t, "t.b", like.Field.Col.Qualified())
	assert.Equal(t, "foo%", like.Pattern.Value.Value())
}

func TestNotLike(t *testing.T) {
	cat := newCatalog()
	where := ast.New(ast.Where, "", ast.New(ast.Like, "", ast.New(ast.Not, ""), col("b"), ast.New(ast.String, "foo%")))
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", ast.New(ast.ColumnAll, "*")),
		where,
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	like := block.Where.(*qbt.Like)
	assert.True(t, like.Not)
}

func TestCaseWithBranchesAndElse(t *testing.T) {
	cat := newCatalog()
	caseExpr := ast.New(ast.Case, "",
		ast.New(ast.When, "",
			ast.New(ast.Equal, "", col("a"), ast.New(ast.Digit, "1")),
			ast.New(ast.String, "one")),
		ast.New(ast.Else, "", ast.New(ast.String, "other")))
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", selectItem(caseExpr, "")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	cw, ok := block.Targets[0].Expr.(*qbt.CaseWhen)
	require.True(t, ok)
	require.Len(t, cw.Branches, 1)
	require.NotNil(t, cw.Else)
}

// TestCaseWithNoBranches is spec §8's boundary case: zero WHEN branches and
// no ELSE is still a valid (if degenerate) CASE.
func TestCaseWithNoBranches(t *testing.T) {
	cat := newCatalog()
	caseExpr := ast.New(ast.Case, "")
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", selectItem(caseExpr, "")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	cw := block.Targets[0].Expr.(*qbt.CaseWhen)
	assert.Empty(t, cw.Branches)
	assert.Nil(t, cw.Else)
}

func TestAggregateFunctionSetsFlag(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", selectItem(ast.New(ast.CountRows, ""), "")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	assert.True(t, block.IsAggregation)
	_, ok := block.Targets[0].Expr.(*qbt.AggFuncCall)
	assert.True(t, ok)
}

func TestCountValResolvesAny(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", selectItem(ast.New(ast.CountVal, "", col("a")), "")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	assert.True(t, block.IsAggregation)
}

func TestUndefinedFunction(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", selectItem(ast.New(ast.Function, "nonexistent", col("a")), "")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	_, err := a.Analyze(tree)
	require.Error(t, err)
	var uf *diag.UndefinedFunction
	require.ErrorAs(t, err, &uf)
}

func TestGeneralFunctionCall(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.Select, "",
		ast.New(ast.From, "", table("t", "")),
		ast.New(ast.SelList, "", selectItem(ast.New(ast.Function, "upper", col("b")), "")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	block := result.(*qbt.QueryBlock)
	assert.False(t, block.IsAggregation)
	fc, ok := block.Targets[0].Expr.(*qbt.FuncCall)
	require.True(t, ok)
	assert.Equal(t, "upper", fc.Desc.Name)
}
