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

// TestCreateIndexWithOptions is spec §8 scenario 6: CREATE UNIQUE INDEX i
// ON t USING btree WITH ('fill'='0.8') (a ASC, b DESC NULLS FIRST).
func TestCreateIndexWithOptions(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.CreateIndex, "i",
		ast.New(ast.Unique, ""),
		ast.New(ast.Table, "t"),
		ast.New(ast.IndexMethod, "btree"),
		ast.New(ast.Params, "", ast.New(ast.Param, "", ident("fill"), ident("0.8"))),
		ast.New(ast.SortKey, "", col("a"), ast.New(ast.Order, "", ast.New(ast.Asc, ""))),
		ast.New(ast.SortKey, "", col("b"),
			ast.New(ast.Order, "", ast.New(ast.Desc, "")),
			ast.New(ast.NullOrder, "", ast.New(ast.First, ""))),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	stmt, ok := result.(*qbt.CreateIndexStmt)
	require.True(t, ok)
	assert.Equal(t, "i", stmt.Name)
	assert.True(t, stmt.Unique)
	assert.Equal(t, "t", stmt.Table)
	assert.Equal(t, qbt.BTree, stmt.Method)
	assert.Equal(t, map[string]string{"fill": "0.8"}, stmt.Params)
	require.Len(t, stmt.SortSpecs, 2)
	assert.False(t, stmt.SortSpecs[0].Descending)
	assert.True(t, stmt.SortSpecs[1].Descending)
	assert.True(t, stmt.SortSpecs[1].NullsFirst)
}

func TestCreateIndexUnknownMethod(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.CreateIndex, "i",
		ast.New(ast.Table, "t"),
		ast.New(ast.IndexMethod, "quadtree"),
		ast.New(ast.SortKey, "", col("a")),
	)
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	_, err := a.Analyze(tree)
	require.Error(t, err)
}

func TestCreateTableSchemaForm(t *testing.T) {
	cat := newCatalog()
	tableDef := ast.New(ast.TableDef, "",
		ast.New(ast.ColumnDef, "id", ast.New(ast.Int, "")),
		ast.New(ast.ColumnDef, "name", ast.New(ast.Text, "")),
	)
	tree := ast.New(ast.CreateTable, "people", tableDef, ast.New(ast.String, "csv"), ast.New(ast.String, "/data/people"))
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	stmt, ok := result.(*qbt.CreateTableStmt)
	require.True(t, ok)
	assert.False(t, stmt.IsCTAS())
	assert.Equal(t, "people", stmt.Name)
	assert.Equal(t, "csv", stmt.StoreKind)
	assert.Equal(t, "/data/people", stmt.Path)
	require.Len(t, stmt.Columns, 2)
	assert.Equal(t, "id", stmt.Columns[0].Name)
}

func TestCreateTableUnknownColumnType(t *testing.T) {
	cat := newCatalog()
	tableDef := ast.New(ast.TableDef, "", ast.New(ast.ColumnDef, "id", ast.New(ast.Invalid, "")))
	tree := ast.New(ast.CreateTable, "people", tableDef, ast.New(ast.String, "csv"), ast.New(ast.String, "/data/people"))
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	_, err := a.Analyze(tree)
	require.Error(t, err)
}

func TestCreateTableAsSelect(t *testing.T) {
	cat := newCatalog()
	tree := ast.New(ast.CreateTable, "derived", simpleSelect())
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	result, err := a.Analyze(tree)
	require.NoError(t, err)
	stmt, ok := result.(*qbt.CreateTableStmt)
	require.True(t, ok)
	assert.True(t, stmt.IsCTAS())
	require.NotNil(t, stmt.Select)
	assert.Len(t, stmt.Select.Targets, 1)
}

func TestUnrecognizedTopLevelKindIsFatal(t *testing.T) {
	cat := newCatalog()
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	_, err := a.Analyze(&ast.Node{Kind: ast.Kind(9999)})
	require.Error(t, err)
}

func TestClassifyOnlyStatementsReturnNilTree(t *testing.T) {
	cat := newCatalog()
	a := semantic.NewAnalyzer(cat, zap.NewNop())
	tree, err := a.Analyze(ast.New(ast.Store, ""))
	require.NoError(t, err)
	assert.Nil(t, tree)
}
