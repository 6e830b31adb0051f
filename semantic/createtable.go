package semantic

import (
	"fmt"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/catalog"
	"github.com/nql-lang/nqlsem/datum"
	"github.com/nql-lang/nqlsem/diag"
	"github.com/nql-lang/nqlsem/qbt"
)

// scalarTypeOf maps a TABLE_DEF column-type token to a datum.Type, per
// §4.9: BOOL, BYTE, INT, LONG, FLOAT, DOUBLE, TEXT/STRING, BYTES, IPv4.
var scalarTypeOf = map[ast.Kind]datum.Type{
	ast.Bool:   datum.Bool,
	ast.Byte:   datum.Byte,
	ast.Int:    datum.Int,
	ast.Long:   datum.Long,
	ast.Float:  datum.Float,
	ast.Double: datum.Double,
	ast.Text:   datum.String,
	ast.Bytes:  datum.Bytes,
	ast.IPv4:   datum.IPv4,
}

// analyzeCreateTable implements §4.9's two forms. A TABLE_DEF child selects
// the schema-defined form ({name, TABLE_DEF, store_type_str, path_str,
// (PARAMS)?}); a SELECT child selects CTAS ({name, SELECT_subtree}),
// analyzed as a nested QueryBlock in a fresh child Context.
func (a *Analyzer) analyzeCreateTable(ctx *Context, n *ast.Node) (*qbt.CreateTableStmt, error) {
	stmt := &qbt.CreateTableStmt{Name: n.Text}

	var tableDef, selectNode *ast.Node
	var rest []*ast.Node
	for _, c := range n.Children {
		switch c.Kind {
		case ast.TableDef:
			tableDef = c
		case ast.Select:
			selectNode = c
		default:
			rest = append(rest, c)
		}
	}

	switch {
	case selectNode != nil:
		childCtx := NewContext(ctx.Catalog)
		block, err := a.analyzeSelect(childCtx, selectNode)
		if err != nil {
			return nil, err
		}
		ctx.MergeContext(childCtx)
		stmt.Select = block
		return stmt, nil
	case tableDef != nil:
		cols, err := columnsFromTableDef(stmt.Name, tableDef)
		if err != nil {
			return nil, err
		}
		stmt.Columns = cols
		if len(rest) < 2 {
			return nil, &diag.NotSupportQuery{Msg: "CREATE TABLE schema form requires a store type and a path"}
		}
		stmt.StoreKind = rest[0].Text
		stmt.Path = rest[1].Text
		for _, c := range rest[2:] {
			if c.Kind == ast.Params {
				stmt.Options = parseParams(c)
			}
		}
		return stmt, nil
	default:
		return nil, &diag.NotSupportQuery{Msg: "CREATE TABLE body is neither a schema definition nor a SELECT"}
	}
}

func columnsFromTableDef(tableName string, n *ast.Node) ([]qbt.Column, error) {
	cols := make([]qbt.Column, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind != ast.ColumnDef || len(c.Children) == 0 {
			return nil, &diag.InvalidQuery{Msg: fmt.Sprintf("malformed column definition %s", c.Kind), Node: c}
		}
		typeNode := c.Children[0]
		typ, ok := scalarTypeOf[typeNode.Kind]
		if !ok {
			return nil, &diag.InvalidQuery{Msg: fmt.Sprintf("unknown column type %q", typeNode.Kind), Node: typeNode}
		}
		cols = append(cols, catalog.Column{TableID: tableName, Name: c.Text, ValType: typ})
	}
	return cols, nil
}
