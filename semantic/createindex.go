package semantic

import (
	"fmt"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/diag"
	"github.com/nql-lang/nqlsem/qbt"
)

// analyzeCreateIndex implements §4.8: CREATE UNIQUE? INDEX name ON table
// (USING method)? (WITH params)? (cols-with-sort). The grammar is parsed
// positionally, with each optional clause detected by its child's Kind
// rather than a fixed index, per §4.8's "Parsed positionally with
// optional-detection by child kind."
func (a *Analyzer) analyzeCreateIndex(ctx *Context, n *ast.Node) (*qbt.CreateIndexStmt, error) {
	stmt := &qbt.CreateIndexStmt{Name: n.Text}

	var tableFound bool
	var sortNodes []*ast.Node
	for _, c := range n.Children {
		switch c.Kind {
		case ast.Unique:
			stmt.Unique = true
		case ast.Table:
			stmt.Table = c.Text
			tableFound = true
		case ast.IndexMethod:
			method, ok := qbt.ParseIndexMethod(c.Text)
			if !ok {
				return nil, &diag.NQLSyntax{Msg: fmt.Sprintf("unknown index method %q", c.Text)}
			}
			stmt.Method = method
		case ast.Params:
			stmt.Params = parseParams(c)
		case ast.SortKey:
			sortNodes = append(sortNodes, c)
		default:
			return nil, &diag.InvalidQuery{Msg: fmt.Sprintf("unexpected CREATE INDEX child %s", c.Kind), Node: c}
		}
	}
	if !tableFound {
		return nil, &diag.InvalidQuery{Msg: "CREATE INDEX missing target table", Node: n}
	}
	if _, err := ctx.Catalog.GetTable(stmt.Table); err != nil {
		return nil, invalidTable(ctx, stmt.Table, err, n)
	}
	ctx.RenameTable(stmt.Table, stmt.Table)

	specs := make([]qbt.SortSpec, 0, len(sortNodes))
	for _, sn := range sortNodes {
		spec, err := a.parseSortKey(ctx, sn)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	stmt.SortSpecs = specs
	return stmt, nil
}

// parseParams reads a PARAMS node's PARAM children, each a two-child node
// of (key, value) text, into a flat map — backing the WITH clause in both
// CREATE INDEX (§4.8) and CREATE TABLE's schema form (§4.9).
func parseParams(n *ast.Node) map[string]string {
	if len(n.Children) == 0 {
		return nil
	}
	params := make(map[string]string, len(n.Children))
	for _, p := range n.Children {
		if p.Kind != ast.Param || len(p.Children) < 2 {
			continue
		}
		params[p.Children[0].Text] = p.Children[1].Text
	}
	return params
}
