package semantic

import (
	"fmt"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/diag"
	"github.com/nql-lang/nqlsem/qbt"
)

// analyzeOrderBy implements the ORDER BY clause named in §4.2: each child
// is a SORT_KEY node resolved by parseSortKey.
func (a *Analyzer) analyzeOrderBy(ctx *Context, n *ast.Node) ([]qbt.SortSpec, error) {
	specs := make([]qbt.SortSpec, 0, len(n.Children))
	for _, c := range n.Children {
		spec, err := a.parseSortKey(ctx, c)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// parseSortKey resolves one SORT_KEY node, shared by ORDER BY (§4.2) and
// CREATE INDEX's column list (§4.8/scenario 6). Defaults are ascending,
// nulls-last (spec §8) unless an ORDER or NULL_ORDER child overrides them.
func (a *Analyzer) parseSortKey(ctx *Context, n *ast.Node) (qbt.SortSpec, error) {
	if n.Kind != ast.SortKey {
		return qbt.SortSpec{}, &diag.InvalidQuery{Msg: fmt.Sprintf("expected SORT_KEY, got %s", n.Kind), Node: n}
	}
	if len(n.Children) == 0 || n.Children[0].Kind != ast.FieldName {
		return qbt.SortSpec{}, &diag.InvalidQuery{Msg: "SORT_KEY missing a field name", Node: n}
	}
	col, err := a.resolveColumn(ctx, n.Children[0])
	if err != nil {
		return qbt.SortSpec{}, err
	}
	spec := qbt.NewSortSpec(col)
	for _, c := range n.Children[1:] {
		switch c.Kind {
		case ast.Order:
			if len(c.Children) > 0 && c.Children[0].Kind == ast.Desc {
				spec.Descending = true
			}
		case ast.NullOrder:
			if len(c.Children) > 0 && c.Children[0].Kind == ast.First {
				spec.NullsFirst = true
			}
		default:
			return qbt.SortSpec{}, &diag.InvalidQuery{Msg: fmt.Sprintf("unexpected SORT_KEY child %s", c.Kind), Node: c}
		}
	}
	return spec, nil
}
