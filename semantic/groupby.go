package semantic

import (
	"fmt"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/diag"
	"github.com/nql-lang/nqlsem/qbt"
)

// analyzeGroupBy implements §4.6. An EMPTY_GROUPING_SET first child marks
// the clause empty and allocates no elements (spec §8's boundary case).
// Otherwise CUBE/ROLLUP children each become their own GroupElement, while
// bare FIELD_NAME children accumulate into a single trailing GROUPBY
// element that is only emitted if non-empty.
func (a *Analyzer) analyzeGroupBy(ctx *Context, block *qbt.QueryBlock, n *ast.Node) error {
	gb := &qbt.GroupByClause{}
	if len(n.Children) > 0 && n.Children[0].Kind == ast.EmptyGroupingSet {
		gb.EmptyGroupingSet = true
		block.GroupBy = gb
		return nil
	}

	var trailing []qbt.Column
	flushTrailing := func() {
		if len(trailing) > 0 {
			gb.Groups = append(gb.Groups, qbt.GroupElement{Kind: qbt.GroupBy, Columns: trailing})
			trailing = nil
		}
	}

	for _, c := range n.Children {
		switch c.Kind {
		case ast.Cube:
			cols, err := a.resolveFieldList(ctx, c.Children)
			if err != nil {
				return err
			}
			gb.Groups = append(gb.Groups, qbt.GroupElement{Kind: qbt.GroupCube, Columns: cols})
		case ast.Rollup:
			cols, err := a.resolveFieldList(ctx, c.Children)
			if err != nil {
				return err
			}
			gb.Groups = append(gb.Groups, qbt.GroupElement{Kind: qbt.GroupRollup, Columns: cols})
		case ast.FieldName:
			col, err := a.resolveColumn(ctx, c)
			if err != nil {
				return err
			}
			trailing = append(trailing, col)
		default:
			return &diag.InvalidQuery{Msg: fmt.Sprintf("unexpected GROUP BY child %s", c.Kind), Node: c}
		}
	}
	flushTrailing()
	block.GroupBy = gb
	return nil
}

// resolveFieldList resolves each FIELD_NAME child of a CUBE/ROLLUP node.
func (a *Analyzer) resolveFieldList(ctx *Context, children []*ast.Node) ([]qbt.Column, error) {
	cols := make([]qbt.Column, 0, len(children))
	for _, c := range children {
		col, err := a.resolveColumn(ctx, c)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}
