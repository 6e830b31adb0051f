package semantic

import (
	"fmt"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/diag"
	"github.com/nql-lang/nqlsem/qbt"
)

// analyzeJoin implements the Join Analyzer (§4.10): a left-deep walk that
// builds a JoinClause tree, adding every FromTable it touches to both the
// Context's alias map and block.FromTables.
//
// A JOIN node's children are, in order: a kind tag (NATURAL_JOIN,
// INNER_JOIN, CROSS_JOIN, or OUTER_JOIN — the latter with a nested LEFT/
// RIGHT child choosing LEFT_OUTER/RIGHT_OUTER), the left TABLE, the right
// operand (another JOIN to recurse into, or a TABLE leaf), and an optional
// qualifier (ON or USING).
func (a *Analyzer) analyzeJoin(ctx *Context, block *qbt.QueryBlock, n *ast.Node) (*qbt.JoinClause, error) {
	if len(n.Children) < 3 {
		return nil, &diag.InvalidQuery{Msg: "malformed JOIN node", Node: n}
	}
	kindNode := n.Children[0]
	kind, err := joinKindOf(kindNode)
	if err != nil {
		return nil, err
	}

	leftNode := n.Children[1]
	if leftNode.Kind != ast.Table {
		return nil, &diag.InvalidQuery{Msg: fmt.Sprintf("expected TABLE as JOIN left operand, got %s", leftNode.Kind), Node: leftNode}
	}
	left, err := a.resolveFromTable(ctx, leftNode)
	if err != nil {
		return nil, err
	}
	block.FromTables = append(block.FromTables, left)

	jc := &qbt.JoinClause{Kind: kind, Left: left}

	rightNode := n.Children[2]
	switch rightNode.Kind {
	case ast.Join:
		right, err := a.analyzeJoin(ctx, block, rightNode)
		if err != nil {
			return nil, err
		}
		jc.Right = right
	case ast.Table:
		right, err := a.resolveFromTable(ctx, rightNode)
		if err != nil {
			return nil, err
		}
		block.FromTables = append(block.FromTables, right)
		jc.Right = right
	default:
		return nil, &diag.InvalidQuery{Msg: fmt.Sprintf("expected JOIN or TABLE as right operand, got %s", rightNode.Kind), Node: rightNode}
	}

	if len(n.Children) > 3 {
		if err := a.attachQualifier(ctx, jc, n.Children[3]); err != nil {
			return nil, err
		}
	}
	if (kind == qbt.JoinNatural || kind == qbt.JoinCross) && jc.HasQualifier() {
		return nil, &diag.InvalidQuery{Msg: "NATURAL or CROSS join must not carry an ON/USING qualifier", Node: n}
	}
	return jc, nil
}

func joinKindOf(n *ast.Node) (qbt.JoinKind, error) {
	switch n.Kind {
	case ast.NaturalJoin:
		return qbt.JoinNatural, nil
	case ast.InnerJoin:
		return qbt.JoinInner, nil
	case ast.CrossJoin:
		return qbt.JoinCross, nil
	case ast.OuterJoin:
		if len(n.Children) > 0 && n.Children[0].Kind == ast.Right {
			return qbt.JoinRightOuter, nil
		}
		return qbt.JoinLeftOuter, nil
	default:
		return 0, &diag.InvalidQuery{Msg: fmt.Sprintf("unrecognized join kind %s", n.Kind), Node: n}
	}
}

// attachQualifier implements the ON/USING half of §4.10's step 4.
func (a *Analyzer) attachQualifier(ctx *Context, jc *qbt.JoinClause, n *ast.Node) error {
	switch n.Kind {
	case ast.On:
		expr, err := a.buildEval(ctx, n.Child(0))
		if err != nil {
			return err
		}
		jc.OnExpr = expr
	case ast.Using:
		cols, err := a.resolveFieldList(ctx, n.Children)
		if err != nil {
			return err
		}
		jc.UsingCols = cols
	default:
		return &diag.InvalidQuery{Msg: fmt.Sprintf("unexpected JOIN qualifier %s", n.Kind), Node: n}
	}
	return nil
}
