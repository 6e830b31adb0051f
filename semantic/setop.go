package semantic

import (
	"fmt"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/diag"
	"github.com/nql-lang/nqlsem/qbt"
)

// analyzeSetOp implements the Set Operation Analyzer (§4.7). Left and right
// operands are analyzed in independent child Contexts created fresh from
// the same catalog (spec §3: "left and right are analyzed in independent
// contexts"); the parent ctx then absorbs both via MergeContext, per §4.7/
// §6 ("the parent context is a merge of both").
//
// Children are, in AST order: the left operand, an optional ALL/DISTINCT
// quantifier, then the right operand. Per §4.7's inversion (preserved
// bit-for-bit, see spec §9 and SetStmt.Distinct's doc comment): ALL sets
// Distinct=true, DISTINCT sets Distinct=false. Default (no quantifier
// child present) is Distinct=false.
func (a *Analyzer) analyzeSetOp(ctx *Context, n *ast.Node, kind qbt.SetKind) (*qbt.SetStmt, error) {
	if len(n.Children) < 2 {
		return nil, &diag.InvalidQuery{Msg: fmt.Sprintf("malformed %s node", kind), Node: n}
	}

	var leftNode, rightNode, qualNode *ast.Node
	operands := make([]*ast.Node, 0, 2)
	for _, c := range n.Children {
		if c.Kind == ast.All || c.Kind == ast.Distinct {
			qualNode = c
			continue
		}
		operands = append(operands, c)
	}
	if len(operands) != 2 {
		return nil, &diag.InvalidQuery{Msg: fmt.Sprintf("%s requires exactly two operands", kind), Node: n}
	}
	leftNode, rightNode = operands[0], operands[1]

	// Both sides are analyzed even if the left fails, so the returned error
	// carries every side's diagnostic.
	var diags diag.Diagnostics
	leftCtx := NewContext(ctx.Catalog)
	left, err := a.dispatch(leftCtx, leftNode)
	diags.Append(err)
	rightCtx := NewContext(ctx.Catalog)
	right, err := a.dispatch(rightCtx, rightNode)
	diags.Append(err)
	if err := diags.Err(); err != nil {
		return nil, err
	}

	ctx.MergeContext(leftCtx)
	ctx.MergeContext(rightCtx)

	stmt := &qbt.SetStmt{Kind: kind, Left: left, Right: right}
	if qualNode != nil && qualNode.Kind == ast.All {
		stmt.Distinct = true
	}
	return stmt, nil
}
