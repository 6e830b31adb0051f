package semantic

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/catalog"
	"github.com/nql-lang/nqlsem/datum"
	"github.com/nql-lang/nqlsem/diag"
	"github.com/nql-lang/nqlsem/qbt"
)

// binaryOpOf maps the AST's operator kinds to qbt.BinaryOp (§4.13: "The
// BinaryOp kind is derived from the AST parser code via a fixed mapping").
var binaryOpOf = map[ast.Kind]qbt.BinaryOp{
	ast.And:      qbt.OpAnd,
	ast.Or:       qbt.OpOr,
	ast.Equal:    qbt.OpEq,
	ast.NotEqual: qbt.OpNeq,
	ast.Lth:      qbt.OpLt,
	ast.Leq:      qbt.OpLeq,
	ast.Gth:      qbt.OpGt,
	ast.Geq:      qbt.OpGeq,
	ast.Plus:     qbt.OpAdd,
	ast.Minus:    qbt.OpSub,
	ast.Multiply: qbt.OpMul,
	ast.Divide:   qbt.OpDiv,
	ast.Modular:  qbt.OpMod,
}

func isLiteralKind(k ast.Kind) bool {
	return k == ast.Digit || k == ast.Real || k == ast.String
}

// buildEval is the Expression Builder's dispatch table (§4.11).
func (a *Analyzer) buildEval(ctx *Context, n *ast.Node) (qbt.EvalNode, error) {
	if n == nil {
		return nil, &diag.InvalidQuery{Msg: "missing expression"}
	}
	switch n.Kind {
	case ast.Digit:
		d, err := datum.ParseInt(n.Text)
		if err != nil {
			return nil, &diag.InvalidQuery{Msg: err.Error(), Node: n}
		}
		return &qbt.Const{Value: d}, nil
	case ast.Real:
		d, err := datum.ParseDouble(n.Text)
		if err != nil {
			return nil, &diag.InvalidQuery{Msg: err.Error(), Node: n}
		}
		return &qbt.Const{Value: d}, nil
	case ast.String:
		return &qbt.Const{Value: datum.NewString(n.Text)}, nil
	case ast.Not:
		inner, err := a.buildEval(ctx, n.Child(0))
		if err != nil {
			return nil, err
		}
		return &qbt.Not{Expr: inner}, nil
	case ast.Like:
		return a.buildLike(ctx, n)
	case ast.And, ast.Or, ast.Equal, ast.NotEqual, ast.Lth, ast.Leq, ast.Gth, ast.Geq,
		ast.Plus, ast.Minus, ast.Multiply, ast.Divide, ast.Modular:
		return a.buildBinary(ctx, n)
	case ast.Column:
		return a.buildEval(ctx, n.Child(0))
	case ast.FieldName:
		col, err := a.resolveColumn(ctx, n)
		if err != nil {
			return nil, err
		}
		return &qbt.Field{Col: col}, nil
	case ast.Function:
		return a.buildFuncCall(ctx, n)
	case ast.CountVal:
		return a.buildCountVal(ctx, n)
	case ast.CountRows:
		return a.buildCountRows(ctx, n)
	case ast.Case:
		return a.buildCase(ctx, n)
	default:
		return nil, &diag.InvalidQuery{Msg: fmt.Sprintf("unsupported expression node %s", n.Kind), Node: n}
	}
}

// buildLike implements §4.12: optional leading NOT, then a FIELD_NAME
// (which must resolve to a Field) then a STRING constant (which must
// resolve to a Const).
func (a *Analyzer) buildLike(ctx *Context, n *ast.Node) (qbt.EvalNode, error) {
	children := n.Children
	not := false
	if len(children) > 0 && children[0].Kind == ast.Not {
		not = true
		children = children[1:]
	}
	if len(children) != 2 {
		return nil, &diag.InvalidQuery{Msg: "LIKE requires a field and a string pattern", Node: n}
	}
	fieldExpr, err := a.buildEval(ctx, children[0])
	if err != nil {
		return nil, err
	}
	field, ok := fieldExpr.(*qbt.Field)
	if !ok {
		return nil, &diag.InvalidEval{Msg: "LIKE's left operand must be a field reference"}
	}
	patExpr, err := a.buildEval(ctx, children[1])
	if err != nil {
		return nil, err
	}
	pattern, ok := patExpr.(*qbt.Const)
	if !ok || pattern.Value.Type() != datum.String {
		return nil, &diag.InvalidEval{Msg: "LIKE's right operand must be a string constant"}
	}
	return &qbt.Like{Not: not, Field: field, Pattern: pattern}, nil
}

// buildBinary implements §4.13: constant-to-field type inference for
// exactly one literal operand paired with a bare FIELD_NAME, preserving
// operand order; both sides built plainly otherwise.
func (a *Analyzer) buildBinary(ctx *Context, n *ast.Node) (qbt.EvalNode, error) {
	if len(n.Children) != 2 {
		return nil, &diag.InvalidEval{Msg: fmt.Sprintf("%s requires exactly two operands", n.Kind)}
	}
	lhsNode, rhsNode := n.Children[0], n.Children[1]
	op, ok := binaryOpOf[n.Kind]
	if !ok {
		return nil, &diag.InvalidQuery{Msg: fmt.Sprintf("unrecognized binary operator %s", n.Kind), Node: n}
	}

	lhsLiteral, rhsLiteral := isLiteralKind(lhsNode.Kind), isLiteralKind(rhsNode.Kind)
	lhsField, rhsField := lhsNode.Kind == ast.FieldName, rhsNode.Kind == ast.FieldName

	switch {
	case lhsLiteral && rhsField && !rhsLiteral:
		field, err := a.resolveColumn(ctx, rhsNode)
		if err != nil {
			return nil, err
		}
		lit, err := inferLiteral(lhsNode, field.ValType)
		if err != nil {
			return nil, err
		}
		return &qbt.Binary{Op: op, LHS: lit, RHS: &qbt.Field{Col: field}}, nil
	case rhsLiteral && lhsField && !lhsLiteral:
		field, err := a.resolveColumn(ctx, lhsNode)
		if err != nil {
			return nil, err
		}
		lit, err := inferLiteral(rhsNode, field.ValType)
		if err != nil {
			return nil, err
		}
		return &qbt.Binary{Op: op, LHS: &qbt.Field{Col: field}, RHS: lit}, nil
	default:
		lhs, err := a.buildEval(ctx, lhsNode)
		if err != nil {
			return nil, err
		}
		rhs, err := a.buildEval(ctx, rhsNode)
		if err != nil {
			return nil, err
		}
		return &qbt.Binary{Op: op, LHS: lhs, RHS: rhs}, nil
	}
}

// inferLiteral implements §4.13's literal-type-inference table: DIGIT picks
// SHORT/INT/LONG by the peer field's type (default INT), REAL picks
// FLOAT/DOUBLE (default DOUBLE), STRING picks CHAR (narrowed to the first
// character) when the peer is CHAR, else STRING.
func inferLiteral(n *ast.Node, peer datum.Type) (*qbt.Const, error) {
	switch n.Kind {
	case ast.Digit:
		var d datum.Datum
		var err error
		switch peer {
		case datum.Short:
			d, err = datum.ParseShort(n.Text)
		case datum.Long:
			d, err = datum.ParseLong(n.Text)
		default:
			d, err = datum.ParseInt(n.Text)
		}
		if err != nil {
			return nil, &diag.InvalidQuery{Msg: err.Error(), Node: n}
		}
		return &qbt.Const{Value: d}, nil
	case ast.Real:
		var d datum.Datum
		var err error
		if peer == datum.Float {
			d, err = datum.ParseFloat(n.Text)
		} else {
			d, err = datum.ParseDouble(n.Text)
		}
		if err != nil {
			return nil, &diag.InvalidQuery{Msg: err.Error(), Node: n}
		}
		return &qbt.Const{Value: d}, nil
	case ast.String:
		if peer == datum.Char {
			d, err := datum.ParseChar(n.Text)
			if err != nil {
				return nil, &diag.InvalidQuery{Msg: err.Error(), Node: n}
			}
			return &qbt.Const{Value: d}, nil
		}
		return &qbt.Const{Value: datum.NewString(n.Text)}, nil
	default:
		return nil, &diag.InvalidEval{Msg: fmt.Sprintf("%s is not a literal kind", n.Kind)}
	}
}

// buildFuncCall implements the FUNCTION row of §4.11: resolve (name,
// arg_types) in the catalog; GENERAL becomes a FuncCall, AGG sets the
// block's aggregation flag and becomes an AggFuncCall. A failed resolution
// (no signature, or a late-binding failure) is a fatal UndefinedFunction /
// InvalidQuery — never a silently-dropped null node (spec §9).
func (a *Analyzer) buildFuncCall(ctx *Context, n *ast.Node) (qbt.EvalNode, error) {
	args := make([]qbt.EvalNode, 0, len(n.Children))
	argTypes := make([]datum.Type, 0, len(n.Children))
	for _, c := range n.Children {
		arg, err := a.buildEval(ctx, c)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		argTypes = append(argTypes, arg.ValueType())
	}
	desc, err := ctx.Catalog.GetFunction(n.Text, argTypes)
	if err != nil {
		return nil, &diag.UndefinedFunction{Canonical: catalog.CanonicalName(n.Text, argTypes)}
	}
	if _, err := desc.NewInstance(); err != nil {
		return nil, &diag.InvalidQuery{Msg: fmt.Sprintf("function %s failed to instantiate: %v", desc.Canonical(), err), Node: n}
	}
	if desc.Type == catalog.Agg {
		ctx.Aggregation = true
		a.log.Debug("aggregate function call", zap.String("name", desc.Name))
		return &qbt.AggFuncCall{Desc: desc, Args: args}, nil
	}
	return &qbt.FuncCall{Desc: desc, Args: args}, nil
}

// buildCountVal implements the COUNT_VAL row: count(expr), always aggregate.
func (a *Analyzer) buildCountVal(ctx *Context, n *ast.Node) (qbt.EvalNode, error) {
	if len(n.Children) != 1 {
		return nil, &diag.InvalidEval{Msg: "count(value) requires exactly one argument"}
	}
	arg, err := a.buildEval(ctx, n.Children[0])
	if err != nil {
		return nil, err
	}
	desc, err := ctx.Catalog.GetFunction("count", []datum.Type{arg.ValueType()})
	if err != nil {
		return nil, &diag.UndefinedFunction{Canonical: catalog.CanonicalName("count", []datum.Type{arg.ValueType()})}
	}
	if _, err := desc.NewInstance(); err != nil {
		return nil, &diag.InvalidQuery{Msg: fmt.Sprintf("function %s failed to instantiate: %v", desc.Canonical(), err), Node: n}
	}
	ctx.Aggregation = true
	return &qbt.AggFuncCall{Desc: desc, Args: []qbt.EvalNode{arg}}, nil
}

// buildCountRows implements the COUNT_ROWS row: count(), always aggregate.
func (a *Analyzer) buildCountRows(ctx *Context, n *ast.Node) (qbt.EvalNode, error) {
	desc, err := ctx.Catalog.GetFunction("count", nil)
	if err != nil {
		return nil, &diag.UndefinedFunction{Canonical: catalog.CanonicalName("count", nil)}
	}
	if _, err := desc.NewInstance(); err != nil {
		return nil, &diag.InvalidQuery{Msg: fmt.Sprintf("function %s failed to instantiate: %v", desc.Canonical(), err), Node: n}
	}
	ctx.Aggregation = true
	return &qbt.AggFuncCall{Desc: desc, Args: nil}, nil
}

// buildCase implements §4.15: WHEN children accumulate (cond, result)
// branches; an immediately following ELSE supplies the else expression. No
// WHEN branches is still a valid (if degenerate) CASE (spec §8's boundary
// case) — validating that is left to the caller, per spec.md.
func (a *Analyzer) buildCase(ctx *Context, n *ast.Node) (qbt.EvalNode, error) {
	cw := &qbt.CaseWhen{}
	for _, c := range n.Children {
		switch c.Kind {
		case ast.When:
			if len(c.Children) != 2 {
				return nil, &diag.InvalidQuery{Msg: "WHEN requires a condition and a result", Node: c}
			}
			cond, err := a.buildEval(ctx, c.Children[0])
			if err != nil {
				return nil, err
			}
			result, err := a.buildEval(ctx, c.Children[1])
			if err != nil {
				return nil, err
			}
			cw.Branches = append(cw.Branches, qbt.CaseWhenBranch{Cond: cond, Result: result})
		case ast.Else:
			elseExpr, err := a.buildEval(ctx, c.Child(0))
			if err != nil {
				return nil, err
			}
			cw.Else = elseExpr
		default:
			return nil, &diag.InvalidQuery{Msg: fmt.Sprintf("unexpected CASE child %s", c.Kind), Node: c}
		}
	}
	return cw, nil
}
