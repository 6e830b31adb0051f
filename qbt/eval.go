// Package qbt declares the Query Block Tree: the analyzer's output model
// (spec §3). Sum types are expressed the way the teacher's compiler/ast/dag
// package expresses its DAG — a marker method per variant plus a Kind tag —
// rather than as an open class hierarchy, so statement and expression
// dispatch stay table-driven and exhaustive.
package qbt

import (
	"github.com/nql-lang/nqlsem/catalog"
	"github.com/nql-lang/nqlsem/datum"
)

// Column is a fully-qualified column reference in the QBT, re-exported from
// catalog so callers working purely in qbt terms don't need to import
// catalog directly.
type Column = catalog.Column

// EvalNode is the sum type for expression subtrees (spec §3). Every variant
// exposes ValueType(); EvalNode() is the marker method that makes the set
// closed to this package's variants.
type EvalNode interface {
	EvalNode()
	ValueType() datum.Type
}

type Const struct {
	Value datum.Datum
}

func (*Const) EvalNode()              {}
func (c *Const) ValueType() datum.Type { return c.Value.Type() }

type Field struct {
	Col Column
}

func (*Field) EvalNode()              {}
func (f *Field) ValueType() datum.Type { return f.Col.ValType }

type Not struct {
	Expr EvalNode
}

func (*Not) EvalNode()              {}
func (*Not) ValueType() datum.Type { return datum.Bool }

// BinaryOp enumerates the operators spec §4.11/§4.13 route to Binary.
type BinaryOp int

const (
	OpAnd BinaryOp = iota
	OpOr
	OpEq
	OpNeq
	OpLt
	OpLeq
	OpGt
	OpGeq
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

var binaryOpNames = map[BinaryOp]string{
	OpAnd: "AND", OpOr: "OR", OpEq: "=", OpNeq: "!=", OpLt: "<", OpLeq: "<=",
	OpGt: ">", OpGeq: ">=", OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
}

func (o BinaryOp) String() string { return binaryOpNames[o] }

func (o BinaryOp) isComparison() bool {
	switch o {
	case OpEq, OpNeq, OpLt, OpLeq, OpGt, OpGeq, OpAnd, OpOr:
		return true
	}
	return false
}

type Binary struct {
	Op  BinaryOp
	LHS EvalNode
	RHS EvalNode
}

func (*Binary) EvalNode() {}
func (b *Binary) ValueType() datum.Type {
	if b.Op.isComparison() {
		return datum.Bool
	}
	return datum.Wider(b.LHS.ValueType(), b.RHS.ValueType())
}

type Like struct {
	Not     bool
	Field   *Field
	Pattern *Const
}

func (*Like) EvalNode()              {}
func (*Like) ValueType() datum.Type { return datum.Bool }

type FuncCall struct {
	Desc *catalog.FunctionDesc
	Args []EvalNode
}

func (*FuncCall) EvalNode()              {}
func (f *FuncCall) ValueType() datum.Type { return f.Desc.ReturnType }

type AggFuncCall struct {
	Desc *catalog.FunctionDesc
	Args []EvalNode
}

func (*AggFuncCall) EvalNode()              {}
func (f *AggFuncCall) ValueType() datum.Type { return f.Desc.ReturnType }

// CaseWhenBranch is one WHEN cond THEN result pair.
type CaseWhenBranch struct {
	Cond   EvalNode
	Result EvalNode
}

type CaseWhen struct {
	Branches []CaseWhenBranch
	Else     EvalNode
}

func (*CaseWhen) EvalNode() {}

// ValueType reports the type of the first available result, preferring the
// first branch's result and falling back to ELSE; an empty CASE (spec §8's
// boundary case) has no type information and reports datum.Unknown.
func (c *CaseWhen) ValueType() datum.Type {
	if len(c.Branches) > 0 {
		return c.Branches[0].Result.ValueType()
	}
	if c.Else != nil {
		return c.Else.ValueType()
	}
	return datum.Unknown
}
