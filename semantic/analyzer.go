// Package semantic implements the statement dispatcher and clause/expression
// analyzers that walk an ast.Node tree into a qbt.ParseTree (spec §4),
// grounded on the teacher's compiler/semantic.analyzer/scope split: a small
// mutable Context threaded explicitly through every handler, mirroring the
// teacher's own Scope/enterScope/exitScope, and the dispatch table style of
// compiler/semantic/sql.go's convertSQLOp.
package semantic

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/catalog"
	"github.com/nql-lang/nqlsem/diag"
	"github.com/nql-lang/nqlsem/qbt"
)

// Analyzer is the top-level entry point (spec §4.1). It owns nothing beyond
// a Catalog reference and a logger; each Analyze call constructs its own
// root Context, matching spec §5's "single-threaded per query... multiple
// analyses may run in parallel provided each has its own Context."
type Analyzer struct {
	Catalog catalog.Catalog
	log     *zap.Logger
}

// NewAnalyzer builds an Analyzer over cat. A nil logger falls back to
// zap.NewNop(), so callers that don't care about the dispatch trail don't
// have to wire one up.
func NewAnalyzer(cat catalog.Catalog, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{Catalog: cat, log: log}
}

// Analyze dispatches root by AST kind (spec §4.1's table) and returns the
// resulting ParseTree. Statement kinds spec §4.1 lists as "classified only"
// (STORE, INSERT, DROP_TABLE, SHOW_*, DESC_TABLE) return (nil, nil): no
// error, no tree, per spec.md's "analysis returns null tree (out of this
// core)".
func (a *Analyzer) Analyze(root *ast.Node) (qbt.ParseTree, error) {
	if root == nil || root.Kind == ast.Invalid {
		return nil, &diag.NQLSyntax{Msg: "empty or unparsed AST"}
	}
	a.log.Debug("dispatching statement", zap.String("kind", root.Kind.String()))

	ctx := NewContext(a.Catalog)
	tree, err := a.dispatch(ctx, root)
	if err != nil {
		a.log.Warn("analysis failed", zap.Error(err))
		return nil, err
	}
	ctx.MakeHints(tree)
	return tree, nil
}

func (a *Analyzer) dispatch(ctx *Context, n *ast.Node) (qbt.ParseTree, error) {
	switch n.Kind {
	case ast.Select:
		return a.analyzeSelect(ctx, n)
	case ast.Union:
		return a.analyzeSetOp(ctx, n, qbt.SetUnion)
	case ast.Intersect:
		return a.analyzeSetOp(ctx, n, qbt.SetIntersect)
	case ast.Except:
		return a.analyzeSetOp(ctx, n, qbt.SetExcept)
	case ast.CreateIndex:
		return a.analyzeCreateIndex(ctx, n)
	case ast.CreateTable:
		// spec §9: the source dispatcher falls through CREATE_TABLE into
		// the default case; Go's switch doesn't fall through, so this is a
		// clean terminal case rather than a bug that needs reproducing.
		return a.analyzeCreateTable(ctx, n)
	case ast.Store, ast.Insert, ast.DropTable, ast.ShowTable, ast.DescTable, ast.ShowFunction:
		a.log.Debug("classified, not analyzed", zap.String("kind", n.Kind.String()))
		return nil, nil
	default:
		return nil, &diag.NQLSyntax{Msg: fmt.Sprintf("unrecognized top-level AST kind %s", n.Kind)}
	}
}

// Classify reports the statement kind without performing any semantic
// analysis (SPEC_FULL.md §4.16), used by callers like
// the CLI that want to report "STORE: classified only, no QBT" without
// paying for (or requiring) a full analysis.
func Classify(n *ast.Node) ast.Kind {
	if n == nil {
		return ast.Invalid
	}
	return n.Kind
}
