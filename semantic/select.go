package semantic

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/diag"
	"github.com/nql-lang/nqlsem/qbt"
)

// analyzeSelect implements the SELECT analyzer (spec §4.2). Clauses may
// appear in any AST order, but column resolution in WHERE/SELECT/HAVING/
// ORDER BY requires FROM to have populated input tables first, so this is a
// two-pass walk: FROM (and any JOIN subtree) is located and analyzed first
// regardless of its position among n's children, then every remaining
// clause is analyzed in original AST order (spec §4.2's mandated (a)).
func (a *Analyzer) analyzeSelect(ctx *Context, n *ast.Node) (*qbt.QueryBlock, error) {
	block := qbt.NewQueryBlock()

	var fromNode *ast.Node
	for _, c := range n.Children {
		if c.Kind == ast.From {
			fromNode = c
			break
		}
	}
	if fromNode != nil {
		if err := a.analyzeFrom(ctx, block, fromNode); err != nil {
			return nil, err
		}
	}

	for _, c := range n.Children {
		if c.Kind == ast.From {
			continue // already handled in the first pass
		}
		if err := a.analyzeSelectClause(ctx, block, c); err != nil {
			return nil, err
		}
	}

	block.IsAggregation = ctx.Aggregation
	a.log.Debug("analyzed SELECT", zap.Int("targets", len(block.Targets)),
		zap.Bool("aggregation", block.IsAggregation))
	return block, nil
}

func (a *Analyzer) analyzeSelectClause(ctx *Context, block *qbt.QueryBlock, c *ast.Node) error {
	switch c.Kind {
	case ast.SetQualifier:
		if len(c.Children) > 0 && c.Children[0].Kind == ast.Distinct {
			block.Distinct = true
		}
	case ast.SelList:
		return a.analyzeSelList(ctx, block, c)
	case ast.Where:
		expr, err := a.buildEval(ctx, c.Child(0))
		if err != nil {
			return err
		}
		block.Where = expr
	case ast.GroupBy:
		return a.analyzeGroupBy(ctx, block, c)
	case ast.Having:
		expr, err := a.buildEval(ctx, c.Child(0))
		if err != nil {
			return err
		}
		block.Having = expr
	case ast.OrderBy:
		specs, err := a.analyzeOrderBy(ctx, c)
		if err != nil {
			return err
		}
		block.SortKeys = specs
	default:
		return &diag.InvalidQuery{Msg: fmt.Sprintf("unexpected SELECT child %s", c.Kind), Node: c}
	}
	return nil
}

// analyzeSelList implements §4.4: '*' sets ProjectAll and allocates no
// targets (spec §8's boundary case); otherwise each derived column becomes
// a Target at its ordinal position, with its alias (if any) taken from the
// first child of the derived-column node's last child.
func (a *Analyzer) analyzeSelList(ctx *Context, block *qbt.QueryBlock, n *ast.Node) error {
	for i, c := range n.Children {
		if c.Kind == ast.ColumnAll {
			block.ProjectAll = true
			continue
		}
		exprNode := c
		alias := ""
		if c.Kind == ast.Column && len(c.Children) > 1 {
			last := c.Children[len(c.Children)-1]
			if last.Kind == ast.Alias {
				alias = last.Child(0).Text
				exprNode = c.Children[0]
			}
		}
		expr, err := a.buildEval(ctx, exprNode)
		if err != nil {
			return err
		}
		block.Targets = append(block.Targets, qbt.Target{Expr: expr, Index: i, Alias: alias})
	}
	return nil
}

// analyzeFrom implements §4.3: a plain FROM lists TABLE children (each
// recorded in the Context's alias map); a FROM whose first child is JOIN
// delegates to the Join Analyzer (§4.10) instead.
func (a *Analyzer) analyzeFrom(ctx *Context, block *qbt.QueryBlock, n *ast.Node) error {
	if len(n.Children) > 0 && n.Children[0].Kind == ast.Join {
		jc, err := a.analyzeJoin(ctx, block, n.Children[0])
		if err != nil {
			return err
		}
		block.JoinClause = jc
		return nil
	}
	for _, c := range n.Children {
		if c.Kind != ast.Table {
			return &diag.InvalidQuery{Msg: fmt.Sprintf("unexpected FROM child %s", c.Kind), Node: c}
		}
		ft, err := a.resolveFromTable(ctx, c)
		if err != nil {
			return err
		}
		block.FromTables = append(block.FromTables, ft)
	}
	return nil
}

// resolveFromTable resolves a single TABLE node's name through the catalog
// and records its effective (alias or identity) name in ctx, per §4.3.
func (a *Analyzer) resolveFromTable(ctx *Context, n *ast.Node) (*qbt.FromTable, error) {
	name := n.Text
	alias := ""
	for _, c := range n.Children {
		if c.Kind == ast.Alias {
			alias = c.Child(0).Text
		}
	}
	desc, err := ctx.Catalog.GetTable(name)
	if err != nil {
		return nil, invalidTable(ctx, name, err, n)
	}
	ft := &qbt.FromTable{Desc: desc, Alias: alias}
	ctx.RenameTable(desc.ID, ft.EffectiveName())
	return ft, nil
}

func invalidTable(ctx *Context, name string, cause error, n *ast.Node) error {
	msg := fmt.Sprintf("table %q does not exist", name)
	msg = diag.WithSuggestion(msg, name, ctx.Catalog.TableNames())
	return &diag.InvalidQuery{Msg: msg, Node: n}
}
