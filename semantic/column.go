package semantic

import (
	"fmt"
	"strings"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/catalog"
	"github.com/nql-lang/nqlsem/diag"
)

// resolveColumn implements §4.14. A FIELD_NAME node carries its lexeme in
// Text; a qualified reference is lexed as "table.column" (the last '.'
// splits qualifier from column name), a bare reference carries just the
// column name.
func (a *Analyzer) resolveColumn(ctx *Context, n *ast.Node) (catalog.Column, error) {
	if n == nil || n.Kind != ast.FieldName {
		return catalog.Column{}, &diag.InvalidQuery{Msg: fmt.Sprintf("expected FIELD_NAME, got %s", kindOrNil(n)), Node: n}
	}
	if dot := strings.LastIndex(n.Text, "."); dot >= 0 {
		return a.resolveQualified(ctx, n.Text[:dot], n.Text[dot+1:], n)
	}
	return a.resolveBare(ctx, n.Text, n)
}

// resolveQualified implements §4.14's qualified case: the table part is
// looked up through the alias map to an actual table, then the column is
// fetched from that table's schema by its qualified name.
func (a *Analyzer) resolveQualified(ctx *Context, table, name string, n *ast.Node) (catalog.Column, error) {
	actual, ok := ctx.GetActualTableName(table)
	if !ok {
		return catalog.Column{}, &diag.InvalidQuery{
			Msg:  diag.WithSuggestion(fmt.Sprintf("table %q does not exist", table), table, ctx.Catalog.TableNames()),
			Node: n,
		}
	}
	desc, err := ctx.Catalog.GetTable(actual)
	if err != nil {
		return catalog.Column{}, invalidTable(ctx, actual, err, n)
	}
	col, ok := desc.Meta.Schema.GetColumn(actual + "." + name)
	if !ok {
		return catalog.Column{}, &diag.InvalidQuery{
			Msg:  diag.WithSuggestion(fmt.Sprintf("column %q does not exist on table %q", name, table), name, desc.Meta.Schema.Names()),
			Node: n,
		}
	}
	return col, nil
}

// resolveBare implements §4.14's bare case: scan every input table's schema
// for a matching column name; zero matches is InvalidQuery, exactly one is
// the answer, two or more is AmbiguousField.
func (a *Analyzer) resolveBare(ctx *Context, name string, n *ast.Node) (catalog.Column, error) {
	var found []catalog.Column
	for _, effective := range ctx.GetInputTables() {
		actual, _ := ctx.GetActualTableName(effective)
		desc, err := ctx.Catalog.GetTable(actual)
		if err != nil {
			continue
		}
		if col, ok := desc.Meta.Schema.GetColumn(actual + "." + name); ok {
			found = append(found, col)
		}
	}
	switch len(found) {
	case 0:
		return catalog.Column{}, &diag.InvalidQuery{
			Msg:  fmt.Sprintf("column %q does not exist", name),
			Node: n,
		}
	case 1:
		return found[0], nil
	default:
		return catalog.Column{}, &diag.AmbiguousField{Name: name}
	}
}

func kindOrNil(n *ast.Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Kind.String()
}
