// Package semantic implements the statement dispatcher and clause/expression
// analyzers that walk an ast.Node tree into a qbt.ParseTree (spec §4),
// grounded on the teacher's compiler/semantic.analyzer/scope split: a small
// mutable Context threaded explicitly through every handler, mirroring the
// teacher's own Scope/enterScope/exitScope.
package semantic

import (
	"github.com/nql-lang/nqlsem/catalog"
)

// Context is the per-scope mutable analysis state named in spec §3/§6: an
// alias map, an ordered set of input tables, the aggregation flag, and an
// opaque hints slot populated by MakeHints. It is exclusively owned by the
// analysis invocation that holds it (spec §5) — never shared across
// concurrent handlers.
type Context struct {
	Catalog catalog.Catalog

	aliasToActual map[string]string
	inputTables   []string // insertion-ordered; spec §8's "exactly N entries" property
	inputSet      map[string]struct{}

	Aggregation bool
	Hints       any
}

// NewContext creates a fresh scope bound to cat. Sub-scopes (set operation
// sides, CTAS bodies) each get their own via this constructor, never a
// shared or copied Context (spec §9).
func NewContext(cat catalog.Catalog) *Context {
	return &Context{
		Catalog:       cat,
		aliasToActual: make(map[string]string),
		inputSet:      make(map[string]struct{}),
	}
}

// RenameTable records effective → actual, including the identity mapping
// when no alias was given (spec §4.3: "If no alias, effective_name =
// table_name"). It also adds effective to the ordered input-table set.
func (c *Context) RenameTable(actual, effective string) {
	c.aliasToActual[effective] = actual
	if _, ok := c.inputSet[effective]; !ok {
		c.inputSet[effective] = struct{}{}
		c.inputTables = append(c.inputTables, effective)
	}
}

// GetActualTableName resolves an alias or bare table name to the catalog
// table it refers to, per the Context contract (spec §6).
func (c *Context) GetActualTableName(effective string) (string, bool) {
	actual, ok := c.aliasToActual[effective]
	return actual, ok
}

// GetTable resolves name through the alias map and then the catalog,
// wrapping ErrNoSuchTable as a *diag.InvalidQuery at the call site (this
// method itself returns the catalog's raw error so callers can attach
// context-specific messaging).
func (c *Context) GetTable(name string) (*catalog.TableDesc, error) {
	actual, ok := c.aliasToActual[name]
	if !ok {
		actual = name
	}
	return c.Catalog.GetTable(actual)
}

// GetInputTables returns the effective names of every table this scope has
// brought into scope, in the order they were added.
func (c *Context) GetInputTables() []string {
	return c.inputTables
}

// MergeContext absorbs a child scope's alias map and input tables (union)
// and logically-ors the aggregation flag, per spec §4.7/§6: the parent of a
// set operation is "a merge of both" independently-analyzed sides.
func (c *Context) MergeContext(child *Context) {
	for effective, actual := range child.aliasToActual {
		c.aliasToActual[effective] = actual
	}
	for _, t := range child.inputTables {
		if _, ok := c.inputSet[t]; !ok {
			c.inputSet[t] = struct{}{}
			c.inputTables = append(c.inputTables, t)
		}
	}
	c.Aggregation = c.Aggregation || child.Aggregation
}

// MakeHints is the unspecified post-analysis hook named in spec §4.1/§6. The
// analyzer never interprets tree itself; a caller wanting planner-specific
// annotations can override Context.Hints after MakeHints runs.
func (c *Context) MakeHints(tree any) {
	c.Hints = tree
}

