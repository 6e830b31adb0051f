// Package catalog implements the Catalog collaborator named in spec §6: a
// read-only (from the analyzer's point of view) name service mapping table
// names to schemas and function signatures to descriptors. It is grounded
// on the teacher's compiler/data.Source (table/pool lookup by name) and
// runtime/expr/function (signature resolution by name+arity), reshaped
// around spec §6's exact contract.
package catalog

import (
	"errors"

	"github.com/nql-lang/nqlsem/datum"
)

// ErrNoSuchTable is raised by an implementation's GetTable when the name is
// unknown. The analyzer catches it and rewraps it as diag.InvalidQuery
// (spec §7, "Catalog's NoSuchTable is caught and rewrapped").
var ErrNoSuchTable = errors.New("no such table")

// Column is a fully-qualified schema column: "<table_id>.<name>" is its
// canonical key (spec §3's "Qualified column name").
type Column struct {
	TableID string
	Name    string
	ValType datum.Type
}

// Qualified returns the canonical "<table_id>.<name>" key.
func (c Column) Qualified() string {
	return c.TableID + "." + c.Name
}

// Equal compares columns by qualified name, per spec §3 ("Equality by
// qualified name").
func (c Column) Equal(o Column) bool {
	return c.Qualified() == o.Qualified()
}

// Schema holds a table's columns, keyed by their qualified name.
type Schema struct {
	id      string
	columns []Column
	byName  map[string]Column
}

func NewSchema(id string, columns ...Column) *Schema {
	s := &Schema{id: id, byName: make(map[string]Column, len(columns))}
	for _, c := range columns {
		s.columns = append(s.columns, c)
		s.byName[c.Qualified()] = c
	}
	return s
}

// Contains reports whether qualifiedName ("<table>.<col>") is defined.
func (s *Schema) Contains(qualifiedName string) bool {
	_, ok := s.byName[qualifiedName]
	return ok
}

// GetColumn fetches a column by its qualified name, returning the zero
// Column and false if absent.
func (s *Schema) GetColumn(qualifiedName string) (Column, bool) {
	c, ok := s.byName[qualifiedName]
	return c, ok
}

func (s *Schema) Columns() []Column {
	return s.columns
}

// Names returns every column's bare name, used for "did you mean"
// suggestions (spec §7 enrichment, see diag package).
func (s *Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// TableMeta wraps a table's schema, mirroring the teacher's TableDesc.Meta
// indirection (spec §6: "TableDesc exposes... meta.schema").
type TableMeta struct {
	Schema *Schema
}

// TableDesc describes a catalog-resolved table (spec §6).
type TableDesc struct {
	ID   string
	Meta TableMeta
}

func NewTableDesc(id string, columns ...Column) *TableDesc {
	return &TableDesc{ID: id, Meta: TableMeta{Schema: NewSchema(id, columns...)}}
}

// FuncType distinguishes scalar functions from aggregates (spec §3,
// "FunctionDesc exposes func_type ∈ {GENERAL, AGG}").
type FuncType int

const (
	General FuncType = iota
	Agg
)

func (t FuncType) String() string {
	if t == Agg {
		return "AGG"
	}
	return "GENERAL"
}

// FunctionDesc describes a resolved function signature. ReturnType is an
// implementation addition (see SPEC_FULL.md §3): spec.md's catalog contract
// names func_type and new_instance() but every EvalNode must expose a
// value_type(), so FuncCall/AggFuncCall need a return type to report.
type FunctionDesc struct {
	Name       string
	ParamTypes []datum.Type
	ReturnType datum.Type
	Type       FuncType

	// Instantiate is an optional hook a catalog can attach to simulate
	// late-binding failures in tests (e.g. a function whose runtime
	// implementation is missing despite a valid signature). Nil means
	// binding always succeeds.
	Instantiate func() (any, error)
}

// NewInstance is the catalog's lazy-binding hook (spec §6). The analyzer
// never needs the bound instance itself — only that binding did not fail
// fatally (spec §9's "function resolution error swallowing" note: a failure
// here must become a fatal InvalidQuery, not a discarded null node).
func (f *FunctionDesc) NewInstance() (any, error) {
	if f.Instantiate == nil {
		return struct{}{}, nil
	}
	return f.Instantiate()
}

// Canonical renders the "name(type, type, ...)" form used in
// diag.UndefinedFunction messages (spec §7).
func (f *FunctionDesc) Canonical() string {
	return CanonicalName(f.Name, f.ParamTypes)
}

// CanonicalName renders a function signature for diagnostics.
func CanonicalName(name string, paramTypes []datum.Type) string {
	s := name + "("
	for i, t := range paramTypes {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	return s + ")"
}

// Catalog is the name-resolution collaborator (spec §6).
type Catalog interface {
	GetTable(name string) (*TableDesc, error)
	ContainsFunction(signature string, paramTypes []datum.Type) bool
	GetFunction(signature string, paramTypes []datum.Type) (*FunctionDesc, error)
	// TableNames backs "did you mean" diagnostics for unknown tables and
	// FunctionNames lists the registered function names; neither is part of
	// spec.md's minimal contract.
	TableNames() []string
	FunctionNames() []string
}
