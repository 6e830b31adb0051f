package qbt

import "github.com/segmentio/ksuid"

// ParseTree is the sum type for the analyzer's top-level output (spec §3).
type ParseTree interface {
	ParseTree()
}

func (*QueryBlock) ParseTree()      {}
func (*SetStmt) ParseTree()         {}
func (*CreateTableStmt) ParseTree() {}
func (*CreateIndexStmt) ParseTree() {}

// QueryBlock is a single SELECT scope (spec §3).
type QueryBlock struct {
	// ID is a correlation identifier stamped on every analyzed block so a
	// planner or a diagnostic can refer back to "this block" across a tree
	// of nested set operations and CTAS subqueries — grounded on the
	// teacher's own practice of stamping ksuid-based IDs on DAG objects it
	// hands downstream.
	ID ksuid.KSUID

	FromTables []*FromTable
	JoinClause *JoinClause

	Where  EvalNode
	Having EvalNode

	GroupBy *GroupByClause
	SortKeys []SortSpec

	Targets     []Target
	ProjectAll  bool
	Distinct    bool
	IsAggregation bool
}

func NewQueryBlock() *QueryBlock {
	return &QueryBlock{ID: ksuid.New()}
}

// SetKind enumerates the set operations spec §3/§4.7 name.
type SetKind int

const (
	SetUnion SetKind = iota
	SetIntersect
	SetExcept
)

func (k SetKind) String() string {
	switch k {
	case SetUnion:
		return "UNION"
	case SetIntersect:
		return "INTERSECT"
	case SetExcept:
		return "EXCEPT"
	}
	return "SET(?)"
}

// SetStmt represents a UNION/INTERSECT/EXCEPT (spec §3).
//
// Distinct preserves the source's inverted SET_QUALIFIER semantics bit for
// bit (spec §4.7/§9): ALL sets Distinct=true, DISTINCT sets Distinct=false.
// This reads backwards from conventional SQL naming; it is intentional and
// pinned by TestUnionAll and TestUnionDistinctQualifier in the semantic
// package — do not
// "fix" it.
type SetStmt struct {
	Kind     SetKind
	Left     ParseTree
	Right    ParseTree
	Distinct bool
}

// CreateTableStmt represents either a schema-defined CREATE TABLE or a CTAS
// (spec §3/§4.9).
type CreateTableStmt struct {
	Name string

	// Schema form.
	Columns   []Column
	StoreKind string
	Path      string
	Options   map[string]string

	// CTAS form.
	Select *QueryBlock
}

// IsCTAS reports whether this is the "CREATE TABLE AS SELECT" form.
func (c *CreateTableStmt) IsCTAS() bool { return c.Select != nil }

// IndexMethod enumerates the index structures spec §4.8 names.
type IndexMethod int

const (
	IndexMethodUnset IndexMethod = iota
	TwoLevelBinTree
	BTree
	Hash
	Bitmap
)

func (m IndexMethod) String() string {
	switch m {
	case TwoLevelBinTree:
		return "TWO_LEVEL_BIN_TREE"
	case BTree:
		return "BTREE"
	case Hash:
		return "HASH"
	case Bitmap:
		return "BITMAP"
	}
	return "UNSET"
}

// ParseIndexMethod maps the grammar's method lexeme to an IndexMethod (spec
// §4.8's table); ok is false for an unrecognized method string.
func ParseIndexMethod(s string) (IndexMethod, bool) {
	switch s {
	case "bst":
		return TwoLevelBinTree, true
	case "btree":
		return BTree, true
	case "hash":
		return Hash, true
	case "bitmap":
		return Bitmap, true
	}
	return IndexMethodUnset, false
}

// CreateIndexStmt represents a CREATE INDEX statement (spec §3/§4.8).
type CreateIndexStmt struct {
	Name      string
	Unique    bool
	Table     string
	Method    IndexMethod
	Params    map[string]string
	SortSpecs []SortSpec
}
