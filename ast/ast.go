// Package ast declares the grammar-produced tree handed to the semantic
// analyzer by the parser collaborator. Unlike the teacher's own polymorphic
// per-node-kind AST (one Go struct per grammar production), this tree is the
// generic node shape a table-driven analyzer expects from an external
// grammar: a Kind tag, the raw lexeme, and an ordered list of children.
package ast

import (
	"fmt"
	"strings"
)

// Kind enumerates every grammar token the analyzer is prepared to dispatch
// on. Kinds absent from this list that nonetheless appear in a tree are a
// parser/analyzer mismatch, not a valid query.
type Kind int

const (
	Invalid Kind = iota

	// Statement roots.
	Select
	Union
	Intersect
	Except
	CreateIndex
	CreateTable
	Store
	Insert
	DropTable
	ShowTable
	DescTable
	ShowFunction

	// SELECT clause tags.
	From
	SetQualifier
	SelList
	Where
	GroupBy
	Having
	OrderBy

	// SET_QUALIFIER children / set-operation quantifier.
	Distinct
	All

	// FROM clause.
	Table
	Alias

	// JOIN tree.
	Join
	NaturalJoin
	InnerJoin
	OuterJoin
	CrossJoin
	Left
	Right
	On
	Using

	// Select list.
	ColumnAll // the bare '*' select item
	Column

	// Expressions.
	FieldName
	Digit
	Real
	String
	Not
	Like
	And
	Or
	Equal
	NotEqual
	Lth
	Leq
	Gth
	Geq
	Plus
	Minus
	Multiply
	Divide
	Modular
	Function
	CountVal
	CountRows
	Case
	When
	Else

	// GROUP BY.
	EmptyGroupingSet
	Cube
	Rollup

	// ORDER BY.
	SortKey
	Order
	Asc
	Desc
	NullOrder
	First
	Last

	// CREATE TABLE / CREATE INDEX.
	TableDef
	ColumnDef
	Params
	Param
	Unique
	IndexMethod

	// Scalar type tokens used inside TABLE_DEF column definitions.
	Bool
	Byte
	Int
	Long
	Float
	Double
	Text
	Bytes
	IPv4
)

var kindNames = map[Kind]string{
	Invalid:          "INVALID",
	Select:           "SELECT",
	Union:            "UNION",
	Intersect:        "INTERSECT",
	Except:           "EXCEPT",
	CreateIndex:      "CREATE_INDEX",
	CreateTable:      "CREATE_TABLE",
	Store:            "STORE",
	Insert:           "INSERT",
	DropTable:        "DROP_TABLE",
	ShowTable:        "SHOW_TABLE",
	DescTable:        "DESC_TABLE",
	ShowFunction:     "SHOW_FUNCTION",
	From:             "FROM",
	SetQualifier:     "SET_QUALIFIER",
	SelList:          "SEL_LIST",
	Where:            "WHERE",
	GroupBy:          "GROUP_BY",
	Having:           "HAVING",
	OrderBy:          "ORDER_BY",
	Distinct:         "DISTINCT",
	All:              "ALL",
	Table:            "TABLE",
	Alias:            "ALIAS",
	Join:             "JOIN",
	NaturalJoin:      "NATURAL_JOIN",
	InnerJoin:        "INNER_JOIN",
	OuterJoin:        "OUTER_JOIN",
	CrossJoin:        "CROSS_JOIN",
	Left:             "LEFT",
	Right:            "RIGHT",
	On:               "ON",
	Using:            "USING",
	ColumnAll:        "ALL_COLUMNS",
	Column:           "COLUMN",
	FieldName:        "FIELD_NAME",
	Digit:            "DIGIT",
	Real:             "REAL",
	String:           "STRING",
	Not:              "NOT",
	Like:             "LIKE",
	And:              "AND",
	Or:               "OR",
	Equal:            "EQUAL",
	NotEqual:         "NOT_EQUAL",
	Lth:              "LTH",
	Leq:              "LEQ",
	Gth:              "GTH",
	Geq:              "GEQ",
	Plus:             "PLUS",
	Minus:            "MINUS",
	Multiply:         "MULTIPLY",
	Divide:           "DIVIDE",
	Modular:          "MODULAR",
	Function:         "FUNCTION",
	CountVal:         "COUNT_VAL",
	CountRows:        "COUNT_ROWS",
	Case:             "CASE",
	When:             "WHEN",
	Else:             "ELSE",
	EmptyGroupingSet: "EMPTY_GROUPING_SET",
	Cube:             "CUBE",
	Rollup:           "ROLLUP",
	SortKey:          "SORT_KEY",
	Order:            "ORDER",
	Asc:              "ASC",
	Desc:             "DESC",
	NullOrder:        "NULL_ORDER",
	First:            "FIRST",
	Last:             "LAST",
	TableDef:         "TABLE_DEF",
	ColumnDef:        "COLUMN_DEF",
	Params:           "PARAMS",
	Param:            "PARAM",
	Unique:           "UNIQUE",
	IndexMethod:      "INDEX_METHOD",
	Bool:             "BOOL",
	Byte:             "BYTE",
	Int:              "INT",
	Long:             "LONG",
	Float:            "FLOAT",
	Double:           "DOUBLE",
	Text:             "TEXT",
	Bytes:            "BYTES",
	IPv4:             "IPV4",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// Node is the generic grammar-produced tree node. The parser is an external
// collaborator (see spec §6) — this type is the wire shape it is expected to
// hand the analyzer: a kind tag, the raw lexeme (for literals, identifiers,
// and operators), and an ordered list of children.
type Node struct {
	Kind     Kind    `json:"kind"`
	Text     string  `json:"text,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// New builds a Node with the given children, a thin constructor used by
// both the CLI's JSON decoding path and tests that build trees by hand.
func New(kind Kind, text string, children ...*Node) *Node {
	return &Node{Kind: kind, Text: text, Children: children}
}

// Child returns the i'th child or nil if i is out of range, matching the
// permissive indexing the original grammar-walking code relies on (AST
// shapes are validated node-by-node, not up front).
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

func (n *Node) NumChildren() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// Dump renders a parenthesized tree dump, used in diagnostics that need to
// show the offending AST shape.
func (n *Node) Dump() string {
	var b strings.Builder
	n.dump(&b)
	return b.String()
}

func (n *Node) dump(b *strings.Builder) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	b.WriteString(n.Kind.String())
	if n.Text != "" {
		fmt.Fprintf(b, "(%s)", n.Text)
	}
	if len(n.Children) > 0 {
		b.WriteString(" [")
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(" ")
			}
			c.dump(b)
		}
		b.WriteString("]")
	}
}
