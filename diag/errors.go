// Package diag implements the analyzer-visible error taxonomy (spec §7),
// grounded on the teacher's compiler/parser.ErrorList/LocalizedError pattern:
// a small family of typed errors plus an aggregate that can hold more than
// one when independent sub-analyses each fail (spec §4.7's UNION/INTERSECT/
// EXCEPT sides).
package diag

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/kr/text"
	"go.uber.org/multierr"

	"github.com/nql-lang/nqlsem/ast"
)

// NQLSyntax is raised when the parser failed, the top-level AST has an
// unrecognized kind, or an index method string doesn't match any known
// method (spec §7).
type NQLSyntax struct {
	Msg string
}

func (e *NQLSyntax) Error() string { return "NQLSyntax: " + e.Msg }

// NotSupportQuery is raised for a CREATE TABLE whose body the analyzer
// doesn't recognize (spec §7).
type NotSupportQuery struct {
	Msg string
}

func (e *NotSupportQuery) Error() string { return "NotSupportQuery: " + e.Msg }

// InvalidQuery covers unknown types/tables/columns, natural/cross joins
// carrying a qualifier, and malformed AST shapes (spec §7). Node, when
// present, is dumped into the message so the offending shape is visible.
type InvalidQuery struct {
	Msg  string
	Node *ast.Node
}

func (e *InvalidQuery) Error() string {
	if e.Node == nil {
		return "InvalidQuery: " + e.Msg
	}
	var b strings.Builder
	b.WriteString("InvalidQuery: " + e.Msg + "\n")
	b.WriteString(text.Indent(e.Node.Dump(), "    "))
	return b.String()
}

// AmbiguousField is raised when a bare column matches two or more input
// tables (spec §7).
type AmbiguousField struct {
	Name string
}

func (e *AmbiguousField) Error() string {
	return fmt.Sprintf("AmbiguousField: column %q is ambiguous among the input tables", e.Name)
}

// UndefinedFunction is raised when no catalog signature matches a function
// call (spec §7). Canonical is the "name(type, type)" rendering.
type UndefinedFunction struct {
	Canonical string
}

func (e *UndefinedFunction) Error() string {
	return "UndefinedFunction: " + e.Canonical
}

// InvalidEval is raised when a binary operand is neither a literal nor a
// FIELD_NAME in a context that requires one (spec §7, §4.13).
type InvalidEval struct {
	Msg string
}

func (e *InvalidEval) Error() string {
	if e.Msg == "" {
		return "InvalidEval"
	}
	return "InvalidEval: " + e.Msg
}

// WithSuggestion appends a "did you mean" hint computed against candidates
// via Levenshtein distance (SPEC_FULL.md §4.17). It returns msg unchanged if
// no candidate is close enough to be a plausible typo.
func WithSuggestion(msg, attempted string, candidates []string) string {
	best, dist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(attempted, c)
		if dist == -1 || d < dist {
			best, dist = c, d
		}
	}
	// A generous but non-silly threshold: allow up to half the attempted
	// name's length, plus one, to differ before giving up on a suggestion.
	if best == "" || dist > (len(attempted)/2)+1 {
		return msg
	}
	return fmt.Sprintf("%s (did you mean %q?)", msg, best)
}

// Diagnostics aggregates one or more analysis errors into a single error
// value, used where spec §4.7 requires both sides of a failed set operation
// to be reported (SPEC_FULL.md §7) rather than only the first failure.
type Diagnostics struct {
	err error
}

// Append adds err to the aggregate if non-nil; Append is a no-op on a nil
// err so callers can unconditionally feed every sub-analysis's error.
func (d *Diagnostics) Append(err error) {
	d.err = multierr.Append(d.err, err)
}

// Err returns the aggregate error, or nil if nothing was appended.
func (d *Diagnostics) Err() error {
	return d.err
}

func (d *Diagnostics) Error() string {
	if d.err == nil {
		return ""
	}
	return d.err.Error()
}
