// Package datum implements the fixed scalar type system and typed constant
// values the analyzer constructs during constant-to-column type inference
// (spec §4.13). It stands in for the "Datum/Type system" collaborator named
// in spec §1 — in a full pipeline this would be supplied by the planner's
// runtime value representation (the teacher's own zed.Context / primitive
// types), trimmed here to the fixed scalar set spec.md names in §4.9 and
// §4.13.
package datum

import "fmt"

// Type is one of the fixed scalar types the analyzer reasons about. ANY is
// not a value type a Datum ever carries — it is a wildcard used only in
// function parameter matching (spec §6, "ANY acts as a wildcard parameter
// type for built-ins like count").
type Type int

const (
	Unknown Type = iota
	Bool
	Byte
	Short
	Int
	Long
	Float
	Double
	Char
	String
	Bytes
	IPv4
	Any
)

var typeNames = map[Type]string{
	Unknown: "UNKNOWN",
	Bool:    "BOOL",
	Byte:    "BYTE",
	Short:   "SHORT",
	Int:     "INT",
	Long:    "LONG",
	Float:   "FLOAT",
	Double:  "DOUBLE",
	Char:    "CHAR",
	String:  "STRING",
	Bytes:   "BYTES",
	IPv4:    "IPV4",
	Any:     "ANY",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TYPE(%d)", int(t))
}

// IsNumeric reports whether t supports arithmetic binary operators.
func (t Type) IsNumeric() bool {
	switch t {
	case Byte, Short, Int, Long, Float, Double:
		return true
	}
	return false
}

// Wider returns the wider of two numeric types using the usual promotion
// ladder (integer < float, narrower < wider). It is used by
// qbt.Binary.ValueType to type the result of every arithmetic operator.
func Wider(a, b Type) Type {
	rank := func(t Type) int {
		switch t {
		case Byte:
			return 1
		case Short:
			return 2
		case Int:
			return 3
		case Long:
			return 4
		case Float:
			return 5
		case Double:
			return 6
		}
		return 0
	}
	if rank(a) >= rank(b) {
		return a
	}
	return b
}
