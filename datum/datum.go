package datum

import (
	"fmt"
	"strconv"
)

// Datum is a typed constant value, the analyzer's equivalent of the
// teacher's zed.Value but restricted to the scalar set spec.md names. A
// Datum is immutable once constructed.
type Datum struct {
	typ Type
	val any
}

func (d Datum) Type() Type { return d.typ }
func (d Datum) Value() any { return d.val }

func (d Datum) String() string {
	return fmt.Sprintf("%v", d.val)
}

func NewBool(v bool) Datum     { return Datum{Bool, v} }
func NewByte(v byte) Datum     { return Datum{Byte, v} }
func NewShort(v int16) Datum   { return Datum{Short, v} }
func NewInt(v int32) Datum     { return Datum{Int, v} }
func NewLong(v int64) Datum    { return Datum{Long, v} }
func NewFloat(v float32) Datum { return Datum{Float, v} }
func NewDouble(v float64) Datum {
	return Datum{Double, v}
}
func NewChar(v rune) Datum    { return Datum{Char, v} }
func NewString(v string) Datum { return Datum{String, v} }
func NewBytes(v []byte) Datum { return Datum{Bytes, v} }
func NewIPv4(v string) Datum  { return Datum{IPv4, v} }

// ParseShort, ParseInt, and ParseLong parse a decimal literal lexeme into a
// Datum of the requested width, used by the constant-type-inference rule in
// spec §4.13 (a DIGIT literal compared against a field of a narrower or
// wider integer type is reinterpreted at that width).
func ParseShort(text string) (Datum, error) {
	v, err := strconv.ParseInt(text, 10, 16)
	if err != nil {
		return Datum{}, fmt.Errorf("invalid short literal %q: %w", text, err)
	}
	return NewShort(int16(v)), nil
}

func ParseInt(text string) (Datum, error) {
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return Datum{}, fmt.Errorf("invalid int literal %q: %w", text, err)
	}
	return NewInt(int32(v)), nil
}

func ParseLong(text string) (Datum, error) {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Datum{}, fmt.Errorf("invalid long literal %q: %w", text, err)
	}
	return NewLong(v), nil
}

func ParseFloat(text string) (Datum, error) {
	v, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return Datum{}, fmt.Errorf("invalid float literal %q: %w", text, err)
	}
	return NewFloat(float32(v)), nil
}

func ParseDouble(text string) (Datum, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Datum{}, fmt.Errorf("invalid double literal %q: %w", text, err)
	}
	return NewDouble(v), nil
}

// ParseChar takes the first character of text, per spec §4.13's rule that a
// STRING literal compared against a CHAR field is narrowed to its first
// character.
func ParseChar(text string) (Datum, error) {
	if text == "" {
		return Datum{}, fmt.Errorf("invalid char literal: empty string")
	}
	r := []rune(text)[0]
	return NewChar(r), nil
}
