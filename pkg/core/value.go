package core

import (
	"strconv"
)

// Ty is the declared type of a column.
//
// TyNil is never a valid column declaration; it only names the runtime
// type of the Nil value (for example in evaluation errors).
type Ty int

// Ty constants.
const (
	TyStr Ty = iota
	TyInt
	TyFloat
	TyBool
	TyNil
)

func (t Ty) String() string {
	switch t {
	case TyStr:
		return "str"
	case TyInt:
		return "int"
	case TyFloat:
		return "float"
	case TyBool:
		return "bool"
	case TyNil:
		return "nil"
	default:
		return "Ty(" + strconv.Itoa(int(t)) + ")"
	}
}

// Declarable reports whether t may be used as a column type.
func (t Ty) Declarable() bool {
	return t >= TyStr && t <= TyBool
}

// Value is a runtime value. The set of implementations is closed:
// Str, Int, Float, Bool and Nil.
type Value interface {
	// Ty returns the runtime type of the value.
	Ty() Ty
	// String renders the value as it is written in source.
	String() string
	valueNode()
}

// Str is a string value.
type Str string

// Int is a 32-bit signed integer value.
type Int int32

// Float is a 32-bit floating point value.
type Float float32

// Bool is a boolean value.
type Bool bool

// Nil is the absent value, legal only in optional columns.
type Nil struct{}

func (Str) valueNode()   {}
func (Int) valueNode()   {}
func (Float) valueNode() {}
func (Bool) valueNode()  {}
func (Nil) valueNode()   {}

// Ty implements Value.
func (Str) Ty() Ty { return TyStr }

// Ty implements Value.
func (Int) Ty() Ty { return TyInt }

// Ty implements Value.
func (Float) Ty() Ty { return TyFloat }

// Ty implements Value.
func (Bool) Ty() Ty { return TyBool }

// Ty implements Value.
func (Nil) Ty() Ty { return TyNil }

func (s Str) String() string { return `"` + string(s) + `"` }

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// String renders the shortest decimal that round-trips. It never uses an
// exponent, which the lexer does not accept.
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'f', -1, 32) }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (Nil) String() string { return "nil" }

// IsNil reports whether v is the Nil value.
func IsNil(v Value) bool {
	_, ok := v.(Nil)
	return ok
}
