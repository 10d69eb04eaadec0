// Package types implements the four-level qualifier lattice and base-type
// representation, grounded on the registry-of-kinds shape of go-dws's
// internal/interp/types.TypeSystem, generalized from DWScript's nominal
// type compatibility to rank-based qualifier compatibility: a small enum
// pair (Qualifier, BaseType), with string round-tripping retained only at
// diagnostic message boundaries.
package types

import "strings"

// Qualifier ranks when a value is known.
type Qualifier int

const (
	Const Qualifier = iota
	Input
	Simple
	Series
)

func (q Qualifier) String() string {
	switch q {
	case Const:
		return "const"
	case Input:
		return "input"
	case Simple:
		return "simple"
	default:
		return "series"
	}
}

// ParseQualifier maps a qualifier keyword to its rank. ok is false for any
// other word (the caller then treats the whole hint as a bare base name).
func ParseQualifier(s string) (Qualifier, bool) {
	switch s {
	case "const":
		return Const, true
	case "input":
		return Input, true
	case "simple":
		return Simple, true
	case "series":
		return Series, true
	}
	return Series, false
}

// BaseType is implemented by every base-type shape: Named (simple names
// like int, float, bool, string, color, void, na, any, or a user type) and
// the three parameterized forms.
type BaseType interface {
	baseType()
	String() string
}

// Named is a simple or user-defined base type.
type Named string

func (Named) baseType()      {}
func (n Named) String() string { return string(n) }

// Array is `array<T>`.
type Array struct{ Elem BaseType }

func (Array) baseType() {}
func (a Array) String() string { return "array<" + a.Elem.String() + ">" }

// Map is `map<K,V>`.
type Map struct{ Key, Val BaseType }

func (Map) baseType() {}
func (m Map) String() string { return "map<" + m.Key.String() + "," + m.Val.String() + ">" }

// Matrix is `matrix<T>`.
type Matrix struct{ Elem BaseType }

func (Matrix) baseType() {}
func (m Matrix) String() string { return "matrix<" + m.Elem.String() + ">" }

// Well-known base names.
const (
	Int    = Named("int")
	Float  = Named("float")
	Bool   = Named("bool")
	String = Named("string")
	Color  = Named("color")
	Void   = Named("void")
	NA     = Named("na")
	Any    = Named("any")
)

// Type is `<qualifier> <base>`. The zero value is invalid; use New to
// construct one with the default series qualifier.
type Type struct {
	Qualifier Qualifier
	Base      BaseType
}

// New builds a Type defaulting to the series qualifier, the default
// applied whenever only a base type is given with no explicit qualifier.
func New(base BaseType) Type { return Type{Qualifier: Series, Base: base} }

// Qualified builds a Type with an explicit qualifier.
func Qualified(q Qualifier, base BaseType) Type { return Type{Qualifier: q, Base: base} }

func (t Type) String() string {
	return t.Qualifier.String() + " " + t.Base.String()
}

func isNamed(b BaseType, name string) bool {
	n, ok := b.(Named)
	return ok && string(n) == name
}

// baseAssignable reports base-type compatibility ignoring qualifiers
//: equal bases, target float / source int widening, either
// side any, or source na (universally assignable).
func baseAssignable(target, source BaseType) bool {
	if isNamed(source, "na") {
		return true
	}
	if isNamed(target, "any") || isNamed(source, "any") {
		return true
	}
	if target == source {
		return true
	}
	tn, tok := target.(Named)
	sn, sok := source.(Named)
	if tok && sok {
		if string(tn) == string(sn) {
			return true
		}
		if tn == Float && sn == Int {
			return true
		}
		return false
	}
	// Parameterized types: compatible only with an identical shape
	// (element-wise, recursively).
	switch tv := target.(type) {
	case Array:
		if sv, ok := source.(Array); ok {
			return baseAssignable(tv.Elem, sv.Elem)
		}
	case Matrix:
		if sv, ok := source.(Matrix); ok {
			return baseAssignable(tv.Elem, sv.Elem)
		}
	case Map:
		if sv, ok := source.(Map); ok {
			return baseAssignable(tv.Key, sv.Key) && baseAssignable(tv.Val, sv.Val)
		}
	}
	return false
}

// Assignable reports whether a value of type source may be assigned/bound
// to a location declared as type target: rank(source) <= rank(target) and
// the bases are compatible.
func Assignable(target, source Type) bool {
	return source.Qualifier <= target.Qualifier && baseAssignable(target.Base, source.Base)
}

// BinaryResultQualifier is max(ranks of operands).
func BinaryResultQualifier(a, b Qualifier) Qualifier {
	if a > b {
		return a
	}
	return b
}

// BinaryResultBase derives the result base type of a binary operator
// application: comparison and logical operators always yield bool,
// string concatenation stays string, float widens int, falling back to
// the left operand's base for anything else (bitwise ops, etc.).
func BinaryResultBase(op string, left, right BaseType) BaseType {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "and", "or":
		return Bool
	case "+":
		if isNamed(left, "string") && isNamed(right, "string") {
			return String
		}
		fallthrough
	case "-", "*", "/", "%":
		if isNamed(left, "float") || isNamed(right, "float") {
			return Float
		}
		if isNamed(left, "int") && isNamed(right, "int") {
			return Int
		}
		return left
	default:
		return left
	}
}

// ParseHint parses a type-hint string of the form "[qualifier] base" into
// a Type. Unqualified hints default to series, matching VarDecl's default
// assignability check ("series <hint>").
func ParseHint(hint string) Type {
	hint = strings.TrimSpace(hint)
	parts := strings.Fields(hint)
	if len(parts) == 2 {
		if q, ok := ParseQualifier(parts[0]); ok {
			return Type{Qualifier: q, Base: parseBaseName(parts[1])}
		}
	}
	if len(parts) == 1 && parts[0] != "" {
		return New(parseBaseName(parts[0]))
	}
	return New(Any)
}

func parseBaseName(name string) BaseType {
	if strings.HasPrefix(name, "array<") && strings.HasSuffix(name, ">") {
		return Array{Elem: parseBaseName(name[len("array<") : len(name)-1])}
	}
	if strings.HasPrefix(name, "matrix<") && strings.HasSuffix(name, ">") {
		return Matrix{Elem: parseBaseName(name[len("matrix<") : len(name)-1])}
	}
	if strings.HasPrefix(name, "map<") && strings.HasSuffix(name, ">") {
		inner := name[len("map<") : len(name)-1]
		if idx := strings.Index(inner, ","); idx >= 0 {
			return Map{Key: parseBaseName(inner[:idx]), Val: parseBaseName(inner[idx+1:])}
		}
	}
	return Named(name)
}
