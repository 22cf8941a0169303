// Package logic implements the term, literal, clause and substitution
// algebra that the rest of the build planner is built on: constants and
// the two kinds of logic variable, unification, substitution, and rule
// renaming.
//
// A Term is one of three cases: a Constant (a ground string), a
// UserVariable (a name the surface program wrote down), or an
// AuxiliaryVariable (a name the engine invented). Only Constants are
// ground; the two variable kinds exist so that diagnostics can tell a
// user-visible name from an engine-introduced one.
package logic

import "fmt"

// TermKind distinguishes the three Term cases.
type TermKind int

const (
	// KindConstant marks a ground Term.
	KindConstant TermKind = iota
	// KindUserVariable marks a variable written by the surface program.
	KindUserVariable
	// KindAuxiliaryVariable marks a variable freshly introduced by the engine.
	KindAuxiliaryVariable
)

func (k TermKind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindUserVariable:
		return "user-variable"
	case KindAuxiliaryVariable:
		return "auxiliary-variable"
	default:
		return "unknown"
	}
}

// Term is a constant, a user-named variable, or an engine-generated
// auxiliary variable. The zero value is not a valid Term; always build
// one with NewConstant, NewUserVariable, or NewAuxiliaryVariable.
type Term struct {
	kind TermKind
	// value holds the constant's text for KindConstant, or the
	// variable's name for the two variable kinds.
	value string
	// id disambiguates AuxiliaryVariable instances that might
	// otherwise share a printable name (e.g. after renaming a rule
	// twice); it is always 0 for the other two kinds.
	id int64
}

// NewConstant returns a ground Term wrapping s.
func NewConstant(s string) Term {
	return Term{kind: KindConstant, value: s}
}

// NewUserVariable returns a Term for a variable named by the surface
// program.
func NewUserVariable(name string) Term {
	return Term{kind: KindUserVariable, value: name}
}

// NewAuxiliaryVariable returns a Term for an engine-generated variable.
// id should come from a freshid.Counter so that two auxiliary variables
// are never confused even if they happen to share a display name.
func NewAuxiliaryVariable(name string, id int64) Term {
	return Term{kind: KindAuxiliaryVariable, value: name, id: id}
}

// Kind reports which of the three cases t is.
func (t Term) Kind() TermKind { return t.kind }

// IsGround reports whether t is a Constant.
func (t Term) IsGround() bool { return t.kind == KindConstant }

// IsVariable reports whether t is either variable kind.
func (t Term) IsVariable() bool { return t.kind != KindConstant }

// Constant returns the constant's text and true, or ("", false) if t is
// not a Constant.
func (t Term) Constant() (string, bool) {
	if t.kind != KindConstant {
		return "", false
	}
	return t.value, true
}

// VarKey identifies a variable uniquely regardless of its display name:
// two Terms produce equal VarKeys iff they are the same variable.
// Constants do not have a meaningful VarKey and always return the zero
// value; callers must check IsVariable first.
type VarKey struct {
	kind TermKind
	name string
	id   int64
}

// Key returns t's VarKey. Only meaningful when t.IsVariable().
func (t Term) Key() VarKey {
	return VarKey{kind: t.kind, name: t.value, id: t.id}
}

// Equal reports whether t and other denote the same term: equal
// constants, or the same variable identity.
func (t Term) Equal(other Term) bool {
	if t.kind != other.kind {
		return false
	}
	if t.kind == KindConstant {
		return t.value == other.value
	}
	return t.Key() == other.Key()
}

// String renders t for diagnostics: a quoted constant, or the
// variable's name (auxiliary variables also show their id so that
// distinct fresh copies of the same original name are distinguishable).
func (t Term) String() string {
	switch t.kind {
	case KindConstant:
		return fmt.Sprintf("%q", t.value)
	case KindAuxiliaryVariable:
		return fmt.Sprintf("%s#%d", t.value, t.id)
	default:
		return t.value
	}
}
