package logic

import "github.com/pkg/errors"

// VarCounter supplies the monotonic sequence backing fresh auxiliary
// variables. It is satisfied by *freshid.Counter; tests may substitute
// a fake that still honors the "never repeats, never decrements"
// contract.
type VarCounter interface {
	Next() (int64, error)
}

// Rename freshens every variable in c to a brand-new AuxiliaryVariable,
// unique for the lifetime of counter. It returns the renamed clause
// together with the substitution mapping each original variable to its
// fresh replacement, so that proof reconstruction can later map fresh
// bindings back onto the clause's original variable names (see
// ComposeNoExtend).
func Rename(c Clause, counter VarCounter) (Clause, Substitution, error) {
	renaming := NewSubstitution()
	for _, v := range c.Variables() {
		id, err := counter.Next()
		if err != nil {
			return Clause{}, Substitution{}, errors.Wrap(ErrCounterOverflow, err.Error())
		}
		fresh := NewAuxiliaryVariable(displayName(v), id)
		renaming = renaming.Bind(v, fresh)
	}
	return c.Substitute(renaming), renaming, nil
}

// displayName returns the text to carry forward into a freshened
// variable's display name, so that e.g. renaming "X" repeatedly
// produces "X#1", "X#2", ... rather than losing the original name.
func displayName(v Term) string {
	switch v.Kind() {
	case KindUserVariable, KindAuxiliaryVariable:
		return v.value
	default:
		return "_"
	}
}
