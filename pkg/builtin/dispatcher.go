// Package builtin implements the small set of non-database predicates
// that the SLD resolver can prove by direct computation instead of by
// resolving against user rules: string concatenation and a handful of
// image-facing helpers.
package builtin

import "github.com/mayhemheroes/modus/pkg/logic"

// Outcome is the result of asking a Dispatcher to select a literal.
type Outcome int

const (
	// NoMatch means the literal's signature is not a builtin; the
	// resolver must look for a matching user rule instead.
	NoMatch Outcome = iota
	// GroundnessMismatch means the signature matches a builtin, but the
	// arguments this builtin requires to be ground aren't bound yet —
	// the selector must look elsewhere in the goal for now.
	GroundnessMismatch
	// Match means the builtin can fire: Dispatcher.Select also returns
	// a candidate instantiated literal whose unification with the goal
	// literal produces the builtin's effect.
	Match
)

func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "no-match"
	case GroundnessMismatch:
		return "groundness-mismatch"
	case Match:
		return "match"
	default:
		return "unknown"
	}
}

// Builtin computes the consequence of a single builtin predicate. Eval
// is given the goal literal (which may be partially ground) and must
// return a candidate literal of the same signature — ground in exactly
// the positions the builtin can determine — plus the Outcome.
// Eval must not be given a literal whose signature differs from Sig.
type Builtin interface {
	Sig() logic.Signature
	Eval(goalLit logic.Literal) (candidate logic.Literal, outcome Outcome)
}

// Dispatcher holds the registered builtins, indexed by signature.
// A Dispatcher is read-only after construction and safe for concurrent
// use by multiple SLD searches.
type Dispatcher struct {
	byName map[logic.Signature]Builtin
}

// NewDispatcher returns a Dispatcher with exactly the given builtins
// registered, for callers (e.g. tests, or a Config that narrows the
// builtin list) that want a set other than DefaultDispatcher's.
func NewDispatcher(builtins ...Builtin) *Dispatcher {
	d := &Dispatcher{byName: make(map[logic.Signature]Builtin, len(builtins))}
	for _, b := range builtins {
		d.byName[b.Sig()] = b
	}
	return d
}

// DefaultDispatcher returns a Dispatcher wired with string_concat/3,
// image_exists/1, and merge/0, the builtin set SPEC_FULL.md §3.2
// describes.
func DefaultDispatcher() *Dispatcher {
	return NewDispatcher(StringConcat{}, ImageExists{}, Merge{})
}

// IsBuiltinSignature reports whether sig names a registered builtin,
// regardless of whether the current goal literal's groundness would let
// it fire. The resolver uses this (together with known user-predicate
// signatures) to detect the "undefined predicate" hard fault of §4.4/§7.
func (d *Dispatcher) IsBuiltinSignature(sig logic.Signature) bool {
	_, ok := d.byName[sig]
	return ok
}

// Select looks up lit's signature and, if it names a builtin, asks that
// builtin to evaluate lit. NoMatch is returned for any literal whose
// signature isn't registered.
func (d *Dispatcher) Select(lit logic.Literal) (logic.Literal, Outcome) {
	b, ok := d.byName[lit.Signature()]
	if !ok {
		return logic.Literal{}, NoMatch
	}
	return b.Eval(lit)
}
