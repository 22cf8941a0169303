package builtin

import "github.com/mayhemheroes/modus/pkg/logic"

// Merge registers merge/0, the operator-literal signature the
// translator attaches as a decorator marker for `(body)::merge`
// expressions (§4.5 item 5 of the surface-to-IR lowering). The
// decorator itself never survives translation as a real goal literal —
// it is stripped and kept only for surface-level diagnostics — but its
// signature must still be known to the groundness analyzer and the
// resolver's undefined-predicate check, in case a caller resolves
// against an untranslated clause set that still carries it.
//
// Eval always reports Match: merge/0 has no arguments to be ground or
// not, and its semantics beyond being a recognized signature are not
// yet enforced.
type Merge struct{}

var mergeSig = logic.Signature{Name: "merge", Arity: 0}

// Sig returns merge/0.
func (Merge) Sig() logic.Signature { return mergeSig }

// Eval reports Match unconditionally.
func (Merge) Eval(goalLit logic.Literal) (logic.Literal, Outcome) {
	return logic.NewLiteral(goalLit.Predicate), Match
}
