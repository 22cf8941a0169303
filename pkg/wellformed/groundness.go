// Package wellformed computes, once per rule set, a static groundness
// policy used by the SLD resolver's literal selection. It never rejects
// a program; it only tells the selector which argument positions of a
// user predicate must already be constants before a call to that
// predicate may be selected.
package wellformed

import "github.com/mayhemheroes/modus/pkg/logic"

// Analysis maps each user predicate signature to a per-position
// groundness vector: a[sig][i] is true when argument i is
// ground-producing (resolving the literal grounds it, so a call site may
// leave it a variable), and false when argument i must already be a
// Constant at any call site selecting that literal.
type Analysis map[logic.Signature][]bool

// Analyze computes the fixed point described in spec §4.3: a
// predicate's argument position is "ground-producing" if, on every
// clause defining it, that position is either a constant or a variable
// bound to a ground position of some body literal.
//
// The fixed point starts from "every position is ground-producing" and
// retracts a position as soon as one clause defining the predicate does
// not ground it under the positions still standing, until a pass makes
// no further changes. Starting from the full set lets a recursive clause
// such as reach(X,Y) :- reach(X,Z), arc(Z,Y) keep a position that the
// predicate's other clauses ground.
func Analyze(rules []logic.Clause) Analysis {
	sigs := collectSignatures(rules)
	result := make(Analysis, len(sigs))
	for sig := range sigs {
		v := make([]bool, sig.Arity)
		for i := range v {
			v[i] = true
		}
		result[sig] = v
	}

	for changed := true; changed; {
		changed = false
		for _, clause := range rules {
			headSig := clause.Head.Signature()
			for i, arg := range clause.Head.Args {
				if !result[headSig][i] {
					continue
				}
				if !isGroundUnderClause(arg, clause, result) {
					result[headSig][i] = false
					changed = true
				}
			}
		}
	}
	return result
}

// collectSignatures gathers every distinct head signature appearing in
// rules, including those whose arity is 0 (so Analysis always has an
// entry — possibly an empty slice — for every user predicate).
func collectSignatures(rules []logic.Clause) map[logic.Signature]struct{} {
	sigs := make(map[logic.Signature]struct{})
	for _, clause := range rules {
		sigs[clause.Head.Signature()] = struct{}{}
	}
	return sigs
}

// isGroundUnderClause reports whether arg (a head argument of clause)
// is ground-producing given the groundness facts discovered so far:
// either it is already a Constant, or it is a variable that also
// appears at some ground-producing position of a body literal.
func isGroundUnderClause(arg logic.Term, clause logic.Clause, known Analysis) bool {
	if arg.IsGround() {
		return true
	}
	for _, bodyLit := range clause.Body {
		grounded, ok := known[bodyLit.Signature()]
		if !ok {
			continue
		}
		for i, bodyArg := range bodyLit.Args {
			if i < len(grounded) && grounded[i] && bodyArg.IsVariable() && bodyArg.Equal(arg) {
				return true
			}
		}
	}
	return false
}

// Lookup returns the groundness requirement vector for sig, or nil if
// sig is unknown to this Analysis (e.g. a builtin signature, which the
// resolver checks separately via the builtin dispatcher).
func (a Analysis) Lookup(sig logic.Signature) ([]bool, bool) {
	v, ok := a[sig]
	return v, ok
}
