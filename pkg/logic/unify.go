package logic

// Unify computes the most general unifier of two literals, or reports
// failure. Unification fails immediately (with no partial result) if
// the literals' signatures differ; otherwise it walks argument pairs
// left to right:
//
//   - constant vs. an equal constant: no binding needed.
//   - constant vs. a different constant: fail.
//   - a variable vs. anything: bind the variable, substituting into
//     whatever has already been bound so far.
//   - two variables: bind one to the other.
func Unify(a, b Literal) (Substitution, bool) {
	if a.Signature() != b.Signature() {
		return Substitution{}, false
	}
	s := NewSubstitution()
	for i := range a.Args {
		var ok bool
		s, ok = unifyTerm(SubstituteTerm(a.Args[i], s), SubstituteTerm(b.Args[i], s), s)
		if !ok {
			return Substitution{}, false
		}
	}
	return s, true
}

func unifyTerm(x, y Term, s Substitution) (Substitution, bool) {
	x = s.Walk(x)
	y = s.Walk(y)
	switch {
	case !x.IsVariable() && !y.IsVariable():
		if x.Equal(y) {
			return s, true
		}
		return s, false
	case x.IsVariable() && y.IsVariable():
		if x.Equal(y) {
			return s, true
		}
		return bindInto(s, x, y), true
	case x.IsVariable():
		return bindInto(s, x, y), true
	default: // y.IsVariable()
		return bindInto(s, y, x), true
	}
}

// bindInto adds v ↦ t to s and rewrites s's existing bindings through
// it, so that a single application of the result is enough.
func bindInto(s Substitution, v, t Term) Substitution {
	return ComposeExtend(s, NewSubstitution().Bind(v, t))
}
