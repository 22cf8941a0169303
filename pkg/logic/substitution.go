package logic

// Substitution is a finite mapping from variables to Terms. It is
// applied left-to-right; there is no occurs-check beyond what
// unification itself rejects.
//
// Substitution is an immutable value: Bind and the Compose* functions
// all return a new Substitution rather than mutating their receiver, so
// a Substitution can be shared freely across branches of the SLD search
// without synchronization.
type Substitution struct {
	bindings map[VarKey]Term
}

// NewSubstitution returns the empty substitution.
func NewSubstitution() Substitution {
	return Substitution{bindings: map[VarKey]Term{}}
}

// Bind returns a new Substitution equal to s plus v ↦ t.
func (s Substitution) Bind(v, t Term) Substitution {
	out := make(map[VarKey]Term, len(s.bindings)+1)
	for k, v := range s.bindings {
		out[k] = v
	}
	out[v.Key()] = t
	return Substitution{bindings: out}
}

// Lookup returns the term bound to v and true, or the zero Term and
// false if v is unbound in s.
func (s Substitution) Lookup(v Term) (Term, bool) {
	t, ok := s.bindings[v.Key()]
	return t, ok
}

// Len returns the number of bindings in s.
func (s Substitution) Len() int { return len(s.bindings) }

// Walk follows t through s's bindings until it reaches a Constant or an
// unbound variable. It does not recurse into compound structure because
// Terms here have none — this is the base case of substitution.
func (s Substitution) Walk(t Term) Term {
	for t.IsVariable() {
		bound, ok := s.Lookup(t)
		if !ok {
			return t
		}
		t = bound
	}
	return t
}

// Substitutable is the polymorphic form of substitution. It is
// implemented by sld.GoalWithHistory; terms, literals, clauses and goals
// use SubstituteTerm, SubstituteLiteral, Clause.Substitute and
// Goal.Substitute instead, which return their own concrete types.
type Substitutable interface {
	Substitute(s Substitution) Substitutable
}

// SubstituteTerm applies s to t once.
func SubstituteTerm(t Term, s Substitution) Term {
	if !t.IsVariable() {
		return t
	}
	if bound, ok := s.Lookup(t); ok {
		return bound
	}
	return t
}

// SubstituteLiteral applies s to every argument of lit once.
func SubstituteLiteral(lit Literal, s Substitution) Literal {
	args := make([]Term, len(lit.Args))
	for i, a := range lit.Args {
		args[i] = SubstituteTerm(a, s)
	}
	return Literal{Predicate: lit.Predicate, Args: args}
}

// ComposeExtend computes the usual substitution composition:
//
//	{x ↦ (σ(x))τ | x ∈ dom σ} ∪ {y ↦ τ(y) | y ∈ dom τ, y ∉ dom σ}
//
// i.e. apply τ to σ's range, then add τ's own bindings for variables σ
// doesn't already mention. Use this when walking a proof path where
// downstream bindings (τ) extend upstream ones (σ).
func ComposeExtend(sigma, tau Substitution) Substitution {
	out := make(map[VarKey]Term, len(sigma.bindings)+len(tau.bindings))
	for k, t := range sigma.bindings {
		out[k] = SubstituteTerm(t, tau)
	}
	for k, t := range tau.bindings {
		if _, inSigma := sigma.bindings[k]; !inSigma {
			out[k] = t
		}
	}
	return Substitution{bindings: out}
}

// ComposeNoExtend applies tau to sigma's range, like ComposeExtend, but
// does not add tau's own bindings for variables outside sigma's domain.
// It forms a clause-local valuation: exactly the clause's own variables
// (after renaming), mapped to their final ground values, without
// leaking auxiliary variables the resolver introduced downstream into
// the valuation.
func ComposeNoExtend(sigma, tau Substitution) Substitution {
	out := make(map[VarKey]Term, len(sigma.bindings))
	for k, t := range sigma.bindings {
		out[k] = SubstituteTerm(t, tau)
	}
	return Substitution{bindings: out}
}
