package logic

import "strings"

// Predicate is a predicate name. Two literals with the same Predicate
// but different argument counts are distinct (see Signature).
type Predicate string

// Signature is the (name, arity) pair that identifies a predicate at a
// particular call site.
type Signature struct {
	Name  Predicate
	Arity int
}

func (s Signature) String() string {
	return string(s.Name) + "/" + itoa(s.Arity)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Literal is a predicate applied to an ordered list of Terms.
type Literal struct {
	Predicate Predicate
	Args      []Term
}

// NewLiteral builds a Literal from a predicate name and arguments.
func NewLiteral(pred Predicate, args ...Term) Literal {
	return Literal{Predicate: pred, Args: args}
}

// Signature returns the (name, arity) pair for lit.
func (lit Literal) Signature() Signature {
	return Signature{Name: lit.Predicate, Arity: len(lit.Args)}
}

// IsGround reports whether every argument of lit is a Constant.
func (lit Literal) IsGround() bool {
	for _, a := range lit.Args {
		if !a.IsGround() {
			return false
		}
	}
	return true
}

// Variables returns the set of distinct variables occurring in lit, in
// first-occurrence order.
func (lit Literal) Variables() []Term {
	var out []Term
	seen := make(map[VarKey]bool)
	for _, a := range lit.Args {
		if a.IsVariable() && !seen[a.Key()] {
			seen[a.Key()] = true
			out = append(out, a)
		}
	}
	return out
}

// Equal reports whether two literals have the same signature and
// pairwise-equal arguments.
func (lit Literal) Equal(other Literal) bool {
	if lit.Signature() != other.Signature() {
		return false
	}
	for i := range lit.Args {
		if !lit.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// Clone returns a Literal with its own backing array, so that callers
// can freely append to the clone's Args without aliasing lit.
func (lit Literal) Clone() Literal {
	args := make([]Term, len(lit.Args))
	copy(args, lit.Args)
	return Literal{Predicate: lit.Predicate, Args: args}
}

func (lit Literal) String() string {
	if len(lit.Args) == 0 {
		return string(lit.Predicate)
	}
	parts := make([]string, len(lit.Args))
	for i, a := range lit.Args {
		parts[i] = a.String()
	}
	return string(lit.Predicate) + "(" + strings.Join(parts, ", ") + ")"
}

// Goal is an ordered list of literals — the unit that the SLD resolver
// proves and that a proof's valuation is applied to.
type Goal []Literal

// Substitute applies s to every literal of g.
func (g Goal) Substitute(s Substitution) Goal {
	out := make(Goal, len(g))
	for i, lit := range g {
		out[i] = SubstituteLiteral(lit, s)
	}
	return out
}

// IsGround reports whether every literal in g is ground.
func (g Goal) IsGround() bool {
	for _, lit := range g {
		if !lit.IsGround() {
			return false
		}
	}
	return true
}

// Equal reports whether two goals have pairwise-equal literals in the
// same order; this is the equality used by solution deduplication.
func (g Goal) Equal(other Goal) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if !g[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func (g Goal) String() string {
	parts := make([]string, len(g))
	for i, lit := range g {
		parts[i] = lit.String()
	}
	return strings.Join(parts, ", ")
}
