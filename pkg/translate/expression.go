// Package translate lowers a surface program — one that may use
// conjunction, disjunction, and operator-annotated sub-expressions — to
// the flat Horn clauses pkg/logic and pkg/sld operate on.
package translate

import "github.com/mayhemheroes/modus/pkg/logic"

// ExprKind distinguishes the four Expression cases.
type ExprKind int

const (
	// ExprLiteral wraps a single Literal.
	ExprLiteral ExprKind = iota
	// ExprConjunction is an ordered list of sub-expressions, all of
	// which must hold (conjunction binds tighter than disjunction).
	ExprConjunction
	// ExprDisjunction is an ordered list of alternative sub-expressions,
	// any one of which may hold.
	ExprDisjunction
	// ExprOperatorApplication annotates a sub-expression with a
	// decorator literal, e.g. `(body)::merge`.
	ExprOperatorApplication
)

// Expression is a surface-program body: a literal, a conjunction or
// disjunction of sub-expressions, or an operator-annotated
// sub-expression. Only one of the fields below is meaningful, selected
// by Kind.
type Expression struct {
	Kind     ExprKind
	Literal  logic.Literal
	List     []Expression
	Inner    *Expression
	Operator logic.Literal
}

// NewLiteralExpr wraps a single literal as an Expression.
func NewLiteralExpr(lit logic.Literal) Expression {
	return Expression{Kind: ExprLiteral, Literal: lit}
}

// NewConjunction builds a conjunction of the given sub-expressions.
func NewConjunction(es ...Expression) Expression {
	return Expression{Kind: ExprConjunction, List: es}
}

// NewDisjunction builds a disjunction of the given sub-expressions.
func NewDisjunction(es ...Expression) Expression {
	return Expression{Kind: ExprDisjunction, List: es}
}

// NewOperatorApplication annotates inner with the decorator literal op.
func NewOperatorApplication(inner Expression, op logic.Literal) Expression {
	return Expression{Kind: ExprOperatorApplication, Inner: &inner, Operator: op}
}

// Prune simplifies e by collapsing any singleton conjunction or
// singleton disjunction to its sole element, recursively. An
// OperatorApplication's annotation is never collapsed away — only its
// inner expression is pruned.
func Prune(e Expression) Expression {
	switch e.Kind {
	case ExprConjunction:
		pruned := pruneList(e.List)
		if len(pruned) == 1 {
			return pruned[0]
		}
		return Expression{Kind: ExprConjunction, List: pruned}
	case ExprDisjunction:
		pruned := pruneList(e.List)
		if len(pruned) == 1 {
			return pruned[0]
		}
		return Expression{Kind: ExprDisjunction, List: pruned}
	case ExprOperatorApplication:
		inner := Prune(*e.Inner)
		return Expression{Kind: ExprOperatorApplication, Inner: &inner, Operator: e.Operator}
	default:
		return e
	}
}

func pruneList(es []Expression) []Expression {
	out := make([]Expression, len(es))
	for i, e := range es {
		out[i] = Prune(e)
	}
	return out
}

// SurfaceClause is a head literal and an optional Expression body. A
// nil Body denotes a fact.
type SurfaceClause struct {
	Head logic.Literal
	Body *Expression
}
