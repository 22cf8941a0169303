package translate

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/mayhemheroes/modus/pkg/logic"
)

// ErrCounterOverflow is the hard fault raised when the fresh
// auxiliary-predicate counter wraps, per §5/§7.
var ErrCounterOverflow = errors.New("translate: fresh predicate counter overflow")

// AuxCounter supplies the monotonic sequence backing fresh auxiliary
// predicate names. It is satisfied by *freshid.Counter, a second,
// independent instance from the one used for variable renaming — §5
// requires the two counters to be distinct.
type AuxCounter interface {
	Next() (int64, error)
}

// Translate lowers every surface clause to one or more flat Horn
// clauses, per §4.5 rules 1-5, pruning each clause's body first.
func Translate(clauses []SurfaceClause, aux AuxCounter) ([]logic.Clause, error) {
	var out []logic.Clause
	for _, c := range clauses {
		lowered, err := translateClause(c, aux)
		if err != nil {
			return nil, err
		}
		out = append(out, lowered...)
	}
	return out, nil
}

func translateClause(c SurfaceClause, aux AuxCounter) ([]logic.Clause, error) {
	if c.Body == nil {
		return []logic.Clause{logic.NewFact(c.Head)}, nil
	}
	return translateBody(c.Head, Prune(*c.Body), aux)
}

// translateBody lowers body, whose clauses all share head, by the
// shape of body: a bare literal becomes a one-literal rule; a
// conjunction flattens non-literal members behind fresh __replacedN
// auxiliary literals; a disjunction emits one rule per branch; an
// operator application is translated as if the annotation were absent,
// per §4.5 item 5 — the decorator is a surface-level diagnostic only
// and has no effect on the lowered clauses.
func translateBody(head logic.Literal, body Expression, aux AuxCounter) ([]logic.Clause, error) {
	switch body.Kind {
	case ExprLiteral:
		return []logic.Clause{logic.NewRule(head, body.Literal)}, nil

	case ExprOperatorApplication:
		return translateBody(head, *body.Inner, aux)

	case ExprConjunction:
		var clauses []logic.Clause
		curr := make([]logic.Literal, 0, len(body.List))
		for _, e := range body.List {
			if e.Kind == ExprLiteral {
				curr = append(curr, e.Literal)
				continue
			}
			auxLit, err := freshAuxLiteral(aux)
			if err != nil {
				return nil, err
			}
			curr = append(curr, auxLit)
			sub, err := translateBody(auxLit, e, aux)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, sub...)
		}
		clauses = append(clauses, logic.NewRule(head, curr...))
		return clauses, nil

	case ExprDisjunction:
		var clauses []logic.Clause
		for _, e := range body.List {
			if e.Kind == ExprLiteral {
				clauses = append(clauses, logic.NewRule(head, e.Literal))
				continue
			}
			auxLit, err := freshAuxLiteral(aux)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, logic.NewRule(head, auxLit))
			sub, err := translateBody(auxLit, e, aux)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, sub...)
		}
		return clauses, nil

	default:
		return nil, errors.Errorf("translate: unknown expression kind %d", body.Kind)
	}
}

// freshAuxLiteral mints a new zero-arity literal named __replacedN,
// a prefix that is not legal in the surface grammar so it can never
// collide with a user-written predicate.
func freshAuxLiteral(aux AuxCounter) (logic.Literal, error) {
	id, err := aux.Next()
	if err != nil {
		return logic.Literal{}, errors.Wrap(ErrCounterOverflow, err.Error())
	}
	return logic.NewLiteral(logic.Predicate(fmt.Sprintf("__replaced%d", id))), nil
}
