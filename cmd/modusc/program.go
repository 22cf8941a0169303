package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/mayhemheroes/modus/pkg/logic"
	"github.com/mayhemheroes/modus/pkg/translate"
)

// decodeConstant unescapes a JSON-embedded raw string constant the
// same way a Modusfile parser's own lexer would, per
// translate.DecodeEscapes's doc: the surface program format in
// program.json carries string constants as raw, possibly-escaped text
// rather than already-decoded JSON strings, so a from("\\tsomething")
// constant round-trips the same way it would through the grammar the
// real frontend owns.
func decodeConstant(s string) string {
	return translate.DecodeEscapes(s)
}

// termJSON is the wire shape of a logic.Term: exactly one of Const or
// Var is set. logic.Term's fields are unexported by design (§1 of
// pkg/logic), so a surface program arriving from outside the module
// can only ever be decoded through a shape like this one, never by
// unmarshaling into a Term directly.
type termJSON struct {
	Const *string `json:"const,omitempty"`
	Var   *string `json:"var,omitempty"`
}

func (t termJSON) toTerm() (logic.Term, error) {
	switch {
	case t.Const != nil && t.Var == nil:
		return logic.NewConstant(decodeConstant(*t.Const)), nil
	case t.Var != nil && t.Const == nil:
		return logic.NewUserVariable(*t.Var), nil
	default:
		return logic.Term{}, errors.New(`modusc: a term needs exactly one of "const" or "var"`)
	}
}

// literalJSON is the wire shape of a logic.Literal.
type literalJSON struct {
	Predicate string     `json:"predicate"`
	Args      []termJSON `json:"args"`
}

func (l literalJSON) toLiteral() (logic.Literal, error) {
	args := make([]logic.Term, len(l.Args))
	for i, a := range l.Args {
		t, err := a.toTerm()
		if err != nil {
			return logic.Literal{}, errors.Wrapf(err, "modusc: literal %q arg %d", l.Predicate, i)
		}
		args[i] = t
	}
	return logic.NewLiteral(logic.Predicate(l.Predicate), args...), nil
}

// exprJSON is the wire shape of a translate.Expression: exactly one of
// Literal, And, Or, or Op is set, mirroring the surface grammar's
// literal / conjunction / disjunction / operator-application cases.
type exprJSON struct {
	Literal *literalJSON `json:"literal,omitempty"`
	And     []exprJSON   `json:"and,omitempty"`
	Or      []exprJSON   `json:"or,omitempty"`
	Op      *opExprJSON  `json:"op,omitempty"`
}

type opExprJSON struct {
	Body     exprJSON    `json:"body"`
	Operator literalJSON `json:"operator"`
}

func (e exprJSON) toExpression() (translate.Expression, error) {
	switch {
	case e.Literal != nil:
		lit, err := e.Literal.toLiteral()
		if err != nil {
			return translate.Expression{}, err
		}
		return translate.NewLiteralExpr(lit), nil

	case e.And != nil:
		list, err := toExpressionList(e.And)
		if err != nil {
			return translate.Expression{}, err
		}
		return translate.NewConjunction(list...), nil

	case e.Or != nil:
		list, err := toExpressionList(e.Or)
		if err != nil {
			return translate.Expression{}, err
		}
		return translate.NewDisjunction(list...), nil

	case e.Op != nil:
		inner, err := e.Op.Body.toExpression()
		if err != nil {
			return translate.Expression{}, err
		}
		op, err := e.Op.Operator.toLiteral()
		if err != nil {
			return translate.Expression{}, err
		}
		return translate.NewOperatorApplication(inner, op), nil

	default:
		return translate.Expression{}, errors.New("modusc: expression has none of literal/and/or/op set")
	}
}

func toExpressionList(exprs []exprJSON) ([]translate.Expression, error) {
	out := make([]translate.Expression, len(exprs))
	for i, e := range exprs {
		conv, err := e.toExpression()
		if err != nil {
			return nil, errors.Wrapf(err, "modusc: expression %d", i)
		}
		out[i] = conv
	}
	return out, nil
}

// clauseJSON is the wire shape of a translate.SurfaceClause. A nil Body
// denotes a fact, exactly as translate.SurfaceClause does.
type clauseJSON struct {
	Head literalJSON `json:"head"`
	Body *exprJSON   `json:"body,omitempty"`
}

func (c clauseJSON) toSurfaceClause() (translate.SurfaceClause, error) {
	head, err := c.Head.toLiteral()
	if err != nil {
		return translate.SurfaceClause{}, err
	}
	if c.Body == nil {
		return translate.SurfaceClause{Head: head}, nil
	}
	body, err := c.Body.toExpression()
	if err != nil {
		return translate.SurfaceClause{}, err
	}
	return translate.SurfaceClause{Head: head, Body: &body}, nil
}

// programFile is the top-level shape of a program.json argument: the
// pre-parsed surface clauses a real grammar parser would have produced.
type programFile struct {
	Clauses []clauseJSON `json:"clauses"`
}

// loadProgram reads and decodes a program.json file into surface
// clauses ready for translate.Translate.
func loadProgram(path string) ([]translate.SurfaceClause, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "modusc: failed to read program %s", path)
	}
	var pf programFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, errors.Wrapf(err, "modusc: failed to parse program %s", path)
	}
	clauses := make([]translate.SurfaceClause, len(pf.Clauses))
	for i, c := range pf.Clauses {
		sc, err := c.toSurfaceClause()
		if err != nil {
			return nil, errors.Wrapf(err, "modusc: clause %d of %s", i, path)
		}
		clauses[i] = sc
	}
	return clauses, nil
}

// parseQuery decodes a query argument: a JSON array of literals, e.g.
// `[{"predicate":"image","args":[{"const":"myapp"}]}]`.
func parseQuery(raw string) (logic.Goal, error) {
	var lits []literalJSON
	if err := json.Unmarshal([]byte(raw), &lits); err != nil {
		return nil, errors.Wrap(err, "modusc: failed to parse query")
	}
	goal := make(logic.Goal, len(lits))
	for i, l := range lits {
		lit, err := l.toLiteral()
		if err != nil {
			return nil, errors.Wrapf(err, "modusc: query literal %d", i)
		}
		goal[i] = lit
	}
	return goal, nil
}
