package builtin

import "github.com/mayhemheroes/modus/pkg/logic"

// StringConcat implements string_concat(A, B, C), the primary builtin
// of spec §4.2. Its three argument-groundness modes:
//
//   - A and B ground: produce C = A ⧺ B.
//   - A and C ground, and C starts with A: produce B = the remainder.
//   - B and C ground, and C ends with B: produce A = the remainder.
//   - otherwise (all-variable, or an unsupported partial-groundness
//     combination): GroundnessMismatch.
type StringConcat struct{}

var stringConcatSig = logic.Signature{Name: "string_concat", Arity: 3}

// Sig returns string_concat/3.
func (StringConcat) Sig() logic.Signature { return stringConcatSig }

// Eval computes string_concat's consequence for goalLit, per the modes
// documented on StringConcat.
func (StringConcat) Eval(goalLit logic.Literal) (logic.Literal, Outcome) {
	a, b, c := goalLit.Args[0], goalLit.Args[1], goalLit.Args[2]
	aConst, aGround := a.Constant()
	bConst, bGround := b.Constant()
	cConst, cGround := c.Constant()

	switch {
	case aGround && bGround:
		return logic.NewLiteral(goalLit.Predicate, a, b, logic.NewConstant(aConst+bConst)), Match
	case aGround && cGround:
		if len(cConst) >= len(aConst) && cConst[:len(aConst)] == aConst {
			rest := cConst[len(aConst):]
			return logic.NewLiteral(goalLit.Predicate, a, logic.NewConstant(rest), c), Match
		}
		return logic.Literal{}, GroundnessMismatch
	case bGround && cGround:
		if len(cConst) >= len(bConst) && cConst[len(cConst)-len(bConst):] == bConst {
			rest := cConst[:len(cConst)-len(bConst)]
			return logic.NewLiteral(goalLit.Predicate, logic.NewConstant(rest), b, c), Match
		}
		return logic.Literal{}, GroundnessMismatch
	default:
		return logic.Literal{}, GroundnessMismatch
	}
}
