package builtin

import (
	"strings"

	"github.com/mayhemheroes/modus/pkg/logic"
)

// ImageExists implements image_exists(Ref), a syntactic, network-free
// sanity check that a ground constant looks like a resolvable image
// reference (non-empty, no embedded whitespace). It never touches the
// filesystem or network — that belongs to the external collaborators
// named in spec §1 — it only lets a Modusfile assert "this constant is
// shaped like an image reference" as part of a proof, the same way
// string_concat lets it assert string identities.
type ImageExists struct{}

var imageExistsSig = logic.Signature{Name: "image_exists", Arity: 1}

// Sig returns image_exists/1.
func (ImageExists) Sig() logic.Signature { return imageExistsSig }

// Eval reports GroundnessMismatch until Ref is ground, then Match if
// Ref looks like a plausible image reference.
func (ImageExists) Eval(goalLit logic.Literal) (logic.Literal, Outcome) {
	ref, ok := goalLit.Args[0].Constant()
	if !ok {
		return logic.Literal{}, GroundnessMismatch
	}
	if ref == "" || strings.ContainsAny(ref, " \t\n") {
		return logic.Literal{}, GroundnessMismatch
	}
	return logic.NewLiteral(goalLit.Predicate, goalLit.Args[0]), Match
}
