// Package reporting implements the user-facing boundary of §6: turning
// a produced build output into the pretty-printed JSON array the spec
// calls "Reporting output". Grounded on
// original_source/modus/src/reporting.rs's ConstantLiteral::from_literal
// and write_build_result, adapted to Go's encoding/json (json.MarshalIndent
// for the "pretty-printed" requirement) and pkg/errors-wrapped failures
// in place of the original's string-formatted ones, per §7's "Surfaced
// with the underlying message" policy for serialization failures.
package reporting

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/mayhemheroes/modus/pkg/imagegen"
	"github.com/mayhemheroes/modus/pkg/logic"
)

// ConstantLiteral is a ground literal prepared for reporting: its
// predicate name and its arguments, which must all be Constants. It
// exists separately from logic.Literal so the reporting boundary never
// has to reason about Terms that could be variables.
type ConstantLiteral struct {
	Predicate string
	Args      []string
}

// ErrNonConstantArgument is raised when a literal handed to
// FromLiteral has a non-ground argument — the reporting boundary, per
// §6, only ever describes a produced (therefore fully proved, therefore
// ground) output image.
var ErrNonConstantArgument = errors.New("reporting: literal has a non-constant argument")

// FromLiteral converts a ground logic.Literal into a ConstantLiteral,
// failing if any argument is not a Constant.
func FromLiteral(lit logic.Literal) (ConstantLiteral, error) {
	args := make([]string, len(lit.Args))
	for i, a := range lit.Args {
		s, ok := a.Constant()
		if !ok {
			return ConstantLiteral{}, errors.Wrapf(ErrNonConstantArgument, "%s", lit)
		}
		args[i] = s
	}
	return ConstantLiteral{Predicate: string(lit.Predicate), Args: args}, nil
}

// Image is one produced output: the ground literal that proved it, plus
// the digest the external image builder assigned it after solving the
// build plan (§6: "boundary with the user").
type Image struct {
	ConstantLiteral
	Digest string
}

func (img Image) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Predicate string   `json:"predicate"`
		Args      []string `json:"args"`
		Digest    string   `json:"digest"`
	}{Predicate: img.Predicate, Args: img.Args, Digest: img.Digest})
}

// ErrOutputCountMismatch and ErrMissingSourceLiteral mirror the two
// debug_assert!s write_build_result made of its caller: one digest per
// plan output, and every output must carry a source literal.
var (
	ErrOutputCountMismatch  = errors.New("reporting: one digest is required per build-plan output")
	ErrMissingSourceLiteral = errors.New("reporting: build-plan output has no source literal")
)

// BuildResult assembles one Image per plan.Outputs entry, pairing it
// with the matching entry of imageDigests (by position), mirroring
// write_build_result's zip of outputs with image_ids.
func BuildResult(plan *imagegen.BuildPlan, imageDigests []string) ([]Image, error) {
	if len(plan.Outputs) != len(imageDigests) {
		return nil, errors.Wrapf(ErrOutputCountMismatch, "%d outputs, %d digests", len(plan.Outputs), len(imageDigests))
	}
	images := make([]Image, len(plan.Outputs))
	for i, o := range plan.Outputs {
		if !o.HasSource {
			return nil, errors.Wrapf(ErrMissingSourceLiteral, "output %d", i)
		}
		cl, err := FromLiteral(o.SourceLiteral)
		if err != nil {
			return nil, err
		}
		images[i] = Image{ConstantLiteral: cl, Digest: imageDigests[i]}
	}
	return images, nil
}

// WriteBuildResult renders images as the pretty-printed JSON array §6
// specifies: `{predicate, args:[string], digest:string}` per image.
func WriteBuildResult(images []Image) ([]byte, error) {
	if images == nil {
		images = []Image{}
	}
	out, err := json.MarshalIndent(images, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "reporting: failed to serialize build result")
	}
	return out, nil
}

// WriteTo writes the rendered build result to w, mirroring
// write_build_result's sink-writing half.
func WriteTo(w io.Writer, images []Image) error {
	out, err := WriteBuildResult(images)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return errors.Wrap(err, "reporting: failed to write build result")
	}
	return nil
}
