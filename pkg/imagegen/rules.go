package imagegen

import "github.com/mayhemheroes/modus/pkg/logic"

// Role classifies how a ground literal of a registered signature lowers
// to a BuildNode, the same small vocabulary §4.7 names: a base-image
// pull, a shell command, two flavors of copy, and three metadata edits.
type Role int

const (
	RoleFrom Role = iota
	RoleRun
	RoleCopyFromLocal
	RoleCopyFromImage
	RoleSetWorkdir
	RoleSetEntrypoint
	RoleSetLabel
)

// ImageRule describes one registered predicate: its Role, and which
// positions of the ground literal's Args carry the Role's payload.
//
//   - RoleFrom: Args[0] is the base image reference.
//   - RoleRun: Args[0] is the shell command.
//   - RoleCopyFromLocal: Args[0] is the local source path, Args[1] the
//     destination path.
//   - RoleCopyFromImage: Args[0] identifies the source image (the
//     value by which that image's own top-level proof is keyed, see
//     Generate), Args[1] the source path within it, Args[2] the
//     destination path.
//   - RoleSetWorkdir: Args[0] is the new working directory, joined
//     (not replacing) the generator's accumulated cwd.
//   - RoleSetEntrypoint: every Arg is one entrypoint command-line word.
//   - RoleSetLabel: Args[0] is the label key, Args[1] its value.
type ImageRule struct {
	Role Role
}

// ImageRules maps user predicate signatures to the image-construction
// Role they play, mirroring the registry idiom of
// pkg/builtin.Dispatcher: a read-only, signature-indexed lookup table
// built once and shared across generation calls.
type ImageRules struct {
	bySignature map[logic.Signature]ImageRule
}

// NewImageRules builds an ImageRules from a signature-to-rule mapping.
func NewImageRules(rules map[logic.Signature]ImageRule) ImageRules {
	byName := make(map[logic.Signature]ImageRule, len(rules))
	for sig, rule := range rules {
		byName[sig] = rule
	}
	return ImageRules{bySignature: byName}
}

// DefaultImageRules returns the conventional predicate names a
// Modus-style program uses for image construction: from/1, run/1,
// copy/2 (local), copy_from/3 (from another proved image), workdir/1,
// entrypoint/N (variadic arities 0-8), and label/2.
func DefaultImageRules() ImageRules {
	rules := map[logic.Signature]ImageRule{
		{Name: "from", Arity: 1}:      {Role: RoleFrom},
		{Name: "run", Arity: 1}:       {Role: RoleRun},
		{Name: "copy", Arity: 2}:      {Role: RoleCopyFromLocal},
		{Name: "copy_from", Arity: 3}: {Role: RoleCopyFromImage},
		{Name: "workdir", Arity: 1}:   {Role: RoleSetWorkdir},
		{Name: "label", Arity: 2}:     {Role: RoleSetLabel},
	}
	for arity := 0; arity <= 8; arity++ {
		rules[logic.Signature{Name: "entrypoint", Arity: arity}] = ImageRule{Role: RoleSetEntrypoint}
	}
	return NewImageRules(rules)
}

// Lookup reports the ImageRule registered for sig, if any.
func (r ImageRules) Lookup(sig logic.Signature) (ImageRule, bool) {
	rule, ok := r.bySignature[sig]
	return rule, ok
}
